package ledger_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtchecksum/merkle-tree-checksum/hashalgo"
	"github.com/mtchecksum/merkle-tree-checksum/ledger"
	"github.com/mtchecksum/merkle-tree-checksum/merkletree"
)

func writeLedgerRoundTrip(t *testing.T, short bool) *ledger.Document {
	t.Helper()
	dir := t.TempDir()
	f0 := filepath.Join(dir, "f0.bin")
	f1 := filepath.Join(dir, `weird "name".bin`)
	require.NoError(t, os.WriteFile(f0, []byte("hello world"), 0o644))
	require.NoError(t, os.WriteFile(f1, []byte("0123456789abcdef"), 0o644))

	outPath := filepath.Join(dir, "out.ledger")
	params := merkletree.TreeParams{Algo: hashalgo.SHA256, BlockLength: 4, BranchFactor: 2}
	w, err := ledger.NewWriter(outPath, false, params, short)
	require.NoError(t, err)

	orch := &merkletree.Orchestrator{Params: params, Jobs: 2}
	require.NoError(t, orch.Generate(context.Background(), []string{f0, f1}, w))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	doc, err := ledger.Parse(bytes.NewReader(data))
	require.NoError(t, err)
	return doc
}

func TestLedgerRoundTripNonShort(t *testing.T) {
	doc := writeLedgerRoundTrip(t, false)
	assert.Equal(t, ledger.FormatVersion, doc.Version)
	assert.Equal(t, hashalgo.SHA256, doc.Params.Algo)
	assert.Equal(t, uint32(4), doc.Params.BlockLength)
	assert.Equal(t, uint32(2), doc.Params.BranchFactor)
	require.Len(t, doc.Files, 2)
	assert.Equal(t, `weird "name".bin`, filepath.Base(doc.Files[1].Path))
	assert.NotEmpty(t, doc.Records)

	for _, rec := range doc.Records {
		assert.NotEmpty(t, rec.Hash)
	}
}

func TestLedgerRoundTripShort(t *testing.T) {
	doc := writeLedgerRoundTrip(t, true)
	assert.True(t, doc.Short)
	require.Len(t, doc.ShortEntries, 2)
	assert.Empty(t, doc.Records)
	for _, e := range doc.ShortEntries {
		assert.Len(t, e.RootHash, hashalgo.SHA256.Size())
	}
}

func TestParseRejectsMalformedVersion(t *testing.T) {
	_, err := ledger.Parse(bytes.NewReader([]byte("not a version line\n")))
	require.Error(t, err)
	var pe *merkletree.LedgerParseError
	assert.ErrorAs(t, err, &pe)
	assert.Equal(t, 1, pe.Line)
}

func TestParseRejectsMissingHeaderField(t *testing.T) {
	bad := "merkle_tree_checksum v1.0.0\nHash function: sha256\nBlock size: 4\nFiles:\n"
	_, err := ledger.Parse(bytes.NewReader([]byte(bad)))
	require.Error(t, err)
}

func TestOverwriteRefused(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.ledger")
	require.NoError(t, os.WriteFile(out, []byte("existing"), 0o644))

	params := merkletree.TreeParams{Algo: hashalgo.SHA256, BlockLength: 4, BranchFactor: 2}
	_, err := ledger.NewWriter(out, false, params, false)
	require.Error(t, err)
	var exists *merkletree.OutputExistsError
	assert.ErrorAs(t, err, &exists)
}
