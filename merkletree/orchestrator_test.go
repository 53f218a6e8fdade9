package merkletree_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtchecksum/merkle-tree-checksum/hashalgo"
	"github.com/mtchecksum/merkle-tree-checksum/merkletree"
)

type fileListRecordingSink struct {
	recordingSink
	files []merkletree.FileInfo
}

func (s *fileListRecordingSink) Files(files []merkletree.FileInfo) error {
	s.files = files
	return nil
}

func writeTemp(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, data, 0o644))
	return p
}

func TestOrchestratorGenerateTwoFilesInOrder(t *testing.T) {
	dir := t.TempDir()
	p0 := writeTemp(t, dir, "a.bin", []byte("hello world"))
	p1 := writeTemp(t, dir, "b.bin", []byte("goodbye"))

	orch := &merkletree.Orchestrator{
		Params: merkletree.TreeParams{Algo: hashalgo.SHA256, BlockLength: 4, BranchFactor: 2},
		Jobs:   2,
	}
	sink := &fileListRecordingSink{}
	err := orch.Generate(context.Background(), []string{p0, p1}, sink)
	require.NoError(t, err)

	require.Len(t, sink.files, 2)
	assert.Equal(t, 0, sink.files[0].Index)
	assert.Equal(t, p0, sink.files[0].Path)
	assert.Equal(t, int64(len("hello world")), sink.files[0].Size)
	assert.Equal(t, 1, sink.files[1].Index)
	assert.True(t, sink.finished)

	fileIndices := map[int]bool{}
	for _, r := range sink.records {
		fileIndices[r.FileIndex] = true
	}
	assert.Len(t, fileIndices, 2)
}

func TestOrchestratorRejectsBadParams(t *testing.T) {
	orch := &merkletree.Orchestrator{
		Params: merkletree.TreeParams{Algo: hashalgo.SHA256, BlockLength: 0, BranchFactor: 2},
		Jobs:   1,
	}
	err := orch.Generate(context.Background(), nil, &recordingSink{})
	require.Error(t, err)
	var bp *merkletree.BadParamsError
	assert.ErrorAs(t, err, &bp)
}

func TestOrchestratorSurfacesMissingFile(t *testing.T) {
	orch := &merkletree.Orchestrator{
		Params: merkletree.TreeParams{Algo: hashalgo.SHA256, BlockLength: 4, BranchFactor: 2},
		Jobs:   1,
	}
	err := orch.Generate(context.Background(), []string{"/does/not/exist"}, &recordingSink{})
	require.Error(t, err)
	var ioErr *merkletree.IoError
	assert.ErrorAs(t, err, &ioErr)
}
