package merkletree_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtchecksum/merkle-tree-checksum/blockio"
	"github.com/mtchecksum/merkle-tree-checksum/hashalgo"
	"github.com/mtchecksum/merkle-tree-checksum/merkletree"
	"github.com/mtchecksum/merkle-tree-checksum/treegeom"
)

// recordingSink captures every call for assertion.
type recordingSink struct {
	begun    bool
	records  []merkletree.NodeRecord
	root     []byte
	finished bool
}

func (s *recordingSink) BeginFile(int, string, int64) error { s.begun = true; return nil }
func (s *recordingSink) Accept(r merkletree.NodeRecord) error {
	s.records = append(s.records, r)
	return nil
}
func (s *recordingSink) EndFile(root []byte) error { s.root = root; return nil }
func (s *recordingSink) Finish() error             { s.finished = true; return nil }

func runFile(t *testing.T, data []byte, algo hashalgo.Algorithm, blockLength, branchFactor uint32, jobs int) *recordingSink {
	t.Helper()
	params := merkletree.TreeParams{Algo: algo, BlockLength: blockLength, BranchFactor: branchFactor}
	geom := treegeom.New(int64(len(data)), blockLength, branchFactor)
	reader := blockio.NewReader(bytes.NewReader(data), int(blockLength))
	sink := &recordingSink{}
	root, err := merkletree.RunFile(context.Background(), params, geom, reader, jobs, 0, sink, nil)
	require.NoError(t, err)
	assert.Equal(t, root, sink.root)
	return sink
}

func TestExampleOneFourLeavesPlusRoot(t *testing.T) {
	data := []byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0A, 0x0B, 0x0C, 0x0D, 0x0E, 0x0F}
	sink := runFile(t, data, hashalgo.SHA256, 4, 4, 1)
	require.Len(t, sink.records, 5)
	for i := 0; i < 4; i++ {
		assert.Equal(t, uint32(0), sink.records[i].NodeID.Level)
		assert.Equal(t, uint64(i), sink.records[i].NodeID.Offset)
	}
	assert.Equal(t, uint32(1), sink.records[4].NodeID.Level)
}

func TestExampleTwoEightRecords(t *testing.T) {
	data := make([]byte, 20)
	for i := range data {
		data[i] = byte(i)
	}
	sink := runFile(t, data, hashalgo.SHA256, 4, 4, 1)
	require.Len(t, sink.records, 8)
	// Canonical order: leaves 0..3, their parent, leaf 4, its (singleton) parent, root.
	wantLevels := []uint32{0, 0, 0, 0, 1, 0, 1, 2}
	wantOffsets := []uint64{0, 1, 2, 3, 0, 4, 1, 0}
	for i, rec := range sink.records {
		assert.Equal(t, wantLevels[i], rec.NodeID.Level, "record %d level", i)
		assert.Equal(t, wantOffsets[i], rec.NodeID.Offset, "record %d offset", i)
	}
}

func TestEmptyFileSingleLeafRecord(t *testing.T) {
	sink := runFile(t, nil, hashalgo.SHA256, 4096, 4, 1)
	require.Len(t, sink.records, 1)
	h, _ := hashalgo.New(hashalgo.SHA256)
	h.Write([]byte{0x00})
	assert.Equal(t, h.Sum(nil), sink.root)
}

func TestOrderingIdenticalAcrossJobs(t *testing.T) {
	data := make([]byte, 257)
	for i := range data {
		data[i] = byte(i * 7)
	}
	var reference *recordingSink
	for _, jobs := range []int{0, 1, 2, 4, 16} {
		sink := runFile(t, data, hashalgo.SHA256, 8, 3, jobs)
		if reference == nil {
			reference = sink
			continue
		}
		require.Equal(t, len(reference.records), len(sink.records), "jobs=%d", jobs)
		for i := range reference.records {
			assert.Equal(t, reference.records[i].NodeID, sink.records[i].NodeID, "jobs=%d record %d", jobs, i)
			assert.Equal(t, reference.records[i].Hash, sink.records[i].Hash, "jobs=%d record %d", jobs, i)
		}
		assert.Equal(t, reference.root, sink.root, "jobs=%d", jobs)
	}
}

func TestBitFlipChangesRootAndLocalizesMismatch(t *testing.T) {
	data := make([]byte, 64)
	for i := range data {
		data[i] = byte(i)
	}
	flipped := append([]byte(nil), data...)
	flipped[20] ^= 0x01 // lands in block index 5 for block_length=4

	orig := runFile(t, data, hashalgo.SHA256, 4, 4, 1)
	mutated := runFile(t, flipped, hashalgo.SHA256, 4, 4, 1)

	assert.NotEqual(t, orig.root, mutated.root)

	var changedLeaf *merkletree.NodeRecord
	for i := range orig.records {
		if orig.records[i].NodeID.Level == 0 && !bytes.Equal(orig.records[i].Hash, mutated.records[i].Hash) {
			changedLeaf = &mutated.records[i]
			break
		}
	}
	require.NotNil(t, changedLeaf)
	assert.True(t, changedLeaf.Range.FileByteStart <= 20 && 20 < changedLeaf.Range.FileByteEnd)
}

// naiveRoot is a from-scratch reference implementation of the hashing rules,
// built independently of treegeom/traversal so it can cross-check them.
func naiveRoot(t *testing.T, data []byte, algo hashalgo.Algorithm, blockLength, branchFactor uint32) []byte {
	t.Helper()
	n := len(data)
	blockCount := (n + int(blockLength) - 1) / int(blockLength)
	if blockCount == 0 {
		blockCount = 1
	}
	leaves := make([][]byte, blockCount)
	for i := 0; i < blockCount; i++ {
		start := i * int(blockLength)
		end := start + int(blockLength)
		if end > n {
			end = n
		}
		h, err := hashalgo.New(algo)
		require.NoError(t, err)
		h.Write([]byte{0x00})
		h.Write(data[start:end])
		leaves[i] = h.Sum(nil)
	}
	level := leaves
	for len(level) > 1 {
		var next [][]byte
		b := int(branchFactor)
		for i := 0; i < len(level); i += b {
			end := i + b
			if end > len(level) {
				end = len(level)
			}
			h, err := hashalgo.New(algo)
			require.NoError(t, err)
			h.Write([]byte{0x01})
			for _, c := range level[i:end] {
				h.Write(c)
			}
			next = append(next, h.Sum(nil))
		}
		level = next
	}
	return level[0]
}

func TestMatchesNaiveRecursiveDefinition(t *testing.T) {
	cases := []struct {
		size, blockLength, branchFactor uint32
	}{
		{0, 4, 2}, {1, 4, 2}, {4, 4, 2}, {5, 4, 2}, {17, 4, 3}, {64, 8, 5}, {100, 7, 2},
	}
	for _, c := range cases {
		data := make([]byte, c.size)
		for i := range data {
			data[i] = byte(i*31 + 1)
		}
		want := naiveRoot(t, data, hashalgo.SHA256, c.blockLength, c.branchFactor)
		sink := runFile(t, data, hashalgo.SHA256, c.blockLength, c.branchFactor, 2)
		assert.Equal(t, want, sink.root, "size=%d block=%d branch=%d", c.size, c.blockLength, c.branchFactor)
	}
}

func TestSingleBlockFileRootIsLeafHash(t *testing.T) {
	data := []byte("hello")
	sink := runFile(t, data, hashalgo.SHA256, 4096, 4, 1)
	require.Len(t, sink.records, 1)
	h, _ := hashalgo.New(hashalgo.SHA256)
	h.Write([]byte{0x00})
	h.Write(data)
	assert.Equal(t, h.Sum(nil), sink.root)
}
