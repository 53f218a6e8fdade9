// Copyright 2018 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

// Package treegeom is pure arithmetic over (file_size, block_length,
// branch_factor): leaf count, level shape, and the byte range each node
// covers. It generalizes the fixed binary-tree depth calculation in
// bmt.TreePool (calculateDepthFor) to an arbitrary branch factor and an
// arbitrary, possibly non-power-of-branch-factor, leaf count.
package treegeom

import "fmt"

// Range is the inclusive-exclusive span a node covers, expressed both in
// tree-block units (which may run past file_size for the tail of the tree)
// and in file-byte units (clamped to [0, file_size)).
type Range struct {
	TreeBlockStart uint64
	TreeBlockEnd   uint64
	FileByteStart  uint64
	FileByteEnd    uint64
}

// Geometry describes the complete shape of a tree for one file.
type Geometry struct {
	FileSize     int64
	BlockLength  uint32
	BranchFactor uint32

	// levelCounts[0] is the leaf count; levelCounts[len-1] == 1 is the root
	// level. len(levelCounts) == 1 means the lone leaf is the root.
	levelCounts []uint64
}

// New computes the Geometry for a file of the given size under params.
// blockLength must be >= 1 and branchFactor must be >= 2; New does not
// re-validate these (callers validate TreeParams once, before constructing
// any Geometry).
func New(fileSize int64, blockLength, branchFactor uint32) Geometry {
	leaves := BlockCount(fileSize, blockLength)
	counts := []uint64{leaves}
	for counts[len(counts)-1] > 1 {
		n := counts[len(counts)-1]
		counts = append(counts, ceilDiv(n, uint64(branchFactor)))
	}
	return Geometry{
		FileSize:     fileSize,
		BlockLength:  blockLength,
		BranchFactor: branchFactor,
		levelCounts:  counts,
	}
}

// BlockCount returns ceil(file_size / block_length), minimum 1: an empty
// file still has exactly one (empty) block.
func BlockCount(fileSize int64, blockLength uint32) uint64 {
	if fileSize <= 0 {
		return 1
	}
	return ceilDiv(uint64(fileSize), uint64(blockLength))
}

func ceilDiv(n, d uint64) uint64 {
	if d == 0 {
		panic("treegeom: division by zero block length/branch factor")
	}
	return (n + d - 1) / d
}

// LevelCount is the number of levels in the tree, including the leaf level.
// A single-leaf tree has LevelCount 1: the leaf is the root, with no
// synthetic parent, so the "root = leaf" rule falls out of this directly
// with no special case required in the traversal.
func (g Geometry) LevelCount() int {
	return len(g.levelCounts)
}

// TopLevel is the index of the root's level (LevelCount()-1).
func (g Geometry) TopLevel() uint32 {
	return uint32(len(g.levelCounts) - 1)
}

// NodeCount returns the number of nodes at level, or 0 if level is out of
// range.
func (g Geometry) NodeCount(level uint32) uint64 {
	if int(level) >= len(g.levelCounts) {
		return 0
	}
	return g.levelCounts[level]
}

// ChildCount returns m, the number of actual children a node at
// (level, offset) has: branch_factor, except for the single tail group at
// each level where fewer children exist. level must be > 0 (leaves have no
// children).
func (g Geometry) ChildCount(level uint32, offset uint64) uint32 {
	if level == 0 || int(level) >= len(g.levelCounts) {
		return 0
	}
	childLevelCount := g.levelCounts[level-1]
	start := offset * uint64(g.BranchFactor)
	if start >= childLevelCount {
		return 0
	}
	remaining := childLevelCount - start
	if remaining > uint64(g.BranchFactor) {
		return g.BranchFactor
	}
	return uint32(remaining)
}

// NodeRange computes the byte range a node at (level, offset) covers.
// tree_block_end is always a full branch_factor^level span (never clamped to
// the actual child count), while file_byte_* is clamped to the file's real
// size.
func (g Geometry) NodeRange(level uint32, offset uint64) Range {
	span := pow(uint64(g.BranchFactor), level)
	treeStart := offset * span
	treeEnd := treeStart + span

	blockLen := uint64(g.BlockLength)
	fileSize := uint64(0)
	if g.FileSize > 0 {
		fileSize = uint64(g.FileSize)
	}
	byteStart := clampToFileSize(treeStart*blockLen, fileSize)
	byteEnd := clampToFileSize(treeEnd*blockLen, fileSize)

	return Range{
		TreeBlockStart: treeStart,
		TreeBlockEnd:   treeEnd,
		FileByteStart:  byteStart,
		FileByteEnd:    byteEnd,
	}
}

func clampToFileSize(v, fileSize uint64) uint64 {
	if v > fileSize {
		return fileSize
	}
	return v
}

func pow(base uint64, exp uint32) uint64 {
	result := uint64(1)
	for i := uint32(0); i < exp; i++ {
		result *= base
	}
	return result
}

// Validate reports a BadParams-shaped error for an out-of-range block
// length or branch factor.
func Validate(blockLength, branchFactor uint32) error {
	if blockLength == 0 {
		return fmt.Errorf("treegeom: block_length must be >= 1")
	}
	if branchFactor < 2 {
		return fmt.Errorf("treegeom: branch_factor must be >= 2")
	}
	return nil
}
