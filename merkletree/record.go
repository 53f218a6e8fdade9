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

// Package merkletree is the core block-oriented, parallel, domain-separated
// Merkle hashing engine: it owns TreeParams, the worker pool, the canonical
// emission order, and the Sink contract the ledger writer and verifier
// implement.
package merkletree

import (
	"fmt"

	"github.com/mtchecksum/merkle-tree-checksum/hashalgo"
	"github.com/mtchecksum/merkle-tree-checksum/treegeom"
)

// leafTag and interiorTag are the domain-separation bytes prepended before
// hashing. Eliding the interior tag for a single-child node would break
// ledger compatibility; see merkletree/hashing.go's foldInterior.
const (
	leafTag     = 0x00
	interiorTag = 0x01
)

// TreeParams is immutable once chosen for a file.
type TreeParams struct {
	Algo         hashalgo.Algorithm
	BlockLength  uint32
	BranchFactor uint32
}

// Validate surfaces a BadParams error for an invalid combination.
func (p TreeParams) Validate() error {
	return treegeom.Validate(p.BlockLength, p.BranchFactor)
}

// NodeID identifies a node: level 0 is leaves.
type NodeID struct {
	Level  uint32
	Offset uint64
}

// NodeRecord is immutable once finalized by the pipeline.
type NodeRecord struct {
	FileIndex int
	NodeID    NodeID
	Range     treegeom.Range
	Hash      []byte
}

func (r NodeRecord) String() string {
	return fmt.Sprintf("NodeRecord{file=%d level=%d offset=%d range=%+v hash=%x}",
		r.FileIndex, r.NodeID.Level, r.NodeID.Offset, r.Range, r.Hash)
}
