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

package merkletree

import (
	"context"

	"github.com/mtchecksum/merkle-tree-checksum/treegeom"
)

// traversal walks the tree depth-first, left-to-right, post-order (the
// canonical emission order) by recursion: every node's children are
// fully built — and their records emitted — before the node itself is
// built and emitted. Because children are always visited in ascending
// offset and the recursion only returns after a subtree is entirely
// emitted, this single walk is simultaneously the "sequencer" that
// re-imposes order over the (possibly out-of-order) leaf results src
// delivers, and the "fold worker" that computes every interior hash.
type traversal struct {
	geom      treegeom.Geometry
	params    TreeParams
	fileIndex int
	sink      Sink
	src       leafSource
}

func (t *traversal) run(ctx context.Context) ([]byte, error) {
	return t.build(ctx, t.geom.TopLevel(), 0)
}

func (t *traversal) build(ctx context.Context, level uint32, offset uint64) ([]byte, error) {
	if level == 0 {
		h, err := t.src.leaf(ctx, offset)
		if err != nil {
			return nil, err
		}
		if err := t.emit(level, offset, h); err != nil {
			return nil, err
		}
		return h, nil
	}

	childCount := t.geom.ChildCount(level, offset)
	children := make([][]byte, 0, childCount)
	for c := uint32(0); c < childCount; c++ {
		childHash, err := t.build(ctx, level-1, offset*uint64(t.geom.BranchFactor)+uint64(c))
		if err != nil {
			return nil, err
		}
		children = append(children, childHash)
	}

	h, err := foldInterior(t.params.Algo, children)
	if err != nil {
		return nil, err
	}
	if err := t.emit(level, offset, h); err != nil {
		return nil, err
	}
	return h, nil
}

func (t *traversal) emit(level uint32, offset uint64, hash []byte) error {
	rec := NodeRecord{
		FileIndex: t.fileIndex,
		NodeID:    NodeID{Level: level, Offset: offset},
		Range:     t.geom.NodeRange(level, offset),
		Hash:      hash,
	}
	return t.sink.Accept(rec)
}
