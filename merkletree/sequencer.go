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
	"fmt"

	"github.com/mtchecksum/merkle-tree-checksum/blockio"
	"github.com/mtchecksum/merkle-tree-checksum/hashalgo"
)

// leafSource supplies the leaf hash for a given leaf index, blocking until
// it is available. The canonical post-order traversal in traversal.go always
// requests indices in strictly increasing order, so both implementations
// below only ever need to satisfy "the next" index.
type leafSource interface {
	leaf(ctx context.Context, index uint64) ([]byte, error)
}

// inlineSource runs the reader and the hash computation on the calling
// goroutine: the degenerate jobs=0 mode, required to produce byte-identical
// output to every concurrent jobs value.
type inlineSource struct {
	algo     hashalgo.Algorithm
	reader   *blockio.Reader
	next     uint64
	lastSize int
}

func (s *inlineSource) leaf(ctx context.Context, index uint64) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &CancelledError{Cause: err}
	}
	if index != s.next {
		return nil, fmt.Errorf("merkletree: internal error: inline source asked for leaf %d out of order (next=%d)", index, s.next)
	}
	blk, ok, err := s.reader.Next()
	if err != nil {
		return nil, &IoError{Err: err}
	}
	if !ok {
		return nil, fmt.Errorf("merkletree: internal error: leaf %d requested past end of stream", index)
	}
	s.next++
	s.lastSize = len(blk.Data)
	return leafHash(s.algo, blk.Data)
}

// leafResult is what a hashing worker delivers for one leaf.
type leafResult struct {
	index uint64
	hash  []byte
}

// sequencedSource is a small reorder buffer keyed by leaf index: workers may
// complete leaves out of order, so results that arrive before they're needed
// are held in pending until the traversal catches up to them. pending has no
// size cap of its own: while the traversal waits for one leaf, every later
// leaf that arrives on leafCh is moved into it. Workers block on a full
// leafCh only while the traversal is not waiting on a leaf (for example,
// while it is handing records to the sink).
type sequencedSource struct {
	leafCh  <-chan leafResult
	pending map[uint64][]byte
}

func newSequencedSource(leafCh <-chan leafResult) *sequencedSource {
	return &sequencedSource{leafCh: leafCh, pending: make(map[uint64][]byte)}
}

func (s *sequencedSource) leaf(ctx context.Context, index uint64) ([]byte, error) {
	if h, ok := s.pending[index]; ok {
		delete(s.pending, index)
		return h, nil
	}
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case res, ok := <-s.leafCh:
			if !ok {
				// The producers exited (an error already set the shared
				// abort signal) before delivering the leaf we need; the
				// real cause is reported by the worker group itself.
				return nil, fmt.Errorf("merkletree: leaf channel closed before leaf %d was produced", index)
			}
			if res.index == index {
				return res.hash, nil
			}
			s.pending[res.index] = res.hash
		}
	}
}
