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

import "github.com/mtchecksum/merkle-tree-checksum/hashalgo"

// leafHash computes H(0x00 || blockBytes). Every worker constructs its own
// hash.Hash via hashalgo.New, so no hasher is ever touched by more than one
// goroutine.
func leafHash(algo hashalgo.Algorithm, data []byte) ([]byte, error) {
	h, err := hashalgo.New(algo)
	if err != nil {
		return nil, err
	}
	h.Write([]byte{leafTag})
	h.Write(data)
	return h.Sum(nil), nil
}

// foldInterior computes H(0x01 || child_0 || ... || child_{m-1}). m may be 1:
// a lone child at the tail of an incomplete group is still wrapped in an
// interior hash rather than promoted, since eliding it would silently change
// every downstream ledger's bytes.
func foldInterior(algo hashalgo.Algorithm, children [][]byte) ([]byte, error) {
	h, err := hashalgo.New(algo)
	if err != nil {
		return nil, err
	}
	h.Write([]byte{interiorTag})
	for _, c := range children {
		h.Write(c)
	}
	return h.Sum(nil), nil
}
