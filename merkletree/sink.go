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

// Sink is the abstract consumer of a tree's node records, in canonical
// order. The orchestrator is a Sink's sole caller and serializes every call
// to it, so implementations (the ledger writer, the verifier's comparator)
// need no internal locking of their own.
type Sink interface {
	BeginFile(fileIndex int, path string, fileSize int64) error
	Accept(record NodeRecord) error
	EndFile(rootHash []byte) error
	Finish() error
}
