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

// Package blockio presents a file as a lazy, strictly sequential sequence of
// fixed-size blocks. It never seeks, so it remains usable against pipe-like
// inputs even though the CLI surface only ever points it at regular files.
package blockio

import (
	"errors"
	"io"
)

// Block is a (index, bytes) pair read from a source. Only the final Block of
// a stream may be shorter than the configured block length; an empty source
// still yields exactly one Block with an empty Data slice.
type Block struct {
	Index uint64
	Data  []byte
}

// Reader reads fixed-size Blocks from r in ascending index order, one read
// at a time. It is not safe for concurrent use; the pipeline's single
// reader goroutine owns it exclusively.
type Reader struct {
	r           io.Reader
	blockLength int
	next        uint64
	emitted     bool
	eof         bool
}

// NewReader wraps r, reading blockLength-sized blocks. blockLength must be
// at least 1.
func NewReader(r io.Reader, blockLength int) *Reader {
	return &Reader{r: r, blockLength: blockLength}
}

// Next returns the next Block in the stream. ok is false once the stream is
// exhausted; every exhausted stream, including one backed by an empty file,
// has returned at least one Block with ok == true beforehand.
func (rd *Reader) Next() (blk Block, ok bool, err error) {
	if rd.eof {
		return Block{}, false, nil
	}

	buf := make([]byte, rd.blockLength)
	n, readErr := io.ReadFull(rd.r, buf)
	switch {
	case readErr == nil:
		// Full block; more may follow.
	case errors.Is(readErr, io.EOF):
		// Nothing was read and nothing has been emitted yet: this is an
		// empty source, which still yields one empty Block.
		rd.eof = true
		if rd.emitted {
			return Block{}, false, nil
		}
	case errors.Is(readErr, io.ErrUnexpectedEOF):
		// A short final block.
		rd.eof = true
	default:
		return Block{}, false, readErr
	}

	blk = Block{Index: rd.next, Data: buf[:n]}
	rd.next++
	rd.emitted = true
	return blk, true, nil
}
