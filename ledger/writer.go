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

package ledger

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/mtchecksum/merkle-tree-checksum/merkletree"
)

// FormatVersion is the current ledger format's {semver}, written as the
// first header line. Parse records whatever version a ledger carries in
// Document.Version; it does not compare it against FormatVersion.
const FormatVersion = "1.0.0"

// Writer renders the node records of one generate-hash run into the ledger's
// text format. It implements merkletree.FileListSink: the Orchestrator calls
// Files once, up front, with every input file's size already known, before
// any file's content has been read.
type Writer struct {
	path   string
	file   *os.File
	out    *bufio.Writer
	params merkletree.TreeParams
	short  bool

	curPath string
	aborted bool
}

// NewWriter creates (or truncates, if overwrite is set) the ledger at path.
func NewWriter(path string, overwrite bool, params merkletree.TreeParams, short bool) (*Writer, error) {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return nil, &merkletree.OutputExistsError{Path: path}
		} else if !os.IsNotExist(err) {
			return nil, &merkletree.IoError{Path: path, Err: err}
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, &merkletree.IoError{Path: path, Err: err}
	}

	w := &Writer{
		path:   path,
		file:   f,
		out:    bufio.NewWriter(f),
		params: params,
		short:  short,
	}
	return w, nil
}

// Files writes the header and, in non-short mode, the "Files:" block. It
// must be called exactly once, before BeginFile.
func (w *Writer) Files(files []merkletree.FileInfo) error {
	if _, err := fmt.Fprintf(w.out, "merkle_tree_checksum v%s\n", FormatVersion); err != nil {
		return w.ioErr(err)
	}
	if _, err := fmt.Fprintf(w.out, "Hash function: %s\n", w.params.Algo); err != nil {
		return w.ioErr(err)
	}
	if _, err := fmt.Fprintf(w.out, "Block size: %d\n", w.params.BlockLength); err != nil {
		return w.ioErr(err)
	}
	if _, err := fmt.Fprintf(w.out, "Branching factor: %d\n", w.params.BranchFactor); err != nil {
		return w.ioErr(err)
	}

	if w.short {
		return nil
	}

	if _, err := fmt.Fprintln(w.out, "Files:"); err != nil {
		return w.ioErr(err)
	}
	for _, fi := range files {
		if _, err := fmt.Fprintf(w.out, "  %s %s bytes\n", quote(fi.Path), hexutil.EncodeUint64(uint64(fi.Size))); err != nil {
			return w.ioErr(err)
		}
	}
	return nil
}

// BeginFile implements merkletree.Sink.
func (w *Writer) BeginFile(fileIndex int, path string, fileSize int64) error {
	w.curPath = path
	return nil
}

// Accept implements merkletree.Sink. In short mode records are not printed;
// only the final root hash (delivered to EndFile) is.
func (w *Writer) Accept(rec merkletree.NodeRecord) error {
	if w.short {
		return nil
	}
	_, err := fmt.Fprintf(w.out, "[%d] [%d-%d] [%d-%d] %s\n",
		rec.FileIndex,
		rec.Range.TreeBlockStart, rec.Range.TreeBlockEnd,
		rec.Range.FileByteStart, rec.Range.FileByteEnd,
		hex.EncodeToString(rec.Hash))
	if err != nil {
		return w.ioErr(err)
	}
	return nil
}

// EndFile implements merkletree.Sink.
func (w *Writer) EndFile(rootHash []byte) error {
	if !w.short {
		return nil
	}
	if _, err := fmt.Fprintf(w.out, "%s  %s\n", hex.EncodeToString(rootHash), quote(w.curPath)); err != nil {
		return w.ioErr(err)
	}
	return nil
}

// Finish flushes and closes the ledger file.
func (w *Writer) Finish() error {
	if err := w.out.Flush(); err != nil {
		return &merkletree.IoError{Path: w.path, Err: err}
	}
	if err := w.file.Close(); err != nil {
		return &merkletree.IoError{Path: w.path, Err: err}
	}
	return nil
}

// Abort discards whatever partial ledger has been written so far: a run
// cancelled mid-write must never leave a truncated ledger behind for a
// caller to mistake for a complete one.
func (w *Writer) Abort() {
	if w.aborted {
		return
	}
	w.aborted = true
	w.file.Close()
	os.Remove(w.path)
}

func (w *Writer) ioErr(err error) error {
	return &merkletree.IoError{Path: w.path, Err: err}
}
