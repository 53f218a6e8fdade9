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
	"os"

	"github.com/ethereum/go-ethereum/log"

	"github.com/mtchecksum/merkle-tree-checksum/blockio"
	"github.com/mtchecksum/merkle-tree-checksum/treegeom"
)

// FileInfo is one input file's position and size, known after the
// orchestrator's initial stat pass and before any content is read.
type FileInfo struct {
	Index int
	Path  string
	Size  int64
}

// FileListSink is implemented by sinks that need the whole input file list
// up front, before any NodeRecord streams in — the ledger writer's header
// and "Files:" block require this; the verifier's comparator does not, so
// it deliberately does not implement this interface.
type FileListSink interface {
	Sink
	Files(files []FileInfo) error
}

// Orchestrator is the per-run driver: it stats and opens each input file in
// order, drives the pipeline, and streams records into a Sink, surfacing the
// first fatal error it sees.
type Orchestrator struct {
	Params TreeParams
	Jobs   int

	// OnBlock, if set, is invoked once per block read across every file,
	// purely for the CLI's progress display.
	OnBlock func(fileIndex int, path string, bytesRead int)
}

// StatFiles resolves every path's size up front, in input order, assigning
// file_index by position starting at 0.
func StatFiles(paths []string) ([]FileInfo, error) {
	infos := make([]FileInfo, len(paths))
	for i, p := range paths {
		st, err := os.Stat(p)
		if err != nil {
			return nil, &IoError{Path: p, Err: err}
		}
		if st.IsDir() {
			return nil, &BadParamsError{Reason: "input path \"" + p + "\" is a directory, not a file"}
		}
		infos[i] = FileInfo{Index: i, Path: p, Size: st.Size()}
	}
	return infos, nil
}

// Generate runs generate-hash end to end: it stats every file, hands the
// list to sink if it wants one, then processes files sequentially (no
// cross-file parallelism in this version), draining each one's pipeline into
// sink before moving to the next.
func (o *Orchestrator) Generate(ctx context.Context, paths []string, sink Sink) error {
	if err := o.Params.Validate(); err != nil {
		return &BadParamsError{Reason: err.Error()}
	}

	files, err := StatFiles(paths)
	if err != nil {
		return err
	}

	if fl, ok := sink.(FileListSink); ok {
		if err := fl.Files(files); err != nil {
			return err
		}
	}

	for _, fi := range files {
		if err := o.processFile(ctx, fi, sink); err != nil {
			return err
		}
	}
	return sink.Finish()
}

func (o *Orchestrator) processFile(ctx context.Context, fi FileInfo, sink Sink) error {
	log.Debug("hashing file", "index", fi.Index, "path", fi.Path, "size", fi.Size)

	f, err := os.Open(fi.Path)
	if err != nil {
		return &IoError{Path: fi.Path, Err: err}
	}
	defer f.Close()

	if err := sink.BeginFile(fi.Index, fi.Path, fi.Size); err != nil {
		return err
	}

	geom := treegeom.New(fi.Size, o.Params.BlockLength, o.Params.BranchFactor)
	reader := blockio.NewReader(f, int(o.Params.BlockLength))

	var progress ProgressFunc
	if o.OnBlock != nil {
		progress = func(n int) { o.OnBlock(fi.Index, fi.Path, n) }
	}

	root, err := RunFile(ctx, o.Params, geom, reader, o.Jobs, fi.Index, sink, progress)
	if err != nil {
		switch err.(type) {
		case *CancelledError, *IoError:
			return err
		default:
			return &IoError{Path: fi.Path, Err: err}
		}
	}

	log.Debug("file hashed", "index", fi.Index, "path", fi.Path, "root", log.Lazy{Fn: func() string { return hexString(root) }})

	return sink.EndFile(root)
}
