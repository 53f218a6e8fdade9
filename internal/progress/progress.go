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

// Package progress renders one mpb bar per file, advanced by bytes read. It
// is a pure CLI-layer observer of the pipeline's block reader: merkletree
// and verify know nothing about it.
package progress

import (
	"os"
	"path/filepath"

	"github.com/vbauerster/mpb"
	"github.com/vbauerster/mpb/decor"

	"github.com/mtchecksum/merkle-tree-checksum/merkletree"
)

// Reporter drives one progress bar per file, created lazily the first time
// that file's index is reported against.
type Reporter struct {
	p     *mpb.Progress
	sizes map[int]int64
	bars  map[int]*mpb.Bar
}

// New builds a Reporter for the given input files, whose sizes are already
// known from the orchestrator's initial stat pass.
func New(files []merkletree.FileInfo) *Reporter {
	sizes := make(map[int]int64, len(files))
	for _, fi := range files {
		sizes[fi.Index] = fi.Size
	}
	return &Reporter{
		p:     mpb.New(mpb.WithOutput(os.Stderr)),
		sizes: sizes,
		bars:  make(map[int]*mpb.Bar),
	}
}

// OnBlock matches merkletree.Orchestrator.OnBlock and verify.Verifier.OnBlock:
// it is called once per block read, across every file.
func (r *Reporter) OnBlock(fileIndex int, path string, bytesRead int) {
	bar, ok := r.bars[fileIndex]
	if !ok {
		total := r.sizes[fileIndex]
		if total <= 0 {
			total = 1
		}
		bar = r.p.AddBar(total,
			mpb.PrependDecorators(decor.Name(filepath.Base(path))),
			mpb.AppendDecorators(decor.Percentage()),
		)
		r.bars[fileIndex] = bar
	}
	bar.IncrBy(bytesRead)
}

// Wait blocks until every bar has finished rendering, to be called once the
// run's work is otherwise complete so the terminal is left in a clean state.
func (r *Reporter) Wait() {
	r.p.Wait()
}
