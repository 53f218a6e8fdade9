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

// Package verify recomputes the tree for every file named in a previously
// written ledger and reports any node whose hash no longer matches, without
// stopping at the first one: mismatches are non-fatal, so verification
// continues and every mismatch is reported.
package verify

import (
	"bytes"
	"context"
	"os"

	"github.com/ethereum/go-ethereum/log"

	"github.com/mtchecksum/merkle-tree-checksum/blockio"
	"github.com/mtchecksum/merkle-tree-checksum/ledger"
	"github.com/mtchecksum/merkle-tree-checksum/merkletree"
	"github.com/mtchecksum/merkle-tree-checksum/treegeom"
)

// FileResult is the outcome of re-verifying one file from the ledger.
type FileResult struct {
	Index      int
	Path       string
	Mismatches []merkletree.VerifyMismatchError
}

// OK reports whether this file verified cleanly.
func (r FileResult) OK() bool { return len(r.Mismatches) == 0 }

// Result aggregates every file's outcome for one verify-hash run.
type Result struct {
	Files []FileResult
}

// OK reports whether every file in the run verified cleanly; the CLI maps
// this directly to exit code 0 vs 1.
func (r Result) OK() bool {
	for _, f := range r.Files {
		if !f.OK() {
			return false
		}
	}
	return true
}

// Verifier is the per-run driver, mirroring merkletree.Orchestrator but for
// the read-and-compare direction.
type Verifier struct {
	Jobs int

	// OnBlock mirrors merkletree.Orchestrator.OnBlock, for progress display.
	OnBlock func(fileIndex int, path string, bytesRead int)
}

// Verify recomputes every file in doc and compares the result against what
// the ledger recorded.
func (v *Verifier) Verify(ctx context.Context, doc *ledger.Document) (*Result, error) {
	if doc.Short {
		return v.verifyShort(ctx, doc)
	}
	return v.verifyFull(ctx, doc)
}

func (v *Verifier) verifyFull(ctx context.Context, doc *ledger.Document) (*Result, error) {
	byFile := make(map[int][]merkletree.NodeRecord)
	for _, rec := range doc.Records {
		byFile[rec.FileIndex] = append(byFile[rec.FileIndex], rec)
	}

	result := &Result{}
	for _, fi := range doc.Files {
		log.Debug("verifying file", "index", fi.Index, "path", fi.Path)

		f, err := os.Open(fi.Path)
		if err != nil {
			return nil, &merkletree.IoError{Path: fi.Path, Err: err}
		}

		cmp := &compareSink{fileIndex: fi.Index, expected: byFile[fi.Index]}
		geom := treegeom.New(fi.Size, doc.Params.BlockLength, doc.Params.BranchFactor)
		reader := blockio.NewReader(f, int(doc.Params.BlockLength))

		var progress merkletree.ProgressFunc
		if v.OnBlock != nil {
			progress = func(n int) { v.OnBlock(fi.Index, fi.Path, n) }
		}

		if err := cmp.BeginFile(fi.Index, fi.Path, fi.Size); err != nil {
			f.Close()
			return nil, err
		}
		root, err := merkletree.RunFile(ctx, doc.Params, geom, reader, v.Jobs, fi.Index, cmp, progress)
		f.Close()
		if err != nil {
			switch err.(type) {
			case *merkletree.CancelledError, *merkletree.IoError:
				return nil, err
			default:
				return nil, &merkletree.IoError{Path: fi.Path, Err: err}
			}
		}
		if err := cmp.EndFile(root); err != nil {
			return nil, err
		}

		result.Files = append(result.Files, FileResult{Index: fi.Index, Path: fi.Path, Mismatches: cmp.mismatches})
	}
	return result, nil
}

func (v *Verifier) verifyShort(ctx context.Context, doc *ledger.Document) (*Result, error) {
	result := &Result{}
	for _, se := range doc.ShortEntries {
		log.Debug("verifying file (short ledger)", "index", se.Index, "path", se.Path)

		f, err := os.Open(se.Path)
		if err != nil {
			return nil, &merkletree.IoError{Path: se.Path, Err: err}
		}
		st, err := f.Stat()
		if err != nil {
			f.Close()
			return nil, &merkletree.IoError{Path: se.Path, Err: err}
		}

		geom := treegeom.New(st.Size(), doc.Params.BlockLength, doc.Params.BranchFactor)
		reader := blockio.NewReader(f, int(doc.Params.BlockLength))

		var progress merkletree.ProgressFunc
		if v.OnBlock != nil {
			progress = func(n int) { v.OnBlock(se.Index, se.Path, n) }
		}

		root, err := merkletree.RunFile(ctx, doc.Params, geom, reader, v.Jobs, se.Index, noopSink{}, progress)
		f.Close()
		if err != nil {
			switch err.(type) {
			case *merkletree.CancelledError, *merkletree.IoError:
				return nil, err
			default:
				return nil, &merkletree.IoError{Path: se.Path, Err: err}
			}
		}

		fr := FileResult{Index: se.Index, Path: se.Path}
		if !bytes.Equal(root, se.RootHash) {
			fr.Mismatches = append(fr.Mismatches, merkletree.VerifyMismatchError{
				FileIndex: se.Index,
				NodeID:    merkletree.NodeID{Level: geom.TopLevel(), Offset: 0},
				Expected:  se.RootHash,
				Actual:    root,
			})
		}
		result.Files = append(result.Files, fr)
	}
	return result, nil
}

// compareSink zips the canonical stream merkletree.RunFile produces against
// the expected records parsed from the ledger for the same file, in lockstep
// — both sides walk the identical canonical order, so no NodeID lookup is
// needed, only a cursor.
type compareSink struct {
	fileIndex  int
	expected   []merkletree.NodeRecord
	cursor     int
	mismatches []merkletree.VerifyMismatchError
}

func (s *compareSink) BeginFile(int, string, int64) error { return nil }

func (s *compareSink) Accept(actual merkletree.NodeRecord) error {
	if s.cursor >= len(s.expected) {
		s.mismatches = append(s.mismatches, merkletree.VerifyMismatchError{
			FileIndex: s.fileIndex,
			NodeID:    actual.NodeID,
			Expected:  nil,
			Actual:    actual.Hash,
		})
		return nil
	}
	exp := s.expected[s.cursor]
	s.cursor++
	if !bytes.Equal(exp.Hash, actual.Hash) {
		s.mismatches = append(s.mismatches, merkletree.VerifyMismatchError{
			FileIndex: s.fileIndex,
			NodeID:    actual.NodeID,
			Expected:  exp.Hash,
			Actual:    actual.Hash,
		})
	}
	return nil
}

func (s *compareSink) EndFile([]byte) error { return nil }
func (s *compareSink) Finish() error        { return nil }

type noopSink struct{}

func (noopSink) BeginFile(int, string, int64) error { return nil }
func (noopSink) Accept(merkletree.NodeRecord) error { return nil }
func (noopSink) EndFile([]byte) error               { return nil }
func (noopSink) Finish() error                      { return nil }
