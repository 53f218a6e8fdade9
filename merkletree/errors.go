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

import "fmt"

// BadParamsError reports an invalid TreeParams: branch_factor < 2,
// block_length == 0, or an unknown algorithm name.
type BadParamsError struct {
	Reason string
}

func (e *BadParamsError) Error() string { return "merkletree: bad params: " + e.Reason }

// IoError wraps a failure opening, reading, or writing a file.
type IoError struct {
	Path string
	Err  error
}

func (e *IoError) Error() string { return fmt.Sprintf("merkletree: io error on %q: %v", e.Path, e.Err) }
func (e *IoError) Unwrap() error { return e.Err }

// OutputExistsError reports that the requested ledger output path exists
// and --overwrite was not given.
type OutputExistsError struct {
	Path string
}

func (e *OutputExistsError) Error() string {
	return fmt.Sprintf("merkletree: output %q already exists (use --overwrite)", e.Path)
}

// VerifyMismatchError is raised per node whose recomputed hash differs from
// the ledger's recorded expectation. It is non-fatal: verification
// continues and mismatches accumulate in the verifier's per-file
// verify.FileResult.
type VerifyMismatchError struct {
	FileIndex int
	NodeID    NodeID
	Expected  []byte
	Actual    []byte
}

func (e *VerifyMismatchError) Error() string {
	return fmt.Sprintf("merkletree: hash mismatch file=%d level=%d offset=%d expected=%x actual=%x",
		e.FileIndex, e.NodeID.Level, e.NodeID.Offset, e.Expected, e.Actual)
}

// LedgerParseError reports a malformed ledger header or record line.
type LedgerParseError struct {
	Line   int
	Reason string
}

func (e *LedgerParseError) Error() string {
	return fmt.Sprintf("merkletree: ledger parse error at line %d: %s", e.Line, e.Reason)
}

// CancelledError wraps whatever fatal error tripped the pipeline's shared
// abort signal, surfaced to any component that observed the cancellation
// rather than the original failure itself.
type CancelledError struct {
	Cause error
}

func (e *CancelledError) Error() string { return "merkletree: cancelled: " + e.Cause.Error() }
func (e *CancelledError) Unwrap() error { return e.Cause }
