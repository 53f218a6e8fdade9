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

package clicmd

import "github.com/mtchecksum/merkle-tree-checksum/verify"

// VerifyFailedError is returned by VerifyHash instead of a bare nil/error
// distinction when the run completed without a fatal error but found one or
// more hash mismatches; it carries the full Result so callers that want the
// detail (tests, alternate front ends) do not need to re-run verification.
type VerifyFailedError struct {
	Result *verify.Result
}

func (e *VerifyFailedError) Error() string {
	return "verify-hash: one or more files failed verification"
}

// ExitCode maps an error returned by GenerateHash or VerifyHash to the
// program's exit code: 0 success, 1 hash mismatch, 2 I/O or usage error.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	default:
		if _, ok := err.(*VerifyFailedError); ok {
			return 1
		}
		return 2
	}
}
