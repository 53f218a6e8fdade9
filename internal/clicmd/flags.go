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

// Package clicmd holds the gopkg.in/urfave/cli.v1 command bodies for
// generate-hash and verify-hash, kept as plain functions over *cli.Context
// so they are testable without a subprocess.
package clicmd

import (
	"gopkg.in/urfave/cli.v1"
)

// DefaultJobs is the global --jobs default.
const DefaultJobs = 4

// Flag primary names, used to read values back out of a *cli.Context.
// cli.v1's Name field packs every alias into one comma-separated string
// (e.g. "jobs, j"); c.Int/c.String/c.Bool want just the primary name.
const (
	jobsFlagName         = "jobs"
	hashFunctionFlagName = "hash-function"
	branchFactorFlagName = "branch-factor"
	blockLengthFlagName  = "block-length"
	outputFlagName       = "output"
	overwriteFlagName    = "overwrite"
	shortFlagName        = "short"
)

var JobsFlag = cli.IntFlag{
	Name:  jobsFlagName + ", j",
	Value: DefaultJobs,
	Usage: "number of parallel hashing workers (0 = inline, no worker pool)",
}

// QuietFlag documents --quiet/-q for --help. Its repeat count is not read
// from this flag's own value (gopkg.in/urfave/cli.v1 treats a BoolFlag as
// present-or-absent); main.go's countQuiet scans argv directly instead.
var QuietFlag = cli.BoolFlag{
	Name:  "quiet, q",
	Usage: "decrease verbosity; repeatable (once hides progress, twice suppresses all non-error output)",
}

var HashFunctionFlag = cli.StringFlag{
	Name:  hashFunctionFlagName + ", f",
	Value: "sha256",
	Usage: "digest algorithm; valid: crc32, sha224, sha256, sha384, sha512, sha512_224, sha512_256, sha3_224, sha3_256, sha3_384, sha3_512, blake2b512, blake2s256, blake3",
}

var BranchFactorFlag = cli.IntFlag{
	Name:  branchFactorFlagName + ", b",
	Value: 4,
	Usage: "number of children per interior node (>= 2)",
}

var BlockLengthFlag = cli.IntFlag{
	Name:  blockLengthFlagName + ", l",
	Value: 4096,
	Usage: "leaf block size in bytes (>= 1)",
}

var OutputFlag = cli.StringFlag{
	Name:  outputFlagName + ", o",
	Usage: "ledger output path (required)",
}

var OverwriteFlag = cli.BoolFlag{
	Name:  overwriteFlagName,
	Usage: "overwrite the output path if it already exists",
}

var ShortFlag = cli.BoolFlag{
	Name:  shortFlagName + ", s",
	Usage: "emit only one summary line per file instead of the full node ledger",
}
