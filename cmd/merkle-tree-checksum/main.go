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

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"gopkg.in/urfave/cli.v1"

	"github.com/mtchecksum/merkle-tree-checksum/internal/clicmd"
	"github.com/mtchecksum/merkle-tree-checksum/internal/logsetup"
	"github.com/mtchecksum/merkle-tree-checksum/ledger"
)

// buildVersion is the program's own release identifier, distinct from
// ledger.FormatVersion, the ledger text format's {semver}.
const buildVersion = "0.1.0"

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	quietCount := countQuiet(args)
	logsetup.Init(quietCount)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	runner := &clicmd.Runner{Ctx: ctx, QuietCount: quietCount}

	app := cli.NewApp()
	app.Name = "merkle-tree-checksum"
	app.Usage = "compute and verify block-oriented Merkle tree checksums of files"
	app.Version = buildVersion
	app.Flags = []cli.Flag{
		clicmd.JobsFlag,
		clicmd.QuietFlag,
	}
	cli.VersionPrinter = func(c *cli.Context) {
		fmt.Printf("%s version %s (ledger format %s)\n", c.App.Name, c.App.Version, ledger.FormatVersion)
	}

	app.Commands = []cli.Command{
		{
			Name:  "generate-hash",
			Usage: "hash one or more files into a new ledger",
			Flags: []cli.Flag{
				clicmd.HashFunctionFlag,
				clicmd.BranchFactorFlag,
				clicmd.BlockLengthFlag,
				clicmd.OutputFlag,
				clicmd.OverwriteFlag,
				clicmd.ShortFlag,
			},
			Action: runner.GenerateHash,
		},
		{
			Name:   "verify-hash",
			Usage:  "re-hash the files named in a ledger and report mismatches",
			Action: runner.VerifyHash,
		},
	}

	if err := app.Run(args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return clicmd.ExitCode(err)
	}
	return 0
}

// countQuiet counts repeated -q/--quiet occurrences. gopkg.in/urfave/cli.v1
// models a BoolFlag as present-or-absent, not a repeat count, so "once hides
// progress, twice suppresses all non-error output" is resolved by scanning
// argv directly, before cli.App.Run ever parses it.
func countQuiet(args []string) int {
	n := 0
	for _, a := range args {
		switch a {
		case "-q", "--quiet":
			n++
		case "-qq":
			n += 2
		}
	}
	return n
}
