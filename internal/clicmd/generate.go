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

import (
	"context"

	"github.com/ethereum/go-ethereum/log"
	"gopkg.in/urfave/cli.v1"

	"github.com/mtchecksum/merkle-tree-checksum/hashalgo"
	"github.com/mtchecksum/merkle-tree-checksum/internal/progress"
	"github.com/mtchecksum/merkle-tree-checksum/ledger"
	"github.com/mtchecksum/merkle-tree-checksum/merkletree"
)

// Runner carries the state resolved once at process start-up into the
// command bodies below: a cancellable Context tied to the process's signal
// handling, and --quiet's repeat count, which gopkg.in/urfave/cli.v1's flag
// model cannot count on its own.
type Runner struct {
	Ctx context.Context

	// QuietCount is the number of times --quiet/-q was given. It gates the
	// progress bar; logsetup.Init is configured from the same count before
	// the app runs.
	QuietCount int
}

// GenerateHash implements the generate-hash subcommand.
func (r *Runner) GenerateHash(c *cli.Context) error {
	files := []string(c.Args())
	if len(files) == 0 {
		return &merkletree.BadParamsError{Reason: "generate-hash requires at least one FILE argument"}
	}
	output := c.String(outputFlagName)
	if output == "" {
		return &merkletree.BadParamsError{Reason: "--output is required"}
	}

	algo, err := hashalgo.Parse(c.String(hashFunctionFlagName))
	if err != nil {
		return &merkletree.BadParamsError{Reason: err.Error()}
	}
	params := merkletree.TreeParams{
		Algo:         algo,
		BlockLength:  uint32(c.Int(blockLengthFlagName)),
		BranchFactor: uint32(c.Int(branchFactorFlagName)),
	}
	if err := params.Validate(); err != nil {
		return &merkletree.BadParamsError{Reason: err.Error()}
	}

	w, err := ledger.NewWriter(output, c.Bool(overwriteFlagName), params, c.Bool(shortFlagName))
	if err != nil {
		return err
	}

	orch := &merkletree.Orchestrator{Params: params, Jobs: c.GlobalInt(jobsFlagName)}

	var reporter *progress.Reporter
	if r.QuietCount <= 0 {
		infos, statErr := merkletree.StatFiles(files)
		if statErr != nil {
			w.Abort()
			return statErr
		}
		reporter = progress.New(infos)
		orch.OnBlock = reporter.OnBlock
	}

	if err := orch.Generate(r.Ctx, files, w); err != nil {
		w.Abort()
		return err
	}
	if reporter != nil {
		reporter.Wait()
	}

	log.Info("ledger written", "path", output, "files", len(files))
	return nil
}
