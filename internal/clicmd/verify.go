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
	"os"

	"github.com/ethereum/go-ethereum/log"
	"gopkg.in/urfave/cli.v1"

	"github.com/mtchecksum/merkle-tree-checksum/internal/progress"
	"github.com/mtchecksum/merkle-tree-checksum/ledger"
	"github.com/mtchecksum/merkle-tree-checksum/merkletree"
	"github.com/mtchecksum/merkle-tree-checksum/verify"
)

// VerifyHash implements the verify-hash subcommand: it takes exactly one
// positional argument, the ledger to check.
func (r *Runner) VerifyHash(c *cli.Context) error {
	args := []string(c.Args())
	if len(args) != 1 {
		return &merkletree.BadParamsError{Reason: "verify-hash requires exactly one ledger path argument"}
	}
	ledgerPath := args[0]

	f, err := os.Open(ledgerPath)
	if err != nil {
		return &merkletree.IoError{Path: ledgerPath, Err: err}
	}
	doc, err := ledger.Parse(f)
	f.Close()
	if err != nil {
		return err
	}

	v := &verify.Verifier{Jobs: c.GlobalInt(jobsFlagName)}
	if r.QuietCount <= 0 && !doc.Short {
		// A short ledger never records per-file sizes (only the root hash),
		// so there is nothing to size a bar's total against; the verifier
		// re-stats each file itself in that mode instead.
		reporter := progress.New(doc.Files)
		v.OnBlock = reporter.OnBlock
		defer reporter.Wait()
	}

	result, err := v.Verify(r.Ctx, doc)
	if err != nil {
		return err
	}

	for _, fr := range result.Files {
		if fr.OK() {
			continue
		}
		for _, m := range fr.Mismatches {
			log.Error("hash mismatch", "file", fr.Path, "level", m.NodeID.Level, "offset", m.NodeID.Offset)
		}
	}

	if !result.OK() {
		return &VerifyFailedError{Result: result}
	}
	log.Info("verification succeeded", "files", len(result.Files))
	return nil
}
