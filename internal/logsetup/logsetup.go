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

// Package logsetup wires the CLI's --quiet count to the verbosity of
// github.com/ethereum/go-ethereum/log's root logger.
package logsetup

import (
	"io"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// Init configures the root logger for stderr output. quietCount is the
// number of times --quiet was given on the command line:
//
//	0 -> info and above (progress is also shown, driven separately)
//	1 -> warnings and errors only
//	2+ -> errors only
func Init(quietCount int) {
	lvl := levelFor(quietCount)

	var out io.Writer = os.Stderr
	useColor := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	if useColor {
		out = colorable.NewColorableStderr()
	}

	handler := log.LvlFilterHandler(lvl, log.StreamHandler(out, log.TerminalFormat(useColor)))
	log.Root().SetHandler(handler)
}

func levelFor(quietCount int) log.Lvl {
	switch {
	case quietCount <= 0:
		return log.LvlInfo
	case quietCount == 1:
		return log.LvlWarn
	default:
		return log.LvlError
	}
}

// ProgressEnabled reports whether generate-hash/verify-hash should drive a
// progress bar: only when --quiet was not given at all.
func ProgressEnabled(quietCount int) bool {
	return quietCount <= 0
}
