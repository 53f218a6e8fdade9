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

package ledger

import (
	"errors"

	"github.com/mtchecksum/merkle-tree-checksum/merkletree"
)

var (
	errNotQuoted         = errors.New("ledger: value is not a quoted string")
	errTrailingBackslash = errors.New("ledger: trailing backslash in quoted string")
	errUnknownEscape     = errors.New("ledger: unknown escape sequence")
)

// ParseError is merkletree.LedgerParseError under the name this package's
// own callers expect. There is one LedgerParseError kind, not one per
// package, so this is a type alias rather than a second definition.
type ParseError = merkletree.LedgerParseError
