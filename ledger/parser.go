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
	"bufio"
	"encoding/hex"
	"io"
	"regexp"
	"strconv"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/mtchecksum/merkle-tree-checksum/hashalgo"
	"github.com/mtchecksum/merkle-tree-checksum/merkletree"
	"github.com/mtchecksum/merkle-tree-checksum/treegeom"
)

var (
	versionLineRe = regexp.MustCompile(`^merkle_tree_checksum v(\S+)$`)
	headerKVRe    = regexp.MustCompile(`^([A-Za-z][A-Za-z ]*): (.+)$`)
	filesHeaderRe = regexp.MustCompile(`^Files:$`)
	fileEntryRe   = regexp.MustCompile(`^  ("(?:[^"\\]|\\.)*") (0x[0-9a-fA-F]+) bytes$`)
	recordLineRe  = regexp.MustCompile(`^\[(\d+)\] \[(\d+)-(\d+)\] \[(\d+)-(\d+)\] ([0-9a-fA-F]+)$`)
	shortLineRe   = regexp.MustCompile(`^([0-9a-fA-F]+)  ("(?:[^"\\]|\\.)*")$`)
)

// ShortEntry is one line of a --short ledger: a root hash and the path it
// was computed for.
type ShortEntry struct {
	Index    int
	Path     string
	RootHash []byte
}

// Document is the fully parsed content of one ledger file.
type Document struct {
	Version string
	Params  merkletree.TreeParams
	Short   bool

	Files        []merkletree.FileInfo // non-short only
	Records      []merkletree.NodeRecord
	ShortEntries []ShortEntry // short only
}

// Parse reads and validates a whole ledger in the text format written by Writer.
func Parse(r io.Reader) (*Document, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	line := 0
	readLine := func() (string, bool) {
		if !sc.Scan() {
			return "", false
		}
		line++
		return sc.Text(), true
	}

	versionLine, ok := readLine()
	if !ok {
		return nil, &merkletree.LedgerParseError{Line: 1, Reason: "empty ledger"}
	}
	m := versionLineRe.FindStringSubmatch(versionLine)
	if m == nil {
		return nil, &merkletree.LedgerParseError{Line: line, Reason: "malformed version line"}
	}
	doc := &Document{Version: m[1]}

	headers := map[string]string{}
	var pending string
	var pendingOK bool
	for {
		l, ok := readLine()
		if !ok {
			return nil, &merkletree.LedgerParseError{Line: line, Reason: "ledger ends before any records"}
		}
		if kv := headerKVRe.FindStringSubmatch(l); kv != nil {
			headers[kv[1]] = kv[2]
			continue
		}
		pending, pendingOK = l, true
		break
	}

	algoName, ok := headers["Hash function"]
	if !ok {
		return nil, &merkletree.LedgerParseError{Line: line, Reason: "missing \"Hash function\" header"}
	}
	algo, err := hashalgo.Parse(algoName)
	if err != nil {
		return nil, &merkletree.LedgerParseError{Line: line, Reason: "unknown hash function " + algoName}
	}
	blockLength, err := parseUintHeader(headers, "Block size", line)
	if err != nil {
		return nil, err
	}
	branchFactor, err := parseUintHeader(headers, "Branching factor", line)
	if err != nil {
		return nil, err
	}
	doc.Params = merkletree.TreeParams{
		Algo:         algo,
		BlockLength:  uint32(blockLength),
		BranchFactor: uint32(branchFactor),
	}

	if filesHeaderRe.MatchString(pending) {
		doc.Short = false
		return parseNonShortBody(sc, &line, doc)
	}

	doc.Short = true
	return parseShortBody(sc, &line, doc, pending, pendingOK)
}

func parseUintHeader(headers map[string]string, key string, line int) (uint64, error) {
	v, ok := headers[key]
	if !ok {
		return 0, &merkletree.LedgerParseError{Line: line, Reason: "missing \"" + key + "\" header"}
	}
	n, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		return 0, &merkletree.LedgerParseError{Line: line, Reason: "malformed \"" + key + "\" header value " + v}
	}
	return n, nil
}

func parseNonShortBody(sc *bufio.Scanner, line *int, doc *Document) (*Document, error) {
	fileIndex := 0
	var firstRecordLine string
	haveFirstRecordLine := false
	for sc.Scan() {
		*line++
		l := sc.Text()
		m := fileEntryRe.FindStringSubmatch(l)
		if m == nil {
			firstRecordLine, haveFirstRecordLine = l, true
			break
		}
		path, err := unquote(m[1])
		if err != nil {
			return nil, &merkletree.LedgerParseError{Line: *line, Reason: "malformed quoted path: " + err.Error()}
		}
		size, err := hexutil.DecodeUint64(m[2])
		if err != nil {
			return nil, &merkletree.LedgerParseError{Line: *line, Reason: "malformed file size: " + err.Error()}
		}
		doc.Files = append(doc.Files, merkletree.FileInfo{Index: fileIndex, Path: path, Size: int64(size)})
		fileIndex++
	}
	if err := sc.Err(); err != nil {
		return nil, &merkletree.IoError{Err: err}
	}

	if haveFirstRecordLine {
		if err := parseRecordLine(firstRecordLine, *line, doc); err != nil {
			return nil, err
		}
	}

	for sc.Scan() {
		*line++
		if err := parseRecordLine(sc.Text(), *line, doc); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, &merkletree.IoError{Err: err}
	}
	return doc, nil
}

func parseRecordLine(l string, line int, doc *Document) error {
	m := recordLineRe.FindStringSubmatch(l)
	if m == nil {
		return &merkletree.LedgerParseError{Line: line, Reason: "malformed record line"}
	}
	fileIndex, _ := strconv.Atoi(m[1])
	treeStart, _ := strconv.ParseUint(m[2], 10, 64)
	treeEnd, _ := strconv.ParseUint(m[3], 10, 64)
	byteStart, _ := strconv.ParseUint(m[4], 10, 64)
	byteEnd, _ := strconv.ParseUint(m[5], 10, 64)
	hashBytes, err := hex.DecodeString(m[6])
	if err != nil {
		return &merkletree.LedgerParseError{Line: line, Reason: "malformed hash hex"}
	}
	doc.Records = append(doc.Records, merkletree.NodeRecord{
		FileIndex: fileIndex,
		Range: treegeom.Range{
			TreeBlockStart: treeStart,
			TreeBlockEnd:   treeEnd,
			FileByteStart:  byteStart,
			FileByteEnd:    byteEnd,
		},
		Hash: hashBytes,
	})
	return nil
}

func parseShortBody(sc *bufio.Scanner, line *int, doc *Document, first string, firstOK bool) (*Document, error) {
	idx := 0
	process := func(l string) error {
		m := shortLineRe.FindStringSubmatch(l)
		if m == nil {
			return &merkletree.LedgerParseError{Line: *line, Reason: "malformed short summary line"}
		}
		hashBytes, err := hex.DecodeString(m[1])
		if err != nil {
			return &merkletree.LedgerParseError{Line: *line, Reason: "malformed hash hex"}
		}
		path, err := unquote(m[2])
		if err != nil {
			return &merkletree.LedgerParseError{Line: *line, Reason: "malformed quoted path: " + err.Error()}
		}
		doc.ShortEntries = append(doc.ShortEntries, ShortEntry{Index: idx, Path: path, RootHash: hashBytes})
		idx++
		return nil
	}

	if firstOK {
		if err := process(first); err != nil {
			return nil, err
		}
	}
	for sc.Scan() {
		*line++
		if err := process(sc.Text()); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, &merkletree.IoError{Err: err}
	}
	return doc, nil
}
