package clicmd_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mtchecksum/merkle-tree-checksum/internal/clicmd"
	"github.com/mtchecksum/merkle-tree-checksum/merkletree"
	"github.com/mtchecksum/merkle-tree-checksum/verify"
)

func TestExitCodeMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, 0},
		{"bad params", &merkletree.BadParamsError{Reason: "x"}, 2},
		{"output exists", &merkletree.OutputExistsError{Path: "x"}, 2},
		{"io error", &merkletree.IoError{Path: "x"}, 2},
		{"ledger parse error", &merkletree.LedgerParseError{Line: 1, Reason: "x"}, 2},
		{"cancelled", &merkletree.CancelledError{Cause: &merkletree.IoError{}}, 2},
		{"verify failed", &clicmd.VerifyFailedError{Result: &verify.Result{}}, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, clicmd.ExitCode(tc.err))
		})
	}
}
