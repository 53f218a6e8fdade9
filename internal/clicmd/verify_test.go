package clicmd_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mtchecksum/merkle-tree-checksum/internal/clicmd"
)

func TestVerifyHashRoundTripSucceeds(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.bin")
	require.NoError(t, os.WriteFile(in, []byte("hello world"), 0o644))
	out := filepath.Join(dir, "out.ledger")

	runner := &clicmd.Runner{Ctx: context.Background(), QuietCount: 2}
	app := newApp(runner)

	require.NoError(t, app.Run([]string{"merkle-tree-checksum", "generate-hash", "-o", out, in}))
	err := app.Run([]string{"merkle-tree-checksum", "verify-hash", out})
	require.NoError(t, err)
	require.Equal(t, 0, clicmd.ExitCode(err))
}

func TestVerifyHashDetectsTamperedFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.bin")
	require.NoError(t, os.WriteFile(in, []byte("hello world, a somewhat longer message"), 0o644))
	out := filepath.Join(dir, "out.ledger")

	runner := &clicmd.Runner{Ctx: context.Background(), QuietCount: 2}
	app := newApp(runner)
	require.NoError(t, app.Run([]string{"merkle-tree-checksum", "generate-hash", "-o", out, in}))

	data, err := os.ReadFile(in)
	require.NoError(t, err)
	data[0] ^= 0xff
	require.NoError(t, os.WriteFile(in, data, 0o644))

	verifyErr := app.Run([]string{"merkle-tree-checksum", "verify-hash", out})
	require.Error(t, verifyErr)
	require.Equal(t, 1, clicmd.ExitCode(verifyErr))
}

func TestVerifyHashRequiresExactlyOnePath(t *testing.T) {
	runner := &clicmd.Runner{Ctx: context.Background(), QuietCount: 2}
	app := newApp(runner)

	err := app.Run([]string{"merkle-tree-checksum", "verify-hash"})
	require.Error(t, err)
	require.Equal(t, 2, clicmd.ExitCode(err))
}
