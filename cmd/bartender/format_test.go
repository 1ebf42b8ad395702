package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/subcommands"
	"github.com/stretchr/testify/require"
)

func TestFormatManifestOverwrite(t *testing.T) {
	fpath := filepath.Join(t.TempDir(), "mods.pack")
	src := "mod \"x\" {\nfile=\"x.zip\"\n}\n"
	require.NoError(t, os.WriteFile(fpath, []byte(src), 0644))

	cmd := &FormatCommand{
		DisableCheck: true,
		Overwrite:    true,
		ContextSize:  3,
	}
	s := cmd.formatManifest(context.Background(), fpath, nil, nil, false)
	require.Equal(t, subcommands.ExitSuccess, s)

	out, err := os.ReadFile(fpath)
	require.NoError(t, err)
	require.Contains(t, string(out), `file = "x.zip"`)
}

func TestFormatManifestMissing(t *testing.T) {
	fpath := filepath.Join(t.TempDir(), "nope.pack")
	cmd := &FormatCommand{DisableCheck: true, Overwrite: true}
	s := cmd.formatManifest(context.Background(), fpath, nil, nil, false)
	require.Equal(t, subcommands.ExitFailure, s)
}
