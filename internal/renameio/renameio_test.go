package renameio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	fpath := filepath.Join(dir, "config.json")

	require.NoError(t, WriteFile(fpath, []byte("{}"), 0644))

	data, err := os.ReadFile(fpath)
	require.NoError(t, err)
	require.Equal(t, "{}", string(data))

	fi, err := os.Stat(fpath)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0644), fi.Mode().Perm())
}

func TestWriteFileOverwrites(t *testing.T) {
	dir := t.TempDir()
	fpath := filepath.Join(dir, "mods.pack")

	require.NoError(t, os.WriteFile(fpath, []byte("old"), 0644))
	require.NoError(t, WriteFile(fpath, []byte("new"), 0644))

	data, err := os.ReadFile(fpath)
	require.NoError(t, err)
	require.Equal(t, "new", string(data))
}

func TestWriteFileLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	fpath := filepath.Join(dir, "out.txt")

	require.NoError(t, WriteFile(fpath, []byte("x"), 0644))

	fis, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, fis, 1)
	require.False(t, strings.Contains(fis[0].Name(), ".tmp"))
}

func TestWriteFileMissingDir(t *testing.T) {
	fpath := filepath.Join(t.TempDir(), "nope", "out.txt")
	require.Error(t, WriteFile(fpath, []byte("x"), 0644))
}
