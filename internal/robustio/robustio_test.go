package robustio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadFile(t *testing.T) {
	fpath := filepath.Join(t.TempDir(), "f.txt")
	require.NoError(t, os.WriteFile(fpath, []byte("data"), 0644))

	data, err := ReadFile(fpath)
	require.NoError(t, err)
	require.Equal(t, "data", string(data))
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.txt"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
