package overlay

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/require"
)

func buildZip(t *testing.T, names ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, name := range names {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(name))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func archiveFile(t *testing.T, data []byte) (billy.File, int64) {
	t.Helper()
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "mod.zip", data, 0644))
	f, err := fs.Open("mod.zip")
	require.NoError(t, err)
	return f, int64(len(data))
}

func readFile(t *testing.T, fs billy.Filesystem, name string) string {
	t.Helper()
	f, err := fs.Open(name)
	require.NoError(t, err)
	defer f.Close()
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	return string(data)
}

func TestInstallRootLayout(t *testing.T) {
	data := buildZip(t,
		"content/textures/sky.png",
		"ExtraContent/luapackages/init.lua",
		"readme.txt",
	)
	f, size := archiveFile(t, data)

	ovl := memfs.New()
	ins := Installer{Scratch: memfs.New(), Overlay: ovl}
	paths, err := ins.Install(f, size)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{
		"content/textures/sky.png",
		"ExtraContent/luapackages/init.lua",
	}, paths)

	require.Equal(t, "content/textures/sky.png", readFile(t, ovl, "content/textures/sky.png"))

	// Stray files outside the content trees stay out of the overlay.
	_, err = ovl.Stat("readme.txt")
	require.Error(t, err)
}

func TestInstallNestedLayout(t *testing.T) {
	data := buildZip(t,
		"MyMod/content/sounds/hit.ogg",
		"MyMod/info.txt",
	)
	f, size := archiveFile(t, data)

	ovl := memfs.New()
	ins := Installer{Scratch: memfs.New(), Overlay: ovl}
	paths, err := ins.Install(f, size)
	require.NoError(t, err)
	require.Equal(t, []string{"content/sounds/hit.ogg"}, paths)
}

func TestInstallNoContent(t *testing.T) {
	data := buildZip(t, "docs/readme.txt")
	f, size := archiveFile(t, data)

	ins := Installer{Scratch: memfs.New(), Overlay: memfs.New()}
	_, err := ins.Install(f, size)
	require.ErrorIs(t, err, ErrNoContent)
}

func TestInstallReplacesSubtree(t *testing.T) {
	ovl := memfs.New()
	require.NoError(t, util.WriteFile(ovl, "content/old/stale.png", []byte("x"), 0644))
	require.NoError(t, util.WriteFile(ovl, "ExtraContent/keep.txt", []byte("x"), 0644))

	data := buildZip(t, "content/new.png")
	f, size := archiveFile(t, data)

	ins := Installer{Scratch: memfs.New(), Overlay: ovl}
	_, err := ins.Install(f, size)
	require.NoError(t, err)

	// The content tree is replaced wholesale.
	_, err = ovl.Stat("content/old/stale.png")
	require.Error(t, err)
	// The archive has no ExtraContent, so that tree is untouched.
	_, err = ovl.Stat("ExtraContent/keep.txt")
	require.NoError(t, err)
}

func TestUnpackSkipsDirEntries(t *testing.T) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	_, err := w.Create("content/")
	require.NoError(t, err)
	f, err := w.Create("content/a.txt")
	require.NoError(t, err)
	_, err = f.Write([]byte("a"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	z, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	fs := memfs.New()
	require.NoError(t, Unpack(z, fs))
	_, err = fs.Stat("content/a.txt")
	require.NoError(t, err)
}

func TestRemovePrunesEmptyDirs(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "content/sounds/hit.ogg", []byte("x"), 0644))
	require.NoError(t, util.WriteFile(fs, "content/sounds/own.ogg", []byte("x"), 0644))

	err := Remove(fs, []string{"content/sounds/hit.ogg"})
	require.NoError(t, err)

	// A sibling file keeps the directory alive.
	_, err = fs.Stat("content/sounds/own.ogg")
	require.NoError(t, err)

	err = Remove(fs, []string{"content/sounds/own.ogg"})
	require.NoError(t, err)
	fis, err := fs.ReadDir(".")
	require.NoError(t, err)
	require.Empty(t, fis)
}

func TestRemoveMissingFile(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, Remove(fs, []string{"content/gone.png"}))
}

func TestClean(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "content/a.png", []byte("x"), 0644))
	require.NoError(t, util.WriteFile(fs, "ExtraContent/b.lua", []byte("x"), 0644))
	require.NoError(t, util.WriteFile(fs, "notes.txt", []byte("x"), 0644))

	require.NoError(t, Clean(fs))

	_, err := fs.Stat("content")
	require.Error(t, err)
	_, err = fs.Stat("ExtraContent")
	require.Error(t, err)
	// Loose files at the overlay root are left alone.
	_, err = fs.Stat("notes.txt")
	require.NoError(t, err)
}
