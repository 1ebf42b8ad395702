package state

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})
	return db
}

func TestRecordAndPaths(t *testing.T) {
	db := openTestDB(t)

	paths := []string{"content/textures/sky.png", "ExtraContent/init.lua"}
	require.NoError(t, db.Record("SoundPack.zip", paths))

	got, ok, err := db.Paths("SoundPack.zip")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, paths, got)

	_, ok, err = db.Paths("Other.zip")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRecordReplaces(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.Record("Mod.zip", []string{"content/a.png"}))
	require.NoError(t, db.Record("Mod.zip", []string{"content/b.png"}))

	got, ok, err := db.Paths("Mod.zip")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []string{"content/b.png"}, got)
}

func TestForget(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.Record("Mod.zip", []string{"content/a.png"}))
	require.NoError(t, db.Forget("Mod.zip"))

	_, ok, err := db.Paths("Mod.zip")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMods(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.Record("b.zip", nil))
	require.NoError(t, db.Record("a.zip", nil))

	mods, err := db.Mods()
	require.NoError(t, err)
	require.Equal(t, []string{"a.zip", "b.zip"}, mods)
}

func TestReset(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.Record("a.zip", nil))
	require.NoError(t, db.Record("b.zip", nil))
	require.NoError(t, db.Reset())

	mods, err := db.Mods()
	require.NoError(t, err)
	require.Empty(t, mods)
}

func TestOpenMem(t *testing.T) {
	db, err := OpenMem()
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Record("a.zip", []string{"content/x"}))
	got, ok, err := db.Paths("a.zip")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []string{"content/x"}, got)
}
