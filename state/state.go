// Package state records which overlay files each installed mod owns.
package state

import (
	"encoding/json"
	"sort"

	"github.com/akrylysov/pogreb"
	"github.com/akrylysov/pogreb/fs"
)

// DB is a pogreb-backed map of mod archive name to the
// overlay-relative files it installed.
type DB struct {
	db *pogreb.DB
}

// Open opens the install record database at path.
func Open(path string) (*DB, error) {
	db, err := pogreb.Open(path, nil)
	if err != nil {
		return nil, err
	}
	return &DB{db: db}, nil
}

// OpenMem opens a throwaway in-memory database for runs that should
// leave no record.
func OpenMem() (*DB, error) {
	// BUG pogreb.Open always calls os.MkdirAll
	db, err := pogreb.Open(".", &pogreb.Options{
		FileSystem: fs.Mem,
	})
	if err != nil {
		return nil, err
	}
	return &DB{db: db}, nil
}

func (s *DB) Close() error {
	return s.db.Close()
}

// Record stores the installed paths for a mod, replacing any previous
// record.
func (s *DB) Record(mod string, paths []string) error {
	data, err := json.Marshal(paths)
	if err != nil {
		return err
	}
	return s.db.Put([]byte(mod), data)
}

// Paths returns the recorded paths for a mod. A mod without a record
// reports ok false.
func (s *DB) Paths(mod string) (paths []string, ok bool, err error) {
	data, err := s.db.Get([]byte(mod))
	if err != nil {
		return nil, false, err
	}
	if data == nil {
		return nil, false, nil
	}
	if err := json.Unmarshal(data, &paths); err != nil {
		return nil, false, err
	}
	return paths, true, nil
}

// Forget drops the record for a mod.
func (s *DB) Forget(mod string) error {
	return s.db.Delete([]byte(mod))
}

// Mods returns the recorded mod names, sorted.
func (s *DB) Mods() ([]string, error) {
	var mods []string
	it := s.db.Items()
	for {
		key, _, err := it.Next()
		if err == pogreb.ErrIterationDone {
			break
		}
		if err != nil {
			return nil, err
		}
		mods = append(mods, string(key))
	}
	sort.Strings(mods)
	return mods, nil
}

// Reset drops every record.
func (s *DB) Reset() error {
	mods, err := s.Mods()
	if err != nil {
		return err
	}
	for _, mod := range mods {
		if err := s.db.Delete([]byte(mod)); err != nil {
			return err
		}
	}
	return nil
}
