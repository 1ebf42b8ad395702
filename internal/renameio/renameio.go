// Package renameio writes files atomically by renaming temporary
// files.
package renameio

import (
	"os"
	"path/filepath"
)

// WriteFile writes data to a temporary file in the same directory and
// renames it over filename, so readers never observe a partial write.
func WriteFile(filename string, data []byte, perm os.FileMode) (err error) {
	f, err := os.CreateTemp(filepath.Dir(filename), filepath.Base(filename)+".tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			if rerr := os.Remove(tmp); rerr != nil && !os.IsNotExist(rerr) {
				err = rerr
			}
		}
	}()
	if err := f.Chmod(perm); err != nil {
		f.Close()
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, filename)
}
