package overlay

import (
	"archive/zip"
	"errors"
	"io"
	"log"
	"os"
	"path"
	"sort"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

var ErrNoContent = errors.New("archive contains no content directories")

// ContentDirs are the overlay subtrees consumed by the game client.
// The mixed casing is deliberate: asset references are case-insensitive
// but the client resolves these two names literally.
var ContentDirs = []string{"content", "ExtraContent"}

// Installer unpacks mod archives into a scratch filesystem and copies
// their content subtrees into the overlay directory.
type Installer struct {
	Scratch billy.Filesystem
	Overlay billy.Filesystem
}

// Install installs a mod archive of the given size. Each content
// directory found in the archive replaces the overlay directory of the
// same name wholesale. It returns the overlay-relative paths of all
// installed files.
func (ins *Installer) Install(f billy.File, size int64) ([]string, error) {
	z, err := zip.NewReader(f, size)
	if err != nil {
		return nil, err
	}
	if err := Unpack(z, ins.Scratch); err != nil {
		return nil, err
	}
	root, err := findContentRoot(ins.Scratch)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, name := range ContentDirs {
		src := path.Join(root, name)
		if _, err := ins.Scratch.Stat(src); err != nil {
			continue
		}
		if err := util.RemoveAll(ins.Overlay, name); err != nil {
			return nil, err
		}
		pp, err := copyTree(ins.Scratch, src, ins.Overlay, name)
		if err != nil {
			return nil, err
		}
		paths = append(paths, pp...)
	}
	if len(paths) <= 0 {
		return nil, ErrNoContent
	}
	return paths, nil
}

// Unpack extracts all archive files into the filesystem.
func Unpack(z *zip.Reader, fs billy.Filesystem) error {
	for _, f := range z.File {
		// If last char in file name is slash, then the file is
		// an empty directory entry. Those never matter for an
		// overlay, so we skip them.
		l := len(f.Name)
		if l > 0 && f.Name[l-1] == '/' {
			continue
		}
		name := path.Clean(f.Name)
		if name == ".." || len(name) > 2 && name[:3] == "../" {
			continue
		}
		if err := unpackFile(f, fs, name); err != nil {
			return err
		}
	}
	return nil
}

func unpackFile(f *zip.File, fs billy.Filesystem, name string) (err error) {
	r, err := f.Open()
	if err != nil {
		return err
	}
	defer func() {
		cerr := r.Close()
		if cerr != nil {
			log.Printf("close %q: %+v", f.Name, cerr)
		}
	}()
	if dir := path.Dir(name); dir != "." {
		if err := fs.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	w, err := fs.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		cerr := w.Close()
		if err == nil {
			err = cerr
		}
	}()
	_, err = io.Copy(w, r)
	return err
}

// CheckContentRoot reports whether an unpacked archive holds a content
// subtree an install could use.
func CheckContentRoot(fs billy.Filesystem) error {
	_, err := findContentRoot(fs)
	return err
}

// findContentRoot locates the directory holding the content subtrees:
// the archive root first, then each immediate child directory.
func findContentRoot(fs billy.Filesystem) (string, error) {
	if hasContentDir(fs, ".") {
		return ".", nil
	}
	fis, err := fs.ReadDir(".")
	if err != nil {
		return "", err
	}
	for _, fi := range fis {
		if !fi.IsDir() {
			continue
		}
		if hasContentDir(fs, fi.Name()) {
			return fi.Name(), nil
		}
	}
	return "", ErrNoContent
}

func hasContentDir(fs billy.Filesystem, dir string) bool {
	for _, name := range ContentDirs {
		if _, err := fs.Stat(path.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

func copyTree(src billy.Filesystem, sdir string, dst billy.Filesystem, ddir string) ([]string, error) {
	fis, err := src.ReadDir(sdir)
	if err != nil {
		return nil, err
	}
	if err := dst.MkdirAll(ddir, 0755); err != nil {
		return nil, err
	}
	var paths []string
	for _, fi := range fis {
		spath := path.Join(sdir, fi.Name())
		dpath := path.Join(ddir, fi.Name())
		if fi.IsDir() {
			pp, err := copyTree(src, spath, dst, dpath)
			if err != nil {
				return nil, err
			}
			paths = append(paths, pp...)
			continue
		}
		if err := copyFile(src, spath, dst, dpath); err != nil {
			return nil, err
		}
		paths = append(paths, dpath)
	}
	return paths, nil
}

func copyFile(src billy.Filesystem, spath string, dst billy.Filesystem, dpath string) (err error) {
	r, err := src.Open(spath)
	if err != nil {
		return err
	}
	defer func() {
		cerr := r.Close()
		if cerr != nil {
			log.Printf("close %q: %+v", spath, cerr)
		}
	}()
	w, err := dst.Create(dpath)
	if err != nil {
		return err
	}
	defer func() {
		cerr := w.Close()
		if err == nil {
			err = cerr
		}
	}()
	_, err = io.Copy(w, r)
	return err
}

// Remove deletes the given overlay-relative files and prunes any
// directories the removals left empty.
func Remove(fs billy.Filesystem, paths []string) error {
	dirs := make(map[string]struct{})
	for _, p := range paths {
		p = path.Clean(p)
		if err := fs.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		for dir := path.Dir(p); dir != "." && dir != "/"; dir = path.Dir(dir) {
			dirs[dir] = struct{}{}
		}
	}
	// Deepest directories first so empty chains collapse.
	dd := make([]string, 0, len(dirs))
	for dir := range dirs {
		dd = append(dd, dir)
	}
	sort.Slice(dd, func(i, j int) bool { return len(dd[i]) > len(dd[j]) })
	for _, dir := range dd {
		fis, err := fs.ReadDir(dir)
		if err != nil || len(fis) > 0 {
			continue
		}
		if err := fs.Remove(dir); err != nil {
			log.Printf("prune %q: %+v", dir, err)
		}
	}
	return nil
}

// Clean removes every directory under the overlay root.
func Clean(fs billy.Filesystem) error {
	fis, err := fs.ReadDir(".")
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	for _, fi := range fis {
		if !fi.IsDir() {
			continue
		}
		if err := util.RemoveAll(fs, fi.Name()); err != nil {
			return err
		}
	}
	return nil
}
