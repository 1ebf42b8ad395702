package library

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"errors"
	"fmt"
	"hash"
	"io"
	"log"
	"os"
	"sort"
	"strings"

	"golang.org/x/crypto/sha3"

	"github.com/go-git/go-billy/v5"
)

var (
	ErrSumsMismatch = errors.New("checksum mismatch")
	ErrNotArchive   = errors.New("not a zip archive")
)

// Library is the user-level directory of imported mod archives.
type Library struct {
	Files billy.Filesystem
}

func New(files billy.Filesystem) *Library {
	return &Library{Files: files}
}

// List returns the archive names in the library, sorted.
func (l *Library) List() ([]string, error) {
	fis, err := l.Files.ReadDir(".")
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var names []string
	for _, fi := range fis {
		if fi.IsDir() {
			continue
		}
		name := fi.Name()
		if !strings.HasSuffix(name, ".zip") {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Import copies an archive into the library under the given name.
func (l *Library) Import(r io.Reader, name string) (err error) {
	if !strings.HasSuffix(name, ".zip") {
		return ErrNotArchive
	}
	if err := l.Files.MkdirAll(".", 0755); err != nil {
		return err
	}
	flags := os.O_WRONLY | os.O_TRUNC | os.O_CREATE
	f, err := l.Files.OpenFile(name, flags, 0644)
	if err != nil {
		return err
	}
	defer func() {
		cerr := f.Close()
		if err == nil {
			err = cerr
		}
	}()
	_, err = io.Copy(f, r)
	return err
}

// Open opens an archive for reading and reports its size.
func (l *Library) Open(name string) (billy.File, int64, error) {
	fi, err := l.Files.Stat(name)
	if err != nil {
		return nil, 0, err
	}
	f, err := l.Files.Open(name)
	if err != nil {
		return nil, 0, err
	}
	return f, fi.Size(), nil
}

func (l *Library) Remove(name string) error {
	return l.Files.Remove(name)
}

// Sums computes the checksum chain of an archive.
func (l *Library) Sums(name string) ([]string, error) {
	hashNames := []string{
		"md5",
		"sha1",
		"sha256",
		"keccak256",
	}
	hashes := []hash.Hash{
		md5.New(),
		sha1.New(),
		sha256.New(),
		sha3.New256(),
	}
	f, err := l.Files.Open(name)
	if err != nil {
		return nil, err
	}
	defer func() {
		cerr := f.Close()
		if cerr != nil {
			log.Printf("close %q: %+v", name, cerr)
		}
	}()
	ww := make([]io.Writer, len(hashes))
	for i, h := range hashes {
		ww[i] = h
	}
	w := io.MultiWriter(ww...)
	if _, err := io.Copy(w, f); err != nil {
		return nil, err
	}
	sums := make([]string, len(hashes))
	for i, name := range hashNames {
		sums[i] = fmt.Sprintf("%s:%x", name, hashes[i].Sum(nil))
	}
	return sums, nil
}

// VerifySums checks that every expected sum is present in the archive's
// checksum chain. An empty expectation always passes.
func (l *Library) VerifySums(name string, sums []string) error {
	if len(sums) <= 0 {
		return nil
	}
	have, err := l.Sums(name)
	if err != nil {
		return err
	}
	haveMap := make(map[string]struct{}, len(have))
	for _, sum := range have {
		haveMap[sum] = struct{}{}
	}
	for _, sum := range sums {
		if _, ok := haveMap[sum]; ok {
			continue
		}
		return ErrSumsMismatch
	}
	return nil
}
