// Package casefix reconciles filename casing between an installed
// overlay and the base game tree. The game resolves asset references
// case-insensitively while the filesystem does not, so an overlay file
// whose casing differs from the base tree is silently ignored by the
// client.
package casefix

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"
)

// Tree is a directory structure. A nil subtree marks a file.
type Tree map[string]Tree

// Logf receives progress messages during a scan or fix.
// A nil Logf discards them.
type Logf func(format string, args ...interface{})

func (logf Logf) printf(format string, args ...interface{}) {
	if logf != nil {
		logf(format, args...)
	}
}

// Scan reads the directory into a Tree. Unreadable directories are
// logged and skipped.
func Scan(fs billy.Filesystem, dir string, logf Logf) Tree {
	t := Tree{}
	fis, err := fs.ReadDir(dir)
	if err != nil {
		logf.printf("scan %q: %+v", dir, err)
		return t
	}
	for _, fi := range fis {
		if fi.IsDir() {
			t[fi.Name()] = Scan(fs, path.Join(dir, fi.Name()), logf)
		} else {
			t[fi.Name()] = nil
		}
	}
	return t
}

// Fix walks the target directory in lock-step with the reference tree
// and renames case-insensitive matches to the reference's exact
// casing. Failures are recorded and skipped, never retried. It returns
// the change log, one entry per rename or rename failure.
func Fix(fs billy.Filesystem, dir string, ref Tree, logf Logf) []string {
	var changes []string
	fixDir(fs, dir, ".", ref, logf, &changes)
	return changes
}

func fixDir(fs billy.Filesystem, base, rel string, ref Tree, logf Logf, changes *[]string) {
	dir := path.Join(base, rel)
	fis, err := fs.ReadDir(dir)
	if err != nil {
		logf.printf("list %q: %+v", rel, err)
		return
	}
	isDir := make(map[string]bool, len(fis))
	actual := make(map[string]string, len(fis))
	for _, fi := range fis {
		isDir[fi.Name()] = fi.IsDir()
		actual[strings.ToLower(fi.Name())] = fi.Name()
	}

	names := make([]string, 0, len(ref))
	for name := range ref {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		match, ok := actual[strings.ToLower(name)]
		if !ok {
			continue
		}
		current := match
		if match != name {
			oldpath := path.Join(dir, match)
			newpath := path.Join(dir, name)
			if err := fs.Rename(oldpath, newpath); err != nil {
				msg := fmt.Sprintf("failed to rename %s: %v", path.Join(rel, match), err)
				*changes = append(*changes, msg)
				logf.printf("%s", msg)
			} else {
				msg := fmt.Sprintf("renamed %s -> %s", path.Join(rel, match), path.Join(rel, name))
				*changes = append(*changes, msg)
				logf.printf("%s", msg)
				current = name
			}
		}
		if sub := ref[name]; sub != nil && isDir[match] {
			fixDir(fs, base, path.Join(rel, current), sub, logf, changes)
		}
	}
}
