package main

import (
	"archive/zip"
	"context"
	"flag"
	"log"
	"path/filepath"

	"github.com/google/subcommands"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/runaxr/bartender/library"
	"github.com/runaxr/bartender/overlay"
)

type ImportCommand struct {
	LibraryPath string
	Force       bool
}

func (*ImportCommand) Name() string     { return "import" }
func (*ImportCommand) Synopsis() string { return "import mod archives into the library" }
func (*ImportCommand) Usage() string {
	return `Usage: bartender import [-mods dir] [-force] zip paths

	Copies mod archives into the mod library. Unless -force is given,
	each archive is checked to contain a content or ExtraContent
	directory at its root or one level down.

Flags:
`
}

func (cmd *ImportCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&cmd.LibraryPath, "mods", "", "mod library path")
	fs.BoolVar(&cmd.Force, "force", false, "skip archive layout check")
}

func (cmd *ImportCommand) Execute(ctx context.Context, fs *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	paths := fs.Args()
	if len(paths) <= 0 {
		log.Printf("no archives given")
		return subcommands.ExitUsageError
	}

	dir, err := resolve(cmd.LibraryPath, libraryDir)
	if err != nil {
		log.Printf("library path: %+v", err)
		return subcommands.ExitFailure
	}
	lib := library.New(osfs.New(dir))

	for _, fpath := range paths {
		if !cmd.Force {
			if err := checkArchive(fpath); err != nil {
				log.Printf("check %q: %+v", fpath, err)
				return subcommands.ExitFailure
			}
		}
		f, err := osfs.New("").Open(fpath)
		if err != nil {
			log.Printf("open %q: %+v", fpath, err)
			return subcommands.ExitFailure
		}
		name := filepath.Base(fpath)
		err = lib.Import(f, name)
		if cerr := f.Close(); cerr != nil {
			log.Printf("close %q: %+v", fpath, cerr)
		}
		if err != nil {
			log.Printf("import %q: %+v", fpath, err)
			return subcommands.ExitFailure
		}
		log.Printf("imported %s", name)
	}
	return subcommands.ExitSuccess
}

// checkArchive unpacks the archive into memory and verifies it holds
// a content subtree an install could use.
func checkArchive(fpath string) error {
	z, err := zip.OpenReader(fpath)
	if err != nil {
		return err
	}
	defer func() {
		cerr := z.Close()
		if cerr != nil {
			log.Printf("close %q: %+v", fpath, cerr)
		}
	}()
	scratch := memfs.New()
	if err := overlay.Unpack(&z.Reader, scratch); err != nil {
		return err
	}
	return overlay.CheckContentRoot(scratch)
}
