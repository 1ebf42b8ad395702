package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/google/subcommands"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/runaxr/bartender/library"
	"github.com/runaxr/bartender/overlay"
	"github.com/runaxr/bartender/pack"
)

type InstallCommand struct {
	LibraryPath  string
	OverlayPath  string
	ManifestPath string
	DisableState bool
}

func (*InstallCommand) Name() string     { return "install" }
func (*InstallCommand) Synopsis() string { return "install mods into the asset overlay" }
func (*InstallCommand) Usage() string {
	return `Usage: bartender install [-mods dir] [-overlay dir] [-manifest mods.pack] [-nostate] mod names

	Installs library archives into the asset overlay. The content and
	ExtraContent directories of each archive replace the overlay
	directories of the same name wholesale. When the library carries a
	checksum manifest, archives are verified against it first. Use the
	"sums" subcommand to generate the manifest.

Flags:
`
}

func (cmd *InstallCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&cmd.LibraryPath, "mods", "", "mod library path")
	fs.StringVar(&cmd.OverlayPath, "overlay", "", "asset overlay path")
	fs.StringVar(&cmd.ManifestPath, "manifest", "", "checksum manifest path")
	fs.BoolVar(&cmd.DisableState, "nostate", false, "skip install records")
}

func (cmd *InstallCommand) Execute(ctx context.Context, fs *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	names := fs.Args()
	if len(names) <= 0 {
		log.Printf("no mods given")
		return subcommands.ExitUsageError
	}

	libDir, err := resolve(cmd.LibraryPath, libraryDir)
	if err != nil {
		log.Printf("library path: %+v", err)
		return subcommands.ExitFailure
	}
	ovlDir, err := resolve(cmd.OverlayPath, overlayDir)
	if err != nil {
		log.Printf("overlay path: %+v", err)
		return subcommands.ExitFailure
	}
	if err := os.MkdirAll(ovlDir, 0755); err != nil {
		log.Printf("make overlay %q: %+v", ovlDir, err)
		return subcommands.ExitFailure
	}

	lib := library.New(osfs.New(libDir))
	sums, ok := manifestSums(cmd.ManifestPath, libDir)
	if !ok {
		return subcommands.ExitFailure
	}

	db, err := openState(cmd.DisableState)
	if err != nil {
		log.Printf("open state: %+v", err)
		return subcommands.ExitFailure
	}
	defer closeState(db)

	for _, name := range names {
		if err := lib.VerifySums(name, sums[name]); err != nil {
			log.Printf("verify %q: %+v", name, err)
			return subcommands.ExitFailure
		}
		paths, err := installMod(lib, ovlDir, name)
		if err != nil {
			log.Printf("install %q: %+v", name, err)
			return subcommands.ExitFailure
		}
		if err := db.Record(name, paths); err != nil {
			log.Printf("record %q: %+v", name, err)
			return subcommands.ExitFailure
		}
		log.Printf("installed %s (%d files)", name, len(paths))
	}
	return subcommands.ExitSuccess
}

func installMod(lib *library.Library, ovlDir, name string) ([]string, error) {
	f, size, err := lib.Open(name)
	if err != nil {
		return nil, err
	}
	defer func() {
		cerr := f.Close()
		if cerr != nil {
			log.Printf("close %q: %+v", name, cerr)
		}
	}()
	ins := overlay.Installer{
		Scratch: memfs.New(),
		Overlay: osfs.New(ovlDir),
	}
	return ins.Install(f, size)
}

// manifestSums loads expected checksums by archive name. A missing
// default manifest is not an error; installs then run unverified.
func manifestSums(fpath, libDir string) (map[string][]string, bool) {
	if fpath == "" {
		fpath = filepath.Join(libDir, defaultManifest)
		if _, err := os.Stat(fpath); err != nil {
			return nil, true
		}
	}
	ms, ok := parseManifests([]string{fpath})
	if !ok {
		return nil, false
	}
	sums := make(map[string][]string)
	for _, mod := range pack.ModList(ms) {
		if len(mod.Sums) > 0 {
			sums[mod.Name] = mod.Sums
		}
	}
	return sums, true
}
