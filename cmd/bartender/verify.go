package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/google/subcommands"

	"github.com/go-git/go-billy/v5/osfs"

	"github.com/runaxr/bartender/casefix"
	"github.com/runaxr/bartender/overlay"
)

type VerifyCommand struct {
	AssetsPath   string
	OverlayPath  string
	SnapshotPath string
	SavePath     string
}

func (*VerifyCommand) Name() string     { return "verify" }
func (*VerifyCommand) Synopsis() string { return "fix overlay filename casing" }
func (*VerifyCommand) Usage() string {
	return `Usage: bartender verify [-assets dir] [-overlay dir] [-load snapshot] [-save snapshot]

	Walks the overlay content and ExtraContent trees in lock-step with
	the base game tree and renames entries whose casing differs from
	the base. Rename failures are reported and skipped. With -load the
	reference structure is read from a snapshot file instead of
	scanning the base tree; -save writes the scanned structure for
	later runs.

Flags:
`
}

func (cmd *VerifyCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&cmd.AssetsPath, "assets", "", "base game assets path")
	fs.StringVar(&cmd.OverlayPath, "overlay", "", "asset overlay path")
	fs.StringVar(&cmd.SnapshotPath, "load", "", "read reference structure from snapshot")
	fs.StringVar(&cmd.SavePath, "save", "", "write reference structure snapshot")
}

func (cmd *VerifyCommand) Execute(ctx context.Context, fs *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	assets, err := resolve(cmd.AssetsPath, assetsDir)
	if err != nil {
		log.Printf("assets path: %+v", err)
		return subcommands.ExitFailure
	}
	ovlDir, err := resolve(cmd.OverlayPath, overlayDir)
	if err != nil {
		log.Printf("overlay path: %+v", err)
		return subcommands.ExitFailure
	}

	if cmd.SnapshotPath == "" && !baseExists(assets) {
		log.Printf("could not find base game files in %q; make sure Sober is installed and has downloaded the game files", assets)
		return subcommands.ExitFailure
	}

	ovl := osfs.New(ovlDir)
	changes := 0
	for _, name := range overlay.ContentDirs {
		if _, err := os.Stat(filepath.Join(ovlDir, name)); err != nil {
			continue
		}
		ref, ok := cmd.reference(assets, name)
		if !ok {
			continue
		}
		if cmd.SavePath != "" {
			spath := snapshotPath(cmd.SavePath, name)
			if err := casefix.WriteSnapshot(spath, ref); err != nil {
				log.Printf("save snapshot %q: %+v", spath, err)
				return subcommands.ExitFailure
			}
		}
		log.Printf("checking %s", name)
		cc := casefix.Fix(ovl, name, ref, log.Printf)
		changes += len(cc)
	}

	if changes == 0 {
		log.Printf("no case issues found")
	} else {
		log.Printf("found and fixed %d case issues", changes)
	}
	return subcommands.ExitSuccess
}

// reference yields the reference tree for one content directory,
// either from a snapshot or by scanning the base game tree.
func (cmd *VerifyCommand) reference(assets, name string) (casefix.Tree, bool) {
	if cmd.SnapshotPath != "" {
		spath := snapshotPath(cmd.SnapshotPath, name)
		ref, err := casefix.ReadSnapshot(spath)
		if err != nil {
			log.Printf("load snapshot %q: %+v", spath, err)
			return nil, false
		}
		return ref, true
	}
	base := filepath.Join(assets, name)
	if _, err := os.Stat(base); err != nil {
		return nil, false
	}
	return casefix.Scan(osfs.New(base), ".", log.Printf), true
}

func baseExists(assets string) bool {
	for _, name := range overlay.ContentDirs {
		if _, err := os.Stat(filepath.Join(assets, name)); err == nil {
			return true
		}
	}
	return false
}

// snapshotPath derives a per-tree snapshot file name, so one -save
// prefix covers both content trees.
func snapshotPath(prefix, name string) string {
	return prefix + "." + name + ".json"
}
