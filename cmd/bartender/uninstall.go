package main

import (
	"context"
	"flag"
	"log"

	"github.com/google/subcommands"

	"github.com/go-git/go-billy/v5/osfs"

	"github.com/runaxr/bartender/overlay"
)

type UninstallCommand struct {
	OverlayPath  string
	DisableState bool
}

func (*UninstallCommand) Name() string     { return "uninstall" }
func (*UninstallCommand) Synopsis() string { return "remove installed mods from the overlay" }
func (*UninstallCommand) Usage() string {
	return `Usage: bartender uninstall [-overlay dir] mod names

	Removes the overlay files recorded for each installed mod and
	prunes directories left empty. Mods installed with -nostate have
	no record and can only be removed with the "clean" subcommand.

Flags:
`
}

func (cmd *UninstallCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&cmd.OverlayPath, "overlay", "", "asset overlay path")
}

func (cmd *UninstallCommand) Execute(ctx context.Context, fs *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	names := fs.Args()
	if len(names) <= 0 {
		log.Printf("no mods given")
		return subcommands.ExitUsageError
	}

	ovlDir, err := resolve(cmd.OverlayPath, overlayDir)
	if err != nil {
		log.Printf("overlay path: %+v", err)
		return subcommands.ExitFailure
	}
	ovl := osfs.New(ovlDir)

	db, err := openState(false)
	if err != nil {
		log.Printf("open state: %+v", err)
		return subcommands.ExitFailure
	}
	defer closeState(db)

	for _, name := range names {
		paths, ok, err := db.Paths(name)
		if err != nil {
			log.Printf("state %q: %+v", name, err)
			return subcommands.ExitFailure
		}
		if !ok {
			log.Printf("no install record for %q", name)
			return subcommands.ExitFailure
		}
		if err := overlay.Remove(ovl, paths); err != nil {
			log.Printf("uninstall %q: %+v", name, err)
			return subcommands.ExitFailure
		}
		if err := db.Forget(name); err != nil {
			log.Printf("forget %q: %+v", name, err)
			return subcommands.ExitFailure
		}
		log.Printf("uninstalled %s (%d files)", name, len(paths))
	}
	return subcommands.ExitSuccess
}
