package main

import (
	"context"
	"flag"
	"log"

	"github.com/google/subcommands"

	"github.com/go-git/go-billy/v5/osfs"

	"github.com/runaxr/bartender/overlay"
)

type CleanCommand struct {
	OverlayPath string
}

func (*CleanCommand) Name() string     { return "clean" }
func (*CleanCommand) Synopsis() string { return "remove all installed mods" }
func (*CleanCommand) Usage() string {
	return `Usage: bartender clean [-overlay dir]

	Removes every directory under the asset overlay and drops all
	install records.

Flags:
`
}

func (cmd *CleanCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&cmd.OverlayPath, "overlay", "", "asset overlay path")
}

func (cmd *CleanCommand) Execute(ctx context.Context, fs *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	ovlDir, err := resolve(cmd.OverlayPath, overlayDir)
	if err != nil {
		log.Printf("overlay path: %+v", err)
		return subcommands.ExitFailure
	}
	if err := overlay.Clean(osfs.New(ovlDir)); err != nil {
		log.Printf("clean %q: %+v", ovlDir, err)
		return subcommands.ExitFailure
	}

	db, err := openState(false)
	if err != nil {
		log.Printf("open state: %+v", err)
		return subcommands.ExitFailure
	}
	defer closeState(db)
	if err := db.Reset(); err != nil {
		log.Printf("reset state: %+v", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
