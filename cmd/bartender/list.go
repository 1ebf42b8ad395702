package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/google/subcommands"

	"github.com/go-git/go-billy/v5/osfs"

	"github.com/runaxr/bartender/library"
	"github.com/runaxr/bartender/state"
)

type ListCommand struct {
	LibraryPath  string
	DisableState bool
}

func (*ListCommand) Name() string     { return "list" }
func (*ListCommand) Synopsis() string { return "list mod archives in the library" }
func (*ListCommand) Usage() string {
	return `Usage: bartender list [-mods dir] [-nostate]

	Lists mod archives in the library. Archives with an install
	record are marked as installed.

Flags:
`
}

func (cmd *ListCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&cmd.LibraryPath, "mods", "", "mod library path")
	fs.BoolVar(&cmd.DisableState, "nostate", false, "skip install records")
}

func (cmd *ListCommand) Execute(ctx context.Context, fs *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	dir, err := resolve(cmd.LibraryPath, libraryDir)
	if err != nil {
		log.Printf("library path: %+v", err)
		return subcommands.ExitFailure
	}
	lib := library.New(osfs.New(dir))

	names, err := lib.List()
	if err != nil {
		log.Printf("list %q: %+v", dir, err)
		return subcommands.ExitFailure
	}

	db, err := openState(cmd.DisableState)
	if err != nil {
		log.Printf("open state: %+v", err)
		return subcommands.ExitFailure
	}
	defer closeState(db)

	for _, name := range names {
		_, installed, err := db.Paths(name)
		if err != nil {
			log.Printf("state %q: %+v", name, err)
			return subcommands.ExitFailure
		}
		if installed {
			fmt.Printf("%s\t(installed)\n", name)
		} else {
			fmt.Println(name)
		}
	}
	return subcommands.ExitSuccess
}

func openState(disable bool) (*state.DB, error) {
	if disable {
		return state.OpenMem()
	}
	dir, err := makeStateDir(programName)
	if err != nil {
		return nil, err
	}
	return state.Open(dir)
}

func closeState(db *state.DB) {
	if err := db.Close(); err != nil {
		log.Printf("close state: %+v", err)
	}
}
