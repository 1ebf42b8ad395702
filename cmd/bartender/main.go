package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/google/subcommands"
)

const (
	programName     = "bartender"
	defaultManifest = "mods.pack"
)

func init() {
	log.SetFlags(0)
}

func main() {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.Bool("h", false, "alias for help")
	fs.Bool("help", false, "print usage")

	cdr := subcommands.NewCommander(fs, programName)
	cdr.Register(&ImportCommand{}, "mods")
	cdr.Register(&ListCommand{}, "mods")
	cdr.Register(&InstallCommand{}, "mods")
	cdr.Register(&UninstallCommand{}, "mods")
	cdr.Register(&CleanCommand{}, "mods")
	cdr.Register(&VerifyCommand{}, "mods")
	cdr.Register(&SumsCommand{}, "manifest")
	cdr.Register(&FormatCommand{}, "manifest")
	cdr.Register(&FlagsCommand{}, "fflags")
	cdr.Register(&SetFlagCommand{}, "fflags")
	cdr.Register(&UnsetFlagCommand{}, "fflags")
	cdr.Register(&ImportFlagsCommand{}, "fflags")
	cdr.Register(&ExportFlagsCommand{}, "fflags")
	cdr.Register(cdr.HelpCommand(), "help")
	cdr.Register(cdr.CommandsCommand(), "help")

	if err := fs.Parse(os.Args[1:]); err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	switch cdr.Execute(ctx) {
	case subcommands.ExitFailure:
		os.Exit(1)
	case subcommands.ExitUsageError:
		os.Exit(2)
	}
}
