package main

import (
	"context"
	"flag"
	"log"

	"github.com/google/subcommands"

	"github.com/runaxr/bartender/fflags"
)

type ImportFlagsCommand struct {
	ConfigPath string
}

func (*ImportFlagsCommand) Name() string     { return "importflags" }
func (*ImportFlagsCommand) Synopsis() string { return "merge FastFlags from a JSON file" }
func (*ImportFlagsCommand) Usage() string {
	return `Usage: bartender importflags [-config file] json path

	Merges a flat JSON object of FastFlags into the Sober config
	file. Imported values replace existing ones of the same name.

Flags:
`
}

func (cmd *ImportFlagsCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&cmd.ConfigPath, "config", "", "config file path")
}

func (cmd *ImportFlagsCommand) Execute(ctx context.Context, fs *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	args2 := fs.Args()
	if len(args2) != 1 {
		log.Printf("expected one JSON file path")
		return subcommands.ExitUsageError
	}

	flags, err := fflags.ImportFile(args2[0])
	if err != nil {
		log.Printf("import %q: %+v", args2[0], err)
		return subcommands.ExitFailure
	}

	fpath, err := resolve(cmd.ConfigPath, configPath)
	if err != nil {
		log.Printf("config path: %+v", err)
		return subcommands.ExitFailure
	}
	c, err := fflags.Load(fpath)
	if err != nil {
		log.Printf("load %q: %+v", fpath, err)
		return subcommands.ExitFailure
	}
	c.Merge(flags)
	if err := c.Save(fpath); err != nil {
		log.Printf("save %q: %+v", fpath, err)
		return subcommands.ExitFailure
	}
	log.Printf("imported %d flags", len(flags))
	return subcommands.ExitSuccess
}
