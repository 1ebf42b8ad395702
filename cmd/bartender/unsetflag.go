package main

import (
	"context"
	"flag"
	"log"

	"github.com/google/subcommands"

	"github.com/runaxr/bartender/fflags"
)

type UnsetFlagCommand struct {
	ConfigPath string
}

func (*UnsetFlagCommand) Name() string     { return "unsetflag" }
func (*UnsetFlagCommand) Synopsis() string { return "remove FastFlags" }
func (*UnsetFlagCommand) Usage() string {
	return `Usage: bartender unsetflag [-config file] name ...

	Removes FastFlags from the Sober config file. Names without an
	entry are reported and skipped.

Flags:
`
}

func (cmd *UnsetFlagCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&cmd.ConfigPath, "config", "", "config file path")
}

func (cmd *UnsetFlagCommand) Execute(ctx context.Context, fs *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	names := fs.Args()
	if len(names) <= 0 {
		log.Printf("no flag names given")
		return subcommands.ExitUsageError
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
	for _, name := range names {
		if !c.Unset(name) {
			log.Printf("no flag %q", name)
		}
	}
	if err := c.Save(fpath); err != nil {
		log.Printf("save %q: %+v", fpath, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
