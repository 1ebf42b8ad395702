package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/google/subcommands"

	"github.com/runaxr/bartender/fflags"
)

type FlagsCommand struct {
	ConfigPath string
	Query      string
}

func (*FlagsCommand) Name() string     { return "flags" }
func (*FlagsCommand) Synopsis() string { return "list FastFlags" }
func (*FlagsCommand) Usage() string {
	return `Usage: bartender flags [-config file] [-q substring]

	Lists the FastFlags of the Sober config file, sorted by name.
	With -q only flags whose name contains the substring are shown
	(case-insensitive).

Flags:
`
}

func (cmd *FlagsCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&cmd.ConfigPath, "config", "", "config file path")
	fs.StringVar(&cmd.Query, "q", "", "filter flag names by substring")
}

func (cmd *FlagsCommand) Execute(ctx context.Context, fs *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
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
	for _, name := range c.Names(cmd.Query) {
		v, _ := c.Get(name)
		fmt.Printf("%s = %s\n", name, fflags.FormatValue(v))
	}
	return subcommands.ExitSuccess
}
