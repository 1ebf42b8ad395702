package main

import (
	"context"
	"flag"
	"log"

	"github.com/google/subcommands"

	"github.com/runaxr/bartender/fflags"
)

type ExportFlagsCommand struct {
	ConfigPath string
	OutputPath string
}

func (*ExportFlagsCommand) Name() string     { return "exportflags" }
func (*ExportFlagsCommand) Synopsis() string { return "write FastFlags to a JSON file" }
func (*ExportFlagsCommand) Usage() string {
	return `Usage: bartender exportflags [-config file] [-o fflags_export.json]

	Writes the FastFlags map of the Sober config file to a standalone
	JSON file.

Flags:
`
}

func (cmd *ExportFlagsCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&cmd.ConfigPath, "config", "", "config file path")
	fs.StringVar(&cmd.OutputPath, "o", "fflags_export.json", "export output path")
}

func (cmd *ExportFlagsCommand) Execute(ctx context.Context, fs *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
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
	if err := c.Export(cmd.OutputPath); err != nil {
		log.Printf("export %q: %+v", cmd.OutputPath, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
