package main

import (
	"context"
	"flag"
	"log"
	"strings"

	"github.com/google/subcommands"

	"github.com/runaxr/bartender/fflags"
)

type SetFlagCommand struct {
	ConfigPath string
}

func (*SetFlagCommand) Name() string     { return "setflag" }
func (*SetFlagCommand) Synopsis() string { return "set a FastFlag" }
func (*SetFlagCommand) Usage() string {
	return `Usage: bartender setflag [-config file] name value
       bartender setflag [-config file] name=value ...

	Sets FastFlags in the Sober config file. Values are typed:
	true/false become booleans, digit strings integers, digit strings
	with a single dot floats, anything else strings.

Flags:
`
}

func (cmd *SetFlagCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&cmd.ConfigPath, "config", "", "config file path")
}

func (cmd *SetFlagCommand) Execute(ctx context.Context, fs *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	pairs, ok := flagPairs(fs.Args())
	if !ok {
		log.Printf("expected name value or name=value arguments")
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
	for name, value := range pairs {
		c.Set(name, value)
	}
	if err := c.Save(fpath); err != nil {
		log.Printf("save %q: %+v", fpath, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func flagPairs(args []string) (map[string]string, bool) {
	if len(args) <= 0 {
		return nil, false
	}
	pairs := make(map[string]string, len(args))
	// Either a single "name value" pair or any number of name=value.
	if len(args) == 2 && !strings.Contains(args[0], "=") {
		pairs[args[0]] = args[1]
		return pairs, true
	}
	for _, arg := range args {
		i := strings.Index(arg, "=")
		if i <= 0 {
			return nil, false
		}
		pairs[arg[:i]] = arg[i+1:]
	}
	return pairs, true
}
