package main

import (
	"context"
	"flag"
	"log"
	"path/filepath"

	"github.com/google/subcommands"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/go-git/go-billy/v5/osfs"

	"github.com/runaxr/bartender/internal/renameio"

	"github.com/runaxr/bartender/library"
)

type SumsCommand struct {
	LibraryPath string
	OutputPath  string
}

func (*SumsCommand) Name() string     { return "sums" }
func (*SumsCommand) Synopsis() string { return "generate checksum manifest" }
func (*SumsCommand) Usage() string {
	return `Usage: bartender sums [-mods dir] [-o mods.pack]

	Generates the checksum manifest for every archive in the mod
	library. The manifest contains a "mod" block and a "check" block
	per archive; the install subcommand verifies archives against it.

Flags:
`
}

func (cmd *SumsCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&cmd.LibraryPath, "mods", "", "mod library path")
	fs.StringVar(&cmd.OutputPath, "o", "", "manifest output path (default mods.pack in the library)")
}

func (cmd *SumsCommand) Execute(ctx context.Context, fs *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
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

	sumsFile := hclwrite.NewEmptyFile()
	sb := SumsBuilder{
		Body: sumsFile.Body(),
	}

	for _, name := range names {
		sums, err := lib.Sums(name)
		if err != nil {
			log.Printf("sum %q: %+v", name, err)
			return subcommands.ExitFailure
		}
		if len(sums) <= 0 {
			continue
		}
		sb.Add(name, sums)
	}

	fpath := cmd.OutputPath
	if fpath == "" {
		fpath = filepath.Join(dir, defaultManifest)
	}
	outSrc := sumsFile.Bytes()
	if err := renameio.WriteFile(fpath, outSrc, 0644); err != nil {
		log.Printf("write file %q: %+v", fpath, err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}

type SumsBuilder struct {
	*hclwrite.Body
	Length int
}

func (b *SumsBuilder) Add(name string, sums []string) {
	if b.Length > 0 {
		b.AppendNewline()
	}
	b.Length++

	b.AppendNewBlock("mod", []string{name})

	block := b.AppendNewBlock("check", nil)
	body := block.Body()

	body.SetAttributeValue("name", cty.StringVal(name))

	vals := make([]cty.Value, len(sums))
	for i, sum := range sums {
		vals[i] = cty.StringVal(sum)
	}
	body.SetAttributeValue("sums", cty.ListVal(vals))
}
