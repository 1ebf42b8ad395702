package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/pkg/diff"

	"github.com/google/subcommands"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"

	"github.com/runaxr/bartender/internal/renameio"
	"github.com/runaxr/bartender/internal/robustio"

	"github.com/runaxr/bartender/pack/hclspec"
)

type FormatCommand struct {
	DisableCheck bool
	Overwrite    bool
	ContextSize  int
}

func (*FormatCommand) Name() string     { return "fmt" }
func (*FormatCommand) Synopsis() string { return "format manifests" }
func (*FormatCommand) Usage() string {
	return `Usage: bartender fmt [-c int] [-w] [-nocheck] [manifest paths]

	Formats mod manifests using standard syntax. It can either
	write files in-place or generate unified diff with specified
	context size.

Flags:
`
}

func (cmd *FormatCommand) SetFlags(fs *flag.FlagSet) {
	fs.BoolVar(&cmd.DisableCheck, "nocheck", false, "disable diagnostics")
	fs.BoolVar(&cmd.Overwrite, "w", false, "write result to (source) file instead of stdout")
	fs.IntVar(&cmd.ContextSize, "c", 3, "output n lines of diff context")
}

func (cmd *FormatCommand) Execute(ctx context.Context, fs *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	var color bool
	var parser *hclparse.Parser
	var diagWr hcl.DiagnosticWriter
	if !cmd.DisableCheck {
		parser = hclparse.NewParser()
		diagWr, color = newDiagWr(parser)
	}

	paths := fs.Args()
	if len(paths) <= 0 {
		paths = []string{defaultManifest}
	}

	for _, fpath := range paths {
		if s := cmd.formatManifest(ctx, fpath, parser, diagWr, color); s != subcommands.ExitSuccess {
			return s
		}
	}

	return subcommands.ExitSuccess
}

func (cmd *FormatCommand) formatManifest(ctx context.Context, fpath string, parser *hclparse.Parser, diagWr hcl.DiagnosticWriter, color bool) subcommands.ExitStatus {
	src, err := robustio.ReadFile(fpath)
	if err != nil {
		log.Printf("read manifest %q: %+v", fpath, err)
		return subcommands.ExitFailure
	}

	if parser != nil {
		file, diags := parser.ParseHCL(src, fpath)
		if !diags.HasErrors() {
			decodeDiags := gohcl.DecodeBody(file.Body, nil, &hclspec.Manifest{})
			diags = append(diags, decodeDiags...)
		}
		if err := diagWr.WriteDiagnostics(diags); err != nil {
			log.Printf("write diags: %+v", err)
			return subcommands.ExitFailure
		}
		if diags.HasErrors() {
			return subcommands.ExitFailure
		}
	}

	outSrc := hclwrite.Format(src)
	if bytes.Equal(src, outSrc) {
		return subcommands.ExitSuccess
	}
	if !cmd.Overwrite {
		if err := cmd.writeDiff(ctx, os.Stdout, fpath, src, outSrc, color); err != nil {
			log.Printf("write diff: %+v", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	if err := renameio.WriteFile(fpath, outSrc, 0644); err != nil {
		log.Printf("write file %q: %+v", fpath, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (cmd *FormatCommand) writeDiff(ctx context.Context, w *os.File, fpath string, src, outSrc []byte, color bool) error {
	fpath = filepath.ToSlash(fpath)
	aname := fmt.Sprintf("a/%s", fpath)
	bname := fmt.Sprintf("b/%s", fpath)
	opts := []diff.WriteOpt{diff.Names(aname, bname)}
	if color {
		opts = append(opts, diff.TerminalColor())
	}
	a, b := splitLines(src), splitLines(outSrc)
	pair := diff.Bytes(a, b)
	edit := diff.Myers(ctx, pair)
	if cmd.ContextSize >= 0 {
		edit = edit.WithContextSize(cmd.ContextSize)
	}
	_, err := edit.WriteUnified(w, pair, opts...)
	return err
}

func splitLines(b []byte) [][]byte {
	return bytes.Split(b, []byte("\n"))
}
