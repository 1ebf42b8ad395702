package main

import (
	"log"
	"os"
	"path/filepath"

	"golang.org/x/crypto/ssh/terminal"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/runaxr/bartender/internal/robustio"

	"github.com/runaxr/bartender/pack/hclspec"
)

const soberApp = ".var/app/org.vinegarhq.Sober"

func homePath(elem ...string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(append([]string{home}, elem...)...), nil
}

// libraryDir is the user-level directory of imported mod archives.
func libraryDir() (string, error) {
	return homePath(".local", "Bartender", "Mods")
}

// overlayDir is the asset overlay consumed by the Sober client.
func overlayDir() (string, error) {
	return homePath(soberApp, "data", "sober", "asset_overlay")
}

// assetsDir is the base game tree downloaded by Sober.
func assetsDir() (string, error) {
	return homePath(soberApp, "data", "sober", "assets")
}

// configPath is the Sober config file holding the fflags map.
func configPath() (string, error) {
	return homePath(soberApp, "config", "sober", "config.json")
}

func stateDir(p string) (string, error) {
	c, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(c, p, "state"), nil
}

func makeStateDir(p string) (string, error) {
	c, err := stateDir(p)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(c, 0700); err != nil {
		return "", err
	}
	return c, nil
}

// resolve returns the flag override if set, otherwise the default.
func resolve(override string, def func() (string, error)) (string, error) {
	if override != "" {
		return override, nil
	}
	return def()
}

func newDiagWr(p *hclparse.Parser) (diagWr hcl.DiagnosticWriter, color bool) {
	files := p.Files()
	stderr := os.Stderr
	fd := int(stderr.Fd())
	istty, color := fdinfo(fd)
	if !istty {
		diagWr := hcl.NewDiagnosticTextWriter(stderr, files, 80, color)
		return diagWr, color
	}
	var width uint
	if w, _, err := terminal.GetSize(fd); err != nil {
		log.Printf("get term size: %+v", err)
	} else if w >= 0 {
		width = uint(w)
	} else {
		width = 80
	}
	return hcl.NewDiagnosticTextWriter(stderr, files, width, color), color
}

func fdinfo(fd int) (istty, color bool) {
	istty = terminal.IsTerminal(fd)
	if istty {
		color = true
	}
	// See https://no-color.org
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		color = false
	}
	return
}

func parseManifests(paths []string) ([]hclspec.Manifest, bool) {
	ms := make([]hclspec.Manifest, len(paths))

	// Continue on error to print diagnostics for all files.
	allOK := true
	for i, path := range paths {
		m, ok := parseManifest(path)
		if !ok {
			allOK = false
			continue
		}
		ms[i] = m
	}
	return ms, allOK
}

func parseManifest(path string) (hclspec.Manifest, bool) {
	var m hclspec.Manifest
	var diags hcl.Diagnostics

	parser := hclparse.NewParser()
	diagWr, _ := newDiagWr(parser)

	src, err := robustio.ReadFile(path)
	if err != nil {
		log.Printf("read %q: %+v", path, err)
		return m, false
	}

	file, parseDiags := parser.ParseHCL(src, path)
	diags = append(diags, parseDiags...)
	if diags.HasErrors() {
		// Write diagnostics on parser error.
		err := diagWr.WriteDiagnostics(diags)
		if err != nil {
			log.Printf("write diags: %+v", err)
		}
		return m, false
	}

	decodeDiags := gohcl.DecodeBody(file.Body, nil, &m)
	diags = append(diags, decodeDiags...)
	if err := diagWr.WriteDiagnostics(diags); err != nil {
		log.Printf("write diags: %+v", err)
		return m, false
	}

	return m, !diags.HasErrors()
}
