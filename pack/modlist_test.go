package pack

import (
	"testing"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/stretchr/testify/require"

	"github.com/runaxr/bartender"
	"github.com/runaxr/bartender/pack/hclspec"
)

const testManifest = `
mod "SoundPack.zip" {
}

mod "Textures.zip" {
  file = "/home/user/Downloads/Textures.zip"
}

check {
  name = "SoundPack.zip"
  sums = ["sha256:aa", "md5:bb"]
}

check {
  name = "Unknown.zip"
  sums = ["sha256:cc"]
}
`

func parseTestManifest(t *testing.T, src string) hclspec.Manifest {
	t.Helper()
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL([]byte(src), "mods.pack")
	require.False(t, diags.HasErrors(), diags.Error())

	var m hclspec.Manifest
	decodeDiags := gohcl.DecodeBody(file.Body, nil, &m)
	require.False(t, decodeDiags.HasErrors(), decodeDiags.Error())
	return m
}

func TestModList(t *testing.T) {
	m := parseTestManifest(t, testManifest)

	mods := ModList([]hclspec.Manifest{m})
	require.Equal(t, []bartender.Mod{
		{
			Name: "SoundPack.zip",
			Sums: []string{"sha256:aa", "md5:bb"},
		},
		{
			Name: "Textures.zip",
			File: "/home/user/Downloads/Textures.zip",
		},
	}, mods)
}

func TestModListEmpty(t *testing.T) {
	require.Nil(t, ModList(nil))
	require.Nil(t, ModList([]hclspec.Manifest{{}}))
}

func TestModListMergesManifests(t *testing.T) {
	base := parseTestManifest(t, `
mod "A.zip" {
}
`)
	sums := parseTestManifest(t, `
check {
  name = "A.zip"
  sums = ["sha1:dd"]
}
`)

	mods := ModList([]hclspec.Manifest{base, sums})
	require.Len(t, mods, 1)
	require.Equal(t, []string{"sha1:dd"}, mods[0].Sums)
}
