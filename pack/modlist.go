package pack

import (
	"github.com/runaxr/bartender"
	"github.com/runaxr/bartender/pack/hclspec"
)

func ModList(ms []hclspec.Manifest) []bartender.Mod {
	n := 0
	for _, m := range ms {
		n += len(m.Mods)
	}

	if len(ms) <= 0 || n <= 0 {
		return nil
	}

	mods := make([]bartender.Mod, 0, n)
	refs := make(map[string]*bartender.Mod, n)

	// Merge mods and create reference for archive name.
	for _, m := range ms {
		for _, mod := range m.Mods {
			mods = append(mods, bartender.Mod{
				Name: mod.Name,
				File: mod.File,
			})
			refs[mod.Name] = &mods[len(mods)-1]
		}
	}

	// Merge check sums into corresponding mods.
	for _, m := range ms {
		for _, check := range m.Checks {
			mm, ok := refs[check.Name]
			if !ok {
				continue
			}
			mm.Sums = append(mm.Sums, check.Sums...)
		}
	}

	return mods
}
