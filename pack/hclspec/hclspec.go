package hclspec

type Manifest struct {
	Mods   []Mod   `hcl:"mod,block"`
	Checks []Check `hcl:"check,block"`
}

type Mod struct {
	Name string `hcl:"name,label"`
	File string `hcl:"file,optional"`
}

type Check struct {
	Name string   `hcl:"name,attr"`
	Sums []string `hcl:"sums,attr"`
}
