package bartender

type Mod struct {
	// Name is the archive file name in the mod library.
	Name string

	// File is the path the archive was imported from, if known.
	File string

	// Sums is a list of expected archive checksums.
	Sums []string
}
