package casefix

import (
	"encoding/json"

	"github.com/runaxr/bartender/internal/renameio"
	"github.com/runaxr/bartender/internal/robustio"
)

// WriteSnapshot persists a reference tree as JSON so a base game scan
// can be reused across runs.
func WriteSnapshot(path string, t Tree) error {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return err
	}
	return renameio.WriteFile(path, data, 0644)
}

// ReadSnapshot loads a reference tree written by WriteSnapshot.
func ReadSnapshot(path string) (Tree, error) {
	data, err := robustio.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var t Tree
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	return t, nil
}
