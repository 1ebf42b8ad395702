// Package fflags edits the fflags map of the Sober config file.
package fflags

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/runaxr/bartender/internal/renameio"
	"github.com/runaxr/bartender/internal/robustio"
)

var ErrNotObject = errors.New("expected a JSON object")

const flagsKey = "fflags"

// Config is the loaded config file. Top-level keys other than fflags
// pass through a load/save cycle untouched.
type Config struct {
	Flags map[string]interface{}

	rest map[string]json.RawMessage
}

// Load reads the config file. A missing file yields an empty config.
func Load(path string) (*Config, error) {
	data, err := robustio.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{Flags: map[string]interface{}{}}, nil
		}
		return nil, err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	c := Config{
		Flags: map[string]interface{}{},
		rest:  raw,
	}
	if fdata, ok := raw[flagsKey]; ok {
		delete(raw, flagsKey)
		if err := decodeFlags(fdata, &c.Flags); err != nil {
			return nil, fmt.Errorf("parse %s: %w", flagsKey, err)
		}
	}
	return &c, nil
}

func decodeFlags(data json.RawMessage, flags *map[string]interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	// Keep numbers textual so integer flags never gain a decimal
	// point on save.
	dec.UseNumber()
	return dec.Decode(flags)
}

// Save rewrites the whole config file, creating its directory when
// needed.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	out := make(map[string]interface{}, len(c.rest)+1)
	for k, v := range c.rest {
		out[k] = v
	}
	out[flagsKey] = c.Flags
	data, err := json.MarshalIndent(out, "", "    ")
	if err != nil {
		return err
	}
	return renameio.WriteFile(path, data, 0644)
}

func (c *Config) Get(name string) (interface{}, bool) {
	v, ok := c.Flags[name]
	return v, ok
}

// Set stores a flag with the typed interpretation of raw.
func (c *Config) Set(name, raw string) {
	c.Flags[name] = ParseValue(raw)
}

// Unset removes a flag and reports whether it existed.
func (c *Config) Unset(name string) bool {
	_, ok := c.Flags[name]
	delete(c.Flags, name)
	return ok
}

// Names returns flag names sorted, filtered by a case-insensitive
// substring query. An empty query matches everything.
func (c *Config) Names(query string) []string {
	query = strings.ToLower(query)
	names := make([]string, 0, len(c.Flags))
	for name := range c.Flags {
		if query != "" && !strings.Contains(strings.ToLower(name), query) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Merge overlays imported flags onto the current map.
func (c *Config) Merge(flags map[string]interface{}) {
	for name, value := range flags {
		c.Flags[name] = value
	}
}

// ImportFile reads a flat JSON object of flags.
func ImportFile(path string) (map[string]interface{}, error) {
	data, err := robustio.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if _, ok := raw.(map[string]interface{}); !ok {
		return nil, ErrNotObject
	}
	flags := map[string]interface{}{}
	if err := decodeFlags(data, &flags); err != nil {
		return nil, err
	}
	return flags, nil
}

// Export writes the flag map alone to path.
func (c *Config) Export(path string) error {
	data, err := json.MarshalIndent(c.Flags, "", "    ")
	if err != nil {
		return err
	}
	return renameio.WriteFile(path, data, 0644)
}

// ParseValue interprets a textual flag value: true/false as bool,
// digit strings as int, single-dot digit strings as float, anything
// else as string.
func ParseValue(s string) interface{} {
	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}
	if isDigits(s) {
		n, err := json.Number(s).Int64()
		if err == nil {
			return n
		}
		// Digits beyond int64 range still encode as a JSON number.
		return json.Number(s)
	}
	if strings.Count(s, ".") == 1 && isDigits(strings.Replace(s, ".", "", 1)) {
		f, err := json.Number(s).Float64()
		if err == nil {
			return f
		}
	}
	return s
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// FormatValue renders a flag value the way the config file would.
func FormatValue(v interface{}) string {
	switch v := v.(type) {
	case bool:
		if v {
			return "true"
		}
		return "false"
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
