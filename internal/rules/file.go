package rules

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultFileName is the project rules file looked up at the repository root.
const DefaultFileName = ".leakgate.toml"

// Allowlist lists suppressions. Paths are regexes matched against
// repo-relative file names; matching files are skipped entirely, both tiers.
// Regexes are matched against each detected string; matches are dropped.
type Allowlist struct {
	Paths   []string `toml:"paths" json:"paths,omitempty"`
	Regexes []string `toml:"regexes" json:"regexes,omitempty"`
}

// File is the shape of a project-level .leakgate.toml.
type File struct {
	// ReplaceBuiltin drops the built-in rule table so only the file's own
	// rules apply. The built-in placeholder suppressions are kept either way.
	ReplaceBuiltin bool `toml:"replace_builtin"`

	// Disable lists built-in rule IDs to turn off.
	Disable []string `toml:"disable"`

	Rules     []Rule    `toml:"rules"`
	Allowlist Allowlist `toml:"allowlist"`
}

// LoadFile reads a project rules file. The caller distinguishes a missing
// file (os.IsNotExist) from a malformed one (ErrInvalidTOML).
//
// Rule patterns are not validated here: compilation happens in Compile,
// where a bad pattern costs only its own rule.
func LoadFile(path string) (*File, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	var f File
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidTOML, filepath.Base(path), err)
	}
	return &f, nil
}

// Effective merges the built-in table with a project file. f may be nil,
// meaning no project file exists: the builtins and default suppressions
// apply unchanged.
func Effective(f *File) ([]Rule, Allowlist) {
	defs := Builtin()
	allow := DefaultAllowlist()
	if f == nil {
		return defs, allow
	}
	if f.ReplaceBuiltin {
		defs = nil
	}
	defs = Without(defs, f.Disable)
	defs = append(defs, f.Rules...)
	allow.Paths = append(allow.Paths, f.Allowlist.Paths...)
	allow.Regexes = append(allow.Regexes, f.Allowlist.Regexes...)
	return defs, allow
}
