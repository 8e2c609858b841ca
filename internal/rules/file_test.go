package rules

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRulesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	t.Run("missing file returns os.IsNotExist", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), DefaultFileName))
		require.Error(t, err)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("malformed toml is a config error", func(t *testing.T) {
		path := writeRulesFile(t, "rules = [ not toml")
		_, err := LoadFile(path)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidTOML))
	})

	t.Run("parses rules and allowlist", func(t *testing.T) {
		path := writeRulesFile(t, `
replace_builtin = false
disable = ["us-phone"]

[[rules]]
id = "internal-token"
description = "Internal service token"
pattern = 'svc_[a-z0-9]{32}'
severity = "critical"

[allowlist]
paths = ['^testdata/']
regexes = ['TESTONLY']
`)
		f, err := LoadFile(path)
		require.NoError(t, err)

		require.Len(t, f.Rules, 1)
		assert.Equal(t, "internal-token", f.Rules[0].ID)
		assert.Equal(t, SeverityCritical, f.Rules[0].Severity)
		assert.Equal(t, []string{"us-phone"}, f.Disable)
		assert.Equal(t, []string{"^testdata/"}, f.Allowlist.Paths)
		assert.Equal(t, []string{"TESTONLY"}, f.Allowlist.Regexes)
		assert.False(t, f.ReplaceBuiltin)
	})

	t.Run("bad rule pattern still loads", func(t *testing.T) {
		// Pattern validity is Compile's problem, one rule at a time.
		path := writeRulesFile(t, `
[[rules]]
id = "broken"
pattern = '[unclosed'
severity = "warning"
`)
		f, err := LoadFile(path)
		require.NoError(t, err)
		require.Len(t, f.Rules, 1)

		_, errs := Compile(f.Rules, Allowlist{})
		require.Len(t, errs, 1)
		assert.Equal(t, "broken", errs[0].RuleID)
	})
}

func TestEffective(t *testing.T) {
	t.Run("nil file yields builtins", func(t *testing.T) {
		defs, allow := Effective(nil)
		assert.Equal(t, Builtin(), defs)
		assert.Equal(t, DefaultAllowlist(), allow)
	})

	t.Run("project rules append after builtins", func(t *testing.T) {
		f := &File{
			Rules: []Rule{{ID: "extra", Pattern: `x`, Severity: SeverityWarning}},
			Allowlist: Allowlist{
				Paths:   []string{`^docs/`},
				Regexes: []string{`DEMO`},
			},
		}
		defs, allow := Effective(f)

		require.Len(t, defs, len(Builtin())+1)
		assert.Equal(t, "extra", defs[len(defs)-1].ID)
		assert.Contains(t, allow.Paths, "^docs/")
		assert.Contains(t, allow.Regexes, "DEMO")
		// Built-in suppressions survive the merge.
		assert.Contains(t, allow.Regexes, `\$\{[^}]*\}`)
	})

	t.Run("replace_builtin drops the built-in table", func(t *testing.T) {
		f := &File{
			ReplaceBuiltin: true,
			Rules:          []Rule{{ID: "only", Pattern: `x`, Severity: SeverityCritical}},
		}
		defs, _ := Effective(f)
		require.Len(t, defs, 1)
		assert.Equal(t, "only", defs[0].ID)
	})

	t.Run("disable removes builtins by id", func(t *testing.T) {
		f := &File{Disable: []string{"email-address"}}
		defs, _ := Effective(f)
		assert.Len(t, defs, len(Builtin())-1)
		for _, def := range defs {
			assert.NotEqual(t, "email-address", def.ID)
		}
	})
}
