// Package hook installs and removes the git pre-commit shim.
//
// The shim is a short shell script that execs the scanner. A marker line
// identifies shims this tool wrote: install refuses to clobber anything
// without the marker unless forced, and uninstall removes only marked
// shims. The shim itself documents the --no-verify escape hatch; bypassing
// the scan in an emergency is a supported workflow, not a hole.
package hook

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Name is the hook file this package manages.
const Name = "pre-commit"

// marker identifies shims written by this tool. Both words matter:
// uninstall greps for exactly this line.
const marker = "# leakgate pre-commit hook"

// DefaultCommand is what the shim runs. The binary is resolved from PATH at
// commit time, so upgrades do not require reinstalling the hook.
const DefaultCommand = "leakgate scan"

// Options control Install.
type Options struct {
	// Command is the command line the shim execs. Defaults to DefaultCommand.
	Command string

	// Force overwrites a pre-commit hook this tool does not recognize.
	Force bool
}

// Install writes the pre-commit shim into hooksDir and returns its path.
// An existing shim with the marker is replaced silently; a foreign hook is
// left alone unless opts.Force is set.
func Install(hooksDir string, opts Options) (string, error) {
	if opts.Command == "" {
		opts.Command = DefaultCommand
	}
	if err := os.MkdirAll(hooksDir, 0o755); err != nil {
		return "", fmt.Errorf("creating hooks directory: %w", err)
	}

	path := filepath.Join(hooksDir, Name)
	existing, err := os.ReadFile(path)
	switch {
	case err == nil:
		if !managed(existing) && !opts.Force {
			return "", fmt.Errorf("%w: %s", ErrForeignHook, path)
		}
	case !os.IsNotExist(err):
		return "", fmt.Errorf("inspecting existing hook: %w", err)
	}

	if err := os.WriteFile(path, []byte(script(opts.Command)), 0o755); err != nil {
		return "", fmt.Errorf("writing hook: %w", err)
	}
	return path, nil
}

// Uninstall removes the shim from hooksDir and returns the removed path.
// Hooks without the marker are never removed.
func Uninstall(hooksDir string) (string, error) {
	path := filepath.Join(hooksDir, Name)
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrNotInstalled, path)
		}
		return "", fmt.Errorf("inspecting hook: %w", err)
	}
	if !managed(content) {
		return "", fmt.Errorf("%w: %s", ErrForeignHook, path)
	}
	if err := os.Remove(path); err != nil {
		return "", fmt.Errorf("removing hook: %w", err)
	}
	return path, nil
}

// Installed reports whether hooksDir contains a shim this tool wrote.
func Installed(hooksDir string) bool {
	content, err := os.ReadFile(filepath.Join(hooksDir, Name))
	return err == nil && managed(content)
}

func managed(content []byte) bool {
	return strings.Contains(string(content), marker)
}

func script(command string) string {
	return `#!/bin/sh
` + marker + `
# Scans files staged for commit and blocks on critical findings.
# Emergency bypass: git commit --no-verify

exec ` + command + `
`
}
