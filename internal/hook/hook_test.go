package hook

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstall(t *testing.T) {
	t.Run("writes an executable shim", func(t *testing.T) {
		hooksDir := filepath.Join(t.TempDir(), "hooks")

		path, err := Install(hooksDir, Options{})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(hooksDir, Name), path)

		fi, err := os.Stat(path)
		require.NoError(t, err)
		assert.NotZero(t, fi.Mode()&0o111, "hook must be executable")

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), marker)
		assert.Contains(t, string(content), "exec "+DefaultCommand)
		assert.Contains(t, string(content), "--no-verify")

		assert.True(t, Installed(hooksDir))
	})

	t.Run("custom command", func(t *testing.T) {
		hooksDir := t.TempDir()

		path, err := Install(hooksDir, Options{Command: "/opt/leakgate scan --workers 4"})
		require.NoError(t, err)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "exec /opt/leakgate scan --workers 4")
	})

	t.Run("replaces its own shim without force", func(t *testing.T) {
		hooksDir := t.TempDir()
		_, err := Install(hooksDir, Options{})
		require.NoError(t, err)

		_, err = Install(hooksDir, Options{Command: "leakgate scan --extended"})
		require.NoError(t, err)

		content, err := os.ReadFile(filepath.Join(hooksDir, Name))
		require.NoError(t, err)
		assert.Contains(t, string(content), "--extended")
	})

	t.Run("refuses a foreign hook", func(t *testing.T) {
		hooksDir := t.TempDir()
		foreign := filepath.Join(hooksDir, Name)
		require.NoError(t, os.WriteFile(foreign, []byte("#!/bin/sh\nmake lint\n"), 0o755))

		_, err := Install(hooksDir, Options{})
		assert.ErrorIs(t, err, ErrForeignHook)

		content, err := os.ReadFile(foreign)
		require.NoError(t, err)
		assert.Contains(t, string(content), "make lint", "foreign hook must be untouched")
	})

	t.Run("force overwrites a foreign hook", func(t *testing.T) {
		hooksDir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(hooksDir, Name), []byte("#!/bin/sh\nmake lint\n"), 0o755))

		_, err := Install(hooksDir, Options{Force: true})
		require.NoError(t, err)
		assert.True(t, Installed(hooksDir))
	})
}

func TestUninstall(t *testing.T) {
	t.Run("removes a managed shim", func(t *testing.T) {
		hooksDir := t.TempDir()
		path, err := Install(hooksDir, Options{})
		require.NoError(t, err)

		removed, err := Uninstall(hooksDir)
		require.NoError(t, err)
		assert.Equal(t, path, removed)

		_, err = os.Stat(path)
		assert.True(t, os.IsNotExist(err))
		assert.False(t, Installed(hooksDir))
	})

	t.Run("missing hook", func(t *testing.T) {
		_, err := Uninstall(t.TempDir())
		assert.ErrorIs(t, err, ErrNotInstalled)
	})

	t.Run("never removes a foreign hook", func(t *testing.T) {
		hooksDir := t.TempDir()
		foreign := filepath.Join(hooksDir, Name)
		require.NoError(t, os.WriteFile(foreign, []byte("#!/bin/sh\nmake lint\n"), 0o755))

		_, err := Uninstall(hooksDir)
		assert.ErrorIs(t, err, ErrForeignHook)

		_, statErr := os.Stat(foreign)
		assert.NoError(t, statErr)
	})
}
