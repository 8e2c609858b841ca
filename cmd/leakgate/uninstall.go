package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adamaslan/leakgate/internal/git"
	"github.com/adamaslan/leakgate/internal/hook"
)

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the pre-commit hook if leakgate owns it",
	Long: `Remove the pre-commit shim leakgate installed. A hook leakgate does
not recognize is never removed. Running uninstall twice is fine.`,
	Args: cobra.NoArgs,
	RunE: runUninstall,
}

func runUninstall(cmd *cobra.Command, args []string) error {
	repo, err := git.Open(".")
	if err != nil {
		return err
	}
	hooksDir, err := repo.HooksDir()
	if err != nil {
		return err
	}

	path, err := hook.Uninstall(hooksDir)
	if errors.Is(err, hook.ErrNotInstalled) {
		fmt.Fprintln(stdout, "no leakgate pre-commit hook to remove")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "pre-commit hook removed: %s\n", path)
	return nil
}
