package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adamaslan/leakgate/internal/git"
	"github.com/adamaslan/leakgate/internal/hook"
)

var (
	flagForce       bool
	flagHookCommand string
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the pre-commit hook in the enclosing repository",
	Long: `Write the pre-commit shim into the repository's hooks directory,
honoring core.hooksPath. A shim leakgate wrote earlier is replaced in
place; a hook somebody else wrote is left alone unless --force is
given.`,
	Args: cobra.NoArgs,
	RunE: runInstall,
}

func init() {
	installCmd.Flags().BoolVar(&flagForce, "force", false, "overwrite a pre-commit hook leakgate does not recognize")
	installCmd.Flags().StringVar(&flagHookCommand, "hook-command", hook.DefaultCommand, "command line the shim runs")
}

func runInstall(cmd *cobra.Command, args []string) error {
	repo, err := git.Open(".")
	if err != nil {
		return err
	}
	hooksDir, err := repo.HooksDir()
	if err != nil {
		return err
	}

	path, err := hook.Install(hooksDir, hook.Options{Command: flagHookCommand, Force: flagForce})
	if err != nil {
		if errors.Is(err, hook.ErrForeignHook) {
			return fmt.Errorf("%w (rerun with --force to overwrite it)", err)
		}
		return err
	}

	fmt.Fprintf(stdout, "pre-commit hook installed: %s\n", path)
	fmt.Fprintln(stdout, "bypass for a single commit with: git commit --no-verify")
	return nil
}
