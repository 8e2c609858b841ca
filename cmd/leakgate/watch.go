package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adamaslan/leakgate/internal/scan"
	"github.com/adamaslan/leakgate/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "Rescan files as they change",
	Long: `Watch a worktree and rescan files as they are written, printing
findings from both tiers as they appear. Watch mode never blocks
anything; it is a development-time companion to the hook, not a gate.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.log.Sync()

	root := repoRoot()
	if len(args) == 1 {
		root = args[0]
	}

	rs, confErrs, err := loadRules(a, root)
	if err != nil {
		return err
	}

	opts := a.cfg.ScanOptions()
	opts.AllTiers = true
	scanner := scan.New(rs, confErrs, opts)

	w, err := watch.New(scanner, a.log.Named("watch"), func(res *scan.Result) {
		if res.HasFindings() {
			a.console.RenderFindings(res.Findings)
		}
	}, watch.Config{Root: root})
	if err != nil {
		return err
	}

	if !flagQuiet {
		fmt.Fprintf(stdout, "watching %s (ctrl-c to stop)\n", root)
	}
	if err := w.Run(cmd.Context()); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
