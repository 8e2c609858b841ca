package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/adamaslan/leakgate/internal/git"
	"github.com/adamaslan/leakgate/internal/report"
	"github.com/adamaslan/leakgate/internal/scan"
)

var flagReport string

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the files staged for commit",
	Long: `Scan the staged files of the enclosing repository. This is the hook
entrypoint: it exits 1 when any critical rule matches so the commit is
blocked. Warnings print but never block.

Exit codes:
  0  no critical findings (warnings allowed)
  1  one or more critical findings
  2  the scan could not run (not a repository, bad config)`,
	Args: cobra.NoArgs,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVar(&flagReport, "report", "", "also write a JSON run report to this file")
}

func runScan(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.log.Sync()

	repo, err := git.Open(".")
	if err != nil {
		return err
	}
	staged, err := repo.StagedFiles()
	if err != nil {
		return err
	}
	a.log.Debug("staged set resolved", zap.Int("files", len(staged)))

	targets := make([]scan.Target, 0, len(staged))
	for _, name := range staged {
		targets = append(targets, scan.Target{
			Path: filepath.Join(repo.Root(), filepath.FromSlash(name)),
			Name: name,
		})
	}

	rs, confErrs, err := loadRules(a, repo.Root())
	if err != nil {
		return err
	}

	scanner := scan.New(rs, confErrs, a.cfg.ScanOptions())
	res, err := scanner.Scan(cmd.Context(), targets)
	if err != nil {
		return err
	}

	a.console.Render(res)
	if err := writeReport(a, res, repo); err != nil {
		return err
	}
	if res.Blocked() {
		return errBlocked
	}
	return nil
}

// writeReport writes the JSON run report when --report or
// output.report in config names a path. The flag wins.
func writeReport(a *app, res *scan.Result, repo *git.Repo) error {
	path := flagReport
	if path == "" {
		path = a.cfg.Output.Report
	}
	if path == "" {
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}
	defer f.Close()

	meta := report.Meta{Version: version}
	if repo != nil {
		meta.Repository = repo.Root()
		meta.Branch = repo.Branch()
	}
	if err := report.WriteJSON(f, res, meta); err != nil {
		return err
	}
	a.log.Info("report written", zap.String("path", path))
	return nil
}
