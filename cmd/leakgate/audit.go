package main

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/adamaslan/leakgate/internal/git"
	"github.com/adamaslan/leakgate/internal/scan"
)

var flagExtended bool

var auditCmd = &cobra.Command{
	Use:   "audit [path...]",
	Short: "Scan whole trees instead of the staged set",
	Long: `Walk the given paths (default ".") and scan every regular file with
the same engine and exit contract as the hook. Useful for sweeping a
repository before enabling the hook, and in CI.

Unlike the hook path, audit can also apply the extended gitleaks
ruleset with --extended.`,
	RunE: runAudit,
}

func init() {
	auditCmd.Flags().StringVar(&flagReport, "report", "", "also write a JSON run report to this file")
	auditCmd.Flags().BoolVar(&flagExtended, "extended", false, "add the gitleaks ruleset as an advisory tier")
}

func runAudit(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.log.Sync()

	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}

	var targets []scan.Target
	seen := make(map[string]struct{})
	for _, p := range paths {
		ts, err := walkTargets(p)
		if err != nil {
			return err
		}
		for _, t := range ts {
			if _, dup := seen[t.Name]; dup {
				continue
			}
			seen[t.Name] = struct{}{}
			targets = append(targets, t)
		}
	}

	rs, confErrs, err := loadRules(a, repoRoot())
	if err != nil {
		return err
	}

	opts := a.cfg.ScanOptions()
	if flagExtended {
		opts.Extended = true
	}
	scanner := scan.New(rs, confErrs, opts)
	res, err := scanner.Scan(cmd.Context(), targets)
	if err != nil {
		return err
	}

	a.console.Render(res)
	var repo *git.Repo
	if r, rerr := git.Open("."); rerr == nil {
		repo = r
	}
	if err := writeReport(a, res, repo); err != nil {
		return err
	}
	if res.Blocked() {
		return errBlocked
	}
	return nil
}

// walkTargets enumerates the regular files under root, pruning trees
// no commit would carry. Exemption-eligible directories like templates
// are NOT pruned: criticals apply everywhere.
func walkTargets(root string) ([]scan.Target, error) {
	var targets []scan.Target
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			switch d.Name() {
			case ".git", "node_modules", "vendor":
				if path != root {
					return filepath.SkipDir
				}
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		targets = append(targets, scan.Target{Path: path, Name: filepath.ToSlash(path)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return targets, nil
}
