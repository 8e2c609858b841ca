package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/adamaslan/leakgate/internal/config"
	"github.com/adamaslan/leakgate/internal/git"
	"github.com/adamaslan/leakgate/internal/logging"
	"github.com/adamaslan/leakgate/internal/report"
	"github.com/adamaslan/leakgate/internal/rules"
)

// stdout is swappable so tests can capture command output. Logs go to
// stderr through the logging package and never mix with reports.
var stdout io.Writer = os.Stdout

var (
	flagConfig   string
	flagLogLevel string
	flagNoColor  bool
	flagQuiet    bool
)

var rootCmd = &cobra.Command{
	Use:   "leakgate",
	Short: "Git pre-commit secret scanner",
	Long: `leakgate checks files against a two-tier ruleset before they leave
the machine: critical findings block the commit, warnings inform and
never block.

Install the hook once per clone with "leakgate install". The standard
git escape hatch applies: git commit --no-verify skips the scan.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Version = version
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default $XDG_CONFIG_HOME/leakgate/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "override log verbosity: debug, info, warn, or error")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable styled output")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "print nothing unless something was found")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(uninstallCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)
}

// app bundles what every scanning command sets up first: merged
// config, a logger, and the console reporter.
type app struct {
	cfg     *config.Config
	log     *logging.Logger
	console *report.Console
}

func newApp() (*app, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	logger, err := logging.New(&logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		return nil, err
	}
	return &app{
		cfg:     cfg,
		log:     logger,
		console: report.NewConsole(stdout, colorEnabled(cfg.Output.Color), flagQuiet),
	}, nil
}

// colorEnabled resolves the configured color mode against the
// --no-color flag, NO_COLOR, and whether stdout is a terminal.
func colorEnabled(mode string) bool {
	if flagNoColor {
		return false
	}
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		f, ok := stdout.(*os.File)
		return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
	}
}

// loadRules builds the ruleset a scan of the tree rooted at root will
// apply: built-ins merged with (or replaced by) the project rules
// file. Rules that fail to compile are logged and carried as config
// errors so the report can show what was skipped.
func loadRules(a *app, root string) (*rules.Ruleset, []rules.ConfigError, error) {
	path := a.cfg.Rules.Path
	if path == "" {
		path = filepath.Join(root, rules.DefaultFileName)
	}

	file, err := rules.LoadFile(path)
	switch {
	case err == nil:
		if a.cfg.Rules.Replace {
			file.ReplaceBuiltin = true
		}
	case os.IsNotExist(err):
		// A missing default file just means "built-ins only". A path
		// the user configured has to exist.
		if a.cfg.Rules.Path != "" {
			return nil, nil, fmt.Errorf("rules file: %w", err)
		}
		file = nil
	default:
		return nil, nil, err
	}

	rs, confErrs := rules.Compile(rules.Effective(file))
	for _, ce := range confErrs {
		a.log.Warn("rule disabled", zap.String("rule", ce.RuleID), zap.Error(ce.Err))
	}
	return rs, confErrs, nil
}

// repoRoot returns the enclosing repository root, or "." when there is
// none. audit, rules, and watch work outside git too.
func repoRoot() string {
	if repo, err := git.Open("."); err == nil {
		return repo.Root()
	}
	return "."
}
