package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/adamaslan/leakgate/internal/rules"
)

var flagRulesJSON bool

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the effective ruleset",
	Long: `Print every rule the next scan would apply: built-ins merged with
the project's ` + rules.DefaultFileName + `. Rules that failed to compile are listed
separately; they cost nothing but their own coverage.`,
	Args: cobra.NoArgs,
	RunE: runRules,
}

func init() {
	rulesCmd.Flags().BoolVar(&flagRulesJSON, "json", false, "emit the ruleset as JSON")
}

func runRules(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.log.Sync()

	rs, confErrs, err := loadRules(a, repoRoot())
	if err != nil {
		return err
	}

	if flagRulesJSON {
		defs := make([]rules.Rule, 0, rs.Len())
		for _, c := range rs.All() {
			defs = append(defs, c.Rule)
		}
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(defs)
	}

	a.console.RenderRules(rs, confErrs)
	return nil
}
