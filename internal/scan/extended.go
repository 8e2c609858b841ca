package scan

import (
	"fmt"
	"sort"
	"strings"

	"github.com/adamaslan/leakgate/internal/rules"
)

// extendedFindings runs content through the gitleaks default-config
// detector and maps its findings into advisory warning-tier Findings. The
// tier is deliberately never critical: gitleaks rules were not vetted
// against this tool's blocking contract, so they inform without vetoing.
func (s *Scanner) extendedFindings(name, content string) []Finding {
	if s.detector == nil {
		return nil
	}

	seen := make(map[string]struct{})
	var out []Finding
	for _, f := range s.detector.DetectString(content) {
		if s.rules.Allowed(f.Secret) || s.rules.Allowed(f.Match) {
			continue
		}

		line := f.StartLine
		snippet := truncate(strings.TrimRight(f.Match, " \t\r"), s.opts.Width)
		if idx := strings.Index(content, f.Secret); f.Secret != "" && idx >= 0 {
			line = strings.Count(content[:idx], "\n") + 1
			snippet = truncate(lineAt(content, idx), s.opts.Width)
		}

		key := fmt.Sprintf("%s:%d", f.RuleID, line)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		out = append(out, Finding{
			File:        name,
			Line:        line,
			RuleID:      "gitleaks:" + f.RuleID,
			Description: f.Description,
			Severity:    rules.SeverityWarning,
			Snippet:     snippet,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Line != out[j].Line {
			return out[i].Line < out[j].Line
		}
		return out[i].RuleID < out[j].RuleID
	})
	return out
}
