package rules

import (
	"fmt"
	"strings"
)

// Severity classifies how a matched rule is treated. Critical findings block
// the commit; warning findings inform but never block.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
)

// Rank returns a numeric rank for ordering (critical=2, warning=1, unknown=0).
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 2
	case SeverityWarning:
		return 1
	default:
		return 0
	}
}

func (s Severity) String() string { return string(s) }

// Blocking reports whether findings of this severity fail the run.
func (s Severity) Blocking() bool { return s == SeverityCritical }

// ParseSeverity parses a severity name case-insensitively. "warn" is
// accepted as an alias for "warning".
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "critical":
		return SeverityCritical, nil
	case "warning", "warn":
		return SeverityWarning, nil
	default:
		return "", fmt.Errorf("invalid severity %q (want critical or warning)", s)
	}
}
