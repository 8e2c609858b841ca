package scan

import (
	"time"

	"github.com/adamaslan/leakgate/internal/rules"
)

// Target is one file to scan. Path locates the file on disk; Name is the
// repo-relative name used for reporting and exemption checks. For a scan run
// from the repository root the two are equal.
type Target struct {
	Path string
	Name string
}

// Finding reports one rule match. Snippet is the matched line truncated to
// the configured display width; the bare matched value is never carried
// separately, so a finding can be printed or serialized without exposing
// more of the secret than the line itself shows.
type Finding struct {
	File        string         `json:"file"`
	Line        int            `json:"line"`
	RuleID      string         `json:"rule_id"`
	Description string         `json:"description"`
	Severity    rules.Severity `json:"severity"`
	Snippet     string         `json:"snippet"`
}

// Skip records a file that was enumerated but not scanned.
type Skip struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// Result is the outcome of one scan. It is created at scan start, populated
// in a single pass, and consumed immediately to decide exit status; nothing
// about it persists across runs.
type Result struct {
	// Findings holds critical findings first, then warning findings,
	// each tier in pattern-major order.
	Findings []Finding `json:"findings"`

	CriticalCount int `json:"critical_count"`
	WarningCount  int `json:"warning_count"`

	// ConfigErrors lists rules that were excluded from the run.
	ConfigErrors []rules.ConfigError `json:"-"`

	// Degraded is set when no usable rules were available and checking
	// was skipped entirely.
	Degraded bool `json:"degraded,omitempty"`

	FilesScanned int    `json:"files_scanned"`
	FilesSkipped int    `json:"files_skipped"`
	Skips        []Skip `json:"-"`

	Duration time.Duration `json:"-"`
}

// Blocked reports whether the result must fail the commit.
// Warnings never block.
func (r *Result) Blocked() bool { return r.CriticalCount > 0 }

// ExitCode maps the result onto the hook exit contract: 1 blocks the
// commit, 0 allows it.
func (r *Result) ExitCode() int {
	if r.Blocked() {
		return 1
	}
	return 0
}

// HasFindings reports whether any tier produced findings.
func (r *Result) HasFindings() bool { return len(r.Findings) > 0 }
