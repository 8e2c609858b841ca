package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/adamaslan/leakgate/internal/rules"
	"github.com/adamaslan/leakgate/internal/scan"
)

// Meta carries run identity stamped into the JSON report.
type Meta struct {
	Version    string
	Repository string
	Branch     string
}

// Run is the machine-readable report for one scan.
type Run struct {
	RunID         string         `json:"run_id"`
	CreatedAt     time.Time      `json:"created_at"`
	Version       string         `json:"version,omitempty"`
	Repository    string         `json:"repository,omitempty"`
	Branch        string         `json:"branch,omitempty"`
	FilesScanned  int            `json:"files_scanned"`
	FilesSkipped  int            `json:"files_skipped"`
	CriticalCount int            `json:"critical_count"`
	WarningCount  int            `json:"warning_count"`
	Blocked       bool           `json:"blocked"`
	Degraded      bool           `json:"degraded,omitempty"`
	DurationMS    int64          `json:"duration_ms"`
	Findings      []scan.Finding `json:"findings"`
	ConfigErrors  []RunError     `json:"config_errors,omitempty"`
}

// RunError is the serialized form of a dropped-rule configuration error.
type RunError struct {
	RuleID string `json:"rule_id"`
	Error  string `json:"error"`
}

// NewRun assembles the report document for one result. Each run gets a
// fresh UUID so downstream collectors can dedupe re-submissions.
func NewRun(res *scan.Result, meta Meta) *Run {
	findings := res.Findings
	if findings == nil {
		findings = []scan.Finding{}
	}
	return &Run{
		RunID:         uuid.NewString(),
		CreatedAt:     time.Now().UTC(),
		Version:       meta.Version,
		Repository:    meta.Repository,
		Branch:        meta.Branch,
		FilesScanned:  res.FilesScanned,
		FilesSkipped:  res.FilesSkipped,
		CriticalCount: res.CriticalCount,
		WarningCount:  res.WarningCount,
		Blocked:       res.Blocked(),
		Degraded:      res.Degraded,
		DurationMS:    res.Duration.Milliseconds(),
		Findings:      findings,
		ConfigErrors:  runErrors(res.ConfigErrors),
	}
}

func runErrors(errs []rules.ConfigError) []RunError {
	if len(errs) == 0 {
		return nil
	}
	out := make([]RunError, 0, len(errs))
	for _, e := range errs {
		out = append(out, RunError{RuleID: e.RuleID, Error: e.Err.Error()})
	}
	return out
}

// WriteJSON writes the indented report document to w.
func WriteJSON(w io.Writer, res *scan.Result, meta Meta) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewRun(res, meta)); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}
