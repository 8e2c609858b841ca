package scan

import (
	"bytes"
	"context"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/zricethezav/gitleaks/v8/detect"

	"github.com/adamaslan/leakgate/internal/rules"
)

const (
	// DefaultWidth is the display width findings are truncated to.
	DefaultWidth = 76

	// DefaultMaxFileSize caps how much of a staged file is considered
	// scannable. Larger files are skipped, not truncated.
	DefaultMaxFileSize = 1 << 20

	minWidth = 16
)

// Options control a Scanner.
type Options struct {
	// Width is the maximum rune width of a finding snippet.
	Width int

	// Workers > 1 fans file matching out across a bounded worker pool.
	// Output ordering is identical in both modes.
	Workers int

	// MaxFileSize in bytes; larger staged files are skipped.
	MaxFileSize int64

	// Extended additionally runs content through the gitleaks
	// default-config detector. Its findings are advisory: always warning
	// tier, never blocking.
	Extended bool

	// AllTiers disables the critical-tier short-circuit so warnings are
	// reported even when criticals exist. Watch mode sets this; the hook
	// path never does.
	AllTiers bool
}

// DefaultOptions returns the options used by the pre-commit hook path.
func DefaultOptions() Options {
	return Options{
		Width:       DefaultWidth,
		Workers:     1,
		MaxFileSize: DefaultMaxFileSize,
	}
}

func (o Options) normalized() Options {
	if o.Width < minWidth {
		o.Width = DefaultWidth
	}
	if o.Workers < 1 {
		o.Workers = 1
	}
	if o.MaxFileSize <= 0 {
		o.MaxFileSize = DefaultMaxFileSize
	}
	return o
}

// Scanner matches staged content against a compiled ruleset. It is
// stateless across Scan calls and safe for concurrent use.
type Scanner struct {
	rules    *rules.Ruleset
	confErrs []rules.ConfigError
	opts     Options
	detector *detect.Detector
}

// New builds a Scanner. confErrs carries compilation errors from the
// ruleset so they surface on every Result. A failure to construct the
// extended detector degrades to one more config error rather than an
// unusable scanner.
func New(rs *rules.Ruleset, confErrs []rules.ConfigError, opts Options) *Scanner {
	s := &Scanner{
		rules:    rs,
		confErrs: confErrs,
		opts:     opts.normalized(),
	}
	if s.opts.Extended {
		d, err := detect.NewDetectorDefaultConfig()
		if err != nil {
			s.confErrs = append(s.confErrs, rules.ConfigError{RuleID: "gitleaks", Err: err})
		} else {
			s.detector = d
		}
	}
	return s
}

// fileMatch is the first allowed match of one rule in one file.
type fileMatch struct {
	rule    int
	line    int
	snippet string
}

// fileResult collects everything matching produced for one target.
type fileResult struct {
	target   Target
	skipped  bool
	reason   string
	critical []fileMatch
	warning  []fileMatch
	extended []Finding
}

// Scan evaluates every target against the ruleset and returns the combined
// result. Targets are scanned in lexical name order regardless of input
// order. The returned error is non-nil only on context cancellation; file
// trouble is absorbed into skip counters per the fail-open contract.
func (s *Scanner) Scan(ctx context.Context, targets []Target) (*Result, error) {
	start := time.Now()
	result := &Result{ConfigErrors: s.confErrs}

	if s.rules.Empty() {
		result.Degraded = true
		result.Duration = time.Since(start)
		return result, nil
	}

	sorted := make([]Target, len(targets))
	copy(sorted, targets)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	var (
		frs []fileResult
		err error
	)
	if s.opts.Workers > 1 {
		frs, err = s.runParallel(ctx, sorted)
	} else {
		frs, err = s.runSequential(ctx, sorted)
	}
	if err != nil {
		return nil, err
	}

	s.assemble(result, frs)
	result.Duration = time.Since(start)
	return result, nil
}

// runSequential is the default single-threaded pass: each file is loaded
// and matched in order. The warning tier runs only when the critical tier
// found nothing in any file.
func (s *Scanner) runSequential(ctx context.Context, targets []Target) ([]fileResult, error) {
	frs := make([]fileResult, len(targets))
	contents := make([]string, len(targets))

	criticals := 0
	for i, t := range targets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		frs[i] = fileResult{target: t}
		content, reason := s.load(t)
		if reason != "" {
			frs[i].skipped = true
			frs[i].reason = reason
			continue
		}
		contents[i] = content
		frs[i].critical = s.matchTier(content, s.rules.Critical)
		criticals += len(frs[i].critical)
	}
	if criticals > 0 && !s.opts.AllTiers {
		return frs, nil
	}

	for i := range frs {
		if frs[i].skipped || warningExempt(frs[i].target.Name) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		frs[i].warning = s.matchTier(contents[i], s.rules.Warning)
		frs[i].extended = s.extendedFindings(frs[i].target.Name, contents[i])
	}
	return frs, nil
}

// matchTier finds, for each rule in the tier, the first match the content
// allowlist does not suppress. At most one match per rule is kept.
func (s *Scanner) matchTier(content string, tier []rules.Compiled) []fileMatch {
	var out []fileMatch
	for i, rule := range tier {
		for _, loc := range rule.Regexp.FindAllStringIndex(content, -1) {
			if s.rules.Allowed(content[loc[0]:loc[1]]) {
				continue
			}
			out = append(out, fileMatch{
				rule:    i,
				line:    strings.Count(content[:loc[0]], "\n") + 1,
				snippet: truncate(lineAt(content, loc[0]), s.opts.Width),
			})
			break
		}
	}
	return out
}

// assemble flattens per-file matches into the Result in pattern-major
// order: for each rule in declared order, every file's match in name order.
// The short-circuit lives here so the parallel mode, which matches both
// tiers speculatively, reports exactly what the sequential mode would.
func (s *Scanner) assemble(result *Result, frs []fileResult) {
	for _, fr := range frs {
		if fr.skipped {
			result.FilesSkipped++
			result.Skips = append(result.Skips, Skip{Name: fr.target.Name, Reason: fr.reason})
			continue
		}
		result.FilesScanned++
	}

	for r := range s.rules.Critical {
		for _, fr := range frs {
			for _, m := range fr.critical {
				if m.rule != r {
					continue
				}
				result.Findings = append(result.Findings, newFinding(fr.target.Name, s.rules.Critical[r], m))
				result.CriticalCount++
			}
		}
	}
	if result.CriticalCount > 0 && !s.opts.AllTiers {
		return
	}

	for r := range s.rules.Warning {
		for _, fr := range frs {
			for _, m := range fr.warning {
				if m.rule != r {
					continue
				}
				result.Findings = append(result.Findings, newFinding(fr.target.Name, s.rules.Warning[r], m))
				result.WarningCount++
			}
		}
	}
	for _, fr := range frs {
		result.Findings = append(result.Findings, fr.extended...)
		result.WarningCount += len(fr.extended)
	}
}

func newFinding(name string, rule rules.Compiled, m fileMatch) Finding {
	return Finding{
		File:        name,
		Line:        m.line,
		RuleID:      rule.ID,
		Description: rule.Description,
		Severity:    rule.Severity,
		Snippet:     m.snippet,
	}
}

// load reads one target, deciding whether it is scannable. An empty reason
// means the content is usable. Vanished files are an expected race with
// other tooling, not an error.
func (s *Scanner) load(t Target) (content, reason string) {
	if s.rules.PathAllowed(t.Name) {
		return "", "allowlisted path"
	}
	fi, err := os.Stat(t.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", "vanished"
		}
		return "", "unreadable"
	}
	if !fi.Mode().IsRegular() {
		return "", "not a regular file"
	}
	if fi.Size() > s.opts.MaxFileSize {
		return "", "exceeds size limit"
	}
	data, err := os.ReadFile(t.Path)
	if err != nil {
		return "", "unreadable"
	}
	if bytes.IndexByte(data, 0) >= 0 {
		return "", "binary"
	}
	return string(data), ""
}

// lineAt returns the full line containing byte offset pos, with trailing
// whitespace and carriage returns stripped.
func lineAt(content string, pos int) string {
	start := strings.LastIndexByte(content[:pos], '\n') + 1
	end := strings.IndexByte(content[pos:], '\n')
	if end < 0 {
		end = len(content)
	} else {
		end += pos
	}
	return strings.TrimRight(content[start:end], " \t\r")
}

// truncate caps line at width runes. Longer content keeps a strict prefix
// and gains an ellipsis so the total never exceeds width.
func truncate(line string, width int) string {
	runes := []rune(line)
	if len(runes) <= width {
		return line
	}
	return string(runes[:width-3]) + "..."
}
