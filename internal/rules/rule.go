package rules

import (
	"errors"
	"fmt"
	"regexp"
)

// Rule defines a single detection pattern.
type Rule struct {
	// ID is the unique identifier for this rule
	ID string `toml:"id" json:"id"`

	// Description is the human-readable label shown next to findings
	Description string `toml:"description" json:"description"`

	// Pattern is the regular expression tested against file content
	Pattern string `toml:"pattern" json:"pattern"`

	// Severity is the tier the rule belongs to (critical or warning)
	Severity Severity `toml:"severity" json:"severity"`
}

// Compiled pairs a rule with its compiled pattern.
type Compiled struct {
	Rule
	Regexp *regexp.Regexp
}

// ConfigError records a rule or allowlist entry that could not be used.
// One is produced per bad entry; the rest of the set still applies.
type ConfigError struct {
	RuleID string
	Err    error
}

func (e ConfigError) Error() string {
	return fmt.Sprintf("rule %s: %v", e.RuleID, e.Err)
}

func (e ConfigError) Unwrap() error { return e.Err }

// Ruleset holds the compiled rules for one run, split by tier. Order within
// each tier follows declaration order, which fixes reporting order.
type Ruleset struct {
	Critical []Compiled
	Warning  []Compiled

	allow      []*regexp.Regexp
	allowPaths []*regexp.Regexp
}

// Compile builds a Ruleset from rule definitions and an allowlist.
//
// Invalid entries are dropped fail-open: each produces one ConfigError and
// the remaining entries still apply. A rule with a missing ID or pattern, an
// unknown severity, or a pattern that does not compile is excluded without
// aborting the run.
func Compile(defs []Rule, allow Allowlist) (*Ruleset, []ConfigError) {
	rs := &Ruleset{}
	var errs []ConfigError

	for i, def := range defs {
		id := def.ID
		if id == "" {
			errs = append(errs, ConfigError{
				RuleID: fmt.Sprintf("rules[%d]", i),
				Err:    errors.New("missing rule id"),
			})
			continue
		}
		if def.Pattern == "" {
			errs = append(errs, ConfigError{RuleID: id, Err: errors.New("missing pattern")})
			continue
		}
		sev, err := ParseSeverity(string(def.Severity))
		if err != nil {
			errs = append(errs, ConfigError{RuleID: id, Err: err})
			continue
		}
		re, err := regexp.Compile(def.Pattern)
		if err != nil {
			errs = append(errs, ConfigError{
				RuleID: id,
				Err:    fmt.Errorf("%w: %v", ErrInvalidRegex, err),
			})
			continue
		}

		c := Compiled{Rule: def, Regexp: re}
		c.Severity = sev
		switch sev {
		case SeverityCritical:
			rs.Critical = append(rs.Critical, c)
		case SeverityWarning:
			rs.Warning = append(rs.Warning, c)
		}
	}

	for i, pat := range allow.Regexes {
		re, err := regexp.Compile(pat)
		if err != nil {
			errs = append(errs, ConfigError{
				RuleID: fmt.Sprintf("allowlist.regexes[%d]", i),
				Err:    fmt.Errorf("%w: %v", ErrInvalidRegex, err),
			})
			continue
		}
		rs.allow = append(rs.allow, re)
	}
	for i, pat := range allow.Paths {
		re, err := regexp.Compile(pat)
		if err != nil {
			errs = append(errs, ConfigError{
				RuleID: fmt.Sprintf("allowlist.paths[%d]", i),
				Err:    fmt.Errorf("%w: %v", ErrInvalidRegex, err),
			})
			continue
		}
		rs.allowPaths = append(rs.allowPaths, re)
	}

	return rs, errs
}

// Tier returns the compiled rules of one severity tier.
func (rs *Ruleset) Tier(sev Severity) []Compiled {
	if sev == SeverityCritical {
		return rs.Critical
	}
	return rs.Warning
}

// All returns the critical tier followed by the warning tier.
func (rs *Ruleset) All() []Compiled {
	out := make([]Compiled, 0, len(rs.Critical)+len(rs.Warning))
	out = append(out, rs.Critical...)
	out = append(out, rs.Warning...)
	return out
}

// Len returns the number of usable rules across both tiers.
func (rs *Ruleset) Len() int { return len(rs.Critical) + len(rs.Warning) }

// Empty reports whether no usable rules survived compilation.
func (rs *Ruleset) Empty() bool { return rs.Len() == 0 }

// Allowed reports whether a matched string is suppressed by the content
// allowlist.
func (rs *Ruleset) Allowed(match string) bool {
	for _, re := range rs.allow {
		if re.MatchString(match) {
			return true
		}
	}
	return false
}

// PathAllowed reports whether a path is excluded from scanning entirely.
// Both tiers honor path allowlist entries: they express a deliberate
// project-level decision, unlike the built-in documentation conventions
// which only relax the warning tier.
func (rs *Ruleset) PathAllowed(path string) bool {
	for _, re := range rs.allowPaths {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}

// Without returns defs minus any rule whose ID appears in ids.
func Without(defs []Rule, ids []string) []Rule {
	if len(ids) == 0 {
		return defs
	}
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	out := make([]Rule, 0, len(defs))
	for _, def := range defs {
		if _, ok := drop[def.ID]; ok {
			continue
		}
		out = append(out, def)
	}
	return out
}
