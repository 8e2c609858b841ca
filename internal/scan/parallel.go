package scan

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// runParallel fans per-file work out across a bounded pool. Each worker
// matches both tiers speculatively; assemble applies the short-circuit
// afterward, so ordering and content are identical to the sequential pass.
func (s *Scanner) runParallel(ctx context.Context, targets []Target) ([]fileResult, error) {
	frs := make([]fileResult, len(targets))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)
	for i, t := range targets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			frs[i] = s.processFile(t)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return frs, nil
}

// processFile is the per-worker unit: load, match criticals, and, unless
// the file is warning-exempt, match warnings and the extended tier.
func (s *Scanner) processFile(t Target) fileResult {
	fr := fileResult{target: t}

	content, reason := s.load(t)
	if reason != "" {
		fr.skipped = true
		fr.reason = reason
		return fr
	}

	fr.critical = s.matchTier(content, s.rules.Critical)
	if !warningExempt(t.Name) {
		fr.warning = s.matchTier(content, s.rules.Warning)
		fr.extended = s.extendedFindings(t.Name, content)
	}
	return fr
}
