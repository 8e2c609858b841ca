package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"

	"github.com/adamaslan/leakgate/internal/rules"
	"github.com/adamaslan/leakgate/internal/scan"
)

// Console renders results as human-readable blocks on one writer.
type Console struct {
	w     io.Writer
	s     styles
	quiet bool
}

type styles struct {
	critical lipgloss.Style
	warning  lipgloss.Style
	location lipgloss.Style
	pass     lipgloss.Style
	fail     lipgloss.Style
	dim      lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		critical: r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		warning:  r.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		location: r.NewStyle().Bold(true),
		pass:     r.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),
		fail:     r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		dim:      r.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// NewConsole builds a renderer for w. The color profile is pinned up
// front so output is identical whether or not w is a terminal; the
// caller decides color from its mode flag, NO_COLOR, and TTY state.
// With quiet set, clean passes print nothing at all.
func NewConsole(w io.Writer, color, quiet bool) *Console {
	renderer := lipgloss.NewRenderer(w)
	if color {
		renderer.SetColorProfile(termenv.ANSI256)
	} else {
		renderer.SetColorProfile(termenv.Ascii)
	}
	return &Console{w: w, s: newStyles(renderer), quiet: quiet}
}

// Render prints the full report for one scan: degraded notice, header,
// finding blocks, status line.
func (c *Console) Render(res *scan.Result) {
	if res.Degraded {
		fmt.Fprintln(c.w, c.s.warning.Render("leakgate: no usable rules, secret checking was skipped"))
	}
	if c.quiet && !res.HasFindings() {
		return
	}
	if !c.quiet {
		fmt.Fprintln(c.w, c.s.dim.Render(c.header(res)))
	}
	if res.HasFindings() {
		fmt.Fprintln(c.w)
		c.RenderFindings(res.Findings)
	}
	c.renderStatus(res)
}

// RenderFindings prints finding blocks without the surrounding summary.
// Watch mode uses this directly for incremental output.
func (c *Console) RenderFindings(findings []scan.Finding) {
	for _, f := range findings {
		tag := c.s.warning
		if f.Severity == rules.SeverityCritical {
			tag = c.s.critical
		}
		fmt.Fprintf(c.w, "%s  %s  %s %s\n",
			tag.Render(fmt.Sprintf("%-8s", strings.ToUpper(f.Severity.String()))),
			c.s.location.Render(fmt.Sprintf("%s:%d", f.File, f.Line)),
			f.Description,
			c.s.dim.Render("("+f.RuleID+")"),
		)
		fmt.Fprintf(c.w, "    %s\n\n", f.Snippet)
	}
}

func (c *Console) header(res *scan.Result) string {
	h := fmt.Sprintf("leakgate: checked %s in %dms",
		plural(res.FilesScanned, "file"), res.Duration.Milliseconds())
	if res.FilesSkipped > 0 {
		h += fmt.Sprintf(" (%d skipped)", res.FilesSkipped)
	}
	return h
}

func (c *Console) renderStatus(res *scan.Result) {
	switch {
	case res.Blocked():
		fmt.Fprintf(c.w, "%s - %s\n",
			c.s.fail.Render("leakgate: BLOCKED"),
			plural(res.CriticalCount, "critical finding"))
		fmt.Fprintln(c.w, c.s.dim.Render("  remove the secrets and re-stage, or bypass once with: git commit --no-verify"))
	case res.WarningCount > 0:
		fmt.Fprintf(c.w, "%s - %s (advisory, never blocking)\n",
			c.s.pass.Render("leakgate: pass"),
			plural(res.WarningCount, "warning"))
	default:
		fmt.Fprintf(c.w, "%s - no findings\n", c.s.pass.Render("leakgate: pass"))
	}
}

// RenderRules prints the effective ruleset as a table, then any entries
// that were dropped during compilation.
func (c *Console) RenderRules(rs *rules.Ruleset, confErrs []rules.ConfigError) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(c.s.dim).
		StyleFunc(func(_, _ int) lipgloss.Style {
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers("ID", "SEVERITY", "DESCRIPTION")
	for _, r := range rs.All() {
		t.Row(r.ID, r.Severity.String(), r.Description)
	}
	fmt.Fprintln(c.w, t.Render())
	fmt.Fprintf(c.w, "%s (%d critical, %d warning)\n",
		plural(rs.Len(), "rule"), len(rs.Critical), len(rs.Warning))
	for _, e := range confErrs {
		fmt.Fprintln(c.w, c.s.warning.Render("skipped "+e.Error()))
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
