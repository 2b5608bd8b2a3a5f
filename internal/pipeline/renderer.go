package pipeline

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/inkwell-ai/inkwell/internal/model"
)

// Renderer turns session reports into their output formats.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// Renderer returns the pipeline's renderer.
func (p *Pipeline) Renderer() *Renderer {
	return p.renderer
}

// RenderJSON renders the full report as indented JSON.
func (r *Renderer) RenderJSON(report *model.SessionReport) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	return string(data), nil
}

// RenderMarkdown renders the report as a Markdown document with one section
// per platform.
func (r *Renderer) RenderMarkdown(report *model.SessionReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", report.Topic)
	fmt.Fprintf(&b, "- Session: %s\n", report.SessionID)
	fmt.Fprintf(&b, "- Generated: %s\n", report.GeneratedAt.Format("2006-01-02 15:04 UTC"))
	if report.Provider != "" {
		fmt.Fprintf(&b, "- Provider: %s (%s)\n", report.Provider, report.Model)
	}
	fmt.Fprintf(&b, "- Status: %s (%d revision(s))\n\n", report.Status, report.Revisions)

	for _, item := range report.Items {
		fmt.Fprintf(&b, "## %s\n\n", titleCase(item.Platform))
		fmt.Fprintf(&b, "%s\n\n", item.Text)
		fmt.Fprintf(&b, "> Authenticity %.1f | violations %d | edits %d",
			item.Authenticity, item.Violations, item.EditsApplied)
		if !item.Compliant {
			b.WriteString(" | NEEDS REVIEW")
		}
		b.WriteString("\n\n")
	}

	if r.includeFooter {
		b.WriteString("---\n_Generated by inkwell_\n")
	}

	return b.String()
}

// RenderSummary renders a compact terminal summary.
func (r *Renderer) RenderSummary(report *model.SessionReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Topic:     %s\n", report.Topic)
	fmt.Fprintf(&b, "Status:    %s\n", report.Status)
	fmt.Fprintf(&b, "Revisions: %d\n", report.Revisions)
	b.WriteString("\n")

	for _, item := range report.Items {
		mark := "ok"
		if !item.Compliant {
			mark = "REVIEW"
		}
		fmt.Fprintf(&b, "  %-10s %6s  authenticity %.1f, violations %d\n",
			item.Platform, mark, item.Authenticity, item.Violations)
	}

	return b.String()
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// RenderScanReport renders a detection-only report for the check command.
// byRule comes from a pattern report keyed by rule ID.
func RenderScanReport(total int, severity float64, byRule map[string]int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Violations:     %d\n", total)
	fmt.Fprintf(&b, "Severity score: %.2f\n", severity)

	ids := make([]string, 0, len(byRule))
	for id, count := range byRule {
		if count > 0 {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	if len(ids) > 0 {
		b.WriteString("\n")
		for _, id := range ids {
			fmt.Fprintf(&b, "  %-20s %d\n", id, byRule[id])
		}
	}

	return b.String()
}
