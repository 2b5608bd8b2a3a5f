package pipeline

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/inkwell-ai/inkwell/internal/model"
)

func sampleReport() *model.SessionReport {
	return &model.SessionReport{
		SessionID:   "abc-123",
		Topic:       "product launch",
		GeneratedAt: time.Date(2025, 3, 1, 12, 30, 0, 0, time.UTC),
		Provider:    "openai",
		Model:       "gpt-4o-mini",
		Status:      "pass",
		Reason:      "all content meets authenticity and quality standards",
		Revisions:   1,
		Items: []model.ItemReport{
			{
				Platform:     "twitter",
				Text:         "Short launch post.",
				Authenticity: 88.5,
				Violations:   0,
				EditsApplied: 2,
				Compliant:    true,
			},
			{
				Platform:     "linkedin",
				Text:         "Longer launch post.",
				Authenticity: 72.0,
				Violations:   1,
				Compliant:    false,
			},
		},
	}
}

func TestRenderJSON_RoundTrips(t *testing.T) {
	r := NewRenderer(true)

	out, err := r.RenderJSON(sampleReport())
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var decoded model.SessionReport
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.SessionID != "abc-123" || len(decoded.Items) != 2 {
		t.Errorf("unexpected decoded report: %+v", decoded)
	}
}

func TestRenderMarkdown(t *testing.T) {
	r := NewRenderer(true)
	out := r.RenderMarkdown(sampleReport())

	for _, want := range []string{
		"# product launch",
		"- Session: abc-123",
		"- Provider: openai (gpt-4o-mini)",
		"- Status: pass (1 revision(s))",
		"## Twitter",
		"Short launch post.",
		"> Authenticity 88.5 | violations 0 | edits 2",
		"## Linkedin",
		"NEEDS REVIEW",
		"_Generated by inkwell_",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q:\n%s", want, out)
		}
	}
}

func TestRenderMarkdown_NoFooter(t *testing.T) {
	r := NewRenderer(false)
	out := r.RenderMarkdown(sampleReport())
	if strings.Contains(out, "_Generated by inkwell_") {
		t.Error("footer must be suppressed")
	}
}

func TestRenderMarkdown_NoProviderLine(t *testing.T) {
	report := sampleReport()
	report.Provider = ""
	out := NewRenderer(false).RenderMarkdown(report)
	if strings.Contains(out, "- Provider:") {
		t.Error("provider line must be omitted when unset")
	}
}

func TestRenderSummary(t *testing.T) {
	out := NewRenderer(true).RenderSummary(sampleReport())

	for _, want := range []string{
		"Topic:     product launch",
		"Status:    pass",
		"Revisions: 1",
		"twitter",
		"REVIEW",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestRenderScanReport(t *testing.T) {
	out := RenderScanReport(3, 1.0, map[string]int{
		"em_dash":             2,
		"antithesis":          1,
		"rhetorical_contrast": 0,
	})

	if !strings.Contains(out, "Violations:     3") {
		t.Errorf("missing total:\n%s", out)
	}
	if !strings.Contains(out, "Severity score: 1.00") {
		t.Errorf("missing severity:\n%s", out)
	}
	// zero-count rules are omitted, the rest sorted
	if strings.Contains(out, "rhetorical_contrast") {
		t.Errorf("zero-count rule must be omitted:\n%s", out)
	}
	antithesisAt := strings.Index(out, "antithesis")
	emDashAt := strings.Index(out, "em_dash")
	if antithesisAt < 0 || emDashAt < 0 || antithesisAt > emDashAt {
		t.Errorf("expected sorted rule listing:\n%s", out)
	}
}

func TestTitleCase(t *testing.T) {
	if got := titleCase("twitter"); got != "Twitter" {
		t.Errorf("got %q", got)
	}
	if got := titleCase(""); got != "" {
		t.Errorf("got %q", got)
	}
}
