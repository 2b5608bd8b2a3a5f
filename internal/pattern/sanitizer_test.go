package pattern

import (
	"strings"
	"testing"

	"github.com/inkwell-ai/inkwell/internal/model"
)

func newTestSanitizer() (*Detector, *Sanitizer) {
	d := NewDetector()
	return d, NewSanitizer(d)
}

func TestSanitize_EmDash(t *testing.T) {
	d, s := newTestSanitizer()

	text := "Progress—not perfection—matters."
	result := s.Sanitize(text, d.Detect(text), nil)

	if result.SanitizedText != "Progress, not perfection, matters." {
		t.Errorf("unexpected output: %q", result.SanitizedText)
	}
	if result.EditsApplied != 2 {
		t.Errorf("expected 2 edits, got %d", result.EditsApplied)
	}
	if result.ResidualViolations != 0 {
		t.Errorf("expected 0 residual violations, got %d", result.ResidualViolations)
	}
}

func TestSanitize_EmDash_PunctuationCollapse(t *testing.T) {
	d, s := newTestSanitizer()

	text := "We tried—."
	result := s.Sanitize(text, d.Detect(text), nil)

	if result.SanitizedText != "We tried." {
		t.Errorf("expected comma-period collapse, got %q", result.SanitizedText)
	}
}

func TestSanitize_RhetoricalContrast_DefaultTone(t *testing.T) {
	d, s := newTestSanitizer()

	text := "It's not just speed, it's reliability."
	result := s.Sanitize(text, d.Detect(text), nil)

	if result.SanitizedText != "Speed and reliability." {
		t.Errorf("unexpected output: %q", result.SanitizedText)
	}
	if result.ResidualViolations != 0 {
		t.Errorf("expected 0 residual violations, got %d", result.ResidualViolations)
	}
}

func TestSanitize_RhetoricalContrast_ToneVariants(t *testing.T) {
	d, s := newTestSanitizer()
	text := "It's not just speed, it's reliability."

	conversational := &model.BrandVoice{Tone: model.ToneConversational}
	result := s.Sanitize(text, d.Detect(text), conversational)
	if result.SanitizedText != "Beyond speed, reliability." {
		t.Errorf("conversational: unexpected output %q", result.SanitizedText)
	}

	professional := &model.BrandVoice{Tone: model.ToneProfessional}
	result = s.Sanitize(text, d.Detect(text), professional)
	if result.SanitizedText != "While speed is important, reliability." {
		t.Errorf("professional: unexpected output %q", result.SanitizedText)
	}
}

func TestSanitize_Antithesis(t *testing.T) {
	d, s := newTestSanitizer()

	text := "It's not a bug; it's a feature."
	result := s.Sanitize(text, d.Detect(text), nil)

	if result.SanitizedText != "Rather than a bug, a feature." {
		t.Errorf("unexpected output: %q", result.SanitizedText)
	}
	if result.ResidualViolations != 0 {
		t.Errorf("expected 0 residual violations, got %d", result.ResidualViolations)
	}
	if len(result.RulesFixed) != 1 || result.RulesFixed[0] != RuleAntithesis {
		t.Errorf("expected antithesis in rules fixed, got %v", result.RulesFixed)
	}
}

func TestSanitize_NoTerminator_LeftUntouched(t *testing.T) {
	d, s := newTestSanitizer()

	// The contrast runs into a newline before any sentence terminator, so
	// the rewrite cannot close the sentence and leaves it alone.
	text := "it's not just speed, it's reliability and\nmore below"
	report := d.Detect(text)
	if report.Count(RuleRhetoricalContrast) != 1 {
		t.Fatalf("precondition: expected detection, got %d", report.Count(RuleRhetoricalContrast))
	}

	result := s.Sanitize(text, report, nil)

	if result.SanitizedText != text {
		t.Errorf("expected text untouched, got %q", result.SanitizedText)
	}
	if result.EditsApplied != 0 {
		t.Errorf("expected 0 edits, got %d", result.EditsApplied)
	}
	if result.ResidualViolations != 1 {
		t.Errorf("expected 1 residual violation, got %d", result.ResidualViolations)
	}
}

func TestSanitize_Composite_NoResiduals(t *testing.T) {
	d, s := newTestSanitizer()

	texts := []string{
		"It's not just a product—it's a revolution! And it's not a bug; it's a feature.",
		"It's not laziness; it's strategic delegation.",
		"It's not what the tool does to you, it's what you do with it.",
		"It's not just a product, it's a revolution.",
		"It's not just a cost, it's an investment.",
		"Real progress—slow, steady—beats hype.",
	}

	for _, text := range texts {
		result := s.Sanitize(text, d.Detect(text), nil)
		if result.ResidualViolations != 0 {
			t.Errorf("%q: expected 0 residuals, got %d in %q", text, result.ResidualViolations, result.SanitizedText)
		}
		if result.EditsApplied == 0 {
			t.Errorf("%q: expected at least one edit", text)
		}
	}
}

func TestSanitize_CleanText_NoOp(t *testing.T) {
	d, s := newTestSanitizer()

	text := "This is a normal sentence. It is straightforward and clear."
	result := s.Sanitize(text, d.Detect(text), nil)

	if result.SanitizedText != text {
		t.Errorf("expected text unchanged, got %q", result.SanitizedText)
	}
	if result.EditsApplied != 0 {
		t.Errorf("expected 0 edits, got %d", result.EditsApplied)
	}
	if len(result.RulesFixed) != 0 {
		t.Errorf("expected no rules fixed, got %v", result.RulesFixed)
	}
}

func TestSanitize_DoesNotMutateReport(t *testing.T) {
	d, s := newTestSanitizer()

	text := "It's not just speed—it's reliability."
	report := d.Detect(text)
	before := report.TotalViolations

	_ = s.Sanitize(text, report, nil)

	if report.TotalViolations != before {
		t.Errorf("report mutated: %d -> %d", before, report.TotalViolations)
	}
}

func TestFixParadiastole_Template(t *testing.T) {
	_, s := newTestSanitizer()

	out, n := s.fixParadiastole("It's not laziness; it's strategic delegation.", nil)
	if n != 1 {
		t.Fatalf("expected 1 fix, got %d", n)
	}
	if out != "This isn't laziness; instead, strategic delegation." {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestFixReframingContrast_Template(t *testing.T) {
	_, s := newTestSanitizer()

	out, n := s.fixReframingContrast("It's not just a cost, it's an investment.", nil)
	if n != 1 {
		t.Fatalf("expected 1 fix, got %d", n)
	}
	if out != "While this involves a cost, it focuses on an investment." {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestFixChiasmus_Template(t *testing.T) {
	_, s := newTestSanitizer()

	out, n := s.fixChiasmus("It's not what money gives you, it's what you do with it.", nil)
	if n != 1 {
		t.Fatalf("expected 1 fix, got %d", n)
	}
	if out != "What matters is what you do with it." {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestFixTaglineFrame_Template(t *testing.T) {
	_, s := newTestSanitizer()

	out, n := s.fixTaglineFrame("It's not just an app, it's a movement.", nil)
	if n != 1 {
		t.Fatalf("expected 1 fix, got %d", n)
	}
	if out != "More than an app, this is about a movement." {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	d, s := newTestSanitizer()

	text := "It's not just a product—it's a revolution! And it's not a bug; it's a feature."
	first := s.Sanitize(text, d.Detect(text), nil)
	second := s.Sanitize(first.SanitizedText, d.Detect(first.SanitizedText), nil)

	if second.SanitizedText != first.SanitizedText {
		t.Errorf("sanitize not idempotent: %q -> %q", first.SanitizedText, second.SanitizedText)
	}
	if second.EditsApplied != 0 {
		t.Errorf("expected 0 edits on second pass, got %d", second.EditsApplied)
	}
	if !strings.Contains(first.SanitizedText, "feature") {
		t.Errorf("content lost in sanitization: %q", first.SanitizedText)
	}
}
