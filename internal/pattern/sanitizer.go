package pattern

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/inkwell-ai/inkwell/internal/model"
)

// Result is the outcome of one sanitization pass. ResidualViolations comes
// from re-running the detector on the output; it is the correctness oracle
// for the rewrites and is never allowed to exceed the input report's total
// for a rule the sanitizer fixed.
type Result struct {
	SanitizedText      string   `json:"sanitized_text"`
	RulesFixed         []string `json:"rules_fixed"`
	EditsApplied       int      `json:"edits_applied"`
	ResidualViolations int      `json:"residual_violations"`

	FinalReport Report `json:"-"`
}

// Sanitizer applies deterministic rewrites per rule family. It is a pure
// transformation: the input text and report are never mutated, and a rewrite
// that fails to match an occurrence leaves it untouched rather than erroring.
type Sanitizer struct {
	detector *Detector
	fixers   []fixer
}

type fixer struct {
	rule  string
	apply func(text string, voice *model.BrandVoice) (string, int)
}

// NewSanitizer creates a sanitizer backed by the given detector.
func NewSanitizer(detector *Detector) *Sanitizer {
	s := &Sanitizer{detector: detector}
	// Structural fix first, then the contrastive-rhetoric families. Each
	// fixer re-applies its own pattern to the current text, so earlier
	// rewrites never leave later ones with stale offsets.
	s.fixers = []fixer{
		{RuleEmDash, s.fixEmDash},
		{RuleRhetoricalContrast, s.fixRhetoricalContrast},
		{RuleAntithesis, s.fixAntithesis},
		{RuleParadiastole, s.fixParadiastole},
		{RuleReframingContrast, s.fixReframingContrast},
		{RuleChiasmus, s.fixChiasmus},
		{RuleTaglineFrame, s.fixTaglineFrame},
	}
	return s
}

// Sanitize rewrites every rule family the report flags and re-validates the
// output with a fresh detection run.
func (s *Sanitizer) Sanitize(text string, report Report, voice *model.BrandVoice) Result {
	current := text
	var rulesFixed []string
	edits := 0

	for _, f := range s.fixers {
		if report.Count(f.rule) == 0 {
			continue
		}
		next, n := f.apply(current, voice)
		if n > 0 {
			current = next
			edits += n
			rulesFixed = append(rulesFixed, f.rule)
		}
	}

	final := s.detector.Detect(current)
	return Result{
		SanitizedText:      current,
		RulesFixed:         rulesFixed,
		EditsApplied:       edits,
		ResidualViolations: final.TotalViolations,
		FinalReport:        final,
	}
}

var (
	reDash        = regexp.MustCompile(`\s*[—–]\s*`)
	reDoubleComma = regexp.MustCompile(`,\s*,`)
	reCommaPeriod = regexp.MustCompile(`,\s*\.`)

	// The rewrite patterns capture the negated phrase, the asserted phrase,
	// and the sentence terminator so templates emit complete sentences. An
	// occurrence with no terminator is left untouched.
	reFixRhetorical = regexp.MustCompile(
		`(?i)(?:it's|it is) not (?:just|merely|only)\s+(` + clause + `+?)\s*` + sepWide + `\s*(?:it's|it is|but)\s+(` + clause + `+?)\s*([.!?]|$)`)
	reFixAntithesis = regexp.MustCompile(
		`(?i)(?:it's not|it is not|it isn't)\s+(` + clause + `+?)\s*` + sepWide + `\s*(?:it's|it is|but)\s+(` + clause + `+?)\s*([.!?]|$)`)
	reFixParadiastole = regexp.MustCompile(
		`(?i)(?:it's not|it is not|it isn't)\s+(laziness|failure|mistake|problem)\b` + clause + `*?[,;]\s*(?:it's|it is|but)\s+(` + clause + `+?)\s*([.!?]|$)`)
	reFixReframing = regexp.MustCompile(
		`(?i)(?:it's|it is) not (?:just|merely|only)\s+(a cost|an expense|a problem)\b` + clause + `*?[,;]\s*(?:it's|it is|but)\s+(` + clause + `+?)\s*([.!?]|$)`)
	reFixChiasmus = regexp.MustCompile(
		`(?i)it's not what\s+(` + clause + `+?)\s+(?:does to you|makes you|gives you)` + clause + `*?[,;]\s*(?:it's|it is|but)\s+what you (do with|make of|get from)\s+(` + clause + `+?)\s*([.!?]|$)`)
	reFixTagline = regexp.MustCompile(
		`(?i)(?:it's|it is) not (?:just|merely|only)\s+(a car|a product|a service|an app|a tool)\b` + clause + `*?[,;]\s*(?:it's|it is|but)\s+(` + clause + `+?)\s*([.!?]|$)`)
)

// fixEmDash replaces each dash with a comma pause and collapses any
// punctuation doubling the substitution produced.
func (s *Sanitizer) fixEmDash(text string, _ *model.BrandVoice) (string, int) {
	n := len(reDash.FindAllString(text, -1))
	if n == 0 {
		return text, 0
	}
	out := reDash.ReplaceAllString(text, ", ")
	out = reDoubleComma.ReplaceAllString(out, ",")
	out = reCommaPeriod.ReplaceAllString(out, ".")
	return out, n
}

func (s *Sanitizer) fixRhetoricalContrast(text string, voice *model.BrandVoice) (string, int) {
	return replaceAllSubmatch(reFixRhetorical, text, func(g []string) (string, bool) {
		x, y, p := g[1], g[2], terminator(g[3])
		if voice != nil {
			switch voice.Tone {
			case model.ToneConversational:
				return "Beyond " + x + ", " + y + p, true
			case model.ToneProfessional:
				return "While " + x + " is important, " + y + p, true
			}
		}
		return upperFirst(x) + " and " + y + p, true
	})
}

func (s *Sanitizer) fixAntithesis(text string, _ *model.BrandVoice) (string, int) {
	return replaceAllSubmatch(reFixAntithesis, text, func(g []string) (string, bool) {
		if negatedStartsWithQualifier(g) {
			return "", false
		}
		return "Rather than " + g[1] + ", " + g[2] + terminator(g[3]), true
	})
}

func (s *Sanitizer) fixParadiastole(text string, _ *model.BrandVoice) (string, int) {
	return replaceAllSubmatch(reFixParadiastole, text, func(g []string) (string, bool) {
		return "This isn't " + strings.ToLower(g[1]) + "; instead, " + g[2] + terminator(g[3]), true
	})
}

func (s *Sanitizer) fixReframingContrast(text string, _ *model.BrandVoice) (string, int) {
	return replaceAllSubmatch(reFixReframing, text, func(g []string) (string, bool) {
		return "While this involves " + strings.ToLower(g[1]) + ", it focuses on " + g[2] + terminator(g[3]), true
	})
}

func (s *Sanitizer) fixChiasmus(text string, _ *model.BrandVoice) (string, int) {
	return replaceAllSubmatch(reFixChiasmus, text, func(g []string) (string, bool) {
		return "What matters is what you " + strings.ToLower(g[2]) + " " + g[3] + terminator(g[4]), true
	})
}

func (s *Sanitizer) fixTaglineFrame(text string, _ *model.BrandVoice) (string, int) {
	return replaceAllSubmatch(reFixTagline, text, func(g []string) (string, bool) {
		return "More than " + strings.ToLower(g[1]) + ", this is about " + g[2] + terminator(g[3]), true
	})
}

// replaceAllSubmatch rewrites every match of re in text via repl. A repl
// returning ok=false leaves that occurrence untouched and uncounted.
func replaceAllSubmatch(re *regexp.Regexp, text string, repl func(groups []string) (string, bool)) (string, int) {
	idxs := re.FindAllStringSubmatchIndex(text, -1)
	if len(idxs) == 0 {
		return text, 0
	}

	var b strings.Builder
	last, n := 0, 0
	for _, m := range idxs {
		groups := make([]string, 0, len(m)/2)
		for g := 0; g < len(m); g += 2 {
			if m[g] < 0 {
				groups = append(groups, "")
				continue
			}
			groups = append(groups, text[m[g]:m[g+1]])
		}

		out, ok := repl(groups)
		if !ok {
			continue
		}
		b.WriteString(text[last:m[0]])
		b.WriteString(out)
		last = m[1]
		n++
	}
	b.WriteString(text[last:])
	return b.String(), n
}

// terminator normalizes the captured sentence ending; end-of-input becomes a
// period so templates always close the sentence.
func terminator(p string) string {
	if p == "" {
		return "."
	}
	return p
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
