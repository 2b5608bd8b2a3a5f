// Package pattern detects and removes the fixed set of AI fingerprint
// writing patterns: em dashes and the "it's not X, it's Y" family of
// contrastive rhetoric constructions.
package pattern

import (
	"regexp"
	"strings"
)

// Severity classifies how strongly a rule marks text as machine-written.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// severityWeights feeds the count-weighted severity score.
var severityWeights = map[Severity]float64{
	SeverityCritical: 1.0,
	SeverityHigh:     0.8,
	SeverityMedium:   0.5,
	SeverityLow:      0.2,
}

// Weight returns the scoring weight for a severity, defaulting to medium for
// anything unrecognized.
func (s Severity) Weight() float64 {
	if w, ok := severityWeights[s]; ok {
		return w
	}
	return severityWeights[SeverityMedium]
}

// Span is a half-open [Start, End) byte range into the scanned text.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Rule is one immutable fingerprint pattern. The optional reject filter
// discards regexp matches the rule semantics exclude; RE2 has no lookahead,
// so exclusions like antithesis-without-"just" are expressed in code.
type Rule struct {
	ID          string
	Severity    Severity
	Description string

	re     *regexp.Regexp
	reject func(groups []string) bool
}

// Match returns all non-overlapping matches of the rule in text, left to
// right, as spans plus the matched substrings.
func (r *Rule) Match(text string) ([]Span, []string) {
	idx := r.re.FindAllStringSubmatchIndex(text, -1)
	if len(idx) == 0 {
		return nil, nil
	}

	spans := make([]Span, 0, len(idx))
	matched := make([]string, 0, len(idx))
	for _, m := range idx {
		if r.reject != nil {
			groups := make([]string, 0, len(m)/2)
			for g := 0; g < len(m); g += 2 {
				if m[g] < 0 {
					groups = append(groups, "")
					continue
				}
				groups = append(groups, text[m[g]:m[g+1]])
			}
			if r.reject(groups) {
				continue
			}
		}
		spans = append(spans, Span{Start: m[0], End: m[1]})
		matched = append(matched, text[m[0]:m[1]])
	}
	return spans, matched
}

// Rule IDs, in the sanitizer's fix order.
const (
	RuleEmDash             = "em_dash"
	RuleRhetoricalContrast = "rhetorical_contrast"
	RuleAntithesis         = "antithesis"
	RuleParadiastole       = "paradiastole"
	RuleReframingContrast  = "reframing_contrast"
	RuleChiasmus           = "chiasmus"
	RuleTaglineFrame       = "tagline_frame"
)

// The contrastive rules never match across sentence boundaries; the broad
// families additionally accept a dash as the clause separator, since a
// dash-separated contrast is the construction's most common form.
const (
	clause  = `[^.!?\n]`
	sepWide = `[,;:—–]`
)

// negatedStartsWithQualifier rejects antithesis matches whose negated phrase
// begins with just/merely/only; those belong to rhetorical_contrast.
func negatedStartsWithQualifier(groups []string) bool {
	if len(groups) < 2 {
		return false
	}
	x := strings.ToLower(strings.TrimSpace(groups[1]))
	return strings.HasPrefix(x, "just ") ||
		strings.HasPrefix(x, "merely ") ||
		strings.HasPrefix(x, "only ")
}

// library is the single canonical rule set, fixed at process start.
var library = []*Rule{
	{
		ID:          RuleEmDash,
		Severity:    SeverityCritical,
		Description: "Em dash usage creates robotic pauses",
		re:          regexp.MustCompile(`[—–]`),
	},
	{
		ID:          RuleRhetoricalContrast,
		Severity:    SeverityCritical,
		Description: "Rhetorical contrast creates artificial drama",
		re: regexp.MustCompile(
			`(?i)(?:it's|it is) not (?:just|merely|only)\s+` + clause + `+?\s*` + sepWide + `\s*(?:it's|it is|but)\s+` + clause + `+`),
	},
	{
		ID:          RuleAntithesis,
		Severity:    SeverityCritical,
		Description: "Antithesis creates false dichotomies",
		re: regexp.MustCompile(
			`(?i)(?:it's not|it is not|it isn't)\s+(` + clause + `+?)\s*` + sepWide + `\s*(?:it's|it is|but)\s+` + clause + `+`),
		reject: negatedStartsWithQualifier,
	},
	{
		ID:          RuleParadiastole,
		Severity:    SeverityCritical,
		Description: "Paradiastole reclassifies concepts disingenuously",
		re: regexp.MustCompile(
			`(?i)(?:it's not|it is not|it isn't)\s+(?:laziness|failure|mistake|problem)\b` + clause + `*?[,;]\s*(?:it's|it is|but)\s+` + clause + `+`),
	},
	{
		ID:          RuleReframingContrast,
		Severity:    SeverityCritical,
		Description: "Reframing contrast disconnects from reality",
		re: regexp.MustCompile(
			`(?i)(?:it's|it is) not (?:just|merely|only)\s+(?:a cost|an expense|a problem)\b` + clause + `*?[,;]\s*(?:it's|it is|but)\s+` + clause + `+`),
	},
	{
		ID:          RuleChiasmus,
		Severity:    SeverityCritical,
		Description: "Chiasmus creates contrived parallelism",
		re: regexp.MustCompile(
			`(?i)it's not what\s+` + clause + `+?\s+(?:does to you|makes you|gives you)` + clause + `*?[,;]\s*(?:it's|it is|but)\s+what you (?:do with|make of|get from)\s+` + clause + `+`),
	},
	{
		ID:          RuleTaglineFrame,
		Severity:    SeverityCritical,
		Description: "Tagline framing feels like corporate jargon",
		re: regexp.MustCompile(
			`(?i)(?:it's|it is) not (?:just|merely|only)\s+(?:a car|a product|a service|an app|a tool)\b` + clause + `*?[,;]\s*(?:it's|it is|but)\s+` + clause + `+`),
	},
}

// Library returns the fixed rule set in detection order.
func Library() []*Rule {
	return library
}

// RuleIDs returns the rule identifiers in detection order.
func RuleIDs() []string {
	ids := make([]string, len(library))
	for i, r := range library {
		ids[i] = r.ID
	}
	return ids
}
