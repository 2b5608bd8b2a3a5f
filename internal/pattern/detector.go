package pattern

import "sort"

// RuleReport is one rule's findings in a scanned text.
type RuleReport struct {
	Count       int      `json:"count"`
	Spans       []Span   `json:"spans,omitempty"`
	Matches     []string `json:"matches,omitempty"`
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
}

// Report is the complete detection result for one text. TotalViolations is
// always the sum of the per-rule counts; SeverityScore is the count-weighted
// mean of the matched rules' severity weights, 0 when the text is clean.
type Report struct {
	PerRule         map[string]RuleReport `json:"per_rule"`
	TotalViolations int                   `json:"total_violations"`
	SeverityScore   float64               `json:"severity_score"`
}

// Count returns the violation count for one rule, 0 for unknown rules.
func (r Report) Count(ruleID string) int {
	return r.PerRule[ruleID].Count
}

// Positions returns every violation span in the report, sorted by start.
func (r Report) Positions() []Span {
	var all []Span
	for _, rr := range r.PerRule {
		all = append(all, rr.Spans...)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Start != all[j].Start {
			return all[i].Start < all[j].Start
		}
		return all[i].End < all[j].End
	})
	return all
}

// Detector scans text against the fixed pattern library. Detection is a pure
// function of its input: no state, no side effects, and it never fails, even
// on empty input.
type Detector struct {
	rules []*Rule
}

// NewDetector creates a detector over the canonical library.
func NewDetector() *Detector {
	return &Detector{rules: Library()}
}

// Detect scans text and reports every rule's matches. Distinct rule families
// may independently claim overlapping regions; they represent different sins.
func (d *Detector) Detect(text string) Report {
	perRule := make(map[string]RuleReport, len(d.rules))

	total := 0
	weighted := 0.0
	for _, rule := range d.rules {
		spans, matches := rule.Match(text)

		perRule[rule.ID] = RuleReport{
			Count:       len(spans),
			Spans:       spans,
			Matches:     matches,
			Severity:    rule.Severity,
			Description: rule.Description,
		}

		total += len(spans)
		weighted += float64(len(spans)) * rule.Severity.Weight()
	}

	score := 0.0
	if total > 0 {
		score = weighted / float64(total)
	}

	return Report{
		PerRule:         perRule,
		TotalViolations: total,
		SeverityScore:   score,
	}
}
