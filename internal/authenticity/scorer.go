// Package authenticity composes detector output with secondary text
// heuristics into the single 0-100 score the compliance gate uses.
package authenticity

import (
	"math"
	"regexp"
	"strings"

	"github.com/inkwell-ai/inkwell/internal/model"
	"github.com/inkwell-ai/inkwell/internal/pattern"
)

// Component metric names.
const (
	MetricPatternElimination = "pattern_elimination"
	MetricNaturalFlow        = "natural_flow"
	MetricEngagementQuality  = "engagement_quality"
	MetricBrandAlignment     = "brand_alignment"
	MetricHumanQuality       = "human_quality"
)

// Weights is the fixed component weighting; it sums to 1.0.
var Weights = map[string]float64{
	MetricPatternElimination: 0.30,
	MetricNaturalFlow:        0.20,
	MetricEngagementQuality:  0.20,
	MetricBrandAlignment:     0.15,
	MetricHumanQuality:       0.15,
}

// Score is the composed authenticity verdict for one text.
type Score struct {
	Overall    float64            `json:"overall"`
	Components map[string]float64 `json:"components"`
	Weights    map[string]float64 `json:"weights"`
}

// Scorer evaluates text authenticity. Same text and brand voice always
// produce the same score.
type Scorer struct {
	detector *pattern.Detector
}

// NewScorer creates a scorer backed by the given detector.
func NewScorer(detector *pattern.Detector) *Scorer {
	return &Scorer{detector: detector}
}

var (
	reSentenceEnd = regexp.MustCompile(`[.!?]+`)
	rePronoun     = regexp.MustCompile(`(?i)\b(i|we|us|our|you)\b`)
	reContraction = regexp.MustCompile(`\b\w+'\w+\b`)
	reCTAVerb     = regexp.MustCompile(`(?i)\b(learn more|discover|explore|try|click|visit|read more|sign up|subscribe)\b`)
	reCTAInvite   = regexp.MustCompile(`(?i)\b(let's|we should|you can|why not)\b`)
)

var transitionWords = []string{
	"however", "therefore", "meanwhile", "furthermore", "indeed", "nevertheless",
}

var conversationalMarkers = []string{
	"hey", "hi", "hello", "thanks", "thank you", "please", "sorry",
	"actually", "basically", "literally", "honestly", "frankly",
}

// Evaluate computes all five components and the weighted overall score. A nil
// voice is allowed; brand-dependent bonuses then fall back to their neutral
// defaults.
func (s *Scorer) Evaluate(text string, voice *model.BrandVoice) Score {
	report := s.detector.Detect(text)

	components := map[string]float64{
		MetricPatternElimination: patternElimination(report),
		MetricNaturalFlow:        naturalFlow(text),
		MetricEngagementQuality:  engagementQuality(text, voice),
		MetricBrandAlignment:     brandAlignment(text, voice),
		MetricHumanQuality:       humanQuality(text),
	}

	overall := 0.0
	for name, weight := range Weights {
		overall += components[name] * weight
	}

	return Score{
		Overall:    round2(overall),
		Components: components,
		Weights:    Weights,
	}
}

// patternElimination loses 10 points per remaining violation, floored at 0.
func patternElimination(report pattern.Report) float64 {
	return math.Max(0, 100-float64(report.TotalViolations)*10)
}

// naturalFlow averages sentence-length variety with discourse-connective
// presence. Texts with no sentences score a neutral 50.
func naturalFlow(text string) float64 {
	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return 50
	}

	lengths := make([]float64, len(sentences))
	mean := 0.0
	for i, s := range sentences {
		lengths[i] = float64(len(strings.Fields(s)))
		mean += lengths[i]
	}
	mean /= float64(len(lengths))

	variance := 0.0
	for _, l := range lengths {
		variance += (l - mean) * (l - mean)
	}
	variance /= float64(len(lengths))

	variety := math.Min(100, variance*2)

	lower := strings.ToLower(text)
	connectives := 0
	for _, w := range transitionWords {
		if strings.Contains(lower, w) {
			connectives++
		}
	}
	transitions := math.Min(100, float64(connectives)*10)

	return (variety + transitions) / 2
}

// engagementQuality starts at 50 and adds bonuses for questions, calls to
// action, personal pronouns, and brand-value mentions, capped at 100.
func engagementQuality(text string, voice *model.BrandVoice) float64 {
	score := 50.0

	score += float64(strings.Count(text, "?")) * 5
	score += float64(countCTAs(text)) * 3

	pronouns := len(rePronoun.FindAllString(text, -1))
	score += math.Min(float64(pronouns)*2, 20)

	if voice != nil {
		lower := strings.ToLower(text)
		for _, value := range voice.Values {
			score += float64(strings.Count(lower, strings.ToLower(value))) * 4
		}
	}

	return math.Min(100, score)
}

// brandAlignment rewards trait, tone, and value term occurrences; without a
// brand voice it is a neutral 75.
func brandAlignment(text string, voice *model.BrandVoice) float64 {
	if voice == nil {
		return 75
	}

	score := 50.0
	lower := strings.ToLower(text)

	for _, trait := range voice.PersonalityTraits {
		if trait != "" && strings.Contains(lower, strings.ToLower(trait)) {
			score += 5
		}
	}
	if voice.Tone != "" && strings.Contains(lower, strings.ToLower(voice.Tone)) {
		score += 10
	}
	for _, value := range voice.Values {
		if value != "" && strings.Contains(lower, strings.ToLower(value)) {
			score += 3
		}
	}

	return math.Min(100, score)
}

// humanQuality rewards contraction density, conversational markers, and a
// restrained amount of exclamation.
func humanQuality(text string) float64 {
	score := 50.0

	contractions := len(reContraction.FindAllString(text, -1))
	score += math.Min(float64(contractions)*3, 25)

	score += conversationalTone(text) * 25

	exclaims := strings.Count(text, "!")
	score += math.Min(float64(exclaims)*2, 10)

	return math.Min(100, score)
}

// conversationalTone is the 0-1 density of conversational marker words,
// saturating at five markers.
func conversationalTone(text string) float64 {
	lower := strings.ToLower(text)
	hits := 0
	for _, m := range conversationalMarkers {
		if strings.Contains(lower, m) {
			hits++
		}
	}
	return math.Min(1, float64(hits)/5)
}

func countCTAs(text string) int {
	return len(reCTAVerb.FindAllString(text, -1)) + len(reCTAInvite.FindAllString(text, -1))
}

func splitSentences(text string) []string {
	parts := reSentenceEnd.Split(text, -1)
	var sentences []string
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			sentences = append(sentences, t)
		}
	}
	return sentences
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
