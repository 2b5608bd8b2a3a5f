// Package brand parses free-form brand bible text into the structured voice
// parameters the sanitizer and scorer consume.
package brand

import (
	"sort"
	"strings"

	"github.com/inkwell-ai/inkwell/internal/model"
)

// traitIndicators maps a canonical personality trait to the descriptor words
// that imply it.
var traitIndicators = map[string][]string{
	"curious":      {"curious", "inquisitive", "exploratory", "questioning"},
	"teacher":      {"teacher", "educator", "instructor", "guide", "mentor"},
	"purposeful":   {"purposeful", "intentional", "meaningful", "driven"},
	"professional": {"professional", "formal", "corporate", "business"},
	"confident":    {"confident", "assured", "bold", "assertive"},
	"friendly":     {"friendly", "approachable", "warm", "welcoming"},
	"innovative":   {"innovative", "creative", "cutting-edge", "forward-thinking"},
	"authentic":    {"authentic", "genuine", "real", "honest"},
}

// toneIndicators is checked in order; the first tone with a hit wins.
var toneIndicators = []struct {
	tone       string
	indicators []string
}{
	{"professional", []string{"professional", "formal", "corporate"}},
	{"casual", []string{"casual", "relaxed", "informal", "easy-going"}},
	{"conversational", []string{"conversational", "chat", "talk", "speak"}},
	{"thought_leadership", []string{"thought leader", "expert", "authority", "insight"}},
	{"engaging", []string{"engaging", "interactive", "participatory", "inviting"}},
	{"authoritative", []string{"authoritative", "definitive", "commanding"}},
}

var valueIndicators = map[string][]string{
	"innovation":   {"innovation", "innovate", "creative", "new"},
	"education":    {"education", "learn", "teach", "knowledge"},
	"transparency": {"transparent", "open", "honest", "clear"},
	"excellence":   {"excellence", "excellent", "quality", "superior"},
	"community":    {"community", "together", "collective", "shared"},
	"growth":       {"growth", "grow", "develop", "improve"},
}

var themeKeywords = []string{
	"AI", "technology", "digital", "marketing", "brand", "content", "social", "media",
}

// Parse extracts a BrandVoice from descriptive brand text by keyword
// indicator matching. Empty or unrecognizable text falls back to the default
// voice, so parsing never fails.
func Parse(brandText string) model.BrandVoice {
	lower := strings.ToLower(brandText)

	var traits []string
	for _, trait := range sortedKeys(traitIndicators) {
		if containsAny(lower, traitIndicators[trait]) {
			traits = append(traits, trait)
		}
	}

	tone := model.ToneProfessional
	for _, t := range toneIndicators {
		if containsAny(lower, t.indicators) {
			tone = t.tone
			break
		}
	}

	var values []string
	for _, value := range sortedKeys(valueIndicators) {
		if containsAny(lower, valueIndicators[value]) {
			values = append(values, value)
		}
	}

	var themes []string
	for _, theme := range themeKeywords {
		if strings.Contains(lower, strings.ToLower(theme)) {
			themes = append(themes, theme)
		}
	}

	voice := model.DefaultBrandVoice()
	if len(traits) > 0 {
		voice.PersonalityTraits = traits
	}
	voice.Tone = tone
	if contains(traits, "confident") {
		voice.Voice = "confident"
	} else {
		voice.Voice = "professional"
	}
	if len(values) > 0 {
		voice.Values = values
	}
	if len(themes) > 0 {
		voice.Themes = themes
	}
	return voice
}

func containsAny(text string, indicators []string) bool {
	for _, ind := range indicators {
		if strings.Contains(text, ind) {
			return true
		}
	}
	return false
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// sortedKeys keeps trait/value extraction order deterministic across runs.
func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
