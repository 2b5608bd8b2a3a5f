package model

// BrandVoice holds the structured voice parameters parsed from a brand bible.
// It only influences sanitization phrasing and scoring bonuses; detection is
// correct without it.
type BrandVoice struct {
	PersonalityTraits []string `json:"personality_traits"`
	Tone              string   `json:"tone"`
	Voice             string   `json:"voice"`
	Values            []string `json:"values"`
	Themes            []string `json:"themes"`
}

// Tone values the sanitizer varies its rewrite templates by.
const (
	ToneConversational = "conversational"
	ToneProfessional   = "professional"
)

// DefaultBrandVoice returns the fallback voice used when no brand bible is
// supplied.
func DefaultBrandVoice() BrandVoice {
	return BrandVoice{
		PersonalityTraits: []string{"professional", "helpful"},
		Tone:              ToneProfessional,
		Voice:             "confident",
		Values:            []string{"quality", "integrity"},
		Themes:            []string{"content creation", "brand strategy"},
	}
}
