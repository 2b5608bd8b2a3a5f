package model

// PlatformGuidelines captures the formatting constraints the generator bakes
// into its prompts for one platform.
type PlatformGuidelines struct {
	CharLimit      int    `json:"char_limit,omitempty"`
	TargetWords    int    `json:"target_words,omitempty"`
	RevealCutoff   int    `json:"reveal_cutoff,omitempty"`
	MinHashtags    int    `json:"min_hashtags,omitempty"`
	MaxHashtags    int    `json:"max_hashtags,omitempty"`
	ToneAdjustment string `json:"tone_adjustment,omitempty"`
}

// DefaultGuidelines returns the built-in per-platform constraint table.
func DefaultGuidelines() map[string]PlatformGuidelines {
	return map[string]PlatformGuidelines{
		"email": {
			CharLimit:      500,
			ToneAdjustment: "professional",
		},
		"linkedin": {
			CharLimit:      3000,
			RevealCutoff:   210,
			MinHashtags:    3,
			MaxHashtags:    5,
			ToneAdjustment: "thought_leadership",
		},
		"instagram": {
			CharLimit:      2200,
			RevealCutoff:   125,
			MinHashtags:    8,
			MaxHashtags:    20,
			ToneAdjustment: "engaging",
		},
		"twitter": {
			CharLimit:      280,
			MaxHashtags:    3,
			ToneAdjustment: "conversational",
		},
		"reddit": {
			CharLimit:      40000,
			ToneAdjustment: "community_appropriate",
		},
		"blog": {
			TargetWords:    1200,
			ToneAdjustment: "authoritative",
		},
	}
}
