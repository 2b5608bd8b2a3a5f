package model

import "time"

// SessionReport is the rendered artifact of one generation session: what was
// produced per platform, what the detector found, how the sanitizer and
// revision loop fared, and the final compliance verdict.
type SessionReport struct {
	SessionID   string    `json:"session_id"`
	Topic       string    `json:"topic"`
	GeneratedAt time.Time `json:"generated_at"`

	Provider string `json:"provider,omitempty"`
	Model    string `json:"model,omitempty"`

	Brand BrandVoice `json:"brand_voice"`

	Status    string `json:"status"` // pass, manual_review
	Reason    string `json:"reason"`
	Revisions int    `json:"revisions"`

	Items []ItemReport `json:"items"`
}

// ItemReport is the per-platform slice of a session report.
type ItemReport struct {
	Platform string `json:"platform"`
	Text     string `json:"text"`

	Violations         int            `json:"violations"`
	ViolationsByRule   map[string]int `json:"violations_by_rule,omitempty"`
	SeverityScore      float64        `json:"severity_score"`
	EditsApplied       int            `json:"edits_applied"`
	ResidualViolations int            `json:"residual_violations"`

	Authenticity float64            `json:"authenticity"`
	Components   map[string]float64 `json:"components"`

	Compliant       bool     `json:"compliant"`
	Recommendations []string `json:"recommendations,omitempty"`
}
