package llm

import (
	"fmt"
	"strings"

	"github.com/inkwell-ai/inkwell/internal/model"
	"github.com/inkwell-ai/inkwell/internal/pattern"
)

// SystemPrompt primes every generation call with the voice constraints.
const SystemPrompt = "You are a brand content writer. You write natural, specific, human-sounding copy and you never use formulaic rhetorical constructions."

// BuildDraftPrompt constructs the initial generation prompt for one platform.
func BuildDraftPrompt(topic, platform string, guidelines model.PlatformGuidelines, voice *model.BrandVoice) string {
	prompt := fmt.Sprintf(`Write %s content about the following topic.

Topic: %s

CRITICAL RULES - these constructions are forbidden:
%s

Do not work around the ban by rephrasing the same contrast structure. State things directly.
`, platform, topic, forbiddenPatterns())

	if constraints := formatGuidelines(guidelines); constraints != "" {
		prompt += fmt.Sprintf("\nPlatform constraints:\n%s", constraints)
	}

	if voice != nil {
		prompt += fmt.Sprintf("\nBrand voice:\n%s", formatVoice(voice))
	}

	prompt += "\nReturn only the content itself, no preamble or commentary."

	return prompt
}

// BuildRefinePrompt constructs a revision prompt for content that failed
// compliance. violatedRules are pattern rule IDs, recommendations come from
// the authenticity scorer.
func BuildRefinePrompt(topic, platform, currentText string, violatedRules, recommendations []string) string {
	prompt := fmt.Sprintf(`The following %s content about "%s" failed review. Rewrite it.

Current content:
%s

`, platform, topic, currentText)

	if len(violatedRules) > 0 {
		prompt += "Forbidden constructions found (remove every occurrence):\n"
		byID := make(map[string]*pattern.Rule)
		for _, rule := range pattern.Library() {
			byID[rule.ID] = rule
		}
		for _, id := range violatedRules {
			if rule, ok := byID[id]; ok {
				prompt += fmt.Sprintf("- %s: %s\n", id, rule.Description)
			} else {
				prompt += fmt.Sprintf("- %s\n", id)
			}
		}
		prompt += "\n"
	}

	if len(recommendations) > 0 {
		prompt += "Also address:\n"
		for _, rec := range recommendations {
			prompt += fmt.Sprintf("- %s\n", rec)
		}
		prompt += "\n"
	}

	prompt += "Keep the same topic and intent. Return only the rewritten content."

	return prompt
}

func forbiddenPatterns() string {
	var b strings.Builder
	for i, rule := range pattern.Library() {
		fmt.Fprintf(&b, "%d. %s\n", i+1, rule.Description)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatGuidelines(g model.PlatformGuidelines) string {
	var lines []string
	if g.CharLimit > 0 {
		lines = append(lines, fmt.Sprintf("- Maximum %d characters", g.CharLimit))
	}
	if g.TargetWords > 0 {
		lines = append(lines, fmt.Sprintf("- Target length around %d words", g.TargetWords))
	}
	if g.RevealCutoff > 0 {
		lines = append(lines, fmt.Sprintf("- The first %d characters must hook the reader (shown before the fold)", g.RevealCutoff))
	}
	if g.MaxHashtags > 0 {
		if g.MinHashtags > 0 {
			lines = append(lines, fmt.Sprintf("- Include %d-%d hashtags", g.MinHashtags, g.MaxHashtags))
		} else {
			lines = append(lines, fmt.Sprintf("- At most %d hashtags", g.MaxHashtags))
		}
	}
	if g.ToneAdjustment != "" {
		lines = append(lines, fmt.Sprintf("- Tone: %s", strings.ReplaceAll(g.ToneAdjustment, "_", " ")))
	}
	return strings.Join(lines, "\n")
}

func formatVoice(voice *model.BrandVoice) string {
	var lines []string
	if len(voice.PersonalityTraits) > 0 {
		lines = append(lines, fmt.Sprintf("- Personality: %s", strings.Join(voice.PersonalityTraits, ", ")))
	}
	if voice.Tone != "" {
		lines = append(lines, fmt.Sprintf("- Tone: %s", voice.Tone))
	}
	if voice.Voice != "" {
		lines = append(lines, fmt.Sprintf("- Voice: %s", voice.Voice))
	}
	if len(voice.Values) > 0 {
		lines = append(lines, fmt.Sprintf("- Values: %s", strings.Join(voice.Values, ", ")))
	}
	if len(voice.Themes) > 0 {
		lines = append(lines, fmt.Sprintf("- Themes: %s", strings.Join(voice.Themes, ", ")))
	}
	return strings.Join(lines, "\n")
}
