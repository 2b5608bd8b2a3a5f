// Package pipeline orchestrates one generation session: parse the brand
// bible, draft per-platform content, sanitize, run the compliance loop, and
// assemble the session report.
package pipeline

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/inkwell-ai/inkwell/internal/authenticity"
	"github.com/inkwell-ai/inkwell/internal/brand"
	"github.com/inkwell-ai/inkwell/internal/cache"
	"github.com/inkwell-ai/inkwell/internal/compliance"
	"github.com/inkwell-ai/inkwell/internal/llm"
	"github.com/inkwell-ai/inkwell/internal/model"
	"github.com/inkwell-ai/inkwell/internal/pattern"
)

// Pipeline orchestrates the complete generation process.
type Pipeline struct {
	detector   *pattern.Detector
	sanitizer  *pattern.Sanitizer
	scorer     *authenticity.Scorer
	generator  *llm.Generator
	renderer   *Renderer
	guidelines map[string]model.PlatformGuidelines
	config     *model.Config
}

// NewPipeline creates a pipeline with the given configuration. The LLM
// provider comes from config; generation fails at Run time if none is
// configured.
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return nil, fmt.Errorf("initialize LLM provider: %w", err)
	}
	return NewPipelineWithProvider(cfg, provider), nil
}

// NewPipelineWithProvider creates a pipeline around an existing provider.
// provider may be nil, in which case only Scan and Sanitize work.
func NewPipelineWithProvider(cfg *model.Config, provider llm.Provider) *Pipeline {
	detector := pattern.NewDetector()

	var generator *llm.Generator
	if provider != nil {
		var responseCache cache.Cache
		if cfg.Cache.Enabled && cfg.Cache.Dir != "" {
			responseCache = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
		}
		generator = llm.NewGenerator(provider, responseCache, llm.ConfigFromModel(cfg.LLM))
	}

	return &Pipeline{
		detector:   detector,
		sanitizer:  pattern.NewSanitizer(detector),
		scorer:     authenticity.NewScorer(detector),
		generator:  generator,
		renderer:   NewRenderer(cfg.Output.IncludeFooter),
		guidelines: model.DefaultGuidelines(),
		config:     cfg,
	}
}

// Scan runs detection only.
func (p *Pipeline) Scan(text string) pattern.Report {
	return p.detector.Detect(text)
}

// Sanitize runs detection and sanitization over a single text.
func (p *Pipeline) Sanitize(text string, voice *model.BrandVoice) pattern.Result {
	report := p.detector.Detect(text)
	return p.sanitizer.Sanitize(text, report, voice)
}

// Run executes one full generation session for a topic. brandText may be
// empty, in which case the default voice applies.
func (p *Pipeline) Run(ctx context.Context, topic, brandText string) (*model.SessionReport, error) {
	if p.generator == nil {
		return nil, fmt.Errorf("no LLM provider configured (set llm.provider)")
	}

	voice := model.DefaultBrandVoice()
	if strings.TrimSpace(brandText) != "" {
		voice = brand.Parse(brandText)
	}

	platforms := p.platforms()
	if len(platforms) == 0 {
		return nil, fmt.Errorf("no platforms configured")
	}

	// 1. Draft and sanitize each platform.
	texts := make(map[string]string, len(platforms))
	sanitized := make(map[string]pattern.Result, len(platforms))
	for _, platform := range platforms {
		draft, err := p.generator.Draft(ctx, topic, platform, p.guidelines[platform], &voice)
		if err != nil {
			return nil, err
		}
		result := p.Sanitize(draft, &voice)
		texts[platform] = result.SanitizedText
		sanitized[platform] = result
	}

	// 2. Compliance loop: evaluate, refine failing items, repeat until the
	// batch passes or the revision budget runs out.
	controller := compliance.NewController(p.detector, p.scorer, &voice)
	controller.SetMaxRevisions(p.config.Compliance.MaxRevisions)
	controller.SetMinAuthenticity(p.config.Compliance.MinAuthenticity)
	controller.SetWorkers(p.config.Concurrency.EvalWorkers)

	var decision compliance.Decision
	for {
		decision = controller.Evaluate(ctx, p.buildBatch(texts))
		if decision.Status != compliance.StatusRevise {
			break
		}

		for _, item := range decision.FailingItems() {
			refined, err := p.generator.Refine(ctx, topic, item.Platform, item.Text,
				violatedRules(item.Report), item.Recommendations)
			if err != nil {
				return nil, err
			}
			result := p.Sanitize(refined, &voice)
			texts[item.Platform] = result.SanitizedText
			sanitized[item.Platform] = mergeSanitize(sanitized[item.Platform], result)
		}
	}

	return p.buildReport(topic, voice, decision, controller.State(), sanitized), nil
}

// platforms returns the configured platform list, sorted, restricted to the
// known guideline table.
func (p *Pipeline) platforms() []string {
	var platforms []string
	for _, platform := range p.config.Platforms {
		if _, ok := p.guidelines[platform]; ok {
			platforms = append(platforms, platform)
		}
	}
	sort.Strings(platforms)
	return platforms
}

// buildBatch wraps the raw texts in their platform content shapes.
func (p *Pipeline) buildBatch(texts map[string]string) map[string]model.PlatformContent {
	batch := make(map[string]model.PlatformContent, len(texts))
	for platform, text := range texts {
		batch[platform] = buildContent(platform, text)
	}
	return batch
}

// buildContent shapes one platform's text. Email splits its first line off
// as the subject, blog and reddit as the title; everything else is a single
// text block.
func buildContent(platform, text string) model.PlatformContent {
	switch platform {
	case "email":
		head, body := splitFirstLine(text)
		return model.Email{Subject: head, Body: body}
	case "blog", "reddit":
		head, body := splitFirstLine(text)
		return model.TitledBody{Title: head, Body: body}
	default:
		return model.SingleText{Text: text}
	}
}

func splitFirstLine(text string) (string, string) {
	text = strings.TrimSpace(text)
	head, body, found := strings.Cut(text, "\n")
	if !found {
		return head, ""
	}
	return strings.TrimSpace(head), strings.TrimSpace(body)
}

// violatedRules lists the rule IDs with at least one occurrence, sorted.
func violatedRules(report pattern.Report) []string {
	var rules []string
	for id, rr := range report.PerRule {
		if rr.Count > 0 {
			rules = append(rules, id)
		}
	}
	sort.Strings(rules)
	return rules
}

// mergeSanitize accumulates edit counts across revision cycles while
// keeping the latest residual state.
func mergeSanitize(prev, latest pattern.Result) pattern.Result {
	latest.EditsApplied += prev.EditsApplied
	latest.RulesFixed = append(prev.RulesFixed, latest.RulesFixed...)
	return latest
}

// buildReport assembles the session report from the final decision and the
// per-platform sanitize history.
func (p *Pipeline) buildReport(topic string, voice model.BrandVoice, decision compliance.Decision, state compliance.State, sanitized map[string]pattern.Result) *model.SessionReport {
	report := &model.SessionReport{
		SessionID:   uuid.NewString(),
		Topic:       topic,
		GeneratedAt: time.Now().UTC(),
		Provider:    p.config.LLM.Provider,
		Model:       p.config.LLM.Model,
		Brand:       voice,
		Status:      string(decision.Status),
		Reason:      decision.Reason,
		Revisions:   state.RevisionCount,
	}

	for _, item := range decision.Items {
		byRule := make(map[string]int)
		for id, rr := range item.Report.PerRule {
			if rr.Count > 0 {
				byRule[id] = rr.Count
			}
		}

		ir := model.ItemReport{
			Platform:         item.Platform,
			Text:             item.Text,
			Violations:       item.Report.TotalViolations,
			ViolationsByRule: byRule,
			SeverityScore:    item.Report.SeverityScore,
			Authenticity:     item.Authenticity.Overall,
			Components:       item.Authenticity.Components,
			Compliant:        item.Compliant,
			Recommendations:  item.Recommendations,
		}
		if s, ok := sanitized[item.Platform]; ok {
			ir.EditsApplied = s.EditsApplied
			ir.ResidualViolations = s.ResidualViolations
		}
		report.Items = append(report.Items, ir)
	}

	return report
}
