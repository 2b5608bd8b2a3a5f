// Package compliance implements the revision-bounded control loop: score
// sanitized content, decide pass/revise/manual_review, and track the
// revision budget across cycles.
package compliance

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/inkwell-ai/inkwell/internal/authenticity"
	"github.com/inkwell-ai/inkwell/internal/model"
	"github.com/inkwell-ai/inkwell/internal/pattern"
)

// Status is the controller's lifecycle state. manual_review is terminal:
// once the revision budget is exhausted no further automated revision is
// attempted, regardless of later scores.
type Status string

const (
	StatusPending      Status = "pending"
	StatusPass         Status = "pass"
	StatusRevise       Status = "revise"
	StatusManualReview Status = "manual_review"
)

// DefaultMaxRevisions bounds the revise loop.
const DefaultMaxRevisions = 5

// DefaultMinAuthenticity is the compliance gate; an item at exactly the
// threshold is compliant.
const DefaultMinAuthenticity = 80.0

// State tracks one content item's compliance lifecycle. RevisionCount
// increments exactly once per revise verdict.
type State struct {
	RevisionCount int    `json:"revision_count"`
	MaxRevisions  int    `json:"max_revisions"`
	Status        Status `json:"status"`
}

// NewState returns a fresh lifecycle with the default budget.
func NewState() State {
	return State{RevisionCount: 0, MaxRevisions: DefaultMaxRevisions, Status: StatusPending}
}

// ItemResult is one platform's evaluation detail within a decision.
type ItemResult struct {
	Platform string `json:"platform"`
	Text     string `json:"text"`

	Report       pattern.Report     `json:"report"`
	Authenticity authenticity.Score `json:"authenticity"`

	Compliant       bool     `json:"compliant"`
	Recommendations []string `json:"recommendations,omitempty"`
}

// Decision is the outcome of one evaluate call. Items are sorted by platform
// key so parallel evaluation stays deterministic.
type Decision struct {
	Status Status       `json:"status"`
	Reason string       `json:"reason"`
	Items  []ItemResult `json:"items"`
}

// FailingItems returns the non-compliant subset of the decision.
func (d Decision) FailingItems() []ItemResult {
	var failing []ItemResult
	for _, item := range d.Items {
		if !item.Compliant {
			failing = append(failing, item)
		}
	}
	return failing
}

// Detector is the pattern-scan dependency; satisfied by *pattern.Detector.
type Detector interface {
	Detect(text string) pattern.Report
}

// Scorer is the authenticity dependency; satisfied by *authenticity.Scorer.
type Scorer interface {
	Evaluate(text string, voice *model.BrandVoice) authenticity.Score
}

// Controller owns one content item's compliance lifecycle for the duration
// of a generation session. It is the only writer of its State; evaluate
// calls are strictly sequential.
type Controller struct {
	detector Detector
	scorer   Scorer
	voice    *model.BrandVoice

	state       State
	minScore    float64
	workers     int
	lastFailing []ItemResult
}

// NewController creates a controller with a fresh state.
func NewController(detector Detector, scorer Scorer, voice *model.BrandVoice) *Controller {
	return &Controller{
		detector: detector,
		scorer:   scorer,
		voice:    voice,
		state:    NewState(),
		minScore: DefaultMinAuthenticity,
		workers:  4,
	}
}

// SetMaxRevisions overrides the revision budget.
func (c *Controller) SetMaxRevisions(n int) {
	if n > 0 {
		c.state.MaxRevisions = n
	}
}

// SetMinAuthenticity overrides the compliance gate.
func (c *Controller) SetMinAuthenticity(score float64) {
	if score > 0 {
		c.minScore = score
	}
}

// SetWorkers bounds the parallel per-platform evaluation.
func (c *Controller) SetWorkers(n int) {
	if n > 0 {
		c.workers = n
	}
}

// Resume hands a previously persisted lifecycle state back to the controller.
func (c *Controller) Resume(state State) {
	c.state = state
}

// State returns a copy of the current lifecycle state.
func (c *Controller) State() State {
	return c.state
}

// Evaluate runs one compliance cycle over the batch. The max-revisions check
// short-circuits before any scoring work, surfacing the previous cycle's
// failing detail on the terminal decision. Otherwise every item is detected
// and scored (in parallel, merged by sorted platform key), and the batch
// passes only when every item is compliant; any other outcome is revise with
// exactly one revision-count increment for the whole call.
func (c *Controller) Evaluate(ctx context.Context, batch map[string]model.PlatformContent) Decision {
	if c.state.Status == StatusManualReview || c.state.RevisionCount >= c.state.MaxRevisions {
		c.state.Status = StatusManualReview
		return Decision{
			Status: StatusManualReview,
			Reason: fmt.Sprintf("maximum revision count (%d) reached", c.state.MaxRevisions),
			Items:  c.lastFailing,
		}
	}

	platforms := make([]string, 0, len(batch))
	for p := range batch {
		platforms = append(platforms, p)
	}
	sort.Strings(platforms)

	items := make([]ItemResult, len(platforms))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i, platform := range platforms {
		i, platform := i, platform
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			items[i] = c.evaluateItem(platform, batch[platform])
			return nil
		})
	}
	// Items are pure CPU work; the only error is cancellation, in which case
	// the batch is treated as non-compliant rather than failing the caller.
	cancelled := g.Wait() != nil

	allCompliant := !cancelled
	for _, item := range items {
		if !item.Compliant {
			allCompliant = false
		}
	}

	if allCompliant {
		c.state.Status = StatusPass
		c.lastFailing = nil
		return Decision{
			Status: StatusPass,
			Reason: "all content meets authenticity and quality standards",
			Items:  items,
		}
	}

	c.state.RevisionCount++
	c.state.Status = StatusRevise
	decision := Decision{
		Status: StatusRevise,
		Reason: "content needs revision to meet authenticity standards",
		Items:  items,
	}
	c.lastFailing = decision.FailingItems()
	return decision
}

// evaluateItem scans and scores a single platform's content. An item is
// compliant only when it clears the authenticity gate with zero violations.
func (c *Controller) evaluateItem(platform string, content model.PlatformContent) ItemResult {
	text := model.ExtractPlainText(content)
	report := c.detector.Detect(text)
	score := c.scorer.Evaluate(text, c.voice)

	result := ItemResult{
		Platform:     platform,
		Text:         text,
		Report:       report,
		Authenticity: score,
		Compliant:    compliant(score.Overall, report.TotalViolations, c.minScore),
	}
	if !result.Compliant {
		result.Recommendations = recommendations(report, score)
	}
	return result
}

// compliant is the gate: score at or above the threshold and zero remaining
// violations.
func compliant(score float64, violations int, minScore float64) bool {
	return score >= minScore && violations == 0
}

// recommendations turns an item's weak components into revise-cycle
// guidance for the refinement stage.
func recommendations(report pattern.Report, score authenticity.Score) []string {
	var recs []string
	if report.TotalViolations > 0 {
		recs = append(recs, fmt.Sprintf("eliminate %d AI fingerprint pattern(s)", report.TotalViolations))
	}
	if score.Components[authenticity.MetricNaturalFlow] < 60 {
		recs = append(recs, "vary sentence lengths and add natural transitions")
	}
	if score.Components[authenticity.MetricEngagementQuality] < 60 {
		recs = append(recs, "add questions or a call to action to invite interaction")
	}
	if score.Components[authenticity.MetricHumanQuality] < 60 {
		recs = append(recs, "use more contractions and conversational language")
	}
	if score.Components[authenticity.MetricBrandAlignment] < 60 {
		recs = append(recs, "work brand traits and values into the copy")
	}
	return recs
}
