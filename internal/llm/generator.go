package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/inkwell-ai/inkwell/internal/cache"
	"github.com/inkwell-ai/inkwell/internal/model"
	"github.com/inkwell-ai/inkwell/internal/worker"
)

const (
	retryBaseDelay  = 500 * time.Millisecond
	retryMaxAttempt = 3
)

// Generator wraps a provider with response caching, rate limiting, and
// transient-failure retries. All drafting and revision traffic goes
// through it.
type Generator struct {
	provider Provider
	cache    cache.Cache
	limiter  *worker.Limiter
	config   Config
}

// NewGenerator creates a generator around the given provider. cache may be
// nil to disable caching.
func NewGenerator(provider Provider, responseCache cache.Cache, config Config) *Generator {
	rps := config.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}

	return &Generator{
		provider: provider,
		cache:    responseCache,
		limiter:  worker.NewLimiter(rps, 1),
		config:   config,
	}
}

// Provider returns the underlying provider.
func (g *Generator) Provider() Provider {
	return g.provider
}

// Draft generates the initial content for one platform.
func (g *Generator) Draft(ctx context.Context, topic, platform string, guidelines model.PlatformGuidelines, voice *model.BrandVoice) (string, error) {
	prompt := BuildDraftPrompt(topic, platform, guidelines, voice)

	resp, err := g.complete(ctx, CompletionRequest{
		System: SystemPrompt,
		Prompt: prompt,
	})
	if err != nil {
		return "", fmt.Errorf("draft %s: %w", platform, err)
	}
	return resp.Text, nil
}

// Refine rewrites failing content, feeding the reviewer's findings back to
// the model.
func (g *Generator) Refine(ctx context.Context, topic, platform, currentText string, violatedRules, recommendations []string) (string, error) {
	prompt := BuildRefinePrompt(topic, platform, currentText, violatedRules, recommendations)

	resp, err := g.complete(ctx, CompletionRequest{
		System: SystemPrompt,
		Prompt: prompt,
	})
	if err != nil {
		return "", fmt.Errorf("refine %s: %w", platform, err)
	}
	return resp.Text, nil
}

// complete runs one completion through the cache, the per-model rate
// limiter, and the retry loop.
func (g *Generator) complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	llmModel := req.Model
	if llmModel == "" {
		llmModel = g.config.Model
	}
	temperature := req.Temperature
	if temperature == 0 {
		temperature = g.config.Temperature
	}

	key := cache.Key(llmModel, temperature, req.System+"\n"+req.Prompt)
	if g.cache != nil {
		if data, ok := g.cache.Get(key); ok {
			var cached CompletionResponse
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
			// Corrupt entry, fall through to a live call
			_ = g.cache.Delete(key)
		}
	}

	limiterKey := fmt.Sprintf("%s:%s", g.provider.Name(), llmModel)
	if err := g.limiter.Wait(ctx, limiterKey); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	var resp *CompletionResponse
	backoff := retry.WithMaxRetries(retryMaxAttempt, retry.NewFibonacci(retryBaseDelay))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var callErr error
		resp, callErr = g.provider.Complete(ctx, req)
		if callErr != nil {
			return retry.RetryableError(callErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if g.cache != nil {
		if data, err := json.Marshal(resp); err == nil {
			_ = g.cache.Set(key, data, 0)
		}
	}

	return resp, nil
}
