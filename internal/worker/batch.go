package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/inkwell-ai/inkwell/internal/model"
)

// SessionRunner runs one full generation session for a topic.
type SessionRunner interface {
	Run(ctx context.Context, topic, brandText string) (*model.SessionReport, error)
}

// TopicJob generates content for one topic.
type TopicJob struct {
	Topic     string
	BrandText string
	Runner    SessionRunner
}

// Execute runs the session.
func (j *TopicJob) Execute(ctx context.Context) Result {
	report, err := j.Runner.Run(ctx, j.Topic, j.BrandText)
	return &TopicResult{
		Topic:  j.Topic,
		Report: report,
		Error:  err,
	}
}

// TopicResult is the outcome of one topic session.
type TopicResult struct {
	Topic  string
	Report *model.SessionReport
	Error  error
}

// GetError returns the session error, if any.
func (r *TopicResult) GetError() error {
	return r.Error
}

// BatchProcessor generates content for multiple topics concurrently.
type BatchProcessor struct {
	runner      SessionRunner
	concurrency int
}

// NewBatchProcessor creates a batch processor.
func NewBatchProcessor(runner SessionRunner, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		runner:      runner,
		concurrency: concurrency,
	}
}

// ProcessTopics runs a session per topic with bounded concurrency.
func (b *BatchProcessor) ProcessTopics(ctx context.Context, topics []string, brandText string) []*TopicResult {
	if len(topics) == 0 {
		return []*TopicResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, topic := range topics {
		pool.Submit(&TopicJob{
			Topic:     topic,
			BrandText: brandText,
			Runner:    b.runner,
		})
	}

	results := pool.Wait()

	topicResults := make([]*TopicResult, len(results))
	for i, result := range results {
		topicResults[i] = result.(*TopicResult)
	}

	return topicResults
}

// ProcessFile reads topics from a file and processes them concurrently.
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath, brandText string) ([]*TopicResult, error) {
	topics, err := ReadTopicsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read topics: %w", err)
	}

	return b.ProcessTopics(ctx, topics, brandText), nil
}

// ReadTopicsFromFile reads topics from a file, one per line. Blank lines and
// lines starting with # are skipped, duplicates are dropped.
func ReadTopicsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var topics []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			topics = append(topics, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return topics, nil
}
