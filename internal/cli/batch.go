package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/inkwell-ai/inkwell/internal/pipeline"
	"github.com/inkwell-ai/inkwell/internal/worker"
)

var (
	concurrency    int
	outputDir      string
	batchTimeout   time.Duration
	batchBrandFile string
	batchProvider  string
	batchModel     string
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <topics-file>",
	Short: "Generate content for multiple topics in parallel",
	Long: `Batch runs a full generation session per topic:
- Read topics from the input file (one per line, # for comments)
- Run sessions in parallel with a configurable worker count
- Write a JSON and Markdown report per topic

Example:
  inkwell batch topics.txt --brand-file brand.md
  inkwell batch topics.txt --concurrency 4 --output-dir ./content`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", 0, "number of concurrent sessions (default: config)")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./inkwell-content", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 30*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().StringVar(&batchBrandFile, "brand-file", "", "brand bible file (markdown or plain text)")

	// LLM flags
	batchCmd.Flags().StringVar(&batchProvider, "provider", "", "LLM provider (openai, anthropic, ollama)")
	batchCmd.Flags().StringVar(&batchModel, "model", "", "LLM model name")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg := loadConfig()
	if batchProvider != "" {
		cfg.LLM.Provider = batchProvider
	}
	if batchModel != "" {
		cfg.LLM.Model = batchModel
	}
	if concurrency > 0 {
		cfg.Concurrency.BatchWorkers = concurrency
	}

	if cfg.LLM.Provider == "" {
		return fmt.Errorf("no LLM provider configured (use --provider or set llm.provider)")
	}
	if err := resolveAPIKey(cfg); err != nil {
		return err
	}

	brandText, err := readBrandFile(batchBrandFile)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Input file: %s\n", file)
	fmt.Fprintf(os.Stderr, "Workers:    %d\n", cfg.Concurrency.BatchWorkers)
	fmt.Fprintf(os.Stderr, "Output dir: %s\n\n", outputDir)

	processor := worker.NewBatchProcessor(p, cfg.Concurrency.BatchWorkers)
	results, err := processor.ProcessFile(ctx, file, brandText)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	renderer := p.Renderer()
	successCount := 0
	failureCount := 0

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", result.Topic, result.Error)
			continue
		}

		successCount++

		slug := slugify(result.Topic)
		jsonPath := filepath.Join(outputDir, slug+".json")
		mdPath := filepath.Join(outputDir, slug+".md")

		data, err := renderer.RenderJSON(result.Report)
		if err != nil {
			fmt.Fprintf(os.Stderr, "FAIL %s: render JSON: %v\n", result.Topic, err)
			continue
		}
		if err := os.WriteFile(jsonPath, []byte(data), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "FAIL %s: write JSON: %v\n", result.Topic, err)
			continue
		}
		if err := os.WriteFile(mdPath, []byte(renderer.RenderMarkdown(result.Report)), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "FAIL %s: write Markdown: %v\n", result.Topic, err)
			continue
		}

		fmt.Fprintf(os.Stderr, "ok   %s (%s, %d revision(s))\n", result.Topic, result.Report.Status, result.Report.Revisions)
	}

	fmt.Fprintf(os.Stderr, "\nTotal: %d, success: %d, failures: %d\n", len(results), successCount, failureCount)
	fmt.Fprintf(os.Stderr, "Output: %s\n", outputDir)

	if failureCount > 0 {
		return fmt.Errorf("%d topic(s) failed", failureCount)
	}
	return nil
}

// slugify turns a topic into a safe filename.
func slugify(s string) string {
	var b strings.Builder
	lastDash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash && b.Len() > 0 {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if len(slug) > 100 {
		slug = slug[:100]
	}
	if slug == "" {
		slug = "topic"
	}
	return slug
}
