package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/inkwell-ai/inkwell/internal/pipeline"
)

var (
	brandFile    string
	platforms    []string
	llmProvider  string
	llmModel     string
	outJSON      string
	outMD        string
	genTimeout   time.Duration
	noCache      bool
	noFooter     bool
	maxRevisions int
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate <topic>",
	Short: "Generate sanitized multi-platform content for a topic",
	Long: `Generate drafts content for every configured platform, then:
- Scans each draft for AI fingerprint patterns
- Sanitizes what it finds
- Scores authenticity against the brand voice
- Revises failing platforms until they pass or the budget runs out

Example:
  inkwell generate "Why async standups beat meetings"
  inkwell generate "Product launch" --brand-file brand.md --platforms twitter,linkedin
  inkwell generate "Q3 roadmap" --provider anthropic --model claude-3-5-sonnet-20241022`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&brandFile, "brand-file", "", "brand bible file (markdown or plain text)")
	generateCmd.Flags().StringSliceVar(&platforms, "platforms", nil, "platforms to generate (default: all configured)")

	// LLM flags
	generateCmd.Flags().StringVar(&llmProvider, "provider", "", "LLM provider (openai, anthropic, ollama)")
	generateCmd.Flags().StringVar(&llmModel, "model", "", "LLM model name")

	// Output flags
	generateCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	generateCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	generateCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown output")

	generateCmd.Flags().DurationVar(&genTimeout, "timeout", 10*time.Minute, "overall session timeout")
	generateCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the LLM response cache")
	generateCmd.Flags().IntVar(&maxRevisions, "max-revisions", 0, "override the revision budget")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	topic := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), genTimeout)
	defer cancel()

	cfg := loadConfig()
	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
	}
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}
	if len(platforms) > 0 {
		cfg.Platforms = platforms
	}
	if maxRevisions > 0 {
		cfg.Compliance.MaxRevisions = maxRevisions
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if noFooter {
		cfg.Output.IncludeFooter = false
	}

	if cfg.LLM.Provider == "" {
		return fmt.Errorf("no LLM provider configured (use --provider or set llm.provider)")
	}
	if err := resolveAPIKey(cfg); err != nil {
		return err
	}

	brandText, err := readBrandFile(brandFile)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Topic: %s\n", topic)
		fmt.Fprintf(os.Stderr, "Provider: %s/%s\n", cfg.LLM.Provider, cfg.LLM.Model)
		fmt.Fprintf(os.Stderr, "Platforms: %v\n", cfg.Platforms)
		fmt.Fprintln(os.Stderr)
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	report, err := p.Run(ctx, topic, brandText)
	if err != nil {
		return fmt.Errorf("generate failed: %w", err)
	}

	renderer := p.Renderer()

	if outJSON != "" {
		data, err := renderer.RenderJSON(report)
		if err != nil {
			return err
		}
		if err := os.WriteFile(outJSON, []byte(data), 0o644); err != nil {
			return fmt.Errorf("write JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote %s\n", outJSON)
		}
	}
	if outMD != "" {
		if err := os.WriteFile(outMD, []byte(renderer.RenderMarkdown(report)), 0o644); err != nil {
			return fmt.Errorf("write Markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote %s\n", outMD)
		}
	}

	fmt.Print(renderer.RenderSummary(report))

	if report.Status != "pass" {
		fmt.Fprintf(os.Stderr, "\nContent flagged for manual review after %d revision(s)\n", report.Revisions)
	}

	return nil
}

// readBrandFile loads the brand bible, if one was given.
func readBrandFile(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read brand file: %w", err)
	}
	return string(data), nil
}
