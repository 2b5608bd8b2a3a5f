package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/inkwell-ai/inkwell/internal/brand"
	"github.com/inkwell-ai/inkwell/internal/model"
	"github.com/inkwell-ai/inkwell/internal/pipeline"
)

var (
	checkFix       bool
	checkOut       string
	checkJSON      bool
	checkBrandFile string
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Scan existing text for AI fingerprint patterns",
	Long: `Check scans a text file (or stdin) for the forbidden constructions and
reports what it finds. With --fix it also sanitizes the text.

No LLM calls are made; check works fully offline.

Example:
  inkwell check draft.txt
  cat draft.txt | inkwell check
  inkwell check draft.txt --fix --out clean.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().BoolVar(&checkFix, "fix", false, "sanitize the text and write the result")
	checkCmd.Flags().StringVar(&checkOut, "out", "", "output path for sanitized text (default: stdout)")
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "emit the scan report as JSON")
	checkCmd.Flags().StringVar(&checkBrandFile, "brand-file", "", "brand bible for sanitizer phrasing")
}

func runCheck(cmd *cobra.Command, args []string) error {
	text, err := readCheckInput(args)
	if err != nil {
		return err
	}

	cfg := loadConfig()
	p := pipeline.NewPipelineWithProvider(cfg, nil)

	report := p.Scan(text)

	if checkFix {
		voice := model.DefaultBrandVoice()
		if checkBrandFile != "" {
			brandText, err := readBrandFile(checkBrandFile)
			if err != nil {
				return err
			}
			voice = brand.Parse(brandText)
		}

		result := p.Sanitize(text, &voice)

		if checkOut != "" {
			if err := os.WriteFile(checkOut, []byte(result.SanitizedText), 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
		} else {
			fmt.Println(result.SanitizedText)
		}

		fmt.Fprintf(os.Stderr, "Applied %d edit(s), %d residual violation(s)\n",
			result.EditsApplied, result.ResidualViolations)
		return nil
	}

	if checkJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal report: %w", err)
		}
		fmt.Println(string(data))
	} else {
		byRule := make(map[string]int, len(report.PerRule))
		for id, rr := range report.PerRule {
			byRule[id] = rr.Count
		}
		fmt.Print(pipeline.RenderScanReport(report.TotalViolations, report.SeverityScore, byRule))
	}

	if report.TotalViolations > 0 {
		return fmt.Errorf("%d violation(s) found", report.TotalViolations)
	}
	return nil
}

func readCheckInput(args []string) (string, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("read file: %w", err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}
