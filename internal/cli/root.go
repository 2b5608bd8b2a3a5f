// Package cli wires the cobra commands: generate, check, batch, config.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/inkwell-ai/inkwell/internal/model"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "inkwell",
	Short: "Inkwell - AI-fingerprint-free brand content generation",
	Long: `Inkwell generates multi-platform brand content and scrubs it of the
formulaic constructions that mark machine-written copy: em-dash overuse,
"it's not X, it's Y" contrasts, chiasmus, tagline framing, and their kin.

Every draft is scanned, sanitized, scored for authenticity, and revised
until it passes or runs out of revision budget. Content that cannot be
fixed automatically is flagged for manual review, never silently shipped.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("inkwell v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.inkwell/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(filepath.Join(home, ".inkwell"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match INKWELL_*
	viper.SetEnvPrefix("INKWELL")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig assembles the runtime configuration: defaults, then config
// file and INKWELL_* overrides, then cache dir resolution. CLI flags are
// applied by the individual commands.
func loadConfig() *model.Config {
	cfg := model.DefaultConfig()

	if viper.IsSet("llm.provider") {
		cfg.LLM.Provider = viper.GetString("llm.provider")
	}
	if viper.IsSet("llm.model") {
		cfg.LLM.Model = viper.GetString("llm.model")
	}
	if viper.IsSet("llm.base_url") {
		cfg.LLM.BaseURL = viper.GetString("llm.base_url")
	}
	if viper.IsSet("llm.timeout_seconds") {
		cfg.LLM.Timeout = viper.GetInt("llm.timeout_seconds")
	}
	if viper.IsSet("llm.temperature") {
		cfg.LLM.Temperature = viper.GetFloat64("llm.temperature")
	}
	if viper.IsSet("llm.max_tokens") {
		cfg.LLM.MaxTokens = viper.GetInt("llm.max_tokens")
	}
	if viper.IsSet("llm.requests_per_second") {
		cfg.LLM.RequestsPerSecond = viper.GetFloat64("llm.requests_per_second")
	}
	if viper.IsSet("compliance.max_revisions") {
		cfg.Compliance.MaxRevisions = viper.GetInt("compliance.max_revisions")
	}
	if viper.IsSet("compliance.min_authenticity") {
		cfg.Compliance.MinAuthenticity = viper.GetFloat64("compliance.min_authenticity")
	}
	if viper.IsSet("cache.enabled") {
		cfg.Cache.Enabled = viper.GetBool("cache.enabled")
	}
	if viper.IsSet("cache.dir") {
		cfg.Cache.Dir = viper.GetString("cache.dir")
	}
	if viper.IsSet("output.include_footer") {
		cfg.Output.IncludeFooter = viper.GetBool("output.include_footer")
	}
	if viper.IsSet("concurrency.eval_workers") {
		cfg.Concurrency.EvalWorkers = viper.GetInt("concurrency.eval_workers")
	}
	if viper.IsSet("concurrency.batch_workers") {
		cfg.Concurrency.BatchWorkers = viper.GetInt("concurrency.batch_workers")
	}
	if viper.IsSet("platforms") {
		cfg.Platforms = viper.GetStringSlice("platforms")
	}
	cfg.Output.Verbose = verbose

	if cfg.Cache.Dir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.Cache.Dir = filepath.Join(home, ".inkwell", "cache")
		}
	}

	return cfg
}

// resolveAPIKey pulls the provider's API key from the environment. Keys are
// never read from the config file.
func resolveAPIKey(cfg *model.Config) error {
	switch cfg.LLM.Provider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "openrouter":
		cfg.LLM.APIKey = os.Getenv("OPENROUTER_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENROUTER_API_KEY environment variable not set")
		}
		if cfg.LLM.BaseURL == "" {
			cfg.LLM.BaseURL = "https://openrouter.ai/api/v1"
		}
	case "anthropic", "claude":
		cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}
	return nil
}
