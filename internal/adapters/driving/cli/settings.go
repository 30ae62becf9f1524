package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-rag/internal/adapters/driven/ai"
	"github.com/custodia-labs/sercha-rag/internal/core/domain"
	"github.com/custodia-labs/sercha-rag/internal/core/services"
)

// configValidator checks connectivity after the wizard saves settings.
var configValidator interface {
	Validate(ctx context.Context, settings *domain.Settings) error
} = ai.NewConfigValidator()

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure gateway settings.

Settings are stored in config.toml in the config directory. Every key can be
overridden with an environment variable, e.g. SERCHA_RAG_GENERATION_MODEL.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Long: `Set a configuration value by dot-notation key, e.g.

  sercha-rag settings set generation.model llama2
  sercha-rag settings set chunker.chunk_size 800

Run 'sercha-rag settings keys' to list the keys.`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List configuration keys and their environment variables",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		for _, k := range services.Keys() {
			cmd.Printf("%-32s %s\n", k, services.EnvName(k))
		}
	},
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure the Ollama connection and models.`,
	Args:  cobra.NoArgs,
	RunE:  runSettingsWizard,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	svc, store, err := newSettingsService()
	if err != nil {
		return err
	}

	settings, err := svc.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()
	printSettings(cmd, settings)

	if path := store.Path(); path != "" {
		cmd.Printf("Config file: %s\n", path)
	}
	if err := svc.Validate(settings); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'sercha-rag settings wizard' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}
	return nil
}

func printSettings(cmd *cobra.Command, s *domain.Settings) {
	cmd.Println("[Server]")
	cmd.Printf("  Address: %s\n", s.Server.Addr)
	cmd.Printf("  Allowed origin: %s\n", s.Server.AllowedOrigin)
	cmd.Println()

	cmd.Println("[Ollama]")
	cmd.Printf("  Base URL: %s\n", s.Ollama.BaseURL)
	cmd.Printf("  Embedding model: %s\n", s.Embedding.Model)
	cmd.Printf("  Generation model: %s\n", s.Generation.Model)
	cmd.Printf("  Embedding rate limit: %s\n", formatRate(s.Embedding.RequestsPerSecond))
	cmd.Printf("  Embedding timeout: %s\n", formatTimeout(s.Embedding.Timeout.String(), s.Embedding.Timeout == 0))
	cmd.Printf("  Generation timeout: %s\n", formatTimeout(s.Generation.Timeout.String(), s.Generation.Timeout == 0))
	cmd.Println()

	cmd.Println("[Indexing]")
	cmd.Printf("  Chunk size: %d\n", s.Chunker.ChunkSize)
	cmd.Printf("  Chunk overlap: %d\n", s.Chunker.Overlap)
	cmd.Printf("  Top K: %d\n", s.Retrieval.TopK)
	cmd.Printf("  Exclude seed: %t\n", s.Retrieval.ExcludeSeed)
	cmd.Printf("  Seed text: %q\n", s.Index.SeedText)
	cmd.Println()

	cmd.Println("[Uploads]")
	cmd.Printf("  Max bytes: %d\n", s.Upload.MaxBytes)
	if s.Watch.Dir != "" {
		cmd.Printf("  Watch dir: %s\n", s.Watch.Dir)
	} else {
		cmd.Printf("  Watch dir: (disabled)\n")
	}
	cmd.Println()
}

func formatRate(rps float64) string {
	if rps <= 0 {
		return "unlimited"
	}
	return strconv.FormatFloat(rps, 'f', -1, 64) + "/s"
}

func formatTimeout(s string, none bool) string {
	if none {
		return "none"
	}
	return s
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	svc, _, err := newSettingsService()
	if err != nil {
		return err
	}

	key, raw := args[0], args[1]
	if err := svc.Set(key, parseSettingValue(raw)); err != nil {
		return err
	}
	cmd.Printf("%s = %s\n", key, raw)
	return nil
}

// parseSettingValue stores numbers and booleans with their TOML types.
// Durations such as "90s" stay strings.
func parseSettingValue(raw string) any {
	switch strings.ToLower(raw) {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil && !strings.ContainsAny(raw, "iInN") {
		return f
	}
	return raw
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	svc, _, err := newSettingsService()
	if err != nil {
		return err
	}
	current, err := svc.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	reader := bufio.NewReader(cmd.InOrStdin())
	cmd.Println("sercha-rag setup")
	cmd.Println("Press Enter to keep the value in brackets.")
	cmd.Println()

	prompts := []struct {
		key     string
		label   string
		current string
	}{
		{services.KeyOllamaBaseURL, "Ollama URL", current.Ollama.BaseURL},
		{services.KeyEmbedModel, "Embedding model", current.Embedding.Model},
		{services.KeyGenModel, "Generation model", current.Generation.Model},
		{services.KeyTopK, "Passages per question", strconv.Itoa(current.Retrieval.TopK)},
	}

	for _, p := range prompts {
		cmd.Printf("%s [%s]: ", p.label, p.current)
		input := readLine(reader)
		if input == "" || input == p.current {
			continue
		}
		if err := svc.Set(p.key, parseSettingValue(input)); err != nil {
			return err
		}
	}

	updated, err := svc.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if err := svc.Validate(updated); err != nil {
		cmd.Printf("\nWarning: %v\n", err)
		return nil
	}
	cmd.Println()
	cmd.Println("Settings saved.")

	cmd.Printf("Checking Ollama at %s... ", updated.Ollama.BaseURL)
	if err := configValidator.Validate(cmd.Context(), updated); err != nil {
		cmd.Println("unreachable")
		cmd.Printf("Warning: %v\n", err)
		return nil
	}
	cmd.Println("ok")
	return nil
}

func readLine(reader *bufio.Reader) string {
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return ""
	}
	return strings.TrimSpace(line)
}
