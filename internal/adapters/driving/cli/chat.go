package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-rag/internal/adapters/driving/tui"
)

var chatModel string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with your documents in the terminal",
	Long: `Launch an interactive chat against the gateway.

Controls:
  Enter       - Send
  PgUp/PgDn   - Scroll
  Ctrl+O      - Show retrieved context
  Ctrl+L      - Clear
  Esc         - Quit

Commands: /ingest <text>, /model <name>, /clear, /help, /quit`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVarP(&chatModel, "model", "m", "", "language model (default from gateway config)")
	rootCmd.AddCommand(chatCmd)
}

// chatPorts builds the TUI ports from the client services.
func chatPorts() *tui.Ports {
	return &tui.Ports{
		Ask:    askSvc(),
		Ingest: ingestSvc(),
	}
}

func runChat(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	app, err := tui.NewApp(chatPorts())
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context()).WithModel(chatModel)

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
