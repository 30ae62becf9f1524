// Package cli provides the cobra command tree for sercha-rag.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-rag/internal/client"
	"github.com/custodia-labs/sercha-rag/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Persistent flag values.
var (
	configDir string
	serverURL string
	verbose   bool
	noConfig  bool
)

var rootCmd = &cobra.Command{
	Use:   "sercha-rag",
	Short: "Local retrieval-augmented generation gateway",
	Long: `sercha-rag answers questions about your documents with a local language model.

Documents are normalised, chunked and embedded through Ollama into an in-memory
vector index. Questions retrieve the closest passages, which are placed in the
prompt sent to the model.

Start the gateway with 'sercha-rag serve', then use 'ask', 'ingest', 'upload'
or 'chat' from another terminal.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.sercha-rag)")
	flags.StringVar(&serverURL, "server", client.DefaultBaseURL, "gateway URL used by client commands")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	flags.BoolVar(&noConfig, "no-config", false, "ignore the config file and use defaults plus environment")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command until it finishes or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

// newClient returns a gateway client for the --server flag.
func newClient() *client.Client {
	return client.New(client.Config{BaseURL: serverURL})
}
