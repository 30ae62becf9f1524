package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
)

var (
	askModel       string
	askJSON        bool
	askShowContext bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about ingested documents",
	Long: `Sends a question to the gateway. The closest passages are retrieved and
placed in the prompt sent to the language model.

Words after the command are joined into one question.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askModel, "model", "m", "", "language model (default from gateway config)")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the answer as JSON")
	askCmd.Flags().BoolVarP(&askShowContext, "context", "c", false, "print the retrieved passages")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := strings.Join(args, " ")

	answer, err := askSvc().Ask(cmd.Context(), domain.AskRequest{Question: question, Model: askModel})
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if askJSON {
		data, err := json.MarshalIndent(answer, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal answer: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println(answer.Response)
	if askShowContext && len(answer.Context) > 0 {
		cmd.Println()
		cmd.Printf("Context (%s):\n", answer.Model)
		for i, c := range answer.Context {
			cmd.Printf("  [%d] %s\n", i+1, c)
		}
	}
	return nil
}
