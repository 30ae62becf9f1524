package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
)

var (
	ingestSource string
	ingestJSON   bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [text]",
	Short: "Ingest inline content",
	Long: `Sends content to the gateway for indexing.

Plain text is indexed as written. With --json the content is parsed as a JSON
object and indexed as a structured record. Use "-" to read from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

var uploadCmd = &cobra.Command{
	Use:   "upload [file]",
	Short: "Upload a document for ingestion",
	Long: "Uploads a file to the gateway. The format is chosen from the extension:\n\n" +
		supportedFormatsHelp(),
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

var ingestionsCmd = &cobra.Command{
	Use:   "ingestions",
	Short: "List completed ingestions",
	Args:  cobra.NoArgs,
	RunE:  runIngestions,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the gateway index state",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestSource, "source", "s", "", "label recorded with the ingestion (default inline)")
	ingestCmd.Flags().BoolVar(&ingestJSON, "json", false, "parse the content as a JSON object")
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(ingestionsCmd)
	rootCmd.AddCommand(statusCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	raw := args[0]
	if raw == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		raw = string(data)
	}
	if strings.TrimSpace(raw) == "" {
		return errors.New("content is empty")
	}

	var content any = raw
	if ingestJSON {
		var record map[string]any
		if err := json.Unmarshal([]byte(raw), &record); err != nil {
			return fmt.Errorf("content is not a JSON object: %w", err)
		}
		content = record
	}

	result, err := ingestSvc().IngestContent(cmd.Context(), content, ingestSource)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}
	cmd.Printf("Ingested %d chunk(s) (%s)\n", result.ChunkCount, result.IngestionID)
	return nil
}

func runUpload(cmd *cobra.Command, args []string) error {
	path := args[0]
	name := filepath.Base(path)
	if _, err := domain.FormatFromFilename(name); err != nil {
		return fmt.Errorf("%w (supported: %s)", err, strings.Join(domain.SupportedExtensions(), " "))
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	result, err := ingestSvc().IngestFile(cmd.Context(), name, f)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}
	cmd.Printf("Uploaded %s: %d chunk(s) (%s)\n", name, result.ChunkCount, result.IngestionID)
	return nil
}

func runIngestions(cmd *cobra.Command, _ []string) error {
	ingestions, err := ingestSvc().Ingestions(cmd.Context())
	if err != nil {
		return fmt.Errorf("list ingestions: %w", err)
	}
	if len(ingestions) == 0 {
		cmd.Println("No ingestions yet.")
		return nil
	}

	for _, ing := range ingestions {
		cmd.Printf("%s  %-16s %-26s %3d chunk(s)  %s\n",
			ing.ID, ing.Source, formatLabel(ing.Format), ing.ChunkCount, ing.CreatedAt.Format(time.RFC3339))
	}
	return nil
}

func runStatus(cmd *cobra.Command, _ []string) error {
	status, err := statusSvc().Status(cmd.Context())
	if err != nil {
		return fmt.Errorf("get status: %w", err)
	}

	cmd.Printf("State: %s\n", status.State)
	cmd.Printf("Entries: %d\n", status.Entries)
	cmd.Printf("Dimensions: %d\n", status.Dimensions)
	if status.Err != nil {
		cmd.Printf("Error: %v\n", status.Err)
	}
	return nil
}

// supportedFormatsHelp lists each accepted extension with its format.
func supportedFormatsHelp() string {
	var b strings.Builder
	for _, ext := range domain.SupportedExtensions() {
		format, _ := domain.FormatFromFilename("file" + ext)
		fmt.Fprintf(&b, "  %-10s %s\n", ext, format.Description())
	}
	return b.String()
}

// formatLabel describes a known format. Formats reported by a newer
// gateway are shown as sent.
func formatLabel(f domain.Format) string {
	if !f.IsValid() {
		return f.String()
	}
	return f.Description()
}
