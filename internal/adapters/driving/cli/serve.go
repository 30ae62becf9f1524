package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	httpapi "github.com/custodia-labs/sercha-rag/internal/adapters/driving/http"
	"github.com/custodia-labs/sercha-rag/internal/adapters/driving/watch"
	"github.com/custodia-labs/sercha-rag/internal/core/domain"
	"github.com/custodia-labs/sercha-rag/internal/logger"
)

const serveShutdownTimeout = 5 * time.Second

var (
	serveAddr     string
	serveWatchDir string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP gateway",
	Long: `Start the HTTP gateway on the configured address (default :3000).

The vector index is seeded in the background. Requests that arrive before
seeding completes fail until the index is ready. With --watch, files dropped
into the directory are ingested as they appear.

Endpoints:
  POST /api/ingest     {content}
  POST /api/upload     multipart field "file"
  POST /api/generate   {prompt, model}
  POST /api/search     {query, k}
  GET  /api/status
  GET  /api/ingestions
  GET  /test`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server.addr)")
	serveCmd.Flags().StringVar(&serveWatchDir, "watch", "", "directory to watch for new files (overrides watch.dir)")
	rootCmd.AddCommand(serveCmd)
}

// applyServeFlags lets flags override resolved settings.
func applyServeFlags(settings *domain.Settings) {
	if serveAddr != "" {
		settings.Server.Addr = serveAddr
	}
	if serveWatchDir != "" {
		settings.Watch.Dir = serveWatchDir
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	logger.SetTimestamps(true)
	defer logger.SetTimestamps(false)

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	applyServeFlags(settings)

	gw, err := buildGateway(settings)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := gw.models.Ping(ctx); err != nil {
		cmd.PrintErrf("Warning: %v\n", err)
	}

	if err := gw.index.Start(ctx); err != nil {
		return fmt.Errorf("start index: %w", err)
	}

	server, err := httpapi.NewServer(httpapi.Ports{
		Ingest: gw.ingest,
		Ask:    gw.ask,
		Index:  gw.index,
	}, httpapi.Config{
		Addr:          settings.Server.Addr,
		AllowedOrigin: settings.Server.AllowedOrigin,
		MaxBodyBytes:  settings.Upload.MaxBytes,
	})
	if err != nil {
		return err
	}
	if err := server.Start(); err != nil {
		return err
	}
	cmd.Printf("sercha-rag listening on %s\n", server.Addr())

	watchErr := make(chan error, 1)
	if settings.Watch.Dir != "" {
		w := watch.New(settings.Watch.Dir, gw.ingest)
		go func() {
			// The initial scan needs a ready index.
			if err := gw.index.Wait(ctx); err != nil {
				watchErr <- err
				return
			}
			watchErr <- w.Run(ctx)
		}()
		cmd.Printf("Watching %s\n", settings.Watch.Dir)
	}

	var serveErr error
	for serveErr == nil && ctx.Err() == nil {
		select {
		case <-ctx.Done():
		case serveErr = <-server.Err():
		case err := <-watchErr:
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("Watcher stopped: %v", err)
			}
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), serveShutdownTimeout)
	defer shutdownCancel()
	cmd.Println("Shutting down")
	if err := server.Shutdown(shutdownCtx); err != nil && serveErr == nil {
		return err
	}
	return serveErr
}
