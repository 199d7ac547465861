package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/image-selector/internal/catalog"
	"github.com/lehigh-university-libraries/image-selector/internal/claim"
	"github.com/lehigh-university-libraries/image-selector/internal/config"
	"github.com/lehigh-university-libraries/image-selector/internal/handlers"
	"github.com/lehigh-university-libraries/image-selector/internal/sheets"
)

func newServeCmd() *cobra.Command {
	var port string
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start web server for the image selection interface",
		Long: `Starts the Image Selector web interface on the specified port.

Workers open it with their task context in the URL
(?task_id=...&project_id=...), browse the available images, and claim one.`,
		Example: `  # Start server on default port 8888
  image-selector serve

  # Start server on custom port
  image-selector serve --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Port = port
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			client := sheets.NewClient(cfg)
			reader := catalog.NewReader(client)
			coordinator := claim.NewCoordinator(reader, client)
			handler := handlers.New(reader, coordinator, client)

			// Set up routes
			mux := http.NewServeMux()
			mux.HandleFunc("/api/images", handler.HandleImages)
			mux.HandleFunc("/api/images/", handler.HandleImageAction)
			mux.HandleFunc("/api/sessions", handler.HandleSessions)
			mux.HandleFunc("/api/sessions/", handler.HandleSessionDetail)
			mux.HandleFunc("/api/refresh", handler.HandleRefresh)
			mux.HandleFunc("/", handler.HandleStatic)
			mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
				if _, err := w.Write([]byte("OK")); err != nil {
					slog.Error("Unable to write healthcheck", "err", err)
				}
			})

			addr := ":" + cfg.Port
			server := &http.Server{
				Addr:    addr,
				Handler: mux,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Image Selector available", "addr", addr, "url", "http://localhost"+addr, "spreadsheet_id", cfg.SpreadsheetID)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				// Give server 5 seconds to shut down gracefully
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides config)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to selector.yaml")

	return cmd
}
