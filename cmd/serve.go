package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/seawander/stiscoron/internal/handlers"
	"github.com/seawander/stiscoron/internal/occulter"
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the visibility web service",
		Long: `Starts an HTTP service exposing the visibility computation: JSON
verdicts, rendered PNG overlays, the occulter list, and a small in-memory
store of named pointing plans for comparing candidate visits.`,
		Example: `  # Start server on default port 8888
  stiscoron serve

  # Start server on custom port
  stiscoron serve --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := occulter.Load()
			if err != nil {
				return fmt.Errorf("failed to load calibration: %w", err)
			}
			handler := handlers.New(cat)

			// Set up routes
			mux := http.NewServeMux()
			mux.HandleFunc("/api/masks", handler.HandleMasks)
			mux.HandleFunc("/api/visibility", handler.HandleVisibility)
			mux.HandleFunc("/api/overlay", handler.HandleOverlay)
			mux.HandleFunc("/api/plans", handler.HandlePlans)
			mux.HandleFunc("/api/plans/", handler.HandlePlanDetail)
			mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
				if _, err := w.Write([]byte("OK")); err != nil {
					slog.Error("Unable to write healthcheck", "err", err)
				}
			})

			addr := ":" + port
			server := &http.Server{
				Addr:    addr,
				Handler: mux,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Visibility service available", "addr", addr, "url", "http://localhost"+addr)
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

	cmd.Flags().StringVarP(&port, "port", "p", "8888", "Port to listen on")

	return cmd
}
