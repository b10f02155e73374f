package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/aceyai/acey-backend/internal/handlers"
	"github.com/aceyai/acey-backend/internal/metrics"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the interview API server",
		Long: `Starts the Acey interview API on the specified port.

The API bootstraps voice interview sessions through Vapi, forwards camera
frames to a vision-capable LLM for body language commentary, and generates
the end-of-interview review.`,
		Example: `  # Start server on the default port 5001
  acey serve

  # Start server on a custom port
  acey serve --port 8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			handler := handlers.New()

			// Set up routes
			mux := http.NewServeMux()
			mux.HandleFunc("/api/data", handler.HandleData)
			mux.HandleFunc("/api/vapi-assistant", handler.HandleAssistant)
			mux.HandleFunc("/api/analyze-frame", handler.HandleAnalyzeFrame)
			mux.HandleFunc("/api/get-review", handler.HandleGetReview)
			mux.HandleFunc("/api/agent-followup", handler.HandleAgentFollowup)
			mux.HandleFunc("/api/enhanced-followup", handler.HandleEnhancedFollowup)
			mux.HandleFunc("/api/analyze-job-description", handler.HandleAnalyzeJobDescription)
			mux.HandleFunc("/api/parse-linkedin-job", handler.HandleParseLinkedInJob)
			mux.HandleFunc("/api/vapi-webhook", handler.HandleWebhook)
			mux.HandleFunc("/api/sessions", handler.HandleSessions)
			mux.HandleFunc("/api/sessions/", handler.HandleSessionDetail)
			mux.Handle("/metrics", metrics.Handler())
			mux.HandleFunc("/", handler.HandleStatic)
			mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
				if _, err := w.Write([]byte("OK")); err != nil {
					slog.Error("Unable to write healthcheck", "err", err)
				}
			})

			if envPort := os.Getenv("PORT"); envPort != "" && !cmd.Flags().Changed("port") {
				port = envPort
			}

			addr := ":" + port
			server := &http.Server{
				Addr:    addr,
				Handler: handlers.WithCORS(mux),
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Acey interview API available", "addr", addr, "url", "http://localhost"+addr)
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

	cmd.Flags().StringVarP(&port, "port", "p", "5001", "Port to listen on")

	return cmd
}
