package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/crosscheck-hq/crosscheck-cli/internal/adapters/driving/httpapi"
	"github.com/crosscheck-hq/crosscheck-cli/internal/logger"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the comparison HTTP API",
	Long: `Serves the document comparison API: upload, list and delete source
documents, and trigger comparison runs.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "Port to listen on (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if comparisonService == nil {
		return errors.New("comparison service not configured")
	}
	if fileStore == nil {
		return errors.New("file store not configured")
	}

	port := config.Port
	if servePort != "" {
		port = servePort
	}

	handler := httpapi.New(comparisonService, fileStore, extractorRegistry, config.OutputDir, config.BlockSize)
	server := &http.Server{
		Addr:    ":" + port,
		Handler: handler.Routes(),
	}

	serverErr := make(chan error, 1)
	go func() {
		cmd.Printf("crosscheck API listening on http://localhost:%s\n", port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-cmd.Context().Done():
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	case err := <-serverErr:
		return err
	}
}
