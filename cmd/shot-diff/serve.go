package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ironsheep/shot-diff/internal/config"
	"github.com/ironsheep/shot-diff/internal/server"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP comparison service",
		Long: `Serve starts an HTTP server that compares two remote images per request.

  GET /?i1=<url>&i2=<url>  downloads both images, compares them, and
                           responds with the overlay PNG; the number of
                           detected regions is in the X-Rectangles-Found
                           header
  GET /health              liveness probe

Downloads are limited to 10MB per image and to the content types
image/jpeg, image/png, and image/webp. Every request works in its own
temporary directory, which is removed when the request finishes.

Examples:
  # Serve on the default port with default tuning
  shot-diff serve

  # Serve on another port with a stricter threshold
  shot-diff serve --addr :9090 --threshold 120`,
		RunE: runServeCmd,
	}

	cmd.Flags().String("addr", config.DefaultAddr, "Listen address in host:port form")
	addTuningFlags(cmd)

	return cmd
}

// runServeCmd executes the serve command.
func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("addr") {
		if cfg.Addr, err = cmd.Flags().GetString("addr"); err != nil {
			return err
		}
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	srv, err := server.New(cfg, server.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, stopping server...")
		cancel()
	}()

	if err := srv.ListenAndServe(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
