package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sagarc03/gallery"
	"github.com/sagarc03/gallery/config"
	"github.com/sagarc03/gallery/filesystem"
	galleryhttp "github.com/sagarc03/gallery/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the gallery HTTP server.

The server lists folders and images under the gallery root and serves its
files. Requests to / are answered with the default document (000.html).`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 3000, "HTTP server port (env: GALLERY_SERVER_PORT)")
	serveCmd.Flags().Bool("confine-static", false, "refuse static files outside the gallery root")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server, err := newServer(cfg)
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", server.Addr, err)
	}

	go func() {
		<-ctx.Done()

		slog.Info("shutting down server...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "err", err)
		}
	}()

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Server running at: http://localhost:%d/\n", cfg.Server.Port)
	slog.Info("starting server", "addr", ln.Addr().String(), "root", cfg.Storage.Path)

	if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// newServer wires storage, service and handler into an http.Server for cfg.
func newServer(cfg *config.Config) (*http.Server, error) {
	storage, err := filesystem.NewFileStorage(cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("open gallery root: %w", err)
	}

	service := gallery.NewGalleryService(storage, gallery.ServiceConfig{
		ConfineStatic: cfg.Server.ConfineStatic,
	})

	handler := galleryhttp.NewHandler(&galleryhttp.HandlerConfig{
		DefaultDocument: cfg.Server.DefaultDocument,
		CORS:            cfg.CORS,
	}, service)

	readTimeout, writeTimeout, idleTimeout := cfg.Server.Timeouts()

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      handler.Router(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}, nil
}
