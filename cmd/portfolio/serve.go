package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"lechatnoir.dev/internal/handlers"
	"lechatnoir.dev/internal/watch"
)

var (
	serveAddr  string
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the site over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		if serveAddr != "" {
			cfg.Server.Addr = serveAddr
		}

		a, err := newApp(cfg, logger)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if serveWatch || cfg.Dev {
			w, err := watch.New(watchDirs(cfg.ContentDir, cfg.Components.Dir), []func(){a.site.Invalidate}, watch.WithLogger(logger))
			if err != nil {
				return fmt.Errorf("starting watcher: %w", err)
			}
			if err := w.Start(ctx); err != nil {
				return fmt.Errorf("starting watcher: %w", err)
			}
			defer w.Stop()
			logger.Info("watching content for changes", zap.String("dir", cfg.ContentDir))
		}

		srv := &http.Server{
			Addr:              cfg.Server.Addr,
			Handler:           handlers.SetupRoutes(cfg, handlers.Dependencies{Site: a.site, Awards: a.awards, Logger: logger}),
			ReadHeaderTimeout: 10 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			logger.Info("server listening", zap.String("addr", cfg.Server.Addr), zap.String("content", cfg.ContentDir))
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server: %w", err)
		case <-ctx.Done():
		}

		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	},
}

// watchDirs returns the content dir plus the components dir when it lives
// outside it
func watchDirs(content, components string) []string {
	dirs := []string{content}
	absContent, err1 := filepath.Abs(content)
	absComponents, err2 := filepath.Abs(components)
	if err1 != nil || err2 != nil {
		return dirs
	}
	if absComponents != absContent && !strings.HasPrefix(absComponents, absContent+string(filepath.Separator)) {
		if _, err := os.Stat(components); err == nil {
			dirs = append(dirs, components)
		}
	}
	return dirs
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server.addr)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "reload content on change")
	rootCmd.AddCommand(serveCmd)
}
