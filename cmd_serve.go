package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/akshaysalvi/portfolio/internal/avatar"
	"github.com/akshaysalvi/portfolio/internal/bootstrap"
	"github.com/akshaysalvi/portfolio/internal/catalog"
	"github.com/akshaysalvi/portfolio/internal/config"
	"github.com/akshaysalvi/portfolio/internal/content"
	"github.com/akshaysalvi/portfolio/internal/logger"
	"github.com/akshaysalvi/portfolio/internal/metrics"
	"github.com/akshaysalvi/portfolio/internal/portrait"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Create the placeholder avatar if needed and start the web server",
	RunE:  runServe,
}

// server holds everything the handlers need.
type server struct {
	cfg       *config.Config
	log       zerolog.Logger
	profile   *content.Profile
	catalog   *catalog.Catalog
	avatars   *avatar.Generator
	portraits *portrait.Resolver
}

func newServer(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*server, error) {
	profile, err := content.Load(cfg.ContentPath)
	if err != nil {
		return nil, err
	}

	cat, err := catalog.New(ctx, cfg.CatalogDSN, profile)
	if err != nil {
		return nil, err
	}

	initials := cfg.AvatarLabel
	if initials == "" {
		initials = profile.Initials
	}

	return &server{
		cfg:     cfg,
		log:     log,
		profile: profile,
		catalog: cat,
		avatars: avatar.New(
			avatar.WithSources(avatar.SourcesFromPaths(cfg.AvatarFontPaths)...),
			avatar.WithMaxPixels(cfg.MaxAvatarPixels()),
			avatar.WithLogger(log),
		),
		portraits: portrait.Default(cfg.PhotoPath, cfg.PlaceholderPath, initials, cfg.AvatarBackground),
	}, nil
}

func (s *server) Close() error {
	return s.catalog.Close()
}

// ensurePlaceholder never fails startup; the page has its own fallback.
func (s *server) ensurePlaceholder() {
	var gen bootstrap.Generator
	if s.cfg.PlaceholderEnabled {
		gen = s.avatars
	}

	res, err := bootstrap.EnsurePlaceholder(gen, s.cfg.AvatarRequest(), s.cfg.PlaceholderPath, s.log)
	if res.Created {
		metrics.ObserveAvatar(&avatar.Image{Font: res.Font}, nil)
	}
	if err != nil && !errors.Is(err, bootstrap.ErrImagingUnavailable) {
		metrics.ObserveAvatar(nil, err)
		s.log.Warn().Err(err).Str("path", s.cfg.PlaceholderPath).Msg("could not create profile placeholder")
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.LogLevel, cfg.LogPretty)
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv, err := newServer(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("initializing server: %w", err)
	}
	defer srv.Close()

	srv.ensurePlaceholder()

	httpServer := &http.Server{
		Addr:    cfg.Addr(),
		Handler: srv.routes(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("portfolio listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info().Msg("shutdown complete")
	return nil
}
