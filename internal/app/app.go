package app

import (
	"context"
	stdhttp "net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/syncwatch/server/internal/auth"
	"github.com/syncwatch/server/internal/config"
	"github.com/syncwatch/server/internal/core"
	"github.com/syncwatch/server/internal/log"
	"github.com/syncwatch/server/internal/proxy"
	"github.com/syncwatch/server/internal/search"
	transporthttp "github.com/syncwatch/server/internal/transport/http"
)

// App wires together the room core, peripheral collaborators and transport.
type App struct {
	server          *stdhttp.Server
	shutdownTimeout time.Duration
	hub             *core.Hub
	logger          *zerolog.Logger
}

// New constructs the application with provided configuration.
func New(cfg config.Config, logger *zerolog.Logger) *App {
	registry := core.NewRegistry(log.Component(logger, "registry"))
	relay := core.NewCallRelay(log.Component(logger, "call-relay"))
	hub := core.NewHub(registry, relay, cfg.RoomGrace, log.Component(logger, "hub"))

	authService := auth.NewService(cfg.Passphrase, cfg.AccessSecret, auth.JWTConfig{
		Issuer: "syncwatch",
		TTL:    cfg.AccessTTL,
	})
	searchService := search.NewService(log.Component(logger, "search"))
	proxyService := proxy.NewService(log.Component(logger, "proxy"))

	server := transporthttp.NewServer(hub, registry, authService, searchService, proxyService, cfg, logger)

	return &App{
		server:          server,
		shutdownTimeout: cfg.ShutdownTimeout,
		hub:             hub,
		logger:          logger,
	}
}

// Run starts the hub and HTTP server and blocks until context cancellation
// or fatal error.
func (a *App) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	go a.hub.Run(ctx)

	go func() {
		if err := a.server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	a.logger.Info().Str("addr", a.server.Addr).Msg("server started")

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()

		a.logger.Info().Msg("shutting down http server")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-serverErr
	}
}
