// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command web is the entry point for the NODE web frontend.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Build the backend gateway.
//  4. Connect to Redis when configured (render cache).
//  5. Wire page handlers.
//  6. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taibuivan/node/internal/admin"
	"github.com/taibuivan/node/internal/feed"
	"github.com/taibuivan/node/internal/gateway"
	"github.com/taibuivan/node/internal/message"
	"github.com/taibuivan/node/internal/platform/config"
	"github.com/taibuivan/node/internal/platform/constants"
	redisstore "github.com/taibuivan/node/internal/platform/redis"
	"github.com/taibuivan/node/internal/platform/view"
	"github.com/taibuivan/node/internal/post"
	"github.com/taibuivan/node/internal/render"
	"github.com/taibuivan/node/internal/session"
	"github.com/taibuivan/node/internal/users/account"
	"github.com/taibuivan/node/internal/users/auth"
	"github.com/taibuivan/node/internal/web"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("[NODE] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("backend", cfg.BackendURL()),
	)

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. Gateway ────────────────────────────────────────────────────────
	client, err := gateway.New(gateway.Options{
		BaseURL:            cfg.BackendURL(),
		Timeout:            cfg.GatewayTimeout,
		ForwardCredentials: cfg.ForwardCredentials,
	})
	must(log, err, "build gateway")

	// ── 4. Redis (optional) ───────────────────────────────────────────────
	rdb, err := redisstore.Connect(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")

	renderer := render.NewCached(render.New(), nil)
	checks := web.HealthDependencies{CheckGateway: client.Ping}

	if rdb != nil {
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()

		renderer = render.NewCached(render.New(), render.NewRedisCache(rdb, cfg.RenderCacheTTL))
		checks.CheckCache = func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		}
	}

	// ── 5. Page Wiring ────────────────────────────────────────────────────
	pages := view.MustNew()
	store := session.NewCookieStore(
		session.WithExpiry(session.FixedTTL(cfg.SessionTTL)),
		session.WithSecure(cfg.IsProduction()),
	)
	posts := gateway.NewPosts(client)

	liveness, readiness := web.NewHealthHandlers(checks, log)

	handlers := web.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(gateway.NewAuth(client), store, pages),
		Account:   account.NewHandler(pages),
		Feed:      feed.NewHandler(posts, renderer, pages),
		Post:      post.NewHandler(posts, renderer, pages),
		Message:   message.NewHandler(gateway.NewMessages(client), pages),
		Admin:     admin.NewHandler(gateway.NewAdmin(client), pages),
	}

	// ── 6. HTTP Server ────────────────────────────────────────────────────
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	server := web.NewServer(rootCtx, web.Dependencies{
		Config: cfg,
		Log:    log,
		Store:  store,
		Pages:  pages,
	}, handlers)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
// Limited to startup wiring.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
