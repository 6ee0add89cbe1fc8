// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package web wires together the HTTP router, middleware chain, and all page
handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost presentation boundary.
  - It is the composition root for the chi router and the session guard.
  - Only this package and cmd/web import net/http server primitives.
*/
package web

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/node/internal/admin"
	"github.com/taibuivan/node/internal/feed"
	"github.com/taibuivan/node/internal/message"
	"github.com/taibuivan/node/internal/platform/config"
	"github.com/taibuivan/node/internal/platform/constants"
	"github.com/taibuivan/node/internal/platform/view"
	"github.com/taibuivan/node/internal/post"
	"github.com/taibuivan/node/internal/session"
	"github.com/taibuivan/node/internal/users/account"
	"github.com/taibuivan/node/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups the page handler sets.
type Handlers struct {
	// Liveness is the /health handler.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler.
	Readiness http.HandlerFunc

	Auth    *auth.Handler
	Account *account.Handler
	Feed    *feed.Handler
	Post    *post.Handler
	Message *message.Handler
	Admin   *admin.Handler
}

// Dependencies are the shared collaborators of the route table.
type Dependencies struct {
	Config *config.Config
	Log    *slog.Logger
	Store  session.Store
	Pages  *view.Engine
}

// # Server Initialization

// NewServer constructs the router with the full middleware chain and the
// route table.
func NewServer(ctx context.Context, deps Dependencies, handlers Handlers) *Server {
	router := newRouter(ctx, deps, handlers)

	return &Server{
		router: router,
		log:    deps.Log,
		httpServer: &http.Server{
			Addr:              ":" + deps.Config.ServerPort,
			Handler:           router,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Handler exposes the router (tests).
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
