// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package web

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/node/internal/gateway"
	"github.com/taibuivan/node/internal/guard"
	"github.com/taibuivan/node/internal/platform/apperr"
	"github.com/taibuivan/node/internal/platform/constants"
	"github.com/taibuivan/node/internal/platform/middleware"
	"github.com/taibuivan/node/internal/session"
)

/*
newRouter builds the route table.

# Access

  - Anonymous: /login, /register, /find-password, /logout, /health, /ready
  - Root: home feed or landing page, never a redirect
  - Everything else: signed-in visitors only; /admin also needs role admin
*/
func newRouter(ctx context.Context, deps Dependencies, handlers Handlers) *chi.Mux {
	router := chi.NewRouter()
	gate := guard.New(deps.Store)

	// # Middleware Chain
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogger(deps.Log))
	router.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	router.Use(middleware.RateLimit(ctx, deps.Pages))
	router.Use(middleware.PanicRecovery(deps.Pages))
	router.Use(middleware.Authenticate(deps.Store))
	router.Use(middleware.CORS(deps.Config))
	router.Use(chimw.CleanPath)

	router.NotFound(func(writer http.ResponseWriter, request *http.Request) {
		deps.Pages.Error(writer, request, apperr.NotFound(gateway.MsgNotFound))
	})

	// # Infrastructure Endpoints
	router.Get("/health", handlers.Liveness)
	router.Get("/ready", handlers.Readiness)

	// # Anonymous Pages
	handlers.Auth.RegisterRoutes(router)

	// # Root
	router.Method(http.MethodGet, "/", gate.Root(
		http.HandlerFunc(handlers.Feed.Home),
		http.HandlerFunc(handlers.Feed.Landing),
	))

	// # Guarded Pages
	router.Group(func(private chi.Router) {
		private.Use(gate.Protect)

		handlers.Feed.RegisterRoutes(private)
		handlers.Post.RegisterRoutes(private)
		handlers.Account.RegisterRoutes(private)
		handlers.Message.RegisterRoutes(private)

		private.Group(func(console chi.Router) {
			console.Use(middleware.RequireRole(session.RoleAdmin, deps.Pages))
			handlers.Admin.RegisterRoutes(console)
		})
	})

	return router
}
