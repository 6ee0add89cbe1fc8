// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package admin serves the member approval console. The server mounts it
// behind the admin role check; the backend enforces the same rule.
package admin

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/node/internal/gateway"
	"github.com/taibuivan/node/internal/platform/ctxutil"
	"github.com/taibuivan/node/internal/platform/requestutil"
	"github.com/taibuivan/node/internal/platform/view"
)

// ConsolePath is where every admin action returns to.
const ConsolePath = "/admin"

// Backend is the part of the gateway this package consumes.
type Backend interface {
	Members(ctx context.Context) ([]gateway.Member, error)
	Authorize(ctx context.Context, userID string) error
}

// Handler implements the admin console.
type Handler struct {
	backend Backend
	pages   *view.Engine
}

// NewHandler constructs a new admin [Handler].
func NewHandler(backend Backend, pages *view.Engine) *Handler {
	return &Handler{backend: backend, pages: pages}
}

// RegisterRoutes mounts the console.
//
// # Endpoints
//   - GET  /admin
//   - POST /admin/{id}/authorize
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get(ConsolePath, handler.members)
	router.Post(ConsolePath+"/{id}/authorize", handler.authorize)
}

func (handler *Handler) members(writer http.ResponseWriter, request *http.Request) {
	members, err := handler.backend.Members(request.Context())
	if err != nil {
		handler.pages.Error(writer, request, err)
		return
	}

	handler.pages.Render(writer, request, http.StatusOK, view.PageAdmin, view.Data{
		Title: "Members",
		Page:  members,
	})
}

/*
POST /admin/{id}/authorize

Description: Promotes a pending member. The console is shown again either
way, with the failure as a flash message.

Response:
  - 303: Back to /admin
*/
func (handler *Handler) authorize(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()
	id := requestutil.Param(request, "id")

	if err := handler.backend.Authorize(ctx, id); err != nil {
		view.SetFlash(writer, gateway.Normalize(err).Message)
		http.Redirect(writer, request, ConsolePath, http.StatusSeeOther)
		return
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "member_authorized", slog.String("member_id", id))
	view.SetFlash(writer, "Member approved.")
	http.Redirect(writer, request, ConsolePath, http.StatusSeeOther)
}
