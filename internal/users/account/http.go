// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account serves the visitor's own pages: profile and settings.

# Security

Both pages sit behind the session guard. The profile shows the user info
cached at login; it is never fetched again, so it can be stale until the
next login.
*/
package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/node/internal/platform/view"
)

// Handler implements the account pages.
type Handler struct {
	pages *view.Engine
}

// NewHandler constructs a new account [Handler].
func NewHandler(pages *view.Engine) *Handler {
	return &Handler{pages: pages}
}

// RegisterRoutes mounts the account pages.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/profile", handler.profile)
	router.Get("/settings", handler.settings)
}

// profile renders GET /profile from the cached user info.
func (handler *Handler) profile(writer http.ResponseWriter, request *http.Request) {
	handler.pages.Render(writer, request, http.StatusOK, view.PageProfile, view.Data{Title: "Profile"})
}

// settings renders GET /settings. Logout is posted from here.
func (handler *Handler) settings(writer http.ResponseWriter, request *http.Request) {
	handler.pages.Render(writer, request, http.StatusOK, view.PageSettings, view.Data{Title: "Settings"})
}
