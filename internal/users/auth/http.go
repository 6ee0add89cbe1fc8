// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth serves the pages that create and end a session: login,
registration, password recovery and logout.

# Architecture

The handler is a thin mediation layer between the browser and the backend:
  - Protocol: HTML forms in, HTML pages or 303 redirects out.
  - Session: the only writer of the session cookies ([session.Store]).
  - Verification: enforces input validation before calling the [Backend].

These routes are public. Every other page is behind the session guard.
*/
package auth

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/node/internal/gateway"
	"github.com/taibuivan/node/internal/platform/apperr"
	"github.com/taibuivan/node/internal/platform/ctxutil"
	"github.com/taibuivan/node/internal/platform/requestutil"
	"github.com/taibuivan/node/internal/platform/validate"
	"github.com/taibuivan/node/internal/platform/view"
	"github.com/taibuivan/node/internal/session"
)

// # Definitions & Constructors

// Backend is the part of the gateway this package consumes.
type Backend interface {
	Login(ctx context.Context, input gateway.LoginInput) (*gateway.LoginResult, error)
	Register(ctx context.Context, input gateway.RegisterInput) error
	FindPassword(ctx context.Context, email string) error
	Logout(ctx context.Context) error
}

// Handler implements the authentication pages.
type Handler struct {
	backend Backend
	store   session.Store
	pages   *view.Engine
}

// NewHandler constructs a new [Handler].
func NewHandler(backend Backend, store session.Store, pages *view.Engine) *Handler {
	return &Handler{backend: backend, store: store, pages: pages}
}

// RegisterRoutes mounts the public authentication pages.
//
// # Endpoints
//   - GET, POST /login
//   - GET, POST /register
//   - GET, POST /find-password
//   - POST /logout
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/login", handler.loginPage)
	router.Post("/login", handler.login)
	router.Get("/register", handler.registerPage)
	router.Post("/register", handler.register)
	router.Get("/find-password", handler.findPasswordPage)
	router.Post("/find-password", handler.findPassword)
	router.Post("/logout", handler.logout)
}

// # Login

func (handler *Handler) loginPage(writer http.ResponseWriter, request *http.Request) {
	next := request.URL.Query().Get(FieldNext)

	// Already signed in, nothing to do here
	if ctxutil.GetSessionToken(request.Context()) != "" {
		http.Redirect(writer, request, SafeNext(next), http.StatusSeeOther)
		return
	}

	handler.pages.Render(writer, request, http.StatusOK, view.PageLogin, view.Data{
		Title: "Log in",
		Form:  map[string]string{FieldNext: next},
	})
}

/*
Login authenticates the visitor and establishes the session.

POST /login

Request:
  - Form: email, password, next (originally requested location)

Response:
  - 303: Redirect to next when it is a local path, otherwise to the root
  - 400: Login page with field errors
  - 4xx/5xx: Login page with the normalized backend message
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	if err := requestutil.ParseForm(writer, request); err != nil {
		handler.pages.Error(writer, request, err)
		return
	}

	form := map[string]string{
		FieldEmail: requestutil.FormValue(request, FieldEmail),
		FieldNext:  requestutil.FormValue(request, FieldNext),
	}
	password := request.PostForm.Get(FieldPassword)

	// 1. Validate before the round trip
	validator := &validate.Validator{}
	validator.Required(FieldEmail, form[FieldEmail]).
		Email(FieldEmail, form[FieldEmail]).
		Required(FieldPassword, password)

	if err := validator.Err(); err != nil {
		handler.formError(writer, request, view.PageLogin, "Log in", form, err)
		return
	}

	// 2. Ask the backend for a session
	result, err := handler.backend.Login(request.Context(), gateway.LoginInput{
		Email:    form[FieldEmail],
		Password: password,
	})
	if err != nil {
		handler.formError(writer, request, view.PageLogin, "Log in", form, err)
		return
	}

	// 3. Token and user info are written together
	if err := handler.store.Set(writer, result.Token, result.User); err != nil {
		handler.pages.Error(writer, request, apperr.Unknown(gateway.MsgUnknown, err))
		return
	}

	ctxutil.GetLogger(request.Context()).InfoContext(request.Context(), "login_succeeded",
		slog.String("role", string(result.User.Role)),
	)

	http.Redirect(writer, request, SafeNext(form[FieldNext]), http.StatusSeeOther)
}

// # Registration

func (handler *Handler) registerPage(writer http.ResponseWriter, request *http.Request) {
	handler.pages.Render(writer, request, http.StatusOK, view.PageRegister, view.Data{Title: "Join"})
}

/*
Register creates an account that waits for administrator approval.

POST /register

Request:
  - Form: name, email, phone, password, confirm

Response:
  - 303: Redirect to /login with a confirmation banner
  - 400: Register page with field errors
  - 409: Register page with "Conflicting or duplicate data."
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	if err := requestutil.ParseForm(writer, request); err != nil {
		handler.pages.Error(writer, request, err)
		return
	}

	form := map[string]string{
		FieldName:  requestutil.FormValue(request, FieldName),
		FieldEmail: requestutil.FormValue(request, FieldEmail),
		FieldPhone: requestutil.FormValue(request, FieldPhone),
	}
	password := request.PostForm.Get(FieldPassword)
	confirm := request.PostForm.Get(FieldConfirm)

	validator := &validate.Validator{}
	validator.Required(FieldName, form[FieldName]).
		MaxLen(FieldName, form[FieldName], MaxNameLength).
		Required(FieldEmail, form[FieldEmail]).
		Email(FieldEmail, form[FieldEmail]).
		Phone(FieldPhone, form[FieldPhone]).
		MinLen(FieldPassword, password, MinPasswordLength).
		Custom(FieldConfirm, password != confirm, "Passwords do not match")

	if err := validator.Err(); err != nil {
		handler.formError(writer, request, view.PageRegister, "Join", form, err)
		return
	}

	err := handler.backend.Register(request.Context(), gateway.RegisterInput{
		Name:     form[FieldName],
		Email:    form[FieldEmail],
		Phone:    form[FieldPhone],
		Password: password,
	})
	if err != nil {
		handler.formError(writer, request, view.PageRegister, "Join", form, err)
		return
	}

	view.SetFlash(writer, msgRegistered)
	http.Redirect(writer, request, "/login", http.StatusSeeOther)
}

// # Password Recovery

func (handler *Handler) findPasswordPage(writer http.ResponseWriter, request *http.Request) {
	handler.pages.Render(writer, request, http.StatusOK, view.PageFindPassword, view.Data{
		Title: "Find password",
		Page:  false,
	})
}

/*
FindPassword asks the backend to send a reset link.

POST /find-password

Response:
  - 200: Confirmation, whether or not the address is registered
  - 400: Page with field errors
*/
func (handler *Handler) findPassword(writer http.ResponseWriter, request *http.Request) {
	if err := requestutil.ParseForm(writer, request); err != nil {
		handler.pages.Error(writer, request, err)
		return
	}

	form := map[string]string{FieldEmail: requestutil.FormValue(request, FieldEmail)}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, form[FieldEmail]).Email(FieldEmail, form[FieldEmail])

	if err := validator.Err(); err != nil {
		handler.formError(writer, request, view.PageFindPassword, "Find password", form, err)
		return
	}

	if err := handler.backend.FindPassword(request.Context(), form[FieldEmail]); err != nil {
		handler.formError(writer, request, view.PageFindPassword, "Find password", form, err)
		return
	}

	handler.pages.Render(writer, request, http.StatusOK, view.PageFindPassword, view.Data{
		Title: "Find password",
		Page:  true,
	})
}

// # Logout

/*
Logout ends the session.

POST /logout

Description: The backend is told first, with the token still attached. Its
failure is logged and ignored; the cookies are cleared regardless.
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	if ctxutil.GetSessionToken(ctx) != "" {
		if err := handler.backend.Logout(ctx); err != nil {
			ctxutil.GetLogger(ctx).WarnContext(ctx, "logout_backend_failed", slog.Any("error", err))
		}
	}

	handler.store.Clear(writer)
	http.Redirect(writer, request, "/login", http.StatusSeeOther)
}

// # Helpers

// formError re-renders a form with its values, field errors and the message.
func (handler *Handler) formError(writer http.ResponseWriter, request *http.Request, page, title string, form map[string]string, err error) {
	appError := apperr.As(err)
	if appError == nil {
		handler.pages.Error(writer, request, err)
		return
	}

	handler.pages.Render(writer, request, appError.HTTPStatus, page, view.Data{
		Title:  title,
		Form:   form,
		Errors: validate.FieldMessages(err),
		Flash:  appError.Message,
	})
}

// SafeNext returns next when it is a path on this site, and "/" otherwise.
// It keeps the login redirect from becoming an open redirect.
func SafeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}

	parsed, err := url.Parse(next)
	if err != nil || parsed.Scheme != "" || parsed.Host != "" {
		return "/"
	}

	return next
}
