// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package view renders the HTML pages of the frontend.

Every page is parsed once at startup from the embedded templates directory,
together with the shared layout. Rendering writes into a buffer first so a
template failure never leaves a half-written page.

Pages:

  - Layout: navigation for authenticated visitors, flash banner.
  - Content: one template per page defining the "content" block.
  - Error: the shared page for failures, showing only the client-safe message.
*/
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/taibuivan/node/internal/platform/ctxutil"
	"github.com/taibuivan/node/internal/platform/respond"
	"github.com/taibuivan/node/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

// # Page Names

const (
	PageError         = "error"
	PageLanding       = "landing"
	PageFeed          = "feed"
	PagePost          = "post"
	PageEditor        = "editor"
	PageReport        = "report"
	PageMessages      = "messages"
	PageConversation  = "conversation"
	PageNotifications = "notifications"
	PageProfile       = "profile"
	PageSettings      = "settings"
	PageAdmin         = "admin"
	PageLogin         = "login"
	PageRegister      = "register"
	PageFindPassword  = "find_password"
)

var pageNames = []string{
	PageError, PageLanding, PageFeed, PagePost, PageEditor, PageReport,
	PageMessages, PageConversation, PageNotifications, PageProfile,
	PageSettings, PageAdmin, PageLogin, PageRegister, PageFindPassword,
}

// # Page Data

// Data is handed to every template. Handlers fill Title, Page, Form and
// Errors; [Engine.Render] fills the rest from the request.
type Data struct {
	Title string

	// Page is the page-specific payload.
	Page any

	// Form echoes submitted values back into inputs after a failure.
	Form map[string]string

	// Errors holds one message per invalid form field.
	Errors map[string]string

	// Filled by the engine
	Flash         string
	User          *session.UserInfo
	Authenticated bool
	RequestID     string
}

// # Engine

// Engine holds the parsed page templates.
type Engine struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02 15:04")
	},
	"inc": func(n int) int { return n + 1 },
	"dec": func(n int) int { return n - 1 },
}

// New parses every page template together with the layout.
func New() (*Engine, error) {
	engine := &Engine{pages: make(map[string]*template.Template, len(pageNames))}

	for _, name := range pageNames {
		page, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("view: parse %s: %w", name, err)
		}
		engine.pages[name] = page
	}

	return engine, nil
}

// MustNew is [New] for program start-up and tests.
func MustNew() *Engine {
	engine, err := New()
	if err != nil {
		panic(err)
	}
	return engine
}

/*
Render writes a full HTML page.

Parameters:
  - writer: http.ResponseWriter
  - request: *http.Request (source of user, flash and request id)
  - status: int (HTTP status of the page)
  - name: string (one of the Page constants)
  - data: Data
*/
func (engine *Engine) Render(writer http.ResponseWriter, request *http.Request, status int, name string, data Data) {
	ctx := request.Context()

	page, ok := engine.pages[name]
	if !ok {
		ctxutil.GetLogger(ctx).ErrorContext(ctx, "view_unknown_page", slog.String("page", name))
		http.Error(writer, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	// 1. Fill the request-derived fields
	data.User = ctxutil.GetUser(ctx)
	data.Authenticated = ctxutil.GetSessionToken(ctx) != ""
	data.RequestID = ctxutil.GetRequestID(ctx)
	if data.Flash == "" {
		data.Flash = Flash(writer, request)
	}

	// 2. Execute into a buffer so failures never produce partial output
	var buffer bytes.Buffer
	if err := page.ExecuteTemplate(&buffer, "layout", data); err != nil {
		ctxutil.GetLogger(ctx).ErrorContext(ctx, "view_render_failed",
			slog.String("page", name),
			slog.Any("error", err),
		)
		http.Error(writer, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	// 3. Pages depend on the session, never let a shared cache keep them
	header := writer.Header()
	header.Set("Content-Type", "text/html; charset=utf-8")
	header.Set("Cache-Control", "no-store")
	writer.WriteHeader(status)
	_, _ = buffer.WriteTo(writer)
}

// Error renders the error page for err with the status it carries.
// Only the client-safe message is shown.
func (engine *Engine) Error(writer http.ResponseWriter, request *http.Request, err error) {
	appError := respond.Normalize(request, err)

	engine.Render(writer, request, appError.HTTPStatus, PageError, Data{
		Title: http.StatusText(appError.HTTPStatus),
		Page:  appError.Message,
	})
}
