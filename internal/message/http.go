// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package message serves direct messages and the notification list.

Conversations are read on every page load; there is no push channel. A sent
message is answered with a 303 back to the thread so a refresh never sends
it twice.
*/
package message

import (
	"context"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/node/internal/gateway"
	"github.com/taibuivan/node/internal/platform/requestutil"
	"github.com/taibuivan/node/internal/platform/validate"
	"github.com/taibuivan/node/internal/platform/view"
)

// # Form Fields & Limits

const (
	FieldContent = "content"

	// MaxMessageLength bounds a single direct message.
	MaxMessageLength = 2000
)

// Backend is the part of the gateway this package consumes.
type Backend interface {
	Conversations(ctx context.Context) ([]gateway.Conversation, error)
	Conversation(ctx context.Context, id string) (*gateway.Conversation, error)
	Send(ctx context.Context, id, content string) error
	Notifications(ctx context.Context) ([]gateway.Notification, error)
}

// Handler implements the messaging pages.
type Handler struct {
	backend Backend
	pages   *view.Engine
}

// NewHandler constructs a new message [Handler].
func NewHandler(backend Backend, pages *view.Engine) *Handler {
	return &Handler{backend: backend, pages: pages}
}

// RegisterRoutes mounts the messaging pages. All of them are guarded.
//
// # Endpoints
//   - GET  /message
//   - GET  /message/{id}
//   - POST /message/{id}
//   - GET  /notification
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/message", handler.conversations)
	router.Get("/message/{id}", handler.conversation)
	router.Post("/message/{id}", handler.send)
	router.Get("/notification", handler.notifications)
}

func (handler *Handler) conversations(writer http.ResponseWriter, request *http.Request) {
	conversations, err := handler.backend.Conversations(request.Context())
	if err != nil {
		handler.pages.Error(writer, request, err)
		return
	}

	handler.pages.Render(writer, request, http.StatusOK, view.PageMessages, view.Data{
		Title: "Messages",
		Page:  conversations,
	})
}

func (handler *Handler) conversation(writer http.ResponseWriter, request *http.Request) {
	handler.renderConversation(writer, request, http.StatusOK, nil)
}

/*
POST /message/{id}

Request:
  - Form: content

Response:
  - 303: Back to the conversation
  - 400: Conversation with the field error
*/
func (handler *Handler) send(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	if err := requestutil.ParseForm(writer, request); err != nil {
		handler.pages.Error(writer, request, err)
		return
	}

	// 1. Validate
	content := requestutil.FormValue(request, FieldContent)

	validator := &validate.Validator{}
	validator.Required(FieldContent, content).MaxLen(FieldContent, content, MaxMessageLength)
	if err := validator.Err(); err != nil {
		handler.renderConversation(writer, request, http.StatusBadRequest, err)
		return
	}

	// 2. Send
	if err := handler.backend.Send(request.Context(), id, content); err != nil {
		view.SetFlash(writer, gateway.Normalize(err).Message)
	}

	http.Redirect(writer, request, "/message/"+url.PathEscape(id), http.StatusSeeOther)
}

func (handler *Handler) renderConversation(writer http.ResponseWriter, request *http.Request, status int, failure error) {
	conversation, err := handler.backend.Conversation(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		handler.pages.Error(writer, request, err)
		return
	}

	handler.pages.Render(writer, request, status, view.PageConversation, view.Data{
		Title:  conversation.Peer.Name,
		Page:   conversation,
		Errors: validate.FieldMessages(failure),
	})
}

func (handler *Handler) notifications(writer http.ResponseWriter, request *http.Request) {
	notifications, err := handler.backend.Notifications(request.Context())
	if err != nil {
		handler.pages.Error(writer, request, err)
		return
	}

	handler.pages.Render(writer, request, http.StatusOK, view.PageNotifications, view.Data{
		Title: "Notifications",
		Page:  notifications,
	})
}
