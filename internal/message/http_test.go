// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package message_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/node/internal/gateway"
	"github.com/taibuivan/node/internal/message"
	"github.com/taibuivan/node/internal/platform/view"
)

type fakeBackend struct {
	conversations []gateway.Conversation
	notifications []gateway.Notification
	sendErr       error

	sent string
}

func (backend *fakeBackend) Conversations(context.Context) ([]gateway.Conversation, error) {
	return backend.conversations, nil
}

func (backend *fakeBackend) Conversation(_ context.Context, id string) (*gateway.Conversation, error) {
	for _, conversation := range backend.conversations {
		if conversation.ID == id {
			return &conversation, nil
		}
	}
	return nil, gateway.Normalize(&gateway.StatusError{Status: http.StatusNotFound})
}

func (backend *fakeBackend) Send(_ context.Context, _, content string) error {
	backend.sent = content
	return backend.sendErr
}

func (backend *fakeBackend) Notifications(context.Context) ([]gateway.Notification, error) {
	return backend.notifications, nil
}

func newBackend() *fakeBackend {
	return &fakeBackend{
		conversations: []gateway.Conversation{{
			ID:          "c1",
			Peer:        gateway.Author{Name: "Lee"},
			LastMessage: "See you",
			Messages: []gateway.Message{
				{ID: "m1", Content: "Hi <there>", Mine: true},
				{ID: "m2", Content: "See you"},
			},
		}},
		notifications: []gateway.Notification{{ID: "n1", Text: "Kim liked your post", Link: "/post/p1"}},
	}
}

func newRouter(backend message.Backend) chi.Router {
	router := chi.NewRouter()
	message.NewHandler(backend, view.MustNew()).RegisterRoutes(router)
	return router
}

func serve(router chi.Router, request *http.Request) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func send(content string) *http.Request {
	request := httptest.NewRequest(http.MethodPost, "/message/c1", strings.NewReader(url.Values{"content": {content}}.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return request
}

/*
TestPages verifies each listing renders its entries.
*/
func TestPages(t *testing.T) {
	tests := []struct {
		path string
		want []string
	}{
		{"/message", []string{"Lee", `href="/message/c1"`}},
		{"/message/c1", []string{"Hi &lt;there&gt;", `action="/message/c1"`}},
		{"/notification", []string{"Kim liked your post", `href="/post/p1"`}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			recorder := serve(newRouter(newBackend()), httptest.NewRequest(http.MethodGet, tt.path, nil))

			require.Equal(t, http.StatusOK, recorder.Code)
			for _, want := range tt.want {
				assert.Contains(t, recorder.Body.String(), want)
			}
		})
	}
}

/*
TestConversation_NotFound verifies unknown threads show the error page.
*/
func TestConversation_NotFound(t *testing.T) {
	recorder := serve(newRouter(newBackend()), httptest.NewRequest(http.MethodGet, "/message/zz", nil))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Contains(t, recorder.Body.String(), gateway.MsgNotFound)
}

/*
TestSend verifies the post-redirect-get cycle and its failure modes.
*/
func TestSend(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		backend := newBackend()

		recorder := serve(newRouter(backend), send("Hello"))

		assert.Equal(t, http.StatusSeeOther, recorder.Code)
		assert.Equal(t, "/message/c1", recorder.Header().Get("Location"))
		assert.Equal(t, "Hello", backend.sent)
	})

	t.Run("empty", func(t *testing.T) {
		backend := newBackend()

		recorder := serve(newRouter(backend), send("   "))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "This field is required")
		assert.Empty(t, backend.sent)
	})

	t.Run("backend_failure", func(t *testing.T) {
		backend := newBackend()
		backend.sendErr = errors.New("connection reset")

		recorder := serve(newRouter(backend), send("Hello"))

		assert.Equal(t, http.StatusSeeOther, recorder.Code)
		var flash *http.Cookie
		for _, cookie := range recorder.Result().Cookies() {
			if cookie.Name == view.FlashCookieName {
				flash = cookie
			}
		}
		assert.NotNil(t, flash)
	})
}
