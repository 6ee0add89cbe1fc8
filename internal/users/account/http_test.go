// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/node/internal/platform/ctxutil"
	"github.com/taibuivan/node/internal/platform/view"
	"github.com/taibuivan/node/internal/session"
	"github.com/taibuivan/node/internal/users/account"
)

func serve(t *testing.T, target string, user *session.UserInfo) *httptest.ResponseRecorder {
	t.Helper()

	router := chi.NewRouter()
	account.NewHandler(view.MustNew()).RegisterRoutes(router)

	request := httptest.NewRequest(http.MethodGet, target, nil)
	ctx := ctxutil.WithSessionToken(request.Context(), "token-1")
	if user != nil {
		ctx = ctxutil.WithUser(ctx, user)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request.WithContext(ctx))
	return recorder
}

/*
TestProfile verifies the cached identity is shown.
*/
func TestProfile(t *testing.T) {
	recorder := serve(t, "/profile", &session.UserInfo{
		Name:  "Kim",
		Email: "kim@node.dev",
		Phone: "010-1234-5678",
		Role:  session.RoleMember,
	})

	assert.Equal(t, http.StatusOK, recorder.Code)
	body := recorder.Body.String()
	assert.Contains(t, body, "kim@node.dev")
	assert.Contains(t, body, "010-1234-5678")
	assert.Contains(t, body, "member")
}

/*
TestProfile_MissingUser verifies an unreadable user cookie degrades gracefully.
*/
func TestProfile_MissingUser(t *testing.T) {
	recorder := serve(t, "/profile", nil)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Log in again")
}

/*
TestSettings verifies the logout form is offered.
*/
func TestSettings(t *testing.T) {
	recorder := serve(t, "/settings", &session.UserInfo{Name: "Kim"})

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `action="/logout"`)
}
