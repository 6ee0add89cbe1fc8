// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"log/slog"
	"net/http"

	"github.com/taibuivan/node/internal/platform/apperr"
	"github.com/taibuivan/node/internal/platform/ctxutil"
	"github.com/taibuivan/node/internal/session"
)

// Authenticate lifts the session cookies into the request context.
//
// # Flow
//  1. Read the token. Absent means anonymous; the request proceeds unchanged.
//  2. Read the cached user info. An unreadable cookie is logged and ignored,
//     it never turns an authenticated visitor into an anonymous one.
//  3. Inject both into the context for the gateway and the pages.
func Authenticate(store session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx := request.Context()

			// 1. Anonymous access
			token, ok := store.Token(request)
			if !ok {
				next.ServeHTTP(writer, request)
				return
			}
			ctx = ctxutil.WithSessionToken(ctx, token)

			// 2. Cached identity
			user, err := store.User(request)
			if err != nil {
				ctxutil.GetLogger(ctx).WarnContext(ctx, "session_user_unreadable", slog.Any("error", err))
			}
			if user != nil {
				ctx = ctxutil.WithUser(ctx, user)
			}

			// 3. Report back to the access log
			if holder, found := ctx.Value(visitorKey{}).(*visitor); found {
				holder.authenticated = true
				if user != nil {
					holder.name = user.Name
				}
			}

			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireRole blocks visitors whose cached role is below role.
//
// # Usage
//
// Must be mounted behind [Authenticate] and the session guard, so anonymous
// visitors have already been redirected to the login page.
func RequireRole(role session.Role, pages ErrorPage) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			user := ctxutil.GetUser(request.Context())

			if user == nil || !user.Role.AtLeast(role) {
				pages.Error(writer, request, apperr.Forbidden("Not authorized."))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
