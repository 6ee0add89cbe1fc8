// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxkey defines typed context keys used by middleware and handlers.
//
// # Safety
//
// It is used to store and retrieve per-request values (session token, cached
// user info, request ID, logger). Using a private, unexported type for keys
// prevents collisions with third-party packages that also use the context.
package ctxkey

// key is an unexported type used for context keys to ensure type safety.
type key string

const (
	// KeyRequestID is the context key for the X-Request-ID correlation value.
	KeyRequestID key = "request_id"

	// KeySessionToken is the context key for the opaque session token forwarded to the backend.
	KeySessionToken key = "session_token"

	// KeyUser is the context key for the cached user info ([session.UserInfo]).
	KeyUser key = "user"

	// KeyLogger is the context key for the per-request [*log/slog.Logger].
	KeyLogger key = "logger"
)
