// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package session owns the only shared mutable state of the frontend: the
visitor's session token and the user info cached alongside it.

Both live in cookies. The token is opaque; its presence means
"authenticated" and its absence means "anonymous". The user info is a
JSON object (name, email, phone, role) that is only ever checked for
parseability.

Writers: login (Set) and logout (Clear). Readers: the session guard and
any page that needs the current user's identity.
*/
package session

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// # Cookie Layout

const (
	// TokenCookieName holds the opaque session token.
	TokenCookieName = "node_token"

	// UserCookieName holds the JSON-serialised [UserInfo].
	UserCookieName = "node_user"

	// DefaultTTL is how long both cookies live when untouched.
	DefaultTTL = 24 * time.Hour
)

var (
	// ErrEmptyToken is returned by Set when the backend handed out no token.
	ErrEmptyToken = errors.New("session: empty token")

	// ErrMalformedUser is returned when the user-info cookie cannot be decoded.
	ErrMalformedUser = errors.New("session: malformed user info")
)

// UserInfo is the identity cached next to the token after a successful login.
type UserInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Role  Role   `json:"role"`
}

// Store abstracts cookie access so the guard and the gateway can be tested
// against a fake.
type Store interface {
	// Token returns the session token and whether one is present.
	Token(request *http.Request) (string, bool)

	// User returns the cached user info. It returns (nil, nil) when absent
	// and [ErrMalformedUser] when present but unreadable.
	User(request *http.Request) (*UserInfo, error)

	// Set writes both cookies with the same expiry.
	Set(writer http.ResponseWriter, token string, user UserInfo) error

	// Clear expires both cookies together.
	Clear(writer http.ResponseWriter)
}

// # Expiry

// ExpiryPolicy computes the absolute expiry of cookies written at now.
type ExpiryPolicy func(now time.Time) time.Time

// FixedTTL expires cookies a fixed duration after they are written.
func FixedTTL(ttl time.Duration) ExpiryPolicy {
	return func(now time.Time) time.Time {
		return now.Add(ttl)
	}
}

// # Cookie Store

// CookieStore is the production [Store].
type CookieStore struct {
	expiry ExpiryPolicy
	secure bool
	now    func() time.Time
}

// Option configures a [CookieStore].
type Option func(*CookieStore)

// WithExpiry overrides the default one-day expiry.
func WithExpiry(policy ExpiryPolicy) Option {
	return func(store *CookieStore) { store.expiry = policy }
}

// WithSecure marks cookies as HTTPS-only.
func WithSecure(secure bool) Option {
	return func(store *CookieStore) { store.secure = secure }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(store *CookieStore) { store.now = now }
}

// NewCookieStore constructs a [CookieStore].
func NewCookieStore(options ...Option) *CookieStore {
	store := &CookieStore{
		expiry: FixedTTL(DefaultTTL),
		now:    time.Now,
	}
	for _, option := range options {
		option(store)
	}
	return store
}

// Token implements [Store].
func (store *CookieStore) Token(request *http.Request) (string, bool) {
	cookie, err := request.Cookie(TokenCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

// User implements [Store].
func (store *CookieStore) User(request *http.Request) (*UserInfo, error) {
	cookie, err := request.Cookie(UserCookieName)
	if err != nil || cookie.Value == "" {
		return nil, nil
	}

	raw, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedUser, err)
	}

	var user UserInfo
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedUser, err)
	}

	return &user, nil
}

// Set implements [Store].
func (store *CookieStore) Set(writer http.ResponseWriter, token string, user UserInfo) error {
	if token == "" {
		return ErrEmptyToken
	}

	payload, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("session: encode user info: %w", err)
	}

	now := store.now()
	expires := store.expiry(now)
	maxAge := int(expires.Sub(now) / time.Second)

	http.SetCookie(writer, store.cookie(TokenCookieName, token, expires, maxAge))
	http.SetCookie(writer, store.cookie(UserCookieName, base64.RawURLEncoding.EncodeToString(payload), expires, maxAge))

	return nil
}

// Clear implements [Store].
func (store *CookieStore) Clear(writer http.ResponseWriter) {
	http.SetCookie(writer, store.cookie(TokenCookieName, "", time.Unix(0, 0), -1))
	http.SetCookie(writer, store.cookie(UserCookieName, "", time.Unix(0, 0), -1))
}

func (store *CookieStore) cookie(name, value string, expires time.Time, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		MaxAge:   maxAge,
		Secure:   store.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
