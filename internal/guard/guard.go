// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package guard decides, on every navigation, whether the requested view is
rendered or the visitor is sent to the login page.

The decision depends only on whether a session token is present. The token
is never validated here; the backend rejects stale tokens and the gateway
surfaces that as "Not authenticated".
*/
package guard

import (
	"net/http"
	"net/url"

	"github.com/taibuivan/node/internal/platform/ctxutil"
	"github.com/taibuivan/node/internal/session"
)

// DefaultLoginPath is where anonymous visitors are redirected.
const DefaultLoginPath = "/login"

// NextParam is the query parameter carrying the originally requested location.
const NextParam = "next"

// # Decision

// Outcome is what the guard does with a navigation.
type Outcome int

const (
	// RenderHome renders the authenticated home inside the logged-in layout.
	RenderHome Outcome = iota + 1

	// RenderLanding renders the public landing page.
	RenderLanding

	// RenderChildren renders the requested view unchanged.
	RenderChildren

	// Redirect sends the visitor to the login route.
	Redirect
)

func (outcome Outcome) String() string {
	switch outcome {
	case RenderHome:
		return "render_home"
	case RenderLanding:
		return "render_landing"
	case RenderChildren:
		return "render_children"
	case Redirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// Route is the navigation target being guarded.
type Route struct {
	// Path is the requested location, query string included.
	Path string

	// Root marks the application root.
	Root bool
}

// Decision is the result of [Decide].
type Decision struct {
	Outcome Outcome

	// From is the originally requested location. Set only for [Redirect].
	From string

	// Replace means the redirect replaces the current history entry.
	Replace bool
}

// Decide is the guard's pure decision function.
func Decide(route Route, authenticated bool) Decision {
	switch {
	case route.Root && authenticated:
		return Decision{Outcome: RenderHome}
	case route.Root:
		return Decision{Outcome: RenderLanding}
	case authenticated:
		return Decision{Outcome: RenderChildren}
	default:
		return Decision{Outcome: Redirect, From: route.Path, Replace: true}
	}
}

// # HTTP Guard

// Guard applies [Decide] to HTTP navigations.
type Guard struct {
	store     session.Store
	loginPath string
}

// New creates a [Guard] reading token presence from store.
func New(store session.Store) *Guard {
	return &Guard{store: store, loginPath: DefaultLoginPath}
}

// LoginURL returns the login location carrying from as navigation state.
func (guard *Guard) LoginURL(from string) string {
	if from == "" {
		return guard.loginPath
	}
	return guard.loginPath + "?" + url.Values{NextParam: {from}}.Encode()
}

/*
Root serves the application root.

Authenticated visitors get home, anonymous visitors get landing. Neither
case redirects.
*/
func (guard *Guard) Root(home, landing http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		decision := guard.decide(request, true)
		if decision.Outcome == RenderHome {
			home.ServeHTTP(writer, request)
			return
		}
		landing.ServeHTTP(writer, request)
	})
}

/*
Protect renders next for authenticated visitors and redirects everyone else
to the login page.

The redirect uses 303 so a form POST becomes a GET, and is marked no-store
so that navigating back re-runs the guard instead of showing a cached page.
*/
func (guard *Guard) Protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		decision := guard.decide(request, false)
		if decision.Outcome == RenderChildren {
			next.ServeHTTP(writer, request)
			return
		}

		ctxutil.GetLogger(request.Context()).DebugContext(request.Context(), "guard_redirect",
			"from", decision.From,
		)

		writer.Header().Set("Cache-Control", "no-store")
		http.Redirect(writer, request, guard.LoginURL(decision.From), http.StatusSeeOther)
	})
}

// decide carries the requested location only for navigations that can be
// replayed after login. A form post target is usually POST-only.
func (guard *Guard) decide(request *http.Request, root bool) Decision {
	_, authenticated := guard.store.Token(request)

	var path string
	if request.Method == http.MethodGet || request.Method == http.MethodHead {
		path = request.URL.RequestURI()
	}

	return Decide(Route{Path: path, Root: root}, authenticated)
}
