// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view

import (
	"encoding/base64"
	"net/http"
	"time"
)

// FlashCookieName carries a one-shot message across a redirect.
const FlashCookieName = "node_flash"

const flashMaxAge = 60

// SetFlash stores message for the next rendered page. Action handlers use it
// to surface a failure inline after redirecting back.
func SetFlash(writer http.ResponseWriter, message string) {
	http.SetCookie(writer, &http.Cookie{
		Name:     FlashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString([]byte(message)),
		Path:     "/",
		MaxAge:   flashMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Flash returns the pending message, if any, and expires the cookie.
func Flash(writer http.ResponseWriter, request *http.Request) string {
	cookie, err := request.Cookie(FlashCookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}

	http.SetCookie(writer, &http.Cookie{
		Name:     FlashCookieName,
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	message, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return ""
	}
	return string(message)
}
