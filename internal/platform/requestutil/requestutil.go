// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/node/internal/platform/apperr"
	"github.com/taibuivan/node/internal/platform/ctxutil"
	"github.com/taibuivan/node/internal/platform/validate"
	"github.com/taibuivan/node/internal/session"
)

// maxFormBytes caps url-encoded form bodies. Multipart uploads have their own limit.
const maxFormBytes = 1 << 20

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: any (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target any) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
ParseForm parses a url-encoded form body with a size cap.

Returns:
  - error: validate.ErrInvalidForm if parsing fails, otherwise nil
*/
func ParseForm(writer http.ResponseWriter, request *http.Request) error {
	request.Body = http.MaxBytesReader(writer, request.Body, maxFormBytes)
	if err := request.ParseForm(); err != nil {
		return validate.ErrInvalidForm
	}
	return nil
}

/*
FormValue returns the trimmed value of a parsed form field.
*/
func FormValue(request *http.Request, name string) string {
	return strings.TrimSpace(request.PostForm.Get(name))
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
User returns the cached user info of the visitor, or nil for anonymous
visitors and unreadable user cookies.
*/
func User(request *http.Request) *session.UserInfo {
	return ctxutil.GetUser(request.Context())
}

/*
RequiredUser ensures user info is available.

Returns:
  - *session.UserInfo: The cached user info
  - error: apperr.Unauthorized if absent
*/
func RequiredUser(request *http.Request) (*session.UserInfo, error) {

	// Get cached user info
	user := ctxutil.GetUser(request.Context())

	// If the user is unknown, the page cannot be personalised
	if user == nil {
		return nil, apperr.Unauthorized("Not authenticated. Please log in again.")
	}

	return user, nil
}
