// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package gateway

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/taibuivan/node/internal/platform/apperr"
)

// # Message Taxonomy

// The fixed, exhaustive set of messages a failed backend call can produce.
const (
	MsgBadRequest       = "Bad request."
	MsgNotAuthenticated = "Not authenticated. Please log in again."
	MsgNotAuthorized    = "Not authorized."
	MsgNotFound         = "Resource not found."
	MsgConflict         = "Conflicting or duplicate data."
	MsgServerError      = "Server error. Please try again later."
	MsgUnknown          = "Unknown error."
)

// StatusError is a backend response outside the 2xx range.
//
// It never leaves this package: [Normalize] turns it into an [apperr.AppError].
type StatusError struct {
	Method string
	Path   string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("gateway: %s %s: status %d", e.Method, e.Path, e.Status)
}

// Normalize maps any failure of a backend call onto exactly one message of
// the taxonomy. Failures without a status (network errors, timeouts) and
// statuses outside the taxonomy become [MsgUnknown].
func Normalize(err error) *apperr.AppError {
	if err == nil {
		return nil
	}

	// Already normalized further down the stack
	if appError := apperr.As(err); appError != nil {
		return appError
	}

	var status *StatusError
	if !errors.As(err, &status) {
		return apperr.Unknown(MsgUnknown, err)
	}

	var normalized *apperr.AppError
	switch status.Status {
	case http.StatusBadRequest:
		normalized = apperr.BadRequest(MsgBadRequest)
	case http.StatusUnauthorized:
		normalized = apperr.Unauthorized(MsgNotAuthenticated)
	case http.StatusForbidden:
		normalized = apperr.Forbidden(MsgNotAuthorized)
	case http.StatusNotFound:
		normalized = apperr.NotFound(MsgNotFound)
	case http.StatusConflict:
		normalized = apperr.Conflict(MsgConflict)
	case http.StatusInternalServerError:
		normalized = apperr.Internal(MsgServerError, nil)
	default:
		return apperr.Unknown(MsgUnknown, err)
	}

	normalized.Cause = err
	return normalized
}
