// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

// # Form Fields

const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPhone    = "phone"
	FieldPassword = "password"
	FieldConfirm  = "confirm"
	FieldNext     = "next"
)

// # Constraints

const (
	// MinPasswordLength is checked before registration reaches the backend.
	MinPasswordLength = 8

	// MaxNameLength bounds the display name.
	MaxNameLength = 50
)

// # Messages

const (
	msgRegistered = "Registration complete. You can log in once an administrator approves your account."
)
