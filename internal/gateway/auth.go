// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package gateway

import "context"

// # Auth Capability

// Auth exposes the authentication endpoints only.
type Auth struct {
	client *Client
}

// NewAuth binds the auth capability to a [Client].
func NewAuth(client *Client) *Auth {
	return &Auth{client: client}
}

// Login exchanges credentials for a session token and the user's identity.
func (auth *Auth) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	var result LoginResult
	if err := auth.client.Post(ctx, "/api/auth/login", input, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Register creates an account that waits for admin approval.
func (auth *Auth) Register(ctx context.Context, input RegisterInput) error {
	return auth.client.Post(ctx, "/api/auth/register", input, nil)
}

// FindPassword asks the backend to send a recovery mail.
func (auth *Auth) FindPassword(ctx context.Context, email string) error {
	return auth.client.Post(ctx, "/api/auth/find-password", map[string]string{"email": email}, nil)
}

// Logout invalidates the session on the backend.
func (auth *Auth) Logout(ctx context.Context) error {
	return auth.client.Post(ctx, "/api/auth/logout", nil, nil)
}
