// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package gateway

import "context"

// # Admin Capability

// Admin exposes the member approval endpoints.
type Admin struct {
	client *Client
}

// NewAdmin binds the admin capability to a [Client].
func NewAdmin(client *Client) *Admin {
	return &Admin{client: client}
}

// Members lists every account known to the backend.
func (admin *Admin) Members(ctx context.Context) ([]Member, error) {
	var members []Member
	if err := admin.client.Get(ctx, "/api/admin/users", nil, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// Authorize approves a pending member.
func (admin *Admin) Authorize(ctx context.Context, userID string) error {
	return admin.client.Put(ctx, "/api/admin/users/"+segment(userID)+"/authorize", nil, nil)
}
