// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

// # User Roles

// Role is the authorization level the backend reported at login.
type Role string

const (
	// Runs the approval console
	RoleAdmin Role = "admin"

	// Approved community member
	RoleMember Role = "member"

	// Registered but still waiting for an admin to approve the account
	RolePending Role = "pending"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r Role) AtLeast(target Role) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r Role) level() int {
	switch r {
	case RoleAdmin:
		return 30
	case RoleMember:
		return 20
	case RolePending:
		return 10
	default:
		return 0
	}
}
