package domain

import (
	"strings"

	"github.com/google/uuid"
)

// RoleAdmin marks users allowed to manage trains and routes. The client-side
// role check is advisory only; the server enforces authorization.
const RoleAdmin = "admin"

// User is the authenticated account attached to a session.
type User struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

// IsAdmin reports whether the user carries the administrator role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// foldStation normalizes a station name for comparison: trimmed, lowercased.
func foldStation(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
