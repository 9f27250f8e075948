package domain

import "time"

// Role governs write and administrative capability against the shared store.
// Roles form a total order: viewer < editor < admin.
type Role string

const (
	RoleViewer Role = "VIEWER"
	RoleEditor Role = "EDITOR"
	RoleAdmin  Role = "ADMIN"
)

var roleRank = map[Role]int{
	RoleViewer: 1,
	RoleEditor: 2,
	RoleAdmin:  3,
}

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	_, ok := roleRank[r]
	return ok
}

// Meets reports whether r grants at least the capability of required.
func (r Role) Meets(required Role) bool {
	return roleRank[r] >= roleRank[required]
}

// Permission is the single role grant a user holds in the shared scope.
// There is exactly one row per user; the role is the latest grant, not
// cumulative. GrantedVia is nil only for the bootstrap admin.
type Permission struct {
	UserID     string    `json:"userID"`
	Role       Role      `json:"role"`
	GrantedVia *string   `json:"grantedVia,omitempty"` // invitation ID
	AddedAt    time.Time `json:"addedAt"`
}
