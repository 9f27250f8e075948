package domain

import "time"

// User represents an account holder. Identity may come from a username and
// password or from an external provider; the provider's opaque id is treated
// as the permanent actor identifier.
type User struct {
	UserID         string  `json:"userID"`
	Username       string  `json:"username"`
	PasswordHash   string  `json:"-"`
	Name           string  `json:"name"`
	Email          *string `json:"email,omitempty"`
	AuthProvider   *string `json:"authProvider,omitempty"`   // e.g. "google"; nil for password accounts
	ProviderUserID *string `json:"providerUserID,omitempty"` // opaque id issued by the provider
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // soft delete

	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
}

// GoogleUserInfo is the payload returned by Google's userinfo endpoint.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
}

// Actor is the identity acting on the current request.
type Actor struct {
	UserID      string `json:"userID"`
	DisplayName string `json:"displayName"`
}

// IsZero reports whether no identity is present.
func (a Actor) IsZero() bool {
	return a.UserID == ""
}
