// ABOUTME: Normalized user profile shape shared by session and API layers
// ABOUTME: JSON tags map the backend's snake_case wire format

package auth

import "time"

// UserType distinguishes the two marketplace roles.
type UserType string

const (
	UserTypeClient    UserType = "client"
	UserTypeDeveloper UserType = "developer"
)

// UserProfile is the normalized account shape owned by the Session.
// It is replaced wholesale on every login or restore, never patched.
type UserProfile struct {
	ID                 int64     `json:"id"`
	Username           string    `json:"username"`
	Email              string    `json:"email"`
	FullName           string    `json:"full_name"`
	IsActive           bool      `json:"is_active"`
	UserType           UserType  `json:"user_type"`
	CreatedAt          time.Time `json:"created_at"`
	NeedsRoleSelection bool      `json:"needs_role_selection"`
}

// DisplayName returns the full name when set, otherwise the username.
func (u *UserProfile) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}
