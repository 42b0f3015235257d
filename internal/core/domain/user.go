package domain

import "time"

// PlatformRole is the application-wide role of a user, independent of any workspace.
type PlatformRole string

const (
	PlatformRoleAdmin   PlatformRole = "admin"
	PlatformRoleCreator PlatformRole = "creator"
	PlatformRoleUser    PlatformRole = "user"
)

// User represents a user of the application in the domain.
type User struct {
	UserID       int64        `json:"userID,string" db:"user_id"`
	Username     string       `json:"username" db:"username"`
	Email        string       `json:"email" db:"email"`
	Name         string       `json:"name" db:"name"`
	PasswordHash string       `json:"-" db:"password_hash"`
	PlatformRole PlatformRole `json:"platformRole" db:"platform_role"`
	Timestamps
	DeletedAt *time.Time `json:"deletedAt,omitempty" db:"deleted_at"`
}

// IsPlatformAdmin reports whether the user holds the platform admin role.
func (u *User) IsPlatformAdmin() bool {
	return u != nil && u.PlatformRole == PlatformRoleAdmin
}

// DisplayName picks the best human-readable name: full name, then username, then a neutral fallback.
func (u *User) DisplayName() string {
	switch {
	case u == nil:
		return "A user"
	case u.Name != "":
		return u.Name
	case u.Username != "":
		return u.Username
	default:
		return "A user"
	}
}
