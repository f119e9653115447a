package models

import "time"

type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

// AccessLevel образует лестницу read < score < write; админ стоит вне её.
type AccessLevel string

const (
	AccessRead  AccessLevel = "read"
	AccessScore AccessLevel = "score"
	AccessWrite AccessLevel = "write"
)

func (a AccessLevel) Valid() bool {
	switch a {
	case AccessRead, AccessScore, AccessWrite:
		return true
	}
	return false
}

// AtLeast reports whether this level grants everything min does.
func (a AccessLevel) AtLeast(min AccessLevel) bool {
	rank := func(l AccessLevel) int {
		switch l {
		case AccessWrite:
			return 2
		case AccessScore:
			return 1
		default:
			return 0
		}
	}
	return rank(a) >= rank(min)
}

type UserAccount struct {
	ID           string      `json:"id" db:"id"`
	Username     string      `json:"username" db:"username"`
	PasswordHash string      `json:"-" db:"password_hash"`
	Role         UserRole    `json:"role" db:"role"`
	Access       AccessLevel `json:"access" db:"access"`
	LastLoginAt  *time.Time  `json:"lastLoginAt,omitempty" db:"last_login_at"`
	CreatedAt    time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time   `json:"updatedAt" db:"updated_at"`
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Session is what the signed cookie carries and what /auth/me echoes back.
type Session struct {
	Username string      `json:"username"`
	Role     UserRole    `json:"role"`
	Access   AccessLevel `json:"access"`
}

// CanWrite reports whether the session may mutate tournament setup.
func (s Session) CanWrite() bool {
	return s.Role == RoleAdmin || s.Access == AccessWrite
}

// CanScore reports whether the session may enter scores or drive live
// matches.
func (s Session) CanScore() bool {
	return s.Role == RoleAdmin || s.Access.AtLeast(AccessScore)
}
