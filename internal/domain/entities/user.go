package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Role represents a capability label attached to a user. Roles are
// non-exclusive, a user may hold several at once.
type Role string

const (
	RoleSeller     Role = "SELLER"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

// RoleList is a user's role set.
type RoleList []Role

// Has reports whether the list contains the given role.
func (l RoleList) Has(role Role) bool {
	for _, r := range l {
		if r == role {
			return true
		}
	}
	return false
}

// HasAny reports whether the list intersects the given roles. Route gating
// matches by non-empty intersection, never exact equality.
func (l RoleList) HasAny(roles ...Role) bool {
	for _, r := range roles {
		if l.Has(r) {
			return true
		}
	}
	return false
}

// Add returns the list with the role added, preserving set semantics.
func (l RoleList) Add(role Role) RoleList {
	if l.Has(role) {
		return l
	}
	return append(l, role)
}

// Remove returns the list without the given role.
func (l RoleList) Remove(role Role) RoleList {
	out := make(RoleList, 0, len(l))
	for _, r := range l {
		if r != role {
			out = append(out, r)
		}
	}
	return out
}

// Strings converts the role list for token claims.
func (l RoleList) Strings() []string {
	out := make([]string, len(l))
	for i, r := range l {
		out[i] = string(r)
	}
	return out
}

// RolesFromStrings converts token claims back into a role list.
func RolesFromStrings(ss []string) RoleList {
	out := make(RoleList, len(ss))
	for i, s := range ss {
		out[i] = Role(s)
	}
	return out
}

// User represents a marketplace account. Every user holds at least one role;
// SELLER is the default on registration.
type User struct {
	ID            uuid.UUID   `json:"id"`
	FirstName     string      `json:"firstname"`
	LastName      string      `json:"lastname"`
	Address       null.String `json:"address,omitempty"`
	Phone         string      `json:"phone"`
	Email         string      `json:"email"`
	PasswordHash  string      `json:"-"`
	Roles         RoleList    `json:"roles"`
	FavoriteItems []uuid.UUID `json:"favoriteItems,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// RegisterInput represents input for user registration
type RegisterInput struct {
	FirstName string `json:"firstname" binding:"required,min=1,max=100"`
	LastName  string `json:"lastname" binding:"required,min=1,max=100"`
	Address   string `json:"address"`
	Phone     string `json:"phone" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
}

// LoginInput represents input for user login
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         *User  `json:"user"`
}
