package domain

import "time"

// Role is one of the fixed set of roles a user can hold. The set is flat:
// no role implies another.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleManager    Role = "manager"
	RoleResident   Role = "resident"
	RoleCollector  Role = "collector"
	RoleSupervisor Role = "supervisor"
)

// KnownRoles enumerates every role the platform accepts at signup.
var KnownRoles = []Role{RoleAdmin, RoleManager, RoleResident, RoleCollector, RoleSupervisor}

// ValidRole reports whether r belongs to the known role set.
func ValidRole(r Role) bool {
	for _, known := range KnownRoles {
		if r == known {
			return true
		}
	}
	return false
}

// Roles is the set of roles carried by a user or token.
type Roles []Role

// Has reports whether the set contains r. Plain membership, no hierarchy.
func (rs Roles) Has(r Role) bool {
	for _, have := range rs {
		if have == r {
			return true
		}
	}
	return false
}

// Strings returns the set as plain strings, for claim serialization.
func (rs Roles) Strings() []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = string(r)
	}
	return out
}

// RolesFromStrings converts raw claim values back into a role set.
func RolesFromStrings(raw []string) Roles {
	out := make(Roles, len(raw))
	for i, s := range raw {
		out[i] = Role(s)
	}
	return out
}

// User models an account in the identity service. Email is unique across
// all users; uniqueness is enforced by the store, not by the service.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Roles        Roles     `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
}
