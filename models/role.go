package models

// Role is the authorization level attached to an authenticated identity.
type Role string

const (
	// RoleAdmin may create credentials and mutate device records.
	RoleAdmin Role = "admin"

	// RoleReadonly may only view and export device records.
	RoleReadonly Role = "readonly"
)

// AdminIdentity is the single identity that is granted RoleAdmin.
const AdminIdentity = "admin"

// RoleFor is the role-derivation policy for identities authenticated
// against the hashed credential store. Roles are not persisted per user:
// the identity literally equal to [AdminIdentity] is an administrator,
// every other successfully authenticated identity is read-only.
//
// The rule is deliberately a single exported function so that it is an
// explicit, documented policy rather than a string comparison buried in
// handler code.
func RoleFor(identity string) Role {
	if identity == AdminIdentity {
		return RoleAdmin
	}
	return RoleReadonly
}

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleReadonly
}
