// Package entity contains the core business objects of the project.
package entity

import "github.com/google/uuid"

// Actor is the authenticated identity behind a request, carried by value
// through the call chain instead of being attached ad hoc to a shared
// request object. It is immutable once built by the auth middleware.
type Actor struct {
	UserID uuid.UUID
	Roles  Roles
}

// Is reports whether the actor holds the given role.
func (a Actor) Is(role Role) bool {
	return a.Roles.Contains(role)
}
