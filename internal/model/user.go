// Package model defines the data structures used throughout the application.
package model

import "time"

// Roles a User may hold. Anything else is rejected at registration.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered club member.
//
// The email is the natural key: registration, session issuance and the
// GET /users/{email} lookup all go through it. ID is generated by the store
// and only exposed so the record looks the same whichever backend served it.
type User struct {
	ID        string    `json:"_id"       bson:"-"`
	Email     string    `json:"email"     bson:"email"`
	Name      string    `json:"name"      bson:"name"`
	PhotoURL  string    `json:"photoURL"  bson:"photoURL"`
	Role      string    `json:"role"      bson:"role"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ValidRole reports whether role is one of the enumerated roles.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}
