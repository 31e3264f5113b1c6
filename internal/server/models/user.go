// Package models defines server-side data models persisted in the database.
package models

// User is the profile of a registered person, resolved for every
// authenticated request and used in authorization decisions.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}
