package models

// Identity is the credential record backing a user profile. It is created
// once at signup and never mutated afterwards. Username uniqueness is
// enforced by the store at creation time.
type Identity struct {
	UserID       int64
	Username     string
	PasswordHash string
}
