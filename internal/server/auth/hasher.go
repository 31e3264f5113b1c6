package auth

import (
	"errors"

	"github.com/groupspend/groupspend/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword produces a salted bcrypt digest of the plaintext. The salt is
// random per call, so two hashes of the same password differ.
func HashPassword(plaintext string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks the plaintext against a stored bcrypt hash.
// A mismatch is (false, nil), not an error. A stored hash that bcrypt cannot
// parse at all returns ErrCorruptCredential so corrupt rows are never
// silently treated as a wrong password.
func VerifyPassword(plaintext, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, common.ErrCorruptCredential
}
