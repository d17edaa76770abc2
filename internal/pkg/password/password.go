package password

import (
	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost is the default bcrypt cost
	DefaultCost = 12

	// MinLength is the minimum accepted plaintext length.
	// Enforced by callers before hashing.
	MinLength = 6
)

// Hash hashes a password using bcrypt. The embedded random salt makes
// the output different on every call, even for identical input.
func Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify compares a password with a hash. A malformed hash is treated
// as a mismatch, never an error.
func Verify(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// Validate checks if a plaintext password meets the length requirement.
func Validate(password string) bool {
	return len(password) >= MinLength
}
