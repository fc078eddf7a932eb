package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the hashing cost factor (~10 rounds).
const BcryptCost = 10

// HashPassword hashes a plaintext password with a salted one-way hash.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPassword verifies a plaintext password against a stored hash. The
// comparison is constant-time within bcrypt.
func CheckPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}
