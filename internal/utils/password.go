package utils

import "golang.org/x/crypto/bcrypt" // Password hashing

// HashPassword returns a bcrypt hash of the given plaintext password
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err // Hashing failed
	}
	return string(hash), nil
}

// CheckPassword compares a bcrypt hash with a candidate plaintext password
func CheckPassword(hash, password string) bool {
	// CompareHashAndPassword is constant-time on the digest comparison
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
