package utils

import "golang.org/x/crypto/bcrypt" // Password hashing

// PasswordCost is the bcrypt work factor for stored passwords
const PasswordCost = bcrypt.DefaultCost

// MinPasswordLength applies at registration and on password changes
const MinPasswordLength = 8

// MaxPasswordLength is the bcrypt input limit in bytes
const MaxPasswordLength = 72

// HashPassword returns a salted bcrypt hash of password
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored hash
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
