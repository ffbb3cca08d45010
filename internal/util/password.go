package util

import "golang.org/x/crypto/bcrypt"

// User passwords get the default bcrypt cost. API key secrets are hashed in
// pkg/apikey with a lighter cost since they are random, not user-chosen.
const passwordCost = bcrypt.DefaultCost

// HashPassword hashes a dashboard user's password for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored hash.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
