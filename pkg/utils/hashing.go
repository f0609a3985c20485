package utils

import (
	"golang.org/x/crypto/bcrypt"
)

const passwordCost = 10

// HashPassword bcrypts the shared trip password. Empty passwords are refused
// so a missing APP_PASSWORD cannot unlock edit mode.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrInvalidInput
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	return string(bytes), err
}

func CheckPassword(hashedPassword string, plainPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword)) == nil
}
