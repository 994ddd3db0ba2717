package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the minimum accepted credential length.
const MinPasswordLength = 8

const bcryptCost = 12

// Credential failures surfaced to the login/registration handlers.
var (
	ErrWeakCredential    = errors.New("password does not meet requirements")
	ErrInvalidCredential = errors.New("invalid email or password")
	ErrDuplicateAccount  = errors.New("an account with this email already exists")
)

// HashPassword validates strength and hashes the credential with bcrypt.
func HashPassword(password string) (string, error) {
	if err := CheckStrength(password); err != nil {
		return "", err
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(bytes), nil
}

// CheckPassword compares a submitted password with the stored hash,
// returning ErrInvalidCredential on mismatch.
func CheckPassword(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrInvalidCredential
		}
		return fmt.Errorf("checking password: %w", err)
	}
	return nil
}

// CheckStrength enforces the registration password policy: minimum length
// plus at least one letter and one digit.
func CheckStrength(password string) error {
	if len(password) < MinPasswordLength {
		return ErrWeakCredential
	}
	hasLetter, hasDigit := false, false
	for _, c := range password {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
			hasLetter = true
		case c >= '0' && c <= '9':
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return ErrWeakCredential
	}
	return nil
}
