package services

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// SecretMode selects how account secrets are written and compared.
type SecretMode string

const (
	// SecretPlain keeps secrets verbatim, the historical file format.
	SecretPlain SecretMode = "plain"
	// SecretBcrypt stores bcrypt hashes. Only enabled on explicit request.
	SecretBcrypt SecretMode = "bcrypt"
)

func ParseSecretMode(s string) (SecretMode, error) {
	switch SecretMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", SecretPlain:
		return SecretPlain, nil
	case SecretBcrypt:
		return SecretBcrypt, nil
	}
	return "", fmt.Errorf("unknown secret mode %q", s)
}

// seal converts a submitted secret into its stored form.
func (m SecretMode) seal(secret string) (string, error) {
	if m != SecretBcrypt {
		return secret, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash secret: %w", err)
	}
	return string(hash), nil
}

// matches compares a stored secret with a submitted one. Do not log either.
func (m SecretMode) matches(stored, submitted string) (bool, error) {
	if m != SecretBcrypt {
		return stored == submitted, nil
	}
	err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(submitted))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword), errors.Is(err, bcrypt.ErrHashTooShort):
		return false, nil
	}
	return false, fmt.Errorf("compare secret: %w", err)
}
