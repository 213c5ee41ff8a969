package main

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Single-operator credentials from the environment; there is no user store
// because the service keeps no state beyond the one-shot export artifacts.
// APP_PASSWORD_HASH is a bcrypt hash; a development fallback pair applies
// when it is unset.
func Authenticate(username, password string) error {
	username = strings.TrimSpace(username)
	expected := os.Getenv("APP_USER")
	if expected == "" {
		expected = "admin"
	}
	if username != expected {
		return fmt.Errorf("invalid credentials")
	}
	hash := os.Getenv("APP_PASSWORD_HASH")
	if hash == "" {
		if password == "admin123" { // development fallback
			return nil
		}
		return fmt.Errorf("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return fmt.Errorf("invalid credentials")
	}
	return nil
}
