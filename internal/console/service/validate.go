package service

import (
	"net/mail"
	"strings"
	"unicode/utf8"
)

const (
	minPasswordLength = 8
	maxPasswordLength = 256
	maxNameLength     = 200
	minOrgNameLength  = 2
)

// normalizeEmail lower-cases and trims s and checks it is a bare address.
func normalizeEmail(s string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(s))
	if email == "" {
		return "", validationError("email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", validationError("email is not a valid address")
	}
	return email, nil
}

func requireName(field, s string, minLen int) (string, error) {
	name := strings.TrimSpace(s)
	n := utf8.RuneCountInString(name)
	if n == 0 {
		return "", validationError("%s is required", field)
	}
	if n < minLen {
		return "", validationError("%s must be at least %d characters", field, minLen)
	}
	if n > maxNameLength {
		return "", validationError("%s must be at most %d characters", field, maxNameLength)
	}
	return name, nil
}

func checkPassword(pw string) error {
	n := utf8.RuneCountInString(pw)
	if n < minPasswordLength {
		return validationError("password must be at least %d characters", minPasswordLength)
	}
	if n > maxPasswordLength {
		return validationError("password must be at most %d characters", maxPasswordLength)
	}
	return nil
}

func optionalString(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
