package services

import (
	"errors"
	"net/mail"
	"strings"
	"unicode"
)

var (
	ErrAuthCredentialsInvalid = errors.New("auth credentials invalid")
	ErrWeakPassword           = errors.New("weak password")
)

const minPasswordLength = 8

// NormalizeAuthEmail lower-cases and trims raw. It returns "" when the result
// is not a bare RFC 5322 address.
func NormalizeAuthEmail(raw string) string {
	email := strings.ToLower(strings.TrimSpace(raw))
	address, err := mail.ParseAddress(email)
	if err != nil || address.Address != email {
		return ""
	}
	return email
}

func NormalizeCredentialsInput(emailRaw string, passwordRaw string) (string, string, error) {
	email := NormalizeAuthEmail(emailRaw)
	password := strings.TrimSpace(passwordRaw)
	if email == "" || password == "" {
		return "", "", ErrAuthCredentialsInvalid
	}
	return email, password, nil
}

// ValidatePasswordStrength requires minPasswordLength runes including an
// upper case letter, a lower case letter and a digit.
func ValidatePasswordStrength(password string) error {
	if len([]rune(password)) < minPasswordLength {
		return ErrWeakPassword
	}
	classes := []func(rune) bool{unicode.IsUpper, unicode.IsLower, unicode.IsDigit}
	for _, inClass := range classes {
		if !strings.ContainsFunc(password, inClass) {
			return ErrWeakPassword
		}
	}
	return nil
}
