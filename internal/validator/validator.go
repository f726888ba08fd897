// Package validator provides input validation and sanitization for the
// webmail API layer.
package validator

import (
	"errors"
	"net/mail"
	"strings"
	"unicode/utf8"
)

// Validation errors
var (
	ErrInvalidEmail    = errors.New("invalid email format")
	ErrInputTooLong    = errors.New("input exceeds maximum length")
	ErrEmptyInput      = errors.New("input cannot be empty")
	ErrInvalidPriority = errors.New("priority must be between 1 and 5")
	ErrNoReceivers     = errors.New("at least one receiver is required")
)

// ValidateEmail validates email address format according to RFC 5322.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	if email == "" {
		return ErrEmptyInput
	}

	// RFC 5321 specifies max email length of 254 characters
	if utf8.RuneCountInString(email) > 254 {
		return ErrInputTooLong
	}

	if _, err := mail.ParseAddress(email); err != nil {
		return ErrInvalidEmail
	}

	return nil
}

// ValidateCompose checks the fields of a compose request: sender and
// receivers must be well-formed addresses and priority must be in range.
func ValidateCompose(sender string, receivers []string, priority int) error {
	if err := ValidateEmail(sender); err != nil {
		return err
	}
	if len(receivers) == 0 {
		return ErrNoReceivers
	}
	for _, r := range receivers {
		if err := ValidateEmail(r); err != nil {
			return err
		}
	}
	if priority < 1 || priority > 5 {
		return ErrInvalidPriority
	}
	return nil
}

// SanitizeFilename removes dangerous characters from an attachment filename.
// Prevents path traversal and removes control characters.
func SanitizeFilename(filename string) string {
	filename = strings.ReplaceAll(filename, "/", "_")
	filename = strings.ReplaceAll(filename, "\\", "_")
	filename = strings.ReplaceAll(filename, "..", "_")
	filename = strings.ReplaceAll(filename, "\x00", "")

	filename = strings.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return -1
		}
		return r
	}, filename)

	filename = strings.TrimSpace(filename)

	// Common filesystem limit
	if utf8.RuneCountInString(filename) > 255 {
		runes := []rune(filename)
		filename = string(runes[:255])
	}

	if filename == "" {
		return "unnamed"
	}

	return filename
}

// SanitizeString removes control characters and enforces a length limit.
func SanitizeString(input string, maxLength int) string {
	input = strings.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return -1
		}
		return r
	}, input)

	input = strings.TrimSpace(input)

	if maxLength > 0 && utf8.RuneCountInString(input) > maxLength {
		runes := []rune(input)
		input = string(runes[:maxLength])
	}

	return input
}
