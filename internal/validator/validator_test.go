package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr error
	}{
		{"valid simple", "alice@example.com", nil},
		{"valid with plus", "alice+tag@example.com", nil},
		{"valid uppercase", "Alice@Example.COM", nil},
		{"valid with spaces around", "  alice@example.com  ", nil},
		{"empty", "", ErrEmptyInput},
		{"missing at", "aliceexample.com", ErrInvalidEmail},
		{"missing domain", "alice@", ErrInvalidEmail},
		{"just at", "@", ErrInvalidEmail},
		{"too long", strings.Repeat("a", 250) + "@example.com", ErrInputTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateCompose(t *testing.T) {
	tests := []struct {
		name      string
		sender    string
		receivers []string
		priority  int
		wantErr   error
	}{
		{"valid", "alice@example.com", []string{"bob@example.com"}, 3, nil},
		{"valid multiple receivers", "alice@example.com", []string{"bob@example.com", "carol@example.com"}, 1, nil},
		{"bad sender", "not-an-email", []string{"bob@example.com"}, 3, ErrInvalidEmail},
		{"no receivers", "alice@example.com", nil, 3, ErrNoReceivers},
		{"bad receiver", "alice@example.com", []string{"bob@example.com", "broken"}, 3, ErrInvalidEmail},
		{"priority too low", "alice@example.com", []string{"bob@example.com"}, 0, ErrInvalidPriority},
		{"priority too high", "alice@example.com", []string{"bob@example.com"}, 6, ErrInvalidPriority},
		{"priority boundaries", "alice@example.com", []string{"bob@example.com"}, 5, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCompose(tt.sender, tt.receivers, tt.priority)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"clean name", "report.pdf", "report.pdf"},
		{"forward slash", "path/to/file.txt", "path_to_file.txt"},
		{"backslash", "path\\file.txt", "path_file.txt"},
		{"dot dot", "..secret.txt", "_secret.txt"},
		{"null byte", "file\x00.txt", "file.txt"},
		{"control chars", "file\x01\x02.txt", "file.txt"},
		{"surrounding spaces", "  file.txt  ", "file.txt"},
		{"empty", "", "unnamed"},
		{"only junk", "\x01\x02", "unnamed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFilename(tt.input))
		})
	}
}

func TestSanitizeFilename_TruncatesLongNames(t *testing.T) {
	long := strings.Repeat("a", 300) + ".txt"
	result := SanitizeFilename(long)
	assert.Len(t, []rune(result), 255)
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "hello", SanitizeString("  hello  ", 0))
	assert.Equal(t, "hello", SanitizeString("hel\x00lo", 0))
	assert.Equal(t, "hel", SanitizeString("hello", 3))
	assert.Equal(t, "hello", SanitizeString("hello", 100))
}
