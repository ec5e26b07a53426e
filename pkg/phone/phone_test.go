package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"trunk prefix replaced", "0712345678", "+254712345678", true},
		{"bare subscriber number", "712345678", "+254712345678", true},
		{"already international", "+254712345678", "+254712345678", true},
		{"country code without plus", "254712345678", "+254712345678", true},
		{"spaces and dashes stripped", "0712 345-678", "+254712345678", true},
		{"parentheses stripped", "(0712) 345 678", "+254712345678", true},
		{"plus is taken at face value", "+15551234567", "+15551234567", true},
		{"unrecognized shape still prefixed", "12345", "+12345", true},
		{"empty", "", "", false},
		{"whitespace only", "   ", "", false},
		{"no digits", "n/a", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Normalize(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
