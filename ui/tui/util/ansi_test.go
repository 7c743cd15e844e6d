package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripANSI(t *testing.T) {
	assert.Equal(t, "hello", StripANSI("\x1b[31mhello\x1b[0m"))
	assert.Equal(t, "plain", StripANSI("plain"))
}

func TestVisibleLen(t *testing.T) {
	assert.Equal(t, 5, VisibleLen("\x1b[1m12 ×\x1b[0m "))
	assert.Equal(t, 4, VisibleLen("8÷2="))
}

func TestTruncateLeft(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"12345", 10, "12345"},
		{"12345", 5, "12345"},
		{"123456789", 5, "…6789"},
		{"1 × 2", 3, "… 2"},
		{"abc", 1, "…"},
		{"abc", 0, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TruncateLeft(tt.in, tt.width), tt.in)
	}
}

func TestPadLeft(t *testing.T) {
	assert.Equal(t, "   42", PadLeft("42", 5))
	assert.Equal(t, "123456", PadLeft("123456", 3))
}
