package utils

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	assert.Equal(t, "a b c", CleanText("  a\n\n b\t c  "))
	assert.Equal(t, "", CleanText("   "))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 5))
	assert.Equal(t, "ab", Truncate("abcdef", 2))
}

func TestTruncateMultiByte(t *testing.T) {
	s := strings.Repeat("a", 499) + "₹ 10,00,000"
	got := Truncate(s, 500)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, 500, len([]rune(got)))
	assert.Equal(t, "₹", string([]rune(got)[499]))

	assert.Equal(t, "₹₹", Truncate("₹₹₹", 2))
}

func TestGenerateSessionIDUnique(t *testing.T) {
	assert.NotEqual(t, GenerateSessionID(), GenerateSessionID())
}

func TestCustomErrorDetailFormatting(t *testing.T) {
	err := NewAuthError("no markers found")
	assert.Equal(t, "Login failed. Check credentials.: no markers found", err.Error())
	assert.Equal(t, 401, err.Code)
	assert.Equal(t, KindAuth, err.Kind)

	withURL := NewExtractionNotFoundError("ladder exhausted").WithURL("https://x/y")
	assert.Equal(t, "https://x/y", withURL.CurrentURL)
}
