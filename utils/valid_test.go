package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("user@example.com"))
	assert.NoError(t, ValidateEmail("first.last+tag@sub.example.co"))

	assert.Error(t, ValidateEmail(""))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("user@"))
	assert.Error(t, ValidateEmail("@example.com"))
	assert.Error(t, ValidateEmail("user@example"))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("password1"))
	assert.NoError(t, ValidatePassword("A1b2c3d4"))

	assert.Error(t, ValidatePassword("short1"), "too short")
	assert.Error(t, ValidatePassword("onlyletters"), "no digit")
	assert.Error(t, ValidatePassword("12345678"), "no letter")
}

func TestSanitizeInput(t *testing.T) {
	assert.Equal(t, "hello", SanitizeInput("  hello  "))
	assert.Equal(t, "a &amp; b", SanitizeInput("a & b"))
	assert.NotContains(t, SanitizeInput("<script>alert(1)</script>ok"), "<script>")
}
