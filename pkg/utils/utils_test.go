package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashString(t *testing.T) {
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", HashString(""))
	assert.Len(t, HashString("ann@example.com"), 64)
}

func TestHashEmail(t *testing.T) {
	assert.Equal(t, HashEmail("ann@example.com"), HashEmail(" Ann@Example.com "))
	assert.NotEqual(t, HashEmail("ann@example.com"), HashEmail("bob@example.com"))
}

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "Ann", NormalizeText("  Ann  "))
	assert.Equal(t, "Ann", NormalizeText("<b>Ann</b>"))
	assert.Equal(t, "Tom & Jerry", NormalizeText("Tom & Jerry"))
	assert.Equal(t, "Анна", NormalizeText("Анна<script>alert(1)</script>"))
	assert.Equal(t, "+7 (999) 123-45-67", NormalizeText("+7 (999) 123-45-67"))
}
