package helper

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateQRCodeFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^TBL-[0-9A-F]{8}$`)

	for i := 0; i < 20; i++ {
		code := GenerateQRCode()
		assert.Regexp(t, pattern, code)
	}
}

func TestGenerateQRCodeIsOpaque(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		seen[GenerateQRCode()] = true
	}
	// Collisions are possible in principle but a hundred in a row means the
	// generator is broken.
	assert.Greater(t, len(seen), 1)
}
