package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskPhone(t *testing.T) {
	assert.Equal(t, "*******567", MaskPhone("0901234567"))
	assert.Equal(t, "***", MaskPhone("12"))
	assert.Equal(t, "*234", MaskPhone("1234"))
}

func TestHashPrefix(t *testing.T) {
	assert.Equal(t, "a1b2c3d4", HashPrefix("a1b2c3d4e5f6", 8))
	assert.Equal(t, "abc", HashPrefix("abc", 8))
	assert.Equal(t, "", HashPrefix("abc", 0))
}
