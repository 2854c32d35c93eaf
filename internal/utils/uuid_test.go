package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeUUID(t *testing.T) {
	assert.Equal(t,
		"9c7d4a2e-1f3b-4c5d-8e6f-0a1b2c3d4e5f",
		NormalizeUUID("9C7D4A2E-1F3B-4C5D-8E6F-0A1B2C3D4E5F"))
	assert.Equal(t,
		"9c7d4a2e-1f3b-4c5d-8e6f-0a1b2c3d4e5f",
		NormalizeUUID("9c7d4a2e1f3b4c5d8e6f0a1b2c3d4e5f"))
	// non-UUID references pass through lower-cased
	assert.Equal(t, "j001516", NormalizeUUID(" J001516 "))
}

func TestIsUUID(t *testing.T) {
	assert.True(t, IsUUID("9c7d4a2e-1f3b-4c5d-8e6f-0a1b2c3d4e5f"))
	assert.False(t, IsUUID("J001516"))
	assert.False(t, IsUUID(""))
}
