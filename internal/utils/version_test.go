package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompareVersions(t *testing.T) {
	assert.Equal(t, 0, CompareVersions("1.2.0", "v1.2.0"))
	assert.Negative(t, CompareVersions("1.2.0", "1.10.0"))
	assert.Positive(t, CompareVersions("2.0.0", "1.9.9"))
	assert.Negative(t, CompareVersions("v0.9", "v0.10"))
}

func TestCompareVersionsFallsBackToStrings(t *testing.T) {
	// Branch names and the "unknown" placeholder are not versions; any
	// difference still has to register as a difference.
	assert.NotEqual(t, 0, CompareVersions("main", "v1.0.0"))
	assert.Equal(t, 0, CompareVersions("main", "main"))
}

func TestUpdateAvailable(t *testing.T) {
	assert.True(t, UpdateAvailable("1.0.0", "1.1.0"))
	assert.False(t, UpdateAvailable("1.1.0", "v1.1.0"))
	assert.True(t, UpdateAvailable("", "1.0.0"))
	assert.True(t, UpdateAvailable("unknown", "1.0.0"))

	// An unknown latest version never signals an update.
	assert.False(t, UpdateAvailable("1.0.0", ""))
	assert.False(t, UpdateAvailable("1.0.0", "unknown"))

	// Downgrades on the server side still count as a difference.
	assert.True(t, UpdateAvailable("2.0.0", "1.0.0"))
}
