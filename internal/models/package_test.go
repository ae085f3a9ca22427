package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPackageID(t *testing.T) {
	assert.Equal(t, "onoffre_zing_dimmer", PackageID("OnOffre", "Zing-Dimmer"))
	assert.Equal(t, "onoffre_zing_dimmer", PackageID("onoffre", "zing_dimmer"))
	assert.Equal(t, "a_b_c", PackageID("a", "b-c"))
}
