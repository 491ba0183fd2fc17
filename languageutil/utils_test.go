package languageutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLabel(t *testing.T) {
	assert.Equal(t, "borsa a tracolla", NormalizeLabel("  Borsa   A TRACOLLA "))
	assert.Equal(t, "", NormalizeLabel("   "))
}

func TestDisplayBrand(t *testing.T) {
	assert.Equal(t, "Louis Vuitton", DisplayBrand("louis   vuitton"))
	assert.Equal(t, "MCM", DisplayBrand("MCM"))
	assert.Equal(t, "", DisplayBrand(" "))
}
