package motograph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPatchColor(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(UnassignedColor, PatchColor(Unassigned))
	assert.Equal(PatchColor(3), PatchColor(3))

	seen := make(map[[3]uint8]bool)
	for id := 0; id < 16; id++ {
		c := PatchColor(id)
		assert.Equal(uint8(255), c.A)
		seen[[3]uint8{c.R, c.G, c.B}] = true
	}
	assert.Greater(len(seen), 1)
}

func TestShade(t *testing.T) {
	c := shade(PatchColor(0), 0)
	assert.Equal(t, uint8(0), c.R)
	assert.Equal(t, uint8(0), c.G)
	assert.Equal(t, uint8(0), c.B)
	assert.Equal(t, uint8(255), c.A)
	assert.Equal(t, PatchColor(0), shade(PatchColor(0), 1))
}
