package motograph

import (
	"image/color"
	"math/rand"
)

// UnassignedColor paints faces without a patch.
var UnassignedColor = color.NRGBA{R: 160, G: 160, B: 160, A: 255}

// PatchColor returns the display color of a patch. The channels are drawn
// from a chain of generators, each seeded with the previous channel, so the
// same id always yields the same color.
func PatchColor(id int) color.NRGBA {
	if id < 0 {
		return UnassignedColor
	}
	r := rand.New(rand.NewSource(int64(id))).Intn(255)
	g := rand.New(rand.NewSource(int64(r))).Intn(255)
	b := rand.New(rand.NewSource(int64(g))).Intn(255)
	return color.NRGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255}
}

// shade scales the color channels by f in [0, 1].
func shade(c color.NRGBA, f float64) color.NRGBA {
	return color.NRGBA{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: c.A,
	}
}
