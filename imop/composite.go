package imop

import (
	"image"

	"github.com/esimov/motograph/utils"
)

// Porter-Duff operators supported by Composite.
const (
	Copy    = "copy"
	SrcOver = "src_over"
	DstOver = "dst_over"
	SrcIn   = "src_in"
	DstIn   = "dst_in"
	SrcOut  = "src_out"
	DstOut  = "dst_out"
	SrcAtop = "src_atop"
	DstAtop = "dst_atop"
	Xor     = "xor"
)

var operators = []string{Copy, SrcOver, DstOver, SrcIn, DstIn, SrcOut, DstOut, SrcAtop, DstAtop, Xor}

// Composite holds the active composition operator.
type Composite struct {
	current string
}

// InitOp returns a Composite using SrcOver.
func InitOp() *Composite {
	return &Composite{current: SrcOver}
}

// Set activates op if it is a known operator.
func (c *Composite) Set(op string) {
	if utils.Contains(operators, op) {
		c.current = op
	}
}

// Get returns the active operator.
func (c *Composite) Get() string {
	return c.current
}

// factors returns the weights of the source and the backdrop for the given alphas.
func (c *Composite) factors(as, ab float64) (fs, fb float64) {
	switch c.current {
	case Copy:
		return 1, 0
	case SrcOver:
		return 1, 1 - as
	case DstOver:
		return 1 - ab, 1
	case SrcIn:
		return ab, 0
	case DstIn:
		return 0, as
	case SrcOut:
		return 1 - ab, 0
	case DstOut:
		return 0, 1 - as
	case SrcAtop:
		return ab, 1 - as
	case DstAtop:
		return 1 - ab, as
	case Xor:
		return 1 - ab, 1 - as
	}
	return 1, 1 - as
}

// Draw composes src over the backdrop dst and returns the result as a new image
// with the bounds of dst. A non nil blend mixes the colors where both layers overlap.
func (c *Composite) Draw(src, dst *image.NRGBA, blend *Blend) *image.NRGBA {
	b := dst.Bounds()
	out := image.NewNRGBA(b)

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			di := dst.PixOffset(x, y)
			oi := out.PixOffset(x, y)

			var s [4]float64
			if (image.Point{X: x, Y: y}).In(src.Bounds()) {
				si := src.PixOffset(x, y)
				for k := range s {
					s[k] = float64(src.Pix[si+k]) / 255
				}
			}
			var d [4]float64
			for k := range d {
				d[k] = float64(dst.Pix[di+k]) / 255
			}

			as, ab := s[3], d[3]
			fs, fb := c.factors(as, ab)
			a := fs*as + fb*ab
			if a <= 0 {
				continue
			}
			for k := 0; k < 3; k++ {
				cs := s[k]
				if blend != nil && ab > 0 {
					cs = (1-ab)*cs + ab*blend.mix(cs, d[k])
				}
				v := (fs*as*cs + fb*ab*d[k]) / a
				out.Pix[oi+k] = uint8(utils.Min(v, 1)*255 + 0.5)
			}
			out.Pix[oi+3] = uint8(utils.Min(a, 1)*255 + 0.5)
		}
	}
	return out
}
