package motograph

import (
	"image"
	"image/color"

	"github.com/llgcode/draw2d"
	"github.com/llgcode/draw2d/draw2dimg"
	"github.com/llgcode/draw2d/draw2dkit"
)

// ShapeType selects the marker drawn on graph nodes.
type ShapeType string

const (
	Circle ShapeType = "circle"
	Square ShapeType = "square"
)

// point is a position on the preview canvas, in pixels.
type point struct{ X, Y float64 }

// canvas wraps a draw2d graphic context over an RGBA layer.
type canvas struct {
	img *image.RGBA
	gc  *draw2dimg.GraphicContext
}

func newCanvas(width, height int, bg color.Color) *canvas {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	gc := draw2dimg.NewGraphicContext(img)
	gc.SetLineJoin(draw2d.RoundJoin)
	gc.SetLineCap(draw2d.RoundCap)
	if bg != nil {
		gc.SetFillColor(bg)
		draw2dkit.Rectangle(gc, 0, 0, float64(width), float64(height))
		gc.Fill()
	}
	return &canvas{img: img, gc: gc}
}

// drawPolygon fills the closed polygon and optionally outlines it.
func (c *canvas) drawPolygon(pts []point, fill color.Color) {
	if len(pts) < 3 {
		return
	}
	c.gc.BeginPath()
	c.gc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		c.gc.LineTo(p.X, p.Y)
	}
	c.gc.Close()
	c.gc.SetFillColor(fill)
	c.gc.Fill()
}

// drawLine strokes a segment with the given thickness.
func (c *canvas) drawLine(a, b point, col color.Color, thickness float64) {
	c.gc.BeginPath()
	c.gc.MoveTo(a.X, a.Y)
	c.gc.LineTo(b.X, b.Y)
	c.gc.SetStrokeColor(col)
	c.gc.SetLineWidth(thickness)
	c.gc.Stroke()
}

// drawMarker draws a node marker centered at p.
func (c *canvas) drawMarker(shape ShapeType, p point, col color.Color, radius float64) {
	c.gc.BeginPath()
	switch shape {
	case Square:
		draw2dkit.Rectangle(c.gc, p.X-radius, p.Y-radius, p.X+radius, p.Y+radius)
	default:
		draw2dkit.Circle(c.gc, p.X, p.Y, radius)
	}
	c.gc.SetFillColor(col)
	c.gc.Fill()
}
