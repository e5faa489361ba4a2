package motograph

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/disintegration/imaging"
	"github.com/esimov/motograph/halfedge"
	"github.com/esimov/motograph/imop"
	"github.com/esimov/motograph/utils"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// supersample is the oversampling factor used to smooth the preview edges.
	supersample = 2
	margin      = 0.06
)

var (
	wireColor  = color.NRGBA{R: 90, G: 90, B: 90, A: 255}
	graphColor = color.NRGBA{R: 20, G: 20, B: 20, A: 255}
	nodeColor  = color.NRGBA{R: 220, G: 30, B: 40, A: 255}
	labelColor = color.NRGBA{A: 255}
)

// camera projects mesh positions orthographically onto the preview plane.
// dir points from the mesh towards the viewer.
type camera struct {
	u, v, dir  r3.Vec
	scale      float64
	minX, minY float64
	offX, offY float64
	height     float64
}

// newCamera looks at flat meshes from above and at solids from the (1, 1, 1) diagonal,
// fitting the projected bounds into the canvas.
func newCamera(m *halfedge.Mesh, width, height int) *camera {
	c := &camera{height: float64(height)}
	b := m.Bounds()
	if b.Max.Z-b.Min.Z < 1e-12 {
		c.u, c.v, c.dir = r3.Vec{X: 1}, r3.Vec{Y: 1}, r3.Vec{Z: 1}
	} else {
		c.dir = r3.Unit(r3.Vec{X: 1, Y: 1, Z: 1})
		c.u = r3.Unit(r3.Cross(r3.Vec{Y: 1}, c.dir))
		c.v = r3.Cross(c.dir, c.u)
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for v := 0; v < m.NumVertices(); v++ {
		p := m.Position(v)
		x, y := r3.Dot(p, c.u), r3.Dot(p, c.v)
		minX, maxX = utils.Min(minX, x), utils.Max(maxX, x)
		minY, maxY = utils.Min(minY, y), utils.Max(maxY, y)
	}
	dx, dy := utils.Max(maxX-minX, 1e-9), utils.Max(maxY-minY, 1e-9)
	w, h := float64(width)*(1-2*margin), float64(height)*(1-2*margin)

	c.scale = utils.Min(w/dx, h/dy)
	c.minX, c.minY = minX, minY
	c.offX = (float64(width) - dx*c.scale) / 2
	c.offY = (float64(height) - dy*c.scale) / 2
	return c
}

func (c *camera) project(p r3.Vec) point {
	x := (r3.Dot(p, c.u)-c.minX)*c.scale + c.offX
	y := (r3.Dot(p, c.v)-c.minY)*c.scale + c.offY
	return point{X: x, Y: c.height - y}
}

func (c *camera) depth(p r3.Vec) float64 { return r3.Dot(p, c.dir) }

// drawable is a face queued for painting.
type drawable struct {
	face  int
	depth float64
	light float64
}

// Render draws the decomposition: faces shaded in their patch color, the mesh
// wireframe, the motorcycle graph and optionally the patch ids.
func (p *Processor) Render(m *halfedge.Mesh, res *Result) (*image.NRGBA, error) {
	width, height := p.Width, p.Height
	if width <= 0 || height <= 0 {
		width, height = 1024, 768
	}
	bg := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	if p.Background != "" {
		c, err := utils.HexToRGBA(p.Background)
		if err != nil {
			return nil, err
		}
		bg = c
	}

	sw, sh := width*supersample, height*supersample
	cam := newCamera(m, sw, sh)

	closed := true
	for v := 0; v < m.NumVertices() && closed; v++ {
		closed = !m.IsBoundaryVertex(v)
	}

	// Back to front, dropping back faces of closed meshes.
	var faces []drawable
	for f := 0; f < m.NumFaces(); f++ {
		light := r3.Dot(m.FaceNormal(f), cam.dir)
		if closed && light <= 0 {
			continue
		}
		faces = append(faces, drawable{f, cam.depth(m.FaceCentroid(f)), math.Abs(light)})
	}
	sort.SliceStable(faces, func(i, j int) bool { return faces[i].depth < faces[j].depth })

	faceLayer := newCanvas(sw, sh, bg)
	wireLayer := newCanvas(sw, sh, nil)
	graphLayer := newCanvas(sw, sh, nil)

	visibleEdge := make([]bool, m.NumEdges())
	visibleVertex := make([]bool, m.NumVertices())
	for _, d := range faces {
		id, _ := res.Patch(d.face)
		corners := m.FaceVertices(d.face)
		pts := make([]point, len(corners))
		for i, v := range corners {
			pts[i] = cam.project(m.Position(v))
			visibleVertex[v] = true
		}
		faceLayer.drawPolygon(pts, shade(PatchColor(id), 0.35+0.65*d.light))
		for _, h := range m.FaceHalfEdges(d.face) {
			visibleEdge[m.Edge(h)] = true
		}
	}

	stroke := float64(supersample)
	for e, ok := range visibleEdge {
		if !ok {
			continue
		}
		h := m.HalfEdge(e, 0)
		a, b := cam.project(m.Position(m.FromVertex(h))), cam.project(m.Position(m.ToVertex(h)))
		switch {
		case res.IsGraphEdge(e):
			graphLayer.drawLine(a, b, graphColor, 2.5*stroke)
		case p.Edges:
			wireLayer.drawLine(a, b, wireColor, 0.75*stroke)
		}
	}
	if p.Nodes {
		for v, ok := range visibleVertex {
			if ok && res.IsNode(v) {
				graphLayer.drawMarker(p.NodeShape, cam.project(m.Position(v)), nodeColor, 3*stroke)
			}
		}
	}

	op := imop.InitOp()
	blend := imop.NewBlend()
	blend.Set(imop.Multiply)
	img := op.Draw(imaging.Clone(wireLayer.img), imaging.Clone(faceLayer.img), blend)
	img = op.Draw(imaging.Clone(graphLayer.img), img, nil)

	img = imaging.Resize(img, width, height, imaging.Lanczos)
	if p.Labels {
		drawLabels(img, m, res, cam, faces)
	}
	return img, nil
}

// drawLabels prints each patch id at the mean position of its visible faces.
func drawLabels(img *image.NRGBA, m *halfedge.Mesh, res *Result, cam *camera, faces []drawable) {
	type acc struct {
		x, y float64
		n    int
	}
	sums := make(map[int]*acc)
	var ids []int
	for _, d := range faces {
		id, ok := res.Patch(d.face)
		if !ok {
			continue
		}
		a, found := sums[id]
		if !found {
			a = &acc{}
			sums[id] = a
			ids = append(ids, id)
		}
		c := cam.project(m.FaceCentroid(d.face))
		a.x += c.X / supersample
		a.y += c.Y / supersample
		a.n++
	}
	sort.Ints(ids)

	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(labelColor),
		Face: basicfont.Face7x13,
	}
	for _, id := range ids {
		a := sums[id]
		text := utils.FormatCount(id)
		w := drawer.MeasureString(text)
		x := a.x/float64(a.n) - float64(w.Round())/2
		y := a.y/float64(a.n) + 4
		drawer.Dot = fixed.P(int(x), int(y))
		drawer.DrawString(text)
	}
}
