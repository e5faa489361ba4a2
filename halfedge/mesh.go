// Package halfedge implements an index based half-edge mesh used as the
// topological backbone of the motorcycle graph decomposition.
//
// Every undirected edge e owns the two half-edges 2e and 2e+1, so the
// opposite of a half-edge is h^1 and its edge is h/2. Faces are stored
// counter-clockwise, meaning a face lies on the left of its half-edges.
// Half-edges without a face are boundary half-edges and are linked into
// closed boundary loops, which keeps the vertex rotation well defined.
package halfedge

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// NoFace marks a boundary half-edge.
const NoFace = -1

// Mesh is an immutable half-edge mesh.
type Mesh struct {
	pos    []r3.Vec
	to     []int
	next   []int
	prev   []int
	face   []int
	anchor []int // outgoing half-edge per vertex, boundary one if any
	faceHE []int
}

// NumVertices returns the number of vertices.
func (m *Mesh) NumVertices() int { return len(m.pos) }

// NumHalfEdges returns the number of half-edges.
func (m *Mesh) NumHalfEdges() int { return len(m.to) }

// NumEdges returns the number of undirected edges.
func (m *Mesh) NumEdges() int { return len(m.to) / 2 }

// NumFaces returns the number of faces.
func (m *Mesh) NumFaces() int { return len(m.faceHE) }

// Position returns the coordinates of vertex v.
func (m *Mesh) Position(v int) r3.Vec { return m.pos[v] }

// ToVertex returns the vertex the half-edge points to.
func (m *Mesh) ToVertex(h int) int { return m.to[h] }

// FromVertex returns the vertex the half-edge leaves.
func (m *Mesh) FromVertex(h int) int { return m.to[h^1] }

// Next returns the next half-edge around the same face or boundary loop.
func (m *Mesh) Next(h int) int { return m.next[h] }

// Prev returns the previous half-edge around the same face or boundary loop.
func (m *Mesh) Prev(h int) int { return m.prev[h] }

// Opposite returns the twin half-edge.
func (m *Mesh) Opposite(h int) int { return h ^ 1 }

// Edge returns the undirected edge owning h.
func (m *Mesh) Edge(h int) int { return h >> 1 }

// HalfEdge returns one of the two half-edges of edge e (side 0 or 1).
func (m *Mesh) HalfEdge(e, side int) int { return e<<1 | side&1 }

// Face returns the face on the left of h, or NoFace.
func (m *Mesh) Face(h int) int { return m.face[h] }

// FaceHalfEdge returns a half-edge bounding face f.
func (m *Mesh) FaceHalfEdge(f int) int { return m.faceHE[f] }

// VertexHalfEdge returns the anchor outgoing half-edge of v, or -1 for an isolated vertex.
func (m *Mesh) VertexHalfEdge(v int) int { return m.anchor[v] }

// IsBoundaryHalfEdge reports whether h has no face.
func (m *Mesh) IsBoundaryHalfEdge(h int) bool { return m.face[h] == NoFace }

// IsBoundaryEdge reports whether either side of e has no face.
func (m *Mesh) IsBoundaryEdge(e int) bool {
	return m.face[e<<1] == NoFace || m.face[e<<1|1] == NoFace
}

// IsBoundaryVertex reports whether v lies on a boundary loop.
// Isolated vertices are considered boundary vertices.
func (m *Mesh) IsBoundaryVertex(v int) bool {
	h := m.anchor[v]
	return h < 0 || m.face[h] == NoFace
}

// Outgoing returns the half-edges leaving v in clockwise order,
// starting from the vertex anchor.
func (m *Mesh) Outgoing(v int) []int {
	start := m.anchor[v]
	if start < 0 {
		return nil
	}
	var out []int
	h := start
	for {
		out = append(out, h)
		h = m.next[h^1]
		if h == start || len(out) > len(m.to) {
			break
		}
	}
	return out
}

// Degree returns the number of edges incident to v.
func (m *Mesh) Degree(v int) int {
	start := m.anchor[v]
	if start < 0 {
		return 0
	}
	n := 0
	for h := start; ; {
		n++
		h = m.next[h^1]
		if h == start || n > len(m.to) {
			return n
		}
	}
}

// FaceHalfEdges returns the half-edges bounding f in counter-clockwise order.
func (m *Mesh) FaceHalfEdges(f int) []int {
	start := m.faceHE[f]
	var out []int
	for h := start; ; {
		out = append(out, h)
		h = m.next[h]
		if h == start || len(out) > len(m.to) {
			return out
		}
	}
}

// FaceVertices returns the corners of f in counter-clockwise order.
func (m *Mesh) FaceVertices(f int) []int {
	hs := m.FaceHalfEdges(f)
	vs := make([]int, len(hs))
	for i, h := range hs {
		vs[i] = m.to[h^1]
	}
	return vs
}

// FindHalfEdge returns the half-edge going from a to b, or -1.
func (m *Mesh) FindHalfEdge(a, b int) int {
	for _, h := range m.Outgoing(a) {
		if m.to[h] == b {
			return h
		}
	}
	return -1
}

// FaceCentroid returns the average of the corners of f.
func (m *Mesh) FaceCentroid(f int) r3.Vec {
	var c r3.Vec
	vs := m.FaceVertices(f)
	for _, v := range vs {
		c = r3.Add(c, m.pos[v])
	}
	return r3.Scale(1/float64(len(vs)), c)
}

// FaceNormal returns the unit normal of f computed with Newell's method.
func (m *Mesh) FaceNormal(f int) r3.Vec {
	var n r3.Vec
	vs := m.FaceVertices(f)
	for i, v := range vs {
		a, b := m.pos[v], m.pos[vs[(i+1)%len(vs)]]
		n.X += (a.Y - b.Y) * (a.Z + b.Z)
		n.Y += (a.Z - b.Z) * (a.X + b.X)
		n.Z += (a.X - b.X) * (a.Y + b.Y)
	}
	if r3.Norm(n) == 0 {
		return n
	}
	return r3.Unit(n)
}

// Bounds returns the axis aligned bounding box of the vertex positions.
func (m *Mesh) Bounds() r3.Box {
	if len(m.pos) == 0 {
		return r3.Box{}
	}
	b := r3.Box{Min: m.pos[0], Max: m.pos[0]}
	for _, p := range m.pos[1:] {
		b.Min = r3.Vec{X: min(b.Min.X, p.X), Y: min(b.Min.Y, p.Y), Z: min(b.Min.Z, p.Z)}
		b.Max = r3.Vec{X: max(b.Max.X, p.X), Y: max(b.Max.Y, p.Y), Z: max(b.Max.Z, p.Z)}
	}
	return b
}
