package motograph

import "github.com/esimov/motograph/halfedge"

// Mesh is the read-only topology the decomposition runs on.
// Half-edges leave a vertex in the clockwise order returned by Outgoing.
type Mesh interface {
	NumVertices() int
	NumEdges() int
	NumFaces() int
	NumHalfEdges() int

	ToVertex(h int) int
	Next(h int) int
	Opposite(h int) int
	Edge(h int) int
	Face(h int) int

	Outgoing(v int) []int
	Degree(v int) int

	IsBoundaryVertex(v int) bool
	IsBoundaryEdge(e int) bool
	IsBoundaryHalfEdge(h int) bool
}

var _ Mesh = (*halfedge.Mesh)(nil)

// isExtraordinary reports whether v is an irregular vertex: an interior
// vertex whose degree differs from 4 or a boundary vertex of degree 4 or more.
func isExtraordinary(m Mesh, v int) bool {
	if m.IsBoundaryVertex(v) {
		return m.Degree(v) >= 4
	}
	return m.Degree(v) != 4
}

// straight returns the half-edge continuing h across a regular vertex.
func straight(m Mesh, h int) int {
	return m.Next(m.Opposite(m.Next(h)))
}
