package motograph

import (
	"github.com/pkg/errors"
)

// Corner is one stop of a perimeter: a vertex on the graph together with the
// half-edges swept around it, ending with the graph half-edge leaving it.
type Corner struct {
	Vertex    int
	HalfEdges []int
}

// Perimeter is a closed loop of the motorcycle graph bounding one patch.
// The last corner connects back to the first one.
type Perimeter []Corner

// Successor returns the index of the corner following i, wrapping around.
func (p Perimeter) Successor(i int) int {
	return (i + 1) % len(p)
}

// Vertices returns the corner vertices in loop order.
func (p Perimeter) Vertices() []int {
	vs := make([]int, len(p))
	for i, c := range p {
		vs[i] = c.Vertex
	}
	return vs
}

// Closing returns the half-edge that ends the loop at the first corner.
func (p Perimeter) Closing() int {
	last := p[len(p)-1].HalfEdges
	return last[len(last)-1]
}

type seed struct{ vertex, halfEdge int }

// ExtractPerimeters traces the loops the frozen graph cuts the mesh into.
// Seeds are the graph half-edges with a face leaving graph nodes; loops that run
// into a half-edge claimed by an earlier loop are discarded.
func (g *Graph) ExtractPerimeters() ([]Perimeter, error) {
	m := g.mesh

	var seeds []seed
	for v := 0; v < m.NumVertices(); v++ {
		if !g.ann.IsNode(v) {
			continue
		}
		for _, h := range m.Outgoing(v) {
			if !m.IsBoundaryHalfEdge(h) && g.ann.IsGraphEdge(m.Edge(h)) {
				seeds = append(seeds, seed{v, h})
			}
		}
	}

	consumed := make([]bool, m.NumHalfEdges())
	var perimeters []Perimeter
	for _, s := range seeds {
		if consumed[s.halfEdge] {
			continue
		}
		p, err := g.trace(s, consumed)
		if err != nil {
			return nil, err
		}
		if p == nil {
			g.stats.Discarded++
			continue
		}
		perimeters = append(perimeters, p)
	}

	g.stats.Perimeters = len(perimeters)
	Logger().Info("perimeters extracted", "count", len(perimeters), "discarded", g.stats.Discarded)
	return perimeters, nil
}

// trace follows the graph from the seed, always taking the leftmost graph
// half-edge, until the loop returns to the seed vertex. It returns nil when
// the loop reaches an already consumed half-edge.
func (g *Graph) trace(s seed, consumed []bool) (Perimeter, error) {
	m := g.mesh
	consumed[s.halfEdge] = true
	p := Perimeter{{Vertex: s.vertex, HalfEdges: []int{s.halfEdge}}}

	curr := s.halfEdge
	for m.ToVertex(curr) != s.vertex {
		var swept []int
		h := m.Next(curr)
		for {
			swept = append(swept, h)
			if g.ann.IsGraphEdge(m.Edge(h)) {
				break
			}
			h = m.Next(m.Opposite(h))
		}
		if h == m.Opposite(curr) {
			return nil, errors.Wrapf(ErrDegeneratePatch, "graph dead ends at vertex %d", m.ToVertex(curr))
		}

		v := m.ToVertex(curr)
		curr = h
		if consumed[curr] {
			return nil, nil
		}
		consumed[curr] = true
		p = append(p, Corner{Vertex: v, HalfEdges: swept})
	}
	return p, nil
}
