package motograph

import (
	"sort"

	"github.com/emirpasic/gods/queues/linkedlistqueue"
)

// sortPerimeters orders the loops by their seed so patch ids do not depend
// on the extraction order.
func sortPerimeters(perimeters []Perimeter) []Perimeter {
	sorted := append([]Perimeter(nil), perimeters...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i][0], sorted[j][0]
		if a.Vertex != b.Vertex {
			return a.Vertex < b.Vertex
		}
		return a.HalfEdges[0] < b.HalfEdges[0]
	})
	return sorted
}

// AssignPatches labels the faces enclosed by every perimeter with a fresh patch id.
// The id counter advances once per perimeter, even if no face was reached.
func (g *Graph) AssignPatches(perimeters []Perimeter) {
	for id, p := range sortPerimeters(perimeters) {
		g.fill(p, id)
		g.stats.Patches++
	}
	g.stats.Unassigned = g.mesh.NumFaces() - g.ann.LabeledCount()
	if g.stats.Unassigned > 0 {
		Logger().Warn("faces left without patch", "count", g.stats.Unassigned)
	}
}

// fill floods the inside of one perimeter. The faces swept while tracing the
// loop are labeled directly; the region behind them is reached by a breadth
// first walk over vertices that are not on the loop.
func (g *Graph) fill(p Perimeter, id int) {
	m := g.mesh

	onLoop := make(map[int]struct{}, len(p))
	for _, c := range p {
		onLoop[c.Vertex] = struct{}{}
	}

	queue := linkedlistqueue.New()
	queued := make(map[int]struct{})
	for i, c := range p {
		next := p[p.Successor(i)].Vertex
		for _, h := range c.HalfEdges {
			g.ann.SetPatch(m.Face(h), id)

			v := m.ToVertex(h)
			if v == next {
				continue
			}
			if _, ok := onLoop[v]; ok {
				continue
			}
			if _, ok := queued[v]; !ok {
				queued[v] = struct{}{}
				queue.Enqueue(v)
			}
		}
	}

	done := make(map[int]struct{})
	for !queue.Empty() {
		item, _ := queue.Dequeue()
		v := item.(int)
		if _, ok := done[v]; ok {
			Logger().Warn("vertex visited twice during fill", "vertex", v, "patch", id)
			continue
		}
		done[v] = struct{}{}

		for _, h := range m.Outgoing(v) {
			if f := m.Face(h); f >= 0 {
				g.ann.SetPatch(f, id)
			}
			w := m.ToVertex(h)
			if _, ok := onLoop[w]; ok {
				continue
			}
			if _, ok := queued[w]; !ok {
				queued[w] = struct{}{}
				queue.Enqueue(w)
			}
		}
	}
}
