package halfedge

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r3"
)

// FromPolygons builds a mesh out of vertex positions and counter-clockwise
// polygons given as vertex index lists.
func FromPolygons(positions []r3.Vec, faces [][]int) (*Mesh, error) {
	nv := len(positions)
	m := &Mesh{
		pos:    append([]r3.Vec(nil), positions...),
		anchor: make([]int, nv),
		faceHE: make([]int, 0, len(faces)),
	}
	for v := range m.anchor {
		m.anchor[v] = -1
	}

	directed := make(map[[2]int]int)
	for f, poly := range faces {
		if len(poly) < 3 {
			return nil, errors.Wrapf(ErrDegenerateFace, "face %d has %d corners", f, len(poly))
		}
		corners := make(map[int]struct{}, len(poly))
		for _, v := range poly {
			if v < 0 || v >= nv {
				return nil, errors.Wrapf(ErrIndexRange, "face %d references vertex %d", f, v)
			}
			if _, ok := corners[v]; ok {
				return nil, errors.Wrapf(ErrDegenerateFace, "face %d repeats vertex %d", f, v)
			}
			corners[v] = struct{}{}
		}

		loop := make([]int, len(poly))
		for i, a := range poly {
			b := poly[(i+1)%len(poly)]
			if _, ok := directed[[2]int{a, b}]; ok {
				return nil, errors.Wrapf(ErrNonManifoldEdge, "half-edge %d->%d used twice", a, b)
			}
			h, ok := directed[[2]int{b, a}]
			if ok {
				h ^= 1
			} else {
				h = len(m.to)
				m.to = append(m.to, b, a)
				m.face = append(m.face, NoFace, NoFace)
				m.next = append(m.next, -1, -1)
			}
			directed[[2]int{a, b}] = h
			m.face[h] = f
			loop[i] = h
		}
		m.faceHE = append(m.faceHE, loop[0])
		for i, h := range loop {
			m.next[h] = loop[(i+1)%len(loop)]
			if m.anchor[m.to[h^1]] < 0 {
				m.anchor[m.to[h^1]] = h
			}
		}
	}

	nh := len(m.to)
	m.prev = make([]int, nh)
	for h := 0; h < nh; h++ {
		if m.face[h] != NoFace {
			m.prev[m.next[h]] = h
		}
	}

	// Link boundary half-edges: next(g) is the boundary half-edge leaving to(g).
	boundaryOut := make(map[int]int)
	for h := 0; h < nh; h++ {
		if m.face[h] != NoFace {
			continue
		}
		from := m.to[h^1]
		if _, ok := boundaryOut[from]; ok {
			return nil, errors.Wrapf(ErrNonManifoldVertex, "vertex %d has several boundary fans", from)
		}
		boundaryOut[from] = h
		m.anchor[from] = h
	}
	for h := 0; h < nh; h++ {
		if m.face[h] != NoFace {
			continue
		}
		n := boundaryOut[m.to[h]]
		m.next[h] = n
		m.prev[n] = h
	}

	// Every outgoing half-edge must be reachable by rotating around the anchor.
	outDegree := make([]int, nv)
	for h := 0; h < nh; h++ {
		outDegree[m.to[h^1]]++
	}
	for v := 0; v < nv; v++ {
		if got := m.Degree(v); got != outDegree[v] {
			return nil, errors.Wrapf(ErrNonManifoldVertex, "vertex %d reaches %d of %d edges", v, got, outDegree[v])
		}
	}
	return m, nil
}
