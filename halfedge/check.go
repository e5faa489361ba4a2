package halfedge

import "github.com/pkg/errors"

// Check walks the whole structure and verifies the connectivity invariants:
// twin symmetry, next/prev inverses, face cycles and vertex anchors.
func (m *Mesh) Check() error {
	nh := len(m.to)
	if nh%2 != 0 {
		return errors.Wrapf(ErrInconsistent, "odd half-edge count %d", nh)
	}
	for h := 0; h < nh; h++ {
		n := m.next[h]
		if n < 0 || n >= nh {
			return errors.Wrapf(ErrInconsistent, "half-edge %d has no successor", h)
		}
		if m.prev[n] != h {
			return errors.Wrapf(ErrInconsistent, "prev(next(%d)) = %d", h, m.prev[n])
		}
		if m.to[h^1] == m.to[h] {
			return errors.Wrapf(ErrInconsistent, "half-edge %d is a loop", h)
		}
		if m.to[h] != m.to[n^1] {
			return errors.Wrapf(ErrInconsistent, "half-edge %d does not end where %d starts", h, n)
		}
		if m.face[n] != m.face[h] {
			return errors.Wrapf(ErrInconsistent, "half-edges %d and %d disagree on face", h, n)
		}
		if m.face[h] == NoFace && m.face[h^1] == NoFace {
			return errors.Wrapf(ErrInconsistent, "edge %d has no face", h>>1)
		}
	}
	for f, start := range m.faceHE {
		if m.face[start] != f {
			return errors.Wrapf(ErrInconsistent, "face %d anchor belongs to face %d", f, m.face[start])
		}
		if n := len(m.FaceHalfEdges(f)); n > nh {
			return errors.Wrapf(ErrInconsistent, "face %d does not close", f)
		}
	}
	for v, h := range m.anchor {
		if h < 0 {
			continue
		}
		if m.to[h^1] != v {
			return errors.Wrapf(ErrInconsistent, "vertex %d anchor leaves vertex %d", v, m.to[h^1])
		}
		for _, o := range m.Outgoing(v) {
			if m.face[o] == NoFace && o != h {
				return errors.Wrapf(ErrInconsistent, "vertex %d anchor is not its boundary half-edge", v)
			}
		}
	}
	return nil
}
