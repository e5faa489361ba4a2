package motograph

import (
	"github.com/emirpasic/gods/maps/treemap"
	"github.com/pkg/errors"
)

// Seed creates one motorcycle per outgoing half-edge of every extraordinary
// vertex and marks the corresponding edges as graph edges.
func (g *Graph) Seed() error {
	if g.seeded {
		return nil
	}
	g.seeded = true
	for v := 0; v < g.mesh.NumVertices(); v++ {
		if !g.ann.IsSource(v) {
			continue
		}
		for _, h := range g.mesh.Outgoing(v) {
			g.ann.MarkEdge(g.mesh.Edge(h))
			if err := g.fleet.Add(NewMotorcycle(h)); err != nil {
				return errors.Wrapf(err, "seeding vertex %d", v)
			}
			g.stats.Motorcycles++
		}
	}
	Logger().Debug("motorcycles seeded", "count", g.stats.Motorcycles)
	return nil
}

// Propagate runs the synchronous simulation until every motorcycle crashed.
// Each round steps all live motorcycles once, then resolves the collisions
// at every vertex reached in that round.
func (g *Graph) Propagate() error {
	if err := g.Seed(); err != nil {
		return err
	}
	for g.fleet.Len() > 0 {
		if g.maxRounds > 0 && g.stats.Rounds >= g.maxRounds {
			return errors.Wrapf(ErrRoundLimit, "%d motorcycles still running after %d rounds",
				g.fleet.Len(), g.stats.Rounds)
		}
		g.round()
	}
	g.stats.GraphNodes = g.ann.NodeCount()
	g.stats.GraphEdges = g.ann.EdgeCount()
	Logger().Info("propagation converged",
		"rounds", g.stats.Rounds,
		"graph_vertices", g.stats.GraphNodes,
		"graph_edges", g.stats.GraphEdges,
	)
	return nil
}

func (g *Graph) round() {
	// Arrivals grouped by vertex. Live() yields ascending origins, so every
	// group is sorted as well.
	arrivals := treemap.NewWithIntComparator()
	for _, mc := range g.fleet.Live() {
		h := mc.Step(g.mesh)
		g.ann.MarkEdge(g.mesh.Edge(h))

		pos := g.mesh.ToVertex(h)
		var origins []int
		if v, ok := arrivals.Get(pos); ok {
			origins = v.([]int)
		}
		arrivals.Put(pos, append(origins, mc.Origin))
	}

	it := arrivals.Iterator()
	for it.Next() {
		g.resolve(it.Key().(int), it.Value().([]int))
	}
	for _, pos := range arrivals.Keys() {
		g.seen.Add(pos)
	}

	g.stats.Rounds++
	live := g.fleet.Len()
	Logger().Debug("round done", "round", g.stats.Rounds, "positions", arrivals.Size(), "live", live)
	if g.observer != nil {
		g.observer(g.stats.Rounds, live)
	}
}

// resolve applies the collision rules to the motorcycles that reached pos.
// origins holds at least one origin, in ascending order.
func (g *Graph) resolve(pos int, origins []int) {
	if g.seen.Contains(pos) ||
		g.mesh.IsBoundaryVertex(pos) ||
		len(origins) > 2 ||
		isExtraordinary(g.mesh, pos) {
		g.ann.MarkNode(pos)
		for _, o := range origins {
			g.fleet.Crash(o)
		}
		return
	}
	if len(origins) != 2 {
		return
	}

	m1, ok1 := g.fleet.Get(origins[0])
	m2, ok2 := g.fleet.Get(origins[1])
	if !ok1 || !ok2 {
		return
	}
	back := g.mesh.Opposite(m2.Curr())

	// Head-on: both fronts run along the same line, the vertex is no branch point.
	if m1.Next(g.mesh) == back {
		g.fleet.Crash(m1.Origin)
		g.fleet.Crash(m2.Origin)
		return
	}

	g.ann.MarkNode(pos)
	if g.mesh.Next(m1.Curr()) == back {
		g.fleet.Crash(m2.Origin)
	} else {
		g.fleet.Crash(m1.Origin)
	}
}
