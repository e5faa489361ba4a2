package motograph

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/pkg/errors"
)

// Observer is notified after every propagation round with the number of
// motorcycles still running.
type Observer func(round, live int)

// Option customizes a Graph.
type Option func(*Graph)

// WithObserver registers a callback invoked after each propagation round.
func WithObserver(fn Observer) Option {
	return func(g *Graph) { g.observer = fn }
}

// WithMaxRounds aborts the propagation with ErrRoundLimit after n rounds.
// Zero means no limit.
func WithMaxRounds(n int) Option {
	return func(g *Graph) { g.maxRounds = n }
}

// Stats collects the diagnostic counters of a decomposition.
type Stats struct {
	Vertices      int
	Edges         int
	Faces         int
	Extraordinary int
	Motorcycles   int
	Rounds        int
	GraphNodes    int
	GraphEdges    int
	Perimeters    int
	Discarded     int
	Patches       int
	Unassigned    int
}

// String formats the counters one per line.
func (s Stats) String() string {
	var sb strings.Builder
	row := func(name string, n int) {
		fmt.Fprintf(&sb, "%-16s %s\n", name, humanize.Comma(int64(n)))
	}
	row("vertices", s.Vertices)
	row("edges", s.Edges)
	row("faces", s.Faces)
	row("extraordinary", s.Extraordinary)
	row("motorcycles", s.Motorcycles)
	row("rounds", s.Rounds)
	row("graph vertices", s.GraphNodes)
	row("graph edges", s.GraphEdges)
	row("perimeters", s.Perimeters)
	row("patches", s.Patches)
	return sb.String()
}

// Graph runs the motorcycle graph decomposition over a mesh.
// The mesh is never modified; every result lives in the annotation store.
type Graph struct {
	mesh  Mesh
	ann   *Annotations
	fleet *Fleet
	seen  *treeset.Set

	observer  Observer
	maxRounds int
	seeded    bool
	stats     Stats
}

// NewGraph prepares a decomposition of m.
func NewGraph(m Mesh, opts ...Option) *Graph {
	g := &Graph{
		mesh:  m,
		ann:   NewAnnotations(m),
		fleet: NewFleet(m.NumHalfEdges()),
		seen:  treeset.NewWithIntComparator(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.stats.Vertices = m.NumVertices()
	g.stats.Edges = m.NumEdges()
	g.stats.Faces = m.NumFaces()
	g.stats.Extraordinary = g.ann.SourceCount()
	return g
}

// Annotations exposes the graph flags and patch labels.
func (g *Graph) Annotations() *Annotations { return g.ann }

// Stats returns the counters gathered so far.
func (g *Graph) Stats() Stats { return g.stats }

// Result is the outcome of a complete decomposition.
type Result struct {
	*Annotations
	Perimeters []Perimeter
	Stats      Stats
}

// Decompose seeds and propagates the motorcycles, extracts the perimeters
// and labels every face with its patch id. No partial result is returned on error.
func Decompose(m Mesh, opts ...Option) (*Result, error) {
	if m.NumFaces() == 0 {
		return nil, ErrEmptyMesh
	}
	g := NewGraph(m, opts...)
	Logger().Info("decomposing mesh",
		"vertices", g.stats.Vertices,
		"edges", g.stats.Edges,
		"faces", g.stats.Faces,
		"extraordinary", g.stats.Extraordinary,
	)

	if err := g.Propagate(); err != nil {
		return nil, errors.Wrap(err, "propagation")
	}
	perimeters, err := g.ExtractPerimeters()
	if err != nil {
		return nil, errors.Wrap(err, "perimeter extraction")
	}
	g.AssignPatches(perimeters)

	return &Result{
		Annotations: g.ann,
		Perimeters:  perimeters,
		Stats:       g.stats,
	}, nil
}
