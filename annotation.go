package motograph

// Unassigned is the patch label of a face not yet reached by any patch.
const Unassigned = -1

// Annotations holds the per element attributes the decomposition layers over the mesh.
// Node and edge flags only ever switch from false to true and a face label,
// once set, is never overwritten.
type Annotations struct {
	node   []bool
	source []bool
	edge   []bool
	patch  []int

	nodes, edges, labeled int
}

// NewAnnotations initializes the store for the given mesh: boundary edges are
// graph edges, boundary and extraordinary vertices are graph nodes and every
// face is unassigned.
func NewAnnotations(m Mesh) *Annotations {
	a := &Annotations{
		node:   make([]bool, m.NumVertices()),
		source: make([]bool, m.NumVertices()),
		edge:   make([]bool, m.NumEdges()),
		patch:  make([]int, m.NumFaces()),
	}
	for f := range a.patch {
		a.patch[f] = Unassigned
	}
	for e := range a.edge {
		if m.IsBoundaryEdge(e) {
			a.MarkEdge(e)
		}
	}
	for v := range a.node {
		if isExtraordinary(m, v) {
			a.source[v] = true
			a.MarkNode(v)
		} else if m.IsBoundaryVertex(v) {
			a.MarkNode(v)
		}
	}
	return a
}

// IsNode reports whether v belongs to the motorcycle graph.
func (a *Annotations) IsNode(v int) bool { return a.node[v] }

// IsSource reports whether motorcycles were seeded at v.
func (a *Annotations) IsSource(v int) bool { return a.source[v] }

// IsGraphEdge reports whether e belongs to the motorcycle graph.
func (a *Annotations) IsGraphEdge(e int) bool { return a.edge[e] }

// MarkNode adds v to the graph.
func (a *Annotations) MarkNode(v int) {
	if !a.node[v] {
		a.node[v] = true
		a.nodes++
	}
}

// MarkEdge adds e to the graph.
func (a *Annotations) MarkEdge(e int) {
	if !a.edge[e] {
		a.edge[e] = true
		a.edges++
	}
}

// Patch returns the label of face f and whether it has been assigned.
func (a *Annotations) Patch(f int) (int, bool) {
	id := a.patch[f]
	return id, id != Unassigned
}

// SetPatch labels f with id unless it already carries a label.
// It reports whether the label was written.
func (a *Annotations) SetPatch(f, id int) bool {
	if f < 0 || a.patch[f] != Unassigned {
		return false
	}
	a.patch[f] = id
	a.labeled++
	return true
}

// Labels returns a copy of the per face patch labels.
func (a *Annotations) Labels() []int {
	return append([]int(nil), a.patch...)
}

// NodeCount returns the number of graph nodes.
func (a *Annotations) NodeCount() int { return a.nodes }

// EdgeCount returns the number of graph edges.
func (a *Annotations) EdgeCount() int { return a.edges }

// LabeledCount returns the number of faces carrying a patch label.
func (a *Annotations) LabeledCount() int { return a.labeled }

// SourceCount returns the number of extraordinary vertices.
func (a *Annotations) SourceCount() int {
	n := 0
	for _, s := range a.source {
		if s {
			n++
		}
	}
	return n
}
