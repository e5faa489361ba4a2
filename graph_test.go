package motograph

import (
	"testing"

	"github.com/esimov/motograph/halfedge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func subdividedTriangle(t *testing.T) *halfedge.Mesh {
	t.Helper()
	tri, err := halfedge.FromPolygons([]r3.Vec{{}, {X: 1}, {Y: 1}}, [][]int{{0, 1, 2}})
	require.NoError(t, err)
	return halfedge.Subdivide(halfedge.Subdivide(tri))
}

// patchSizes returns the number of faces carrying each label.
func patchSizes(res *Result, faces int) map[int]int {
	sizes := make(map[int]int)
	for f := 0; f < faces; f++ {
		id, _ := res.Patch(f)
		sizes[id]++
	}
	return sizes
}

func TestDecompose_RegularGrid(t *testing.T) {
	assert := assert.New(t)

	m := halfedge.Grid(4, 4)
	res, err := Decompose(m)
	require.NoError(t, err)

	assert.Equal(0, res.Stats.Extraordinary)
	assert.Equal(0, res.Stats.Motorcycles)
	assert.Equal(0, res.Stats.Rounds)
	assert.Equal(16, res.EdgeCount(), "only the boundary belongs to the graph")
	assert.Equal(16, res.NodeCount())

	require.Len(t, res.Perimeters, 1)
	assert.Len(res.Perimeters[0], 16)
	for _, v := range res.Perimeters[0].Vertices() {
		assert.True(m.IsBoundaryVertex(v))
	}
	assert.Equal(map[int]int{0: 16}, patchSizes(res, m.NumFaces()))
}

func TestDecompose_Cube(t *testing.T) {
	assert := assert.New(t)

	m := halfedge.Cube()
	res, err := Decompose(m)
	require.NoError(t, err)

	assert.Equal(8, res.Stats.Extraordinary)
	assert.Equal(24, res.Stats.Motorcycles)
	assert.Equal(1, res.Stats.Rounds)
	assert.Equal(12, res.EdgeCount())
	assert.Equal(8, res.NodeCount())

	require.Len(t, res.Perimeters, 6)
	for _, p := range res.Perimeters {
		assert.Len(p, 4)
	}
	sizes := patchSizes(res, m.NumFaces())
	assert.Len(sizes, 6)
	for id, n := range sizes {
		assert.GreaterOrEqual(id, 0)
		assert.Equal(1, n)
	}
}

func TestDecompose_HeadOnCollisionsOnSubdividedCube(t *testing.T) {
	assert := assert.New(t)

	m := halfedge.Subdivide(halfedge.Cube())
	res, err := Decompose(m)
	require.NoError(t, err)

	assert.Equal(24, res.Stats.Motorcycles)
	assert.Equal(1, res.Stats.Rounds)
	assert.Equal(8, res.NodeCount(), "edge midpoints are pass-through points")
	assert.Equal(24, res.EdgeCount())

	require.Len(t, res.Perimeters, 6)
	for _, p := range res.Perimeters {
		assert.Len(p, 8)
	}
	for _, n := range patchSizes(res, m.NumFaces()) {
		assert.Equal(4, n)
	}
}

func TestDecompose_SeenVerticesBecomeNodes(t *testing.T) {
	assert := assert.New(t)

	m := halfedge.Box(3)
	res, err := Decompose(m)
	require.NoError(t, err)

	assert.Equal(2, res.Stats.Rounds)
	assert.Equal(32, res.NodeCount())
	assert.Equal(36, res.EdgeCount())

	require.Len(t, res.Perimeters, 6)
	sizes := patchSizes(res, m.NumFaces())
	assert.Len(sizes, 6)
	for _, n := range sizes {
		assert.Equal(9, n)
	}
}

func TestDecompose_MotorcyclesReachBoundary(t *testing.T) {
	assert := assert.New(t)

	m := subdividedTriangle(t)
	res, err := Decompose(m)
	require.NoError(t, err)

	assert.Equal(1, res.Stats.Extraordinary)
	assert.Equal(3, res.Stats.Motorcycles)
	assert.Equal(2, res.Stats.Rounds)

	require.Len(t, res.Perimeters, 3)
	sizes := patchSizes(res, m.NumFaces())
	assert.Equal(map[int]int{0: 4, 1: 4, 2: 4}, sizes)
}

// headOnMesh is a flat pentagon and triangle sharing one edge, split into quads.
// The two face points have degree 5 and 3 and face each other across the
// point inserted on the shared edge.
func headOnMesh(t *testing.T) (m *halfedge.Mesh, shared, deg5, deg3 int) {
	t.Helper()
	pos := []r3.Vec{
		{X: 0, Y: 0},
		{X: 1, Y: 0},
		{X: 1.3, Y: 0.9},
		{X: 0.5, Y: 1.5},
		{X: -0.3, Y: 0.9},
		{X: 0.5, Y: -0.8},
	}
	coarse, err := halfedge.FromPolygons(pos, [][]int{{0, 1, 2, 3, 4}, {0, 5, 1}})
	require.NoError(t, err)

	nv, ne := coarse.NumVertices(), coarse.NumEdges()
	shared = nv + coarse.Edge(coarse.FindHalfEdge(0, 1))
	deg5, deg3 = nv+ne, nv+ne+1
	return halfedge.Subdivide(coarse), shared, deg5, deg3
}

func TestDecompose_HeadOnBetweenIrregularVertices(t *testing.T) {
	assert := assert.New(t)

	m, shared, deg5, deg3 := headOnMesh(t)
	require.Equal(t, 5, m.Degree(deg5))
	require.Equal(t, 3, m.Degree(deg3))
	require.Equal(t, 4, m.Degree(shared))

	res, err := Decompose(m)
	require.NoError(t, err)

	assert.Equal(8, res.Stats.Motorcycles)
	assert.Equal(1, res.Stats.Rounds)
	assert.True(res.IsSource(deg5))
	assert.True(res.IsSource(deg3))
	assert.False(res.IsNode(shared), "straight pass-through must not become a node")
	assert.True(res.IsGraphEdge(m.Edge(m.FindHalfEdge(deg5, shared))))
	assert.True(res.IsGraphEdge(m.Edge(m.FindHalfEdge(shared, deg3))))

	assert.Equal(6, res.Stats.Patches)
	assert.Equal(0, res.Stats.Unassigned)
}

func TestDecompose_Determinism(t *testing.T) {
	assert := assert.New(t)

	for _, m := range []*halfedge.Mesh{halfedge.Box(3), subdividedTriangle(t), halfedge.Subdivide(halfedge.Box(2))} {
		a, err := Decompose(m)
		require.NoError(t, err)
		b, err := Decompose(m)
		require.NoError(t, err)

		assert.Equal(a.Labels(), b.Labels())
		assert.Equal(a.Stats, b.Stats)
		for v := 0; v < m.NumVertices(); v++ {
			assert.Equal(a.IsNode(v), b.IsNode(v))
		}
		for e := 0; e < m.NumEdges(); e++ {
			assert.Equal(a.IsGraphEdge(e), b.IsGraphEdge(e))
		}
	}
}

func TestDecompose_CoverageAndLoopClosure(t *testing.T) {
	meshes := map[string]*halfedge.Mesh{
		"grid":     halfedge.Grid(5, 3),
		"cube":     halfedge.Cube(),
		"box":      halfedge.Box(4),
		"triangle": subdividedTriangle(t),
	}
	m5, _, _, _ := headOnMesh(t)
	meshes["pentagon"] = m5

	for name, m := range meshes {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			res, err := Decompose(m)
			require.NoError(t, err)

			for f := 0; f < m.NumFaces(); f++ {
				_, ok := res.Patch(f)
				assert.True(ok, "face %d unassigned", f)
			}

			claimed := make(map[int]bool)
			for _, p := range res.Perimeters {
				assert.Equal(p[0].Vertex, m.ToVertex(p.Closing()))
				for i, c := range p {
					h := c.HalfEdges[len(c.HalfEdges)-1]
					assert.True(res.IsGraphEdge(m.Edge(h)))
					assert.Equal(p[p.Successor(i)].Vertex, m.ToVertex(h))
					assert.False(claimed[h], "half-edge %d claimed twice", h)
					claimed[h] = true
				}
			}
		})
	}
}

func TestDecompose_Errors(t *testing.T) {
	empty, err := halfedge.FromPolygons([]r3.Vec{{}, {X: 1}}, nil)
	require.NoError(t, err)
	_, err = Decompose(empty)
	assert.ErrorIs(t, err, ErrEmptyMesh)

	_, err = Decompose(halfedge.Box(3), WithMaxRounds(1))
	assert.ErrorIs(t, err, ErrRoundLimit)
}

func TestExtractPerimeters_DeadEnd(t *testing.T) {
	m := halfedge.Grid(2, 2)
	g := NewGraph(m)
	// A graph edge hanging from the boundary into the middle of the grid.
	g.ann.MarkEdge(m.Edge(m.FindHalfEdge(1, 4)))

	_, err := g.ExtractPerimeters()
	assert.ErrorIs(t, err, ErrDegeneratePatch)
}

func TestPerimeter_Successor(t *testing.T) {
	p := Perimeter{{Vertex: 7}, {Vertex: 3}, {Vertex: 9}}
	assert.Equal(t, 1, p.Successor(0))
	assert.Equal(t, 0, p.Successor(2))
	assert.Equal(t, []int{7, 3, 9}, p.Vertices())
}

func TestSortPerimeters(t *testing.T) {
	in := []Perimeter{
		{{Vertex: 4, HalfEdges: []int{10}}},
		{{Vertex: 1, HalfEdges: []int{8}}},
		{{Vertex: 4, HalfEdges: []int{2}}},
	}
	out := sortPerimeters(in)
	assert.Equal(t, 1, out[0][0].Vertex)
	assert.Equal(t, 2, out[1][0].HalfEdges[0])
	assert.Equal(t, 10, out[2][0].HalfEdges[0])
	assert.Equal(t, 4, in[0][0].Vertex, "input left untouched")
}

func TestAnnotations_FirstWriterWins(t *testing.T) {
	assert := assert.New(t)

	a := NewAnnotations(halfedge.Grid(2, 2))
	assert.True(a.SetPatch(1, 3))
	assert.False(a.SetPatch(1, 4))
	id, ok := a.Patch(1)
	assert.True(ok)
	assert.Equal(3, id)

	_, ok = a.Patch(0)
	assert.False(ok)
	assert.False(a.SetPatch(-1, 0))
	assert.Equal(1, a.LabeledCount())
}
