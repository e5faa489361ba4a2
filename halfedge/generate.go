package halfedge

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Grid returns a planar nx by ny quad grid in the z=0 plane.
// Vertex (i, j) has index j*(nx+1)+i and face (i, j) has index j*nx+i.
func Grid(nx, ny int) *Mesh {
	pos := make([]r3.Vec, 0, (nx+1)*(ny+1))
	for j := 0; j <= ny; j++ {
		for i := 0; i <= nx; i++ {
			pos = append(pos, r3.Vec{X: float64(i), Y: float64(j)})
		}
	}
	vid := func(i, j int) int { return j*(nx+1) + i }
	faces := make([][]int, 0, nx*ny)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			faces = append(faces, []int{vid(i, j), vid(i+1, j), vid(i+1, j+1), vid(i, j+1)})
		}
	}
	return mustBuild(pos, faces)
}

// Cube returns the closed six quad cube.
func Cube() *Mesh { return Box(1) }

// Box returns a closed cube whose every side is an n by n quad grid.
// All eight corners have degree 3, every other vertex has degree 4.
func Box(n int) *Mesh {
	type side struct{ origin, u, w [3]int }
	sides := []side{
		{[3]int{0, 0, 0}, [3]int{0, 1, 0}, [3]int{1, 0, 0}}, // -z
		{[3]int{0, 0, n}, [3]int{1, 0, 0}, [3]int{0, 1, 0}}, // +z
		{[3]int{0, 0, 0}, [3]int{1, 0, 0}, [3]int{0, 0, 1}}, // -y
		{[3]int{0, n, 0}, [3]int{0, 0, 1}, [3]int{1, 0, 0}}, // +y
		{[3]int{0, 0, 0}, [3]int{0, 0, 1}, [3]int{0, 1, 0}}, // -x
		{[3]int{n, 0, 0}, [3]int{0, 1, 0}, [3]int{0, 0, 1}}, // +x
	}

	var pos []r3.Vec
	index := make(map[[3]int]int)
	vertex := func(p [3]int) int {
		if v, ok := index[p]; ok {
			return v
		}
		v := len(pos)
		index[p] = v
		pos = append(pos, r3.Vec{X: float64(p[0]) / float64(n), Y: float64(p[1]) / float64(n), Z: float64(p[2]) / float64(n)})
		return v
	}
	at := func(s side, i, j int) int {
		var p [3]int
		for k := range p {
			p[k] = s.origin[k] + i*s.u[k] + j*s.w[k]
		}
		return vertex(p)
	}

	var faces [][]int
	for _, s := range sides {
		for j := 0; j < n; j++ {
			for i := 0; i < n; i++ {
				faces = append(faces, []int{at(s, i, j), at(s, i+1, j), at(s, i+1, j+1), at(s, i, j+1)})
			}
		}
	}
	return mustBuild(pos, faces)
}

// Subdivide splits every k-gon into k quads by inserting a point on each
// edge and one in each face, as the first step of Catmull-Clark does.
// Original vertices keep their indices; new points are placed linearly.
func Subdivide(m *Mesh) *Mesh {
	nv, ne := m.NumVertices(), m.NumEdges()
	pos := make([]r3.Vec, 0, nv+ne+m.NumFaces())
	pos = append(pos, m.pos...)
	for e := 0; e < ne; e++ {
		a, b := m.to[e<<1], m.to[e<<1|1]
		pos = append(pos, r3.Scale(0.5, r3.Add(m.pos[a], m.pos[b])))
	}
	for f := 0; f < m.NumFaces(); f++ {
		pos = append(pos, m.FaceCentroid(f))
	}

	var faces [][]int
	for f := 0; f < m.NumFaces(); f++ {
		center := nv + ne + f
		hs := m.FaceHalfEdges(f)
		for i, h := range hs {
			in := hs[(i+len(hs)-1)%len(hs)]
			faces = append(faces, []int{m.to[h^1], nv + h>>1, center, nv + in>>1})
		}
	}
	return mustBuild(pos, faces)
}

func mustBuild(pos []r3.Vec, faces [][]int) *Mesh {
	m, err := FromPolygons(pos, faces)
	if err != nil {
		panic(err)
	}
	return m
}
