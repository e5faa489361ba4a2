package obj

import (
	"bytes"
	"image/color"
	"strings"
	"testing"

	"github.com/esimov/motograph/halfedge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const square = `# two quads side by side
mtllib scene.mtl
o strip
v 0 0 0
v 1 0 0
v 2 0 0
v 0 1 0
v 1 1 0
v 2.0 1.0 0.0
vn 0 0 1
vt 0.5 0.5
s off
g left
f 1/1/1 2/1/1 5/1/1 4/1/1
g right
usemtl red
f -5//1 -4//1 -1 -2`

func TestRead_Statements(t *testing.T) {
	assert := assert.New(t)

	m, err := Read(strings.NewReader(square))
	require.NoError(t, err)

	assert.Len(m.Positions, 6)
	assert.Equal(2.0, m.Positions[5].X)
	assert.Equal([][]int{{0, 1, 4, 3}, {1, 2, 5, 4}}, m.Faces)
	assert.Equal([]string{"left", "right"}, m.Groups)
	assert.Equal([]string{"scene.mtl"}, m.Libraries)

	mesh, err := m.Mesh()
	require.NoError(t, err)
	assert.Equal(2, mesh.NumFaces())
	assert.Equal(7, mesh.NumEdges())
	assert.NoError(mesh.Check())
}

func TestRead_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"short vertex", "v 1 2\n", ErrVertex},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n", ErrFaceIndex},
		{"index past end", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 4\n", ErrFaceIndex},
		{"garbage", "v 0 0 0\n12 f\n", ErrSyntax},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.src))
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := Load(strings.NewReader("v 0 0 0\n"))
	assert.ErrorIs(t, err, ErrNoGeometry)
}

func TestWriteLabeled_GroupsByPatch(t *testing.T) {
	assert := assert.New(t)

	m := halfedge.Grid(2, 1)
	var buf bytes.Buffer
	err := WriteLabeled(&buf, m, []int{1, -1}, Options{MaterialLib: "grid.mtl", Header: []string{"patches: 1"}})
	require.NoError(t, err)

	out := buf.String()
	assert.True(strings.HasPrefix(out, "# patches: 1\nmtllib grid.mtl\n"))
	assert.Less(strings.Index(out, "g unassigned"), strings.Index(out, "g patch_1"))
	assert.Contains(out, "usemtl patch_1\nf 1 2 5 4\n")
	assert.Contains(out, "usemtl unassigned\nf 2 3 6 5\n")

	back, err := Read(&buf)
	require.NoError(t, err)
	assert.Len(back.Positions, m.NumVertices())
	assert.Equal([]string{"unassigned", "patch_1"}, back.Groups)
}

func TestWriteMaterials(t *testing.T) {
	var buf bytes.Buffer
	err := WriteMaterials(&buf, []int{-1, 0}, func(id int) color.NRGBA {
		if id < 0 {
			return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
		}
		return color.NRGBA{R: 51, A: 255}
	})
	require.NoError(t, err)
	assert.Equal(t, "newmtl unassigned\nKd 1.0000 1.0000 1.0000\nillum 1\n\nnewmtl patch_0\nKd 0.2000 0.0000 0.0000\nillum 1\n", buf.String())
}
