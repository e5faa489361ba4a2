package motograph

import (
	"bytes"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/esimov/motograph/halfedge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// quadStrip is a 2x1 strip of quads; every vertex lies on the boundary.
const quadStrip = `# strip
v 0 0 0
v 1 0 0
v 2 0 0
v 0 1 0
v 1 1 0
v 2 1 0
f 1 2 5 4
f 2 3 6 5
`

func TestProcessor_ProcessToBuffer(t *testing.T) {
	assert := assert.New(t)

	p := &Processor{}
	var out bytes.Buffer
	err := p.Process(strings.NewReader(quadStrip), &out)
	require.NoError(t, err)

	s := out.String()
	assert.Contains(s, "g patch_0\n")
	assert.NotContains(s, "mtllib")
	assert.NotContains(s, "usemtl")
	assert.Equal(6, strings.Count(s, "\nv "))
	assert.Equal(2, strings.Count(s, "\nf "))
}

func TestProcessor_ProcessRejectsInvalidInput(t *testing.T) {
	p := &Processor{}
	err := p.Process(strings.NewReader("v 0 0 0\nf 1 2\n"), &bytes.Buffer{})
	assert.Error(t, err)
}

func TestProcessor_ProcessMeshWritesMaterialsAndPreview(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()

	out, err := os.Create(filepath.Join(dir, "cube.obj"))
	require.NoError(t, err)
	defer out.Close()

	p := &Processor{
		Preview:   filepath.Join(dir, "cube.png"),
		Width:     64,
		Height:    48,
		NodeShape: Square,
		Edges:     true,
		Nodes:     true,
		Labels:    true,
	}
	require.NoError(t, p.ProcessMesh(halfedge.Cube(), out))

	data, err := os.ReadFile(out.Name())
	require.NoError(t, err)
	assert.Contains(string(data), "mtllib cube.mtl\n")
	assert.Equal(6, strings.Count(string(data), "usemtl patch_"))

	mtl, err := os.ReadFile(filepath.Join(dir, "cube.mtl"))
	require.NoError(t, err)
	assert.Equal(6, strings.Count(string(mtl), "newmtl patch_"))
	assert.NotContains(string(mtl), "unassigned")

	f, err := os.Open(p.Preview)
	require.NoError(t, err)
	defer f.Close()
	cfg, format, err := image.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal("png", format)
	assert.Equal(64, cfg.Width)
	assert.Equal(48, cfg.Height)
}

func TestProcessor_RenderFlatGrid(t *testing.T) {
	m := halfedge.Grid(3, 3)
	res, err := Decompose(m)
	require.NoError(t, err)

	p := &Processor{Width: 40, Height: 30, Background: "#000000"}
	img, err := p.Render(m, res)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 40, 30), img.Bounds())

	p.Background = "not a color"
	_, err = p.Render(m, res)
	assert.Error(t, err)
}

func TestEncodeImg(t *testing.T) {
	assert := assert.New(t)
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))

	var buf bytes.Buffer
	require.NoError(t, encodeImg(&buf, img))
	assert.True(bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))

	dir := t.TempDir()
	for _, ext := range previewExtensions {
		path := filepath.Join(dir, "preview"+ext)
		assert.NoError(savePreview(path, img), ext)
	}
	assert.Error(savePreview(filepath.Join(dir, "preview.tiff"), img))
	_, err := os.Stat(filepath.Join(dir, "preview.tiff"))
	assert.True(os.IsNotExist(err))
}
