package obj

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"sort"
	"strconv"

	"github.com/esimov/motograph/halfedge"
)

// UnassignedMaterial names the material of faces without a patch.
const UnassignedMaterial = "unassigned"

// MaterialName returns the material used for the faces of patch id.
func MaterialName(id int) string {
	if id < 0 {
		return UnassignedMaterial
	}
	return "patch_" + strconv.Itoa(id)
}

// Options controls the labeled OBJ output.
type Options struct {
	MaterialLib string   // referenced with mtllib when not empty
	Header      []string // comment lines written first
}

// WriteLabeled writes the mesh with its faces grouped by patch label.
// labels holds one entry per face; negative values mean unassigned.
func WriteLabeled(w io.Writer, m *halfedge.Mesh, labels []int, opts Options) error {
	bw := bufio.NewWriter(w)
	for _, line := range opts.Header {
		fmt.Fprintf(bw, "# %s\n", line)
	}
	if opts.MaterialLib != "" {
		fmt.Fprintf(bw, "mtllib %s\n", opts.MaterialLib)
	}
	for v := 0; v < m.NumVertices(); v++ {
		p := m.Position(v)
		fmt.Fprintf(bw, "v %s %s %s\n", formatFloat(p.X), formatFloat(p.Y), formatFloat(p.Z))
	}

	byPatch := make(map[int][]int)
	for f := 0; f < m.NumFaces(); f++ {
		id := -1
		if f < len(labels) && labels[f] >= 0 {
			id = labels[f]
		}
		byPatch[id] = append(byPatch[id], f)
	}
	for _, id := range sortedKeys(byPatch) {
		name := MaterialName(id)
		fmt.Fprintf(bw, "g %s\n", name)
		if opts.MaterialLib != "" {
			fmt.Fprintf(bw, "usemtl %s\n", name)
		}
		for _, f := range byPatch[id] {
			bw.WriteString("f")
			for _, v := range m.FaceVertices(f) {
				fmt.Fprintf(bw, " %d", v+1)
			}
			bw.WriteByte('\n')
		}
	}
	return bw.Flush()
}

// WriteMaterials writes an MTL library with one diffuse material per patch id.
func WriteMaterials(w io.Writer, ids []int, colorOf func(id int) color.NRGBA) error {
	bw := bufio.NewWriter(w)
	for i, id := range ids {
		if i > 0 {
			bw.WriteByte('\n')
		}
		c := colorOf(id)
		fmt.Fprintf(bw, "newmtl %s\n", MaterialName(id))
		fmt.Fprintf(bw, "Kd %.4f %.4f %.4f\n", float64(c.R)/255, float64(c.G)/255, float64(c.B)/255)
		fmt.Fprintf(bw, "illum 1\n")
	}
	return bw.Flush()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func sortedKeys(m map[int][]int) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
