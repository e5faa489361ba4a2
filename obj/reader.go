// Package obj reads and writes the subset of the Wavefront OBJ format needed
// to exchange polygon meshes and their patch decomposition.
package obj

import (
	"io"
	"strings"

	"github.com/esimov/motograph/halfedge"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r3"
)

// Model is the geometry found in an OBJ document.
// Face corners are zero based vertex indices.
type Model struct {
	Positions []r3.Vec
	Faces     [][]int
	Groups    []string // group or object name active for each face
	Libraries []string
}

// Read parses an OBJ document. Texture and normal references are accepted
// and dropped; negative indices are resolved relative to the vertices read so far.
func Read(r io.Reader) (*Model, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading obj")
	}
	src := string(data)
	if !strings.HasSuffix(src, "\n") {
		src += "\n"
	}

	doc, err := objParser.ParseString("", src)
	if err != nil {
		return nil, errors.Wrapf(ErrSyntax, "%v", err)
	}

	m := &Model{}
	group := ""
	for _, line := range doc.Lines {
		if line == nil {
			continue
		}
		switch {
		case line.Vertex != nil:
			c := line.Vertex.Coords
			if len(c) < 3 {
				return nil, errors.Wrapf(ErrVertex, "line %d", line.Pos.Line)
			}
			m.Positions = append(m.Positions, r3.Vec{X: c[0], Y: c[1], Z: c[2]})
		case line.Face != nil:
			face := make([]int, len(line.Face.Corners))
			for i, c := range line.Face.Corners {
				idx := c.Vertex
				switch {
				case idx > 0:
					idx--
				case idx < 0:
					idx += len(m.Positions)
				default:
					return nil, errors.Wrapf(ErrFaceIndex, "line %d: index 0", line.Pos.Line)
				}
				if idx < 0 || idx >= len(m.Positions) {
					return nil, errors.Wrapf(ErrFaceIndex, "line %d: index %d", line.Pos.Line, c.Vertex)
				}
				face[i] = idx
			}
			m.Faces = append(m.Faces, face)
			m.Groups = append(m.Groups, group)
		case line.Group != nil:
			group = strings.Join(line.Group.Parts, " ")
		case line.Library != nil:
			m.Libraries = append(m.Libraries, strings.Join(line.Library.Parts, " "))
		}
	}
	return m, nil
}

// Mesh builds the half-edge mesh of the model.
func (m *Model) Mesh() (*halfedge.Mesh, error) {
	if len(m.Faces) == 0 {
		return nil, ErrNoGeometry
	}
	return halfedge.FromPolygons(m.Positions, m.Faces)
}

// Load reads an OBJ document straight into a half-edge mesh.
func Load(r io.Reader) (*halfedge.Mesh, error) {
	model, err := Read(r)
	if err != nil {
		return nil, err
	}
	return model.Mesh()
}
