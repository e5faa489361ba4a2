package motograph

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/esimov/motograph/halfedge"
	"github.com/esimov/motograph/obj"
	"github.com/esimov/motograph/utils"
	"github.com/pkg/errors"
)

// Processor options
type Processor struct {
	Background string
	Preview    string // path of the preview image, empty for none
	NodeShape  ShapeType
	Width      int
	Height     int
	MaxRounds  int
	Spinner    *utils.Spinner
	Edges      bool
	Nodes      bool
	Labels     bool
}

// Process reads an OBJ mesh from r, decomposes it into patches and writes the
// labeled OBJ to w. When w is a regular file the patch materials are written
// next to it.
func (p *Processor) Process(r io.Reader, w io.Writer) error {
	mesh, err := obj.Load(r)
	if err != nil {
		return err
	}
	return p.ProcessMesh(mesh, w)
}

// ProcessMesh decomposes an already built mesh and writes the labeled OBJ to w.
func (p *Processor) ProcessMesh(mesh *halfedge.Mesh, w io.Writer) error {
	res, err := Decompose(mesh, WithMaxRounds(p.MaxRounds))
	if err != nil {
		return err
	}

	var mtlPath string
	if f, ok := w.(*os.File); ok && f != os.Stdout {
		name := f.Name()
		mtlPath = strings.TrimSuffix(name, filepath.Ext(name)) + ".mtl"
	}

	opts := obj.Options{
		Header: []string{
			"motorcycle graph patch decomposition",
			fmt.Sprintf("faces %d, patches %d, extraordinary vertices %d",
				res.Stats.Faces, res.Stats.Patches, res.Stats.Extraordinary),
		},
	}
	if mtlPath != "" {
		opts.MaterialLib = filepath.Base(mtlPath)
	}
	if err := obj.WriteLabeled(w, mesh, res.Labels(), opts); err != nil {
		return errors.Wrap(err, "writing labeled mesh")
	}
	if mtlPath != "" {
		if err := writeMaterials(mtlPath, res); err != nil {
			return err
		}
	}

	if p.Preview != "" {
		img, err := p.Render(mesh, res)
		if err != nil {
			return errors.Wrap(err, "rendering preview")
		}
		if err := savePreview(p.Preview, img); err != nil {
			return err
		}
	}
	return nil
}

// writeMaterials stores one material per patch, plus the unassigned one if needed.
func writeMaterials(path string, res *Result) error {
	ids := make([]int, 0, res.Stats.Patches+1)
	if res.Stats.Unassigned > 0 {
		ids = append(ids, Unassigned)
	}
	for id := 0; id < res.Stats.Patches; id++ {
		ids = append(ids, id)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create the material file: %w", err)
	}
	if err := obj.WriteMaterials(f, ids, PatchColor); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
