package halfedge

import "github.com/pkg/errors"

// Errors returned while building or checking a mesh.
var (
	ErrIndexRange        = errors.New("vertex index out of range")
	ErrDegenerateFace    = errors.New("degenerate face")
	ErrNonManifoldEdge   = errors.New("non-manifold edge")
	ErrNonManifoldVertex = errors.New("non-manifold vertex")
	ErrInconsistent      = errors.New("inconsistent half-edge connectivity")
)
