package obj

import "github.com/pkg/errors"

// Errors
var (
	ErrSyntax     = errors.New("malformed obj document")
	ErrVertex     = errors.New("vertex needs three coordinates")
	ErrFaceIndex  = errors.New("face index out of range")
	ErrNoGeometry = errors.New("document holds no faces")
)
