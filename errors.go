package motograph

import "github.com/pkg/errors"

// Errors
var (
	ErrEmptyMesh       = errors.New("mesh has no faces")
	ErrDuplicateOrigin = errors.New("duplicate motorcycle origin")
	ErrDegeneratePatch = errors.New("degenerate patch of zero width")
	ErrRoundLimit      = errors.New("propagation round limit reached")
)
