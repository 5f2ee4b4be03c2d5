// SPDX-License-Identifier: MPL-2.0

package walk

import (
	"errors"
	"fmt"

	"github.com/Symantec/config-compare/internal/aggregate"
)

// ErrUnsupportedShape is the sentinel error wrapped by UnsupportedShapeError.
var ErrUnsupportedShape = errors.New("unsupported configuration shape")

// UnsupportedShapeError is returned when a sequence element is itself a
// mapping. Sequence elements are compared as an unordered value set, so a
// list of records has no defined comparison semantics; the walk fails
// loudly instead of silently mis-comparing. Dump carries a rendering of the
// offending structure for the diagnostic report.
type UnsupportedShapeError struct {
	Source aggregate.Source
	Path   string
	Dump   string
}

// Error implements the error interface.
func (e *UnsupportedShapeError) Error() string {
	return fmt.Sprintf("unsupported shape in %s at %q: sequence elements must not be mappings", e.Source, e.Path)
}

// Unwrap returns ErrUnsupportedShape so callers can use errors.Is for
// programmatic detection.
func (e *UnsupportedShapeError) Unwrap() error { return ErrUnsupportedShape }
