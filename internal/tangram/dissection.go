// Package tangram implements the placement engine for convex puzzle pieces
// ("tans") cut from a larger polygon (a "dissection").
//
// A Tangram owns one Tan per dissection polygon and provides:
//   - separating-axis collision detection between tans,
//   - bounded placement that nudges a tan out of shallow overlaps,
//   - three-phase magnetic snapping (corners, midpoints, edges),
//   - shape completion checks over the "touches" relation,
//   - picking and rotation snapping helpers for interactive callers.
//
// Nothing in this package is safe for concurrent mutation; a single caller
// drives one Tangram at a time.
package tangram

import (
	"errors"
	"fmt"

	"github.com/irfansharif/tangram/internal/geom"
)

var (
	ErrDegeneratePolygon = errors.New("tan polygon should have at least 3 corners")
	ErrNotClockwise      = errors.New("tan polygon should be clockwise")
	ErrNotConvex         = errors.New("tan polygon should be convex")
	ErrVertexIndex       = errors.New("polygon vertex index out of range")
	ErrDissectionID      = errors.New("dissection id out of range [0..255]")
	ErrTransformCount    = errors.New("transform count does not match polygon count")
)

// Dissection is the fixed decomposition of a shape into tans: a shared vertex
// pool plus one index list per piece. It is read-only once constructed and
// may be shared by any number of tangrams.
type Dissection struct {
	ID       int
	Vertices []geom.Point
	Polygons [][]int
}

// NewDissection validates and returns a dissection. The id is serialized as a
// single byte and so must lie in [0, 255].
func NewDissection(id int, vertices []geom.Point, polygons [][]int) (*Dissection, error) {
	if id < 0 || id > 0xff {
		return nil, fmt.Errorf("%w: %d", ErrDissectionID, id)
	}
	for i, polygon := range polygons {
		for _, idx := range polygon {
			if idx < 0 || idx >= len(vertices) {
				return nil, fmt.Errorf("%w: polygon %d references vertex %d (have %d)", ErrVertexIndex, i, idx, len(vertices))
			}
		}
	}
	return &Dissection{ID: id, Vertices: vertices, Polygons: polygons}, nil
}

// TanCount returns the number of pieces in the dissection.
func (d *Dissection) TanCount() int { return len(d.Polygons) }

// Transform is the serializable placement of one tan.
type Transform struct {
	Position geom.Point
	Rotation float64 // degrees
}
