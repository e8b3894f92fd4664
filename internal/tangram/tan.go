package tangram

import (
	"fmt"
	"math"

	"github.com/irfansharif/tangram/internal/geom"
)

const (
	SmoothEdgeAngleMax = 15.0 // degrees; flatter corners are "smooth"
	RotationAngleStep  = 15.0 // absolute rotation snapping period, degrees
	RepeatEdgeAngle    = 45.0 // repeat period for aligning non-standard edges, degrees
	StandardAngleEps   = 1e-6
	CornerPickRadius   = 0.08
	PickEps            = 1e-7
)

// Tan is a single convex puzzle piece. Its local shape is fixed at
// construction; its world placement changes through Transform, which
// recomputes the derived world-space geometry.
//
// Slices returned by accessors alias internal state and must not be modified.
type Tan struct {
	// Active marks a tan placed without violating constraints. It is owned
	// by the caller: the engine reads it (inactive tans are ignored by
	// collisions, snapping and shape checks) but only StageTan writes it.
	Active bool

	index         int
	origin        geom.Point
	corners       []geom.Point // clockwise, relative to origin
	edgeAngles    []float64    // degrees
	cornerSmooths []bool
	edgeSmooths   []bool

	position geom.Point
	rotation float64
	points   []geom.Point
	mids     []geom.Point
	tangents []geom.Point
	normals  []geom.Point
}

// NewTan builds the tan described by polygon, a list of indices into
// vertices. The polygon must have at least 3 corners, be clockwise and be
// convex. The tan starts active, placed at its origin with no rotation.
func NewTan(vertices []geom.Point, polygon []int) (*Tan, error) {
	n := len(polygon)
	if n < 3 {
		return nil, fmt.Errorf("%w (got %d)", ErrDegeneratePolygon, n)
	}

	raw := make([]geom.Point, n)
	for i, idx := range polygon {
		if idx < 0 || idx >= len(vertices) {
			return nil, fmt.Errorf("%w: %d (have %d)", ErrVertexIndex, idx, len(vertices))
		}
		raw[i] = vertices[idx]
	}

	t := &Tan{
		Active:        true,
		origin:        geom.Centroid(raw),
		corners:       make([]geom.Point, n),
		edgeAngles:    make([]float64, n),
		cornerSmooths: make([]bool, n),
		edgeSmooths:   make([]bool, n),
		points:        make([]geom.Point, n),
		mids:          make([]geom.Point, n),
		tangents:      make([]geom.Point, n),
		normals:       make([]geom.Point, n),
	}
	for i, p := range raw {
		t.corners[i] = p.Sub(t.origin)
	}
	for i, c1 := range t.corners {
		c2 := t.corners[(i+1)%n]
		t.edgeAngles[i] = geom.Degrees(c2.Sub(c1).Angle())
	}
	for i := range t.corners {
		e1 := t.edgeAngles[(i+n-1)%n]
		e2 := t.edgeAngles[i]
		e3 := t.edgeAngles[(i+1)%n]
		smooth1 := math.Abs(geom.WrapAngle(e2-e1)) < SmoothEdgeAngleMax
		smooth2 := math.Abs(geom.WrapAngle(e3-e2)) < SmoothEdgeAngleMax
		t.cornerSmooths[i] = smooth1
		t.edgeSmooths[i] = smooth1 || smooth2
	}

	if !geom.IsPolygonClockwise(t.corners) {
		return nil, ErrNotClockwise
	}
	if !geom.IsPolygonConvex(t.corners) {
		return nil, ErrNotConvex
	}

	t.Transform(t.origin, 0)
	return t, nil
}

// Transform places the tan at position with the given rotation (degrees)
// and recomputes its world points, edge midpoints, tangents and outward
// normals.
func (t *Tan) Transform(position geom.Point, rotation float64) {
	t.position = position
	t.rotation = rotation

	tr := geom.MakeRigid(geom.Radians(rotation), position)
	for i, c := range t.corners {
		t.points[i] = tr.MulPoint(c)
	}
	n := len(t.points)
	for i, p1 := range t.points {
		p2 := t.points[(i+1)%n]
		t.mids[i] = p1.Add(p2).Scale(0.5)
		t.tangents[i] = p2.Sub(p1).Normalize()
		t.normals[i] = t.tangents[i].Perp()
	}
}

// IsPointInside reports whether point lies inside the tan's current
// polygon, within eps.
func (t *Tan) IsPointInside(point geom.Point, eps float64) bool {
	return geom.IsPointInsideConvexPolygon(point, t.points, t.normals, eps)
}

// NearCorner reports whether a non-smooth corner of the tan lies within
// CornerPickRadius of point.
func (t *Tan) NearCorner(point geom.Point) bool {
	for i, p := range t.points {
		if t.cornerSmooths[i] {
			continue
		}
		if geom.DistSq(p, point) < CornerPickRadius*CornerPickRadius {
			return true
		}
	}
	return false
}

// SnapRotation returns angle adjusted onto the nearest multiple of
// RotationAngleStep, or, when closer, onto an orientation that aligns one of
// the tan's non-standard edges with the RepeatEdgeAngle grid.
func (t *Tan) SnapRotation(angle float64) float64 {
	delta := geom.SnapPeriodicAngle(angle, RotationAngleStep)
	for i, edgeAngle := range t.edgeAngles {
		if t.edgeSmooths[i] {
			continue
		}
		if math.Abs(math.Mod(edgeAngle, RotationAngleStep)) <= StandardAngleEps {
			continue
		}
		edgeDelta := geom.SnapAngle(angle, -edgeAngle, RepeatEdgeAngle)
		if math.Abs(edgeDelta) < math.Abs(delta) {
			delta = edgeDelta
		}
	}
	return angle + delta
}

// Index is the tan's position in its tangram (z-order and color index).
func (t *Tan) Index() int { return t.index }

func (t *Tan) Origin() geom.Point        { return t.origin }
func (t *Tan) Position() geom.Point      { return t.position }
func (t *Tan) Rotation() float64         { return t.rotation }
func (t *Tan) Transformation() Transform { return Transform{Position: t.position, Rotation: t.rotation} }
func (t *Tan) Corners() []geom.Point     { return t.corners }
func (t *Tan) EdgeAngles() []float64     { return t.edgeAngles }
func (t *Tan) CornerSmooth(i int) bool   { return t.cornerSmooths[i] }
func (t *Tan) EdgeSmooth(i int) bool     { return t.edgeSmooths[i] }
func (t *Tan) Points() []geom.Point      { return t.points }
func (t *Tan) Mids() []geom.Point        { return t.mids }
func (t *Tan) Tangents() []geom.Point    { return t.tangents }
func (t *Tan) Normals() []geom.Point     { return t.normals }
