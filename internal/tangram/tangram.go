package tangram

import (
	"fmt"

	"github.com/irfansharif/tangram/internal/geom"
)

const (
	TouchEps     = 1e-7
	StagingScale = 1.2 // staged tans sit at their origin scaled away from the center
)

// Tangram is a live collection of tans built from one dissection, in polygon
// order. A tan's index is its z-order and foreground color index.
type Tangram struct {
	dissection *Dissection
	tans       []*Tan
}

// NewTangram builds one tan per dissection polygon, each placed at its
// origin.
func NewTangram(d *Dissection) (*Tangram, error) {
	tg := &Tangram{
		dissection: d,
		tans:       make([]*Tan, len(d.Polygons)),
	}
	for i, polygon := range d.Polygons {
		tan, err := NewTan(d.Vertices, polygon)
		if err != nil {
			return nil, fmt.Errorf("polygon %d: %w", i, err)
		}
		tan.index = i
		tg.tans[i] = tan
	}
	return tg, nil
}

// CreateShape builds a tangram with every tan placed by the transform of the
// same index, typically the target silhouette of a puzzle.
func CreateShape(d *Dissection, transforms []Transform) (*Tangram, error) {
	if len(transforms) != len(d.Polygons) {
		return nil, fmt.Errorf("%w: %d transforms, %d polygons", ErrTransformCount, len(transforms), len(d.Polygons))
	}
	tg, err := NewTangram(d)
	if err != nil {
		return nil, err
	}
	for i, tr := range transforms {
		tg.tans[i].Transform(tr.Position, tr.Rotation)
	}
	return tg, nil
}

func (tg *Tangram) Dissection() *Dissection { return tg.dissection }
func (tg *Tangram) Tans() []*Tan            { return tg.tans }
func (tg *Tangram) Tan(i int) *Tan          { return tg.tans[i] }

// Transforms returns the current placement of every tan.
func (tg *Tangram) Transforms() []Transform {
	transforms := make([]Transform, len(tg.tans))
	for i, tan := range tg.tans {
		transforms[i] = tan.Transformation()
	}
	return transforms
}

// forEachOther calls fn for every active tan other than tan, in z-order.
func (tg *Tangram) forEachOther(tan *Tan, fn func(other *Tan)) {
	for _, other := range tg.tans {
		if !other.Active || other == tan {
			continue
		}
		fn(other)
	}
}

// ComputeAABB returns the bounds of every tan's current world points.
func (tg *Tangram) ComputeAABB() geom.Bounds {
	var b geom.Bounds
	first := true
	for _, tan := range tg.tans {
		for _, p := range tan.points {
			if first {
				b = geom.Bounds{Min: p, Max: p}
				first = false
				continue
			}
			b = b.Extend(p)
		}
	}
	return b
}

// Center translates every tan so the tangram's bounds are centered on the
// origin.
func (tg *Tangram) Center() {
	d := tg.ComputeAABB().Center().Neg()
	for _, tan := range tg.tans {
		tan.Transform(tan.position.Add(d), tan.rotation)
	}
}

// StageTan returns a tan to its staging position, away from the assembly
// area: its origin scaled by StagingScale plus translation, unrotated. A
// staged tan is inactive.
func (tg *Tangram) StageTan(tan *Tan, translation geom.Point) {
	tan.Active = false
	tan.Transform(tan.origin.Scale(StagingScale).Add(translation), 0)
}

// IsShapeFull reports whether every tan is active and the "touches"
// relation (a corner of one tan lying within eps of an edge of the other)
// connects all of them into a single component.
func (tg *Tangram) IsShapeFull(eps float64) bool {
	if len(tg.tans) == 0 {
		return false
	}
	for _, tan := range tg.tans {
		if !tan.Active {
			return false
		}
	}

	visited := make([]bool, len(tg.tans))
	queue := []int{0}
	visited[0] = true
	for len(queue) > 0 {
		tan := tg.tans[queue[0]]
		queue = queue[1:]
		for j, other := range tg.tans {
			if visited[j] || !doTansTouch(tan, other, eps) {
				continue
			}
			visited[j] = true
			queue = append(queue, j)
		}
	}
	for _, v := range visited {
		if !v {
			return false
		}
	}
	return true
}

func isPointOnTanEdge(point geom.Point, tan *Tan, eps float64) bool {
	n := len(tan.points)
	for i, p1 := range tan.points {
		p2 := tan.points[(i+1)%n]
		if geom.IsPointOnEdge(point, p1, p2, tan.tangents[i], tan.normals[i], eps) {
			return true
		}
	}
	return false
}

func doTansTouch(tan1, tan2 *Tan, eps float64) bool {
	for _, p := range tan1.points {
		if isPointOnTanEdge(p, tan2, eps) {
			return true
		}
	}
	for _, p := range tan2.points {
		if isPointOnTanEdge(p, tan1, eps) {
			return true
		}
	}
	return false
}

// PickTanFace returns the first tan, in z-order, accepted by pickable (nil
// accepts all) whose polygon contains point, or nil.
func (tg *Tangram) PickTanFace(point geom.Point, pickable func(*Tan) bool) *Tan {
	for _, tan := range tg.tans {
		if pickable != nil && !pickable(tan) {
			continue
		}
		if tan.IsPointInside(point, PickEps) {
			return tan
		}
	}
	return nil
}

// PickTanCorner returns the tan accepted by pickable (nil accepts all) whose
// non-smooth corner is closest to point within CornerPickRadius, or nil. Only
// the first qualifying corner of each tan is considered.
func (tg *Tangram) PickTanCorner(point geom.Point, pickable func(*Tan) bool) *Tan {
	var closest *Tan
	closestDistSq := CornerPickRadius * CornerPickRadius
	for _, tan := range tg.tans {
		if pickable != nil && !pickable(tan) {
			continue
		}
		for i, p := range tan.points {
			if tan.cornerSmooths[i] {
				continue
			}
			if d := geom.DistSq(p, point); d < closestDistSq {
				closest, closestDistSq = tan, d
				break
			}
		}
	}
	return closest
}
