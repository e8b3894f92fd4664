package tangram

import (
	"io"
	"log"
	"os"
	"sort"

	"github.com/irfansharif/tangram/internal/geom"
)

var placementLogger *log.Logger = log.New(io.Discard, "", 0)

func init() {
	if os.Getenv("TANGRAM_DEBUG_PLACEMENT") == "1" {
		placementLogger = log.New(os.Stdout, "[placement] ", log.Ltime|log.Lmsgprefix)
	}
}

// CollisionEps is the penetration depth below which tans are not considered
// to be overlapping.
const CollisionEps = 1e-8

// Collision describes the separating-axis result between a tan and one other
// active tan. Normal points from the other tan towards the tan, so moving
// the tan by Normal*Penetration separates the pair along that axis.
type Collision struct {
	Other       int // index of the other tan
	Normal      geom.Point
	Penetration float64 // ≤ 0 when separated
}

// PlaceOptions bound the placement solver.
type PlaceOptions struct {
	MaxPenetration float64 // deeper overlaps are rejected outright
	MaxIterations  int
	Eps            float64
}

// DefaultPlacement holds the tunables used by interactive callers.
var DefaultPlacement = PlaceOptions{
	MaxPenetration: 0.1,
	MaxIterations:  10,
	Eps:            CollisionEps,
}

// computeTanCollision finds the axis of least penetration among the edge
// normals of both tans, oriented to push tan away from other.
func computeTanCollision(other, tan *Tan) Collision {
	c := Collision{Other: other.index}
	first := true
	for _, normal := range other.normals {
		penetration := geom.ComputePolygonPenetration(other.points, tan.points, normal)
		if first || penetration < c.Penetration {
			c.Normal, c.Penetration = normal, penetration
			first = false
		}
	}
	for _, normal := range tan.normals {
		penetration := geom.ComputePolygonPenetration(tan.points, other.points, normal)
		if penetration < c.Penetration {
			c.Normal, c.Penetration = normal.Neg(), penetration
		}
	}
	return c
}

// ComputeCollisions returns one result per other active tan, deepest
// penetration first.
func (tg *Tangram) ComputeCollisions(tan *Tan) []Collision {
	var collisions []Collision
	tg.forEachOther(tan, func(other *Tan) {
		collisions = append(collisions, computeTanCollision(other, tan))
	})
	sort.SliceStable(collisions, func(i, j int) bool {
		return collisions[i].Penetration > collisions[j].Penetration
	})
	return collisions
}

// HasCollisions reports whether tan overlaps any other active tan by more
// than eps.
func (tg *Tangram) HasCollisions(tan *Tan, eps float64) bool {
	collisions := tg.ComputeCollisions(tan)
	return len(collisions) > 0 && collisions[0].Penetration > eps
}

// PlaceTan moves tan to the requested pose. Shallow overlaps are resolved by
// repeatedly pushing the tan along the deepest collision normal; the pushes
// accumulate onto the requested position. Placement fails, restoring the
// previous pose, when an overlap is deeper than MaxPenetration or the
// iteration budget runs out. On success the tan keeps its (possibly nudged)
// pose. The Active flag is left untouched.
func (tg *Tangram) PlaceTan(tan *Tan, position geom.Point, rotation float64, opts PlaceOptions) bool {
	prev := tan.Transformation()
	tan.Transform(position, rotation)

	target := position
	for i := 0; i <= opts.MaxIterations; i++ {
		collisions := tg.ComputeCollisions(tan)
		if len(collisions) == 0 {
			break
		}
		deepest := collisions[0]
		if deepest.Penetration <= opts.Eps {
			break
		}
		if deepest.Penetration > opts.MaxPenetration || i == opts.MaxIterations {
			placementLogger.Printf("tan %d: rejected at iteration %d (penetration %.6f against tan %d)",
				tan.index, i, deepest.Penetration, deepest.Other)
			tan.Transform(prev.Position, prev.Rotation)
			return false
		}
		target = target.Add(deepest.Normal.Scale(deepest.Penetration))
		tan.Transform(target, rotation)
		placementLogger.Printf("tan %d: iteration %d pushed %.6f out of tan %d", tan.index, i, deepest.Penetration, deepest.Other)
	}
	return true
}
