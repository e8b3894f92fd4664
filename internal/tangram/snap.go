package tangram

import (
	"math"

	"github.com/irfansharif/tangram/internal/geom"
)

// SnapOptions hold the per-phase capture distances for SnapTan.
type SnapOptions struct {
	PointDistance float64 // corner to corner
	MidDistance   float64 // corner/midpoint combinations
	EdgeDistance  float64 // corner onto edge
	Eps           float64
}

var DefaultSnap = SnapOptions{
	PointDistance: 0.02,
	MidDistance:   0.015,
	EdgeDistance:  0.01,
	Eps:           1e-9,
}

// snapCandidate tracks the closest pair seen so far. from is a point that
// moves with the tan, to is where it should end up.
type snapCandidate struct {
	found    bool
	distance float64
	from, to geom.Point
}

func (c *snapCandidate) offer(distance float64, from, to geom.Point) {
	if !c.found || distance < c.distance {
		c.found, c.distance, c.from, c.to = true, distance, from, to
	}
}

// apply translates tan so that from lands on to, keeping its rotation.
func (c *snapCandidate) apply(tan *Tan) bool {
	if !c.found {
		return false
	}
	tan.Transform(tan.position.Add(c.to).Sub(c.from), tan.rotation)
	return true
}

// offerPairs offers every (a, b) pair closer than maxDistanceSq.
func (c *snapCandidate) offerPairs(as, bs []geom.Point, maxDistanceSq float64) {
	for _, a := range as {
		for _, b := range bs {
			if d := geom.DistSq(a, b); d < maxDistanceSq {
				c.offer(d, a, b)
			}
		}
	}
}

// SnapTanPoint snaps one of tan's corners onto the closest corner of another
// active tan.
func (tg *Tangram) SnapTanPoint(tan *Tan, maxDistance float64) bool {
	var c snapCandidate
	tg.forEachOther(tan, func(other *Tan) {
		c.offerPairs(tan.points, other.points, maxDistance*maxDistance)
	})
	return c.apply(tan)
}

// SnapTanMid snaps a corner onto a midpoint, a midpoint onto a corner or a
// midpoint onto a midpoint, whichever pair is closest.
func (tg *Tangram) SnapTanMid(tan *Tan, maxDistance float64) bool {
	var c snapCandidate
	maxDistanceSq := maxDistance * maxDistance
	tg.forEachOther(tan, func(other *Tan) {
		c.offerPairs(tan.points, other.mids, maxDistanceSq)
	})
	tg.forEachOther(tan, func(other *Tan) {
		c.offerPairs(tan.mids, other.points, maxDistanceSq)
	})
	tg.forEachOther(tan, func(other *Tan) {
		c.offerPairs(tan.mids, other.mids, maxDistanceSq)
	})
	return c.apply(tan)
}

// SnapTanEdge slides tan perpendicular to an edge so that a corner lands on
// it. Both directions are searched: tan's corners onto other edges, and other
// corners onto tan's edges (moving tan the opposite way).
func (tg *Tangram) SnapTanEdge(tan *Tan, maxDistance, eps float64) bool {
	var c snapCandidate
	tg.forEachOther(tan, func(other *Tan) {
		offerPointEdges(&c, tan, other, maxDistance, eps, 1)
		offerPointEdges(&c, other, tan, maxDistance, eps, -1)
	})
	return c.apply(tan)
}

// offerPointEdges projects the corners of pointTan onto the edges of
// edgeTan. With direction 1 the corner is the moving point; with direction -1
// the corner stays and the tan owning the edge moves.
func offerPointEdges(c *snapCandidate, pointTan, edgeTan *Tan, maxDistance, eps, direction float64) {
	n := len(edgeTan.points)
	for _, point := range pointTan.points {
		for j, edgePoint1 := range edgeTan.points {
			edgePoint2 := edgeTan.points[(j+1)%n]
			tangent, normal := edgeTan.tangents[j], edgeTan.normals[j]

			signedDistance := geom.SignedDistanceToEdge(point, edgePoint1, normal)
			distance := math.Abs(signedDistance)
			if distance >= maxDistance {
				continue
			}
			dot := geom.Dot(point, tangent)
			if dot <= geom.Dot(edgePoint1, tangent)-eps || dot >= geom.Dot(edgePoint2, tangent)+eps {
				continue
			}
			c.offer(distance, point, point.Add(normal.Scale(direction*signedDistance)))
		}
	}
}

// SnapTan tries, in order, corner, midpoint and edge snapping and applies the
// first phase that finds a pair. If the snapped pose overlaps another tan by
// more than 10*Eps the snap is rolled back and reported as failed.
func (tg *Tangram) SnapTan(tan *Tan, opts SnapOptions) bool {
	prev := tan.Transformation()

	var phase string
	switch {
	case tg.SnapTanPoint(tan, opts.PointDistance):
		phase = "point"
	case tg.SnapTanMid(tan, opts.MidDistance):
		phase = "mid"
	case tg.SnapTanEdge(tan, opts.EdgeDistance, opts.Eps):
		phase = "edge"
	default:
		return false
	}

	collisions := tg.ComputeCollisions(tan)
	if len(collisions) != 0 && collisions[0].Penetration > 10*opts.Eps {
		placementLogger.Printf("tan %d: %s snap rolled back (penetration %.9f)", tan.index, phase, collisions[0].Penetration)
		tan.Transform(prev.Position, prev.Rotation)
		return false
	}
	placementLogger.Printf("tan %d: %s snap to %v", tan.index, phase, tan.position)
	return true
}
