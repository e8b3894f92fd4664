package geom

import "math"

// IsPolygonClockwise reports whether the corners wind clockwise in a y-up
// coordinate system, using the shoelace sum Σ(x2-x1)(y2+y1) over consecutive
// (wrapping) corner pairs.
func IsPolygonClockwise(corners []Point) bool {
	sum := 0.0
	for i, c1 := range corners {
		c2 := corners[(i+1)%len(corners)]
		sum += (c2.X - c1.X) * (c2.Y + c1.Y)
	}
	return sum > 0
}

// IsPolygonConvex reports whether every consecutive corner triple turns the
// same way. Collinear triples count as clockwise turns.
func IsPolygonConvex(corners []Point) bool {
	n := len(corners)
	var cw0 bool
	for i := 0; i < n; i++ {
		c1 := corners[i]
		c2 := corners[(i+1)%n]
		c3 := corners[(i+2)%n]
		cw := Cross(c2.Sub(c1), c3.Sub(c2)) <= 0
		if i == 0 {
			cw0 = cw
		} else if cw != cw0 {
			return false
		}
	}
	return true
}

// ProjectPolygonToNormal returns the interval covered by the points when
// projected onto normal.
func ProjectPolygonToNormal(points []Point, normal Point) (min, max float64) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, p := range points {
		dot := Dot(p, normal)
		min = math.Min(min, dot)
		max = math.Max(max, dot)
	}
	return min, max
}

// ComputePolygonPenetration returns how far points1 reaches past the near side
// of points2 along normal. Positive values mean the projections overlap.
func ComputePolygonPenetration(points1, points2 []Point, normal Point) float64 {
	_, max1 := ProjectPolygonToNormal(points1, normal)
	min2, _ := ProjectPolygonToNormal(points2, normal)
	return max1 - min2
}

// SignedDistanceToEdge returns the distance from point to the line through
// edgePoint, positive on the inner side of an outward edgeNormal.
func SignedDistanceToEdge(point, edgePoint, edgeNormal Point) float64 {
	return Dot(edgePoint.Sub(point), edgeNormal)
}

// IsPointOnEdge reports whether point lies within eps of the segment
// edgePoint1-edgePoint2, whose unit direction and outward normal are given.
func IsPointOnEdge(point, edgePoint1, edgePoint2, edgeTangent, edgeNormal Point, eps float64) bool {
	if math.Abs(SignedDistanceToEdge(point, edgePoint1, edgeNormal)) > eps {
		return false
	}
	dot := Dot(point, edgeTangent)
	if dot < Dot(edgePoint1, edgeTangent)-eps {
		return false
	}
	return dot <= Dot(edgePoint2, edgeTangent)+eps
}

// IsPointInsideConvexPolygon runs a half-plane test against every edge:
// corners[i] is a point on edge i and normals[i] its outward normal.
func IsPointInsideConvexPolygon(point Point, corners, normals []Point, eps float64) bool {
	for i := range corners {
		if SignedDistanceToEdge(point, corners[i], normals[i])+eps < 0 {
			return false
		}
	}
	return true
}
