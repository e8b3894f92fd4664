package geom

import "math"

func Radians(degrees float64) float64 { return degrees / 180 * math.Pi }
func Degrees(radians float64) float64 { return radians / math.Pi * 180 }

// RoundHalfUp rounds to the nearest integer, with halves going towards +∞.
func RoundHalfUp(x float64) float64 { return math.Floor(x + 0.5) }

// WrapAngle maps an angle in degrees into [-180, 180].
func WrapAngle(angle float64) float64 {
	wrapped := math.Mod(angle, 360)
	if wrapped > 180 {
		return wrapped - 360
	} else if wrapped < -180 {
		return wrapped + 360
	}
	return wrapped
}

// SnapPeriodicAngle returns the signed delta that moves angle onto the
// nearest multiple of period.
func SnapPeriodicAngle(angle, period float64) float64 {
	steps := RoundHalfUp(angle / period)
	return steps*period - angle
}

// SnapAngle returns the smallest wrapped delta that moves source onto one of
// target + k*repeat, for k in [0, 360/repeat).
func SnapAngle(source, target, repeat float64) float64 {
	steps := int(RoundHalfUp(360 / repeat))
	closest := math.Inf(1)
	for i := 0; i < steps; i++ {
		delta := WrapAngle(target + float64(i)*repeat - source)
		if math.Abs(delta) < math.Abs(closest) {
			closest = delta
		}
	}
	return closest
}
