package rcsim

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

const (
	deg2rad = math.Pi / 180
)

// Vec3 is a 3x1 vector. Body frame vectors are (forward, right wing, up from wing).
type Vec3 [3]float64

// Add returns v+o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v[0] + o[0], v[1] + o[1], v[2] + o[2]}
}

// Scale returns v*s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// Dot returns the inner product of v and o.
func (v Vec3) Dot(o Vec3) float64 {
	return v[0]*o[0] + v[1]*o[1] + v[2]*o[2]
}

// Norm returns the Euclidean norm.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// Unit returns the unit vector of v, or the nil vector if v is (nearly) zero.
func (v Vec3) Unit() Vec3 {
	n := v.Norm()
	if scalar.EqualWithinAbs(n, 0, 1e-12) {
		return Vec3{}
	}
	return v.Scale(1 / n)
}

// IsFinite returns whether no component is NaN or infinite.
func (v Vec3) IsFinite() bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Slice returns a copy of v as a slice, which is handy with gonum.
func (v Vec3) Slice() []float64 {
	return []float64{v[0], v[1], v[2]}
}

// Attitude is the orientation of the body frame relative to the reference frame, in radians.
// The model never wraps these angles.
type Attitude struct {
	Roll, Pitch, Yaw float64
}

// Wrapped returns the attitude with each angle in (-π, π]. Only meant for display.
func (a Attitude) Wrapped() Attitude {
	return Attitude{WrapAngle(a.Roll), WrapAngle(a.Pitch), WrapAngle(a.Yaw)}
}

// IsFinite returns whether all three angles are finite.
func (a Attitude) IsFinite() bool {
	return Vec3{a.Roll, a.Pitch, a.Yaw}.IsFinite()
}

// WrapAngle returns the provided angle in radians within (-π, π].
func WrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	} else if a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

// Degrees returns the wrapped attitude in degrees, each angle within (-180, 180].
func (a Attitude) Degrees() Attitude {
	w := a.Wrapped()
	return Attitude{w.Roll / deg2rad, w.Pitch / deg2rad, w.Yaw / deg2rad}
}
