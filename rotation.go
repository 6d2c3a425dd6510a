package rcsim

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// FrameTransform returns the body to reference rotation matrix for a given attitude.
type FrameTransform func(a Attitude) *mat.Dense

var (
	// EulerZYX is the standard yaw-pitch-roll transform, R3(yaw)·R2(pitch)·R1(roll).
	EulerZYX FrameTransform = func(a Attitude) *mat.Dense {
		return BodyToReference(a.Roll, a.Pitch, a.Yaw)
	}
	// Legacy reproduces the matrix of the first version of the simulator. It is NOT a rotation,
	// cf. LegacyBodyToReference.
	Legacy FrameTransform = func(a Attitude) *mat.Dense {
		return LegacyBodyToReference(a.Roll, a.Pitch, a.Yaw)
	}
)

// R1 rotation about the 1st (forward) axis.
func R1(x float64) *mat.Dense {
	s, c := math.Sincos(x)
	return mat.NewDense(3, 3, []float64{1, 0, 0, 0, c, -s, 0, s, c})
}

// R2 rotation about the 2nd (right wing) axis.
func R2(x float64) *mat.Dense {
	s, c := math.Sincos(x)
	return mat.NewDense(3, 3, []float64{c, 0, s, 0, 1, 0, -s, 0, c})
}

// R3 rotation about the 3rd (up) axis.
func R3(x float64) *mat.Dense {
	s, c := math.Sincos(x)
	return mat.NewDense(3, 3, []float64{c, -s, 0, s, c, 0, 0, 0, 1})
}

// BodyToReference performs a 3-2-1 Euler rotation, i.e. R3(ψ)·R2(θ)·R1(φ).
func BodyToReference(φ, θ, ψ float64) *mat.Dense {
	sφ, cφ := math.Sincos(φ)
	sθ, cθ := math.Sincos(θ)
	sψ, cψ := math.Sincos(ψ)
	return mat.NewDense(3, 3, []float64{cψ * cθ, cψ*sθ*sφ - sψ*cφ, cψ*sθ*cφ + sψ*sφ,
		sψ * cθ, sψ*sθ*sφ + cψ*cφ, sψ*sθ*cφ - cψ*sφ,
		-sθ, cθ * sφ, cθ * cφ})
}

// LegacyBodyToReference is the matrix the simulator originally shipped with.
// It matches BodyToReference(φ, -θ, ψ) except for the last element, which is cθ·sφ
// instead of cθ·cφ, so it is not orthonormal and does not preserve norms.
func LegacyBodyToReference(φ, θ, ψ float64) *mat.Dense {
	sφ, cφ := math.Sincos(φ)
	sθ, cθ := math.Sincos(θ)
	sψ, cψ := math.Sincos(ψ)
	return mat.NewDense(3, 3, []float64{cψ * cθ, -cψ*sθ*sφ - sψ*cφ, -cψ*sθ*cφ + sψ*sφ,
		sψ * cθ, -sψ*sθ*sφ + cψ*cφ, -sψ*sθ*cφ - cψ*sφ,
		sθ, cθ * sφ, cθ * sφ})
}

// MxV33 multiplies a matrix with a vector. Note that there is no dimension check!
func MxV33(m mat.Matrix, v Vec3) Vec3 {
	var rVec mat.VecDense
	rVec.MulVec(m, mat.NewVecDense(3, v.Slice()))
	return Vec3{rVec.AtVec(0), rVec.AtVec(1), rVec.AtVec(2)}
}
