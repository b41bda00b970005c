package utils

import (
	"math"
)

// Float is the set of scalar types the geometry types are generic over.
type Float interface {
	~float32 | ~float64
}

// DegToRad converts degrees to radians.
func DegToRad(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(radians float64) float64 {
	return radians * 180 / math.Pi
}

// Float64AlmostEqual returns whether two floats are within epsilon of each other.
func Float64AlmostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) <= epsilon
}

// AlmostEqual is Float64AlmostEqual for any Float.
func AlmostEqual[T Float](a, b T, epsilon float64) bool {
	return Float64AlmostEqual(float64(a), float64(b), epsilon)
}

// Square returns n*n. Math.pow( x, 2 ) is slow, this is faster.
func Square[T Float](n T) T {
	return n * n
}

// Clamp limits v to [lo, hi]. If lo > hi, v is returned unchanged.
func Clamp[T Float](v, lo, hi T) T {
	if lo > hi {
		return v
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// IsFinite returns false for NaN and infinities.
func IsFinite[T Float](v T) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
