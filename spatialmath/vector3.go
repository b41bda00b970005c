// Package spatialmath defines geometric value types and the mass properties of rigid bodies in a fluid.
package spatialmath

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"

	"go.viam.com/gzmath/utils"
)

// Vector3 is a three dimensional vector.
type Vector3[T utils.Float] struct {
	X T `json:"x"`
	Y T `json:"y"`
	Z T `json:"z"`
}

// Vector3d and Vector3f are the double and single precision vectors.
type (
	Vector3d = Vector3[float64]
	Vector3f = Vector3[float32]
)

// NewVector3 returns the vector (x, y, z).
func NewVector3[T utils.Float](x, y, z T) Vector3[T] {
	return Vector3[T]{x, y, z}
}

// UnitX returns (1, 0, 0).
func UnitX[T utils.Float]() Vector3[T] { return Vector3[T]{X: 1} }

// UnitY returns (0, 1, 0).
func UnitY[T utils.Float]() Vector3[T] { return Vector3[T]{Y: 1} }

// UnitZ returns (0, 0, 1).
func UnitZ[T utils.Float]() Vector3[T] { return Vector3[T]{Z: 1} }

// Vector3FromR3 converts an r3.Vector.
func Vector3FromR3[T utils.Float](v r3.Vector) Vector3[T] {
	return Vector3[T]{T(v.X), T(v.Y), T(v.Z)}
}

// R3 converts the vector to an r3.Vector.
func (v Vector3[T]) R3() r3.Vector {
	return r3.Vector{X: float64(v.X), Y: float64(v.Y), Z: float64(v.Z)}
}

// Add returns v + o.
func (v Vector3[T]) Add(o Vector3[T]) Vector3[T] { return Vector3[T]{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns v - o.
func (v Vector3[T]) Sub(o Vector3[T]) Vector3[T] { return Vector3[T]{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Mul scales v by k.
func (v Vector3[T]) Mul(k T) Vector3[T] { return Vector3[T]{v.X * k, v.Y * k, v.Z * k} }

// Div divides each component by k.
func (v Vector3[T]) Div(k T) Vector3[T] { return Vector3[T]{v.X / k, v.Y / k, v.Z / k} }

// MulVec returns the component-wise product.
func (v Vector3[T]) MulVec(o Vector3[T]) Vector3[T] { return Vector3[T]{v.X * o.X, v.Y * o.Y, v.Z * o.Z} }

// Neg returns -v.
func (v Vector3[T]) Neg() Vector3[T] { return Vector3[T]{-v.X, -v.Y, -v.Z} }

// Dot returns the dot product.
func (v Vector3[T]) Dot(o Vector3[T]) T { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Cross returns the cross product v x o.
func (v Vector3[T]) Cross(o Vector3[T]) Vector3[T] {
	return Vector3[T]{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// SquaredLength returns the squared euclidean norm.
func (v Vector3[T]) SquaredLength() T { return v.Dot(v) }

// Length returns the euclidean norm.
func (v Vector3[T]) Length() T { return T(math.Sqrt(float64(v.SquaredLength()))) }

// Normalized returns a unit vector in the direction of v. The zero vector stays zero.
func (v Vector3[T]) Normalized() Vector3[T] {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Div(l)
}

// Distance returns the distance between the points v and o.
func (v Vector3[T]) Distance(o Vector3[T]) T { return v.Sub(o).Length() }

// Abs returns the component-wise absolute value.
func (v Vector3[T]) Abs() Vector3[T] {
	return Vector3[T]{T(math.Abs(float64(v.X))), T(math.Abs(float64(v.Y))), T(math.Abs(float64(v.Z)))}
}

// Min returns the component-wise minimum of v and o.
func (v Vector3[T]) Min(o Vector3[T]) Vector3[T] {
	return Vector3[T]{min(v.X, o.X), min(v.Y, o.Y), min(v.Z, o.Z)}
}

// Max returns the component-wise maximum of v and o.
func (v Vector3[T]) Max(o Vector3[T]) Vector3[T] {
	return Vector3[T]{max(v.X, o.X), max(v.Y, o.Y), max(v.Z, o.Z)}
}

// Sum returns X + Y + Z.
func (v Vector3[T]) Sum() T { return v.X + v.Y + v.Z }

// Index returns the i-th component. It panics if i is not 0, 1 or 2.
func (v Vector3[T]) Index(i int) T {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	case 2:
		return v.Z
	}
	panic(utils.NewIndexOutOfRangeError("vector", i, 3))
}

// AlmostEqual returns whether every component is within tol of the other's.
func (v Vector3[T]) AlmostEqual(o Vector3[T], tol float64) bool {
	return utils.AlmostEqual(v.X, o.X, tol) &&
		utils.AlmostEqual(v.Y, o.Y, tol) &&
		utils.AlmostEqual(v.Z, o.Z, tol)
}

// String returns a human readable string that represents the vector.
func (v Vector3[T]) String() string {
	return fmt.Sprintf("%g %g %g", float64(v.X), float64(v.Y), float64(v.Z))
}
