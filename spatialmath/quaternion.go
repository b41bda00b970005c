package spatialmath

import (
	"math"

	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/gzmath/utils"
)

// Quaternion is a rotation quaternion W + Xi + Yj + Zk.
type Quaternion[T utils.Float] struct {
	W T `json:"w"`
	X T `json:"x"`
	Y T `json:"y"`
	Z T `json:"z"`
}

// Quaterniond and Quaternionf are the double and single precision quaternions.
type (
	Quaterniond = Quaternion[float64]
	Quaternionf = Quaternion[float32]
)

// IdentityQuaternion returns the quaternion which signifies no rotation.
func IdentityQuaternion[T utils.Float]() Quaternion[T] {
	return Quaternion[T]{W: 1}
}

// QuaternionFromNumber converts a gonum quaternion.
func QuaternionFromNumber[T utils.Float](q quat.Number) Quaternion[T] {
	return Quaternion[T]{T(q.Real), T(q.Imag), T(q.Jmag), T(q.Kmag)}
}

// QuaternionFromEuler returns the rotation about the fixed x, y and z axes, applied in that order.
func QuaternionFromEuler[T utils.Float](roll, pitch, yaw T) Quaternion[T] {
	sr, cr := math.Sincos(float64(roll) / 2)
	sp, cp := math.Sincos(float64(pitch) / 2)
	sy, cy := math.Sincos(float64(yaw) / 2)
	return Quaternion[T]{
		W: T(cr*cp*cy + sr*sp*sy),
		X: T(sr*cp*cy - cr*sp*sy),
		Y: T(cr*sp*cy + sr*cp*sy),
		Z: T(cr*cp*sy - sr*sp*cy),
	}
}

// QuaternionFromAxisAngle returns the rotation of angle radians about axis.
// A zero axis gives the identity.
func QuaternionFromAxisAngle[T utils.Float](axis Vector3[T], angle T) Quaternion[T] {
	if axis.Length() == 0 {
		return IdentityQuaternion[T]()
	}
	a := axis.Normalized()
	s, c := math.Sincos(float64(angle) / 2)
	return Quaternion[T]{T(c), a.X * T(s), a.Y * T(s), a.Z * T(s)}
}

// Number converts the quaternion to a gonum quaternion.
func (q Quaternion[T]) Number() quat.Number {
	return quat.Number{Real: float64(q.W), Imag: float64(q.X), Jmag: float64(q.Y), Kmag: float64(q.Z)}
}

// Mul returns the Hamilton product q * o, i.e. o applied first.
func (q Quaternion[T]) Mul(o Quaternion[T]) Quaternion[T] {
	return QuaternionFromNumber[T](quat.Mul(q.Number(), o.Number()))
}

// Conjugate returns the conjugate quaternion.
func (q Quaternion[T]) Conjugate() Quaternion[T] {
	return Quaternion[T]{q.W, -q.X, -q.Y, -q.Z}
}

// Inverse returns the multiplicative inverse. The zero quaternion inverts to the identity.
func (q Quaternion[T]) Inverse() Quaternion[T] {
	n := q.Number()
	if quat.Abs(n) == 0 {
		return IdentityQuaternion[T]()
	}
	return QuaternionFromNumber[T](quat.Inv(n))
}

// Normalized returns q scaled to unit length. The zero quaternion normalizes to the identity.
func (q Quaternion[T]) Normalized() Quaternion[T] {
	n := q.Number()
	abs := quat.Abs(n)
	if abs == 0 {
		return IdentityQuaternion[T]()
	}
	return QuaternionFromNumber[T](quat.Scale(1/abs, n))
}

// RotateVector rotates v by the normalized quaternion.
func (q Quaternion[T]) RotateVector(v Vector3[T]) Vector3[T] {
	u := q.Normalized().Number()
	p := quat.Number{Imag: float64(v.X), Jmag: float64(v.Y), Kmag: float64(v.Z)}
	r := quat.Mul(quat.Mul(u, p), quat.Conj(u))
	return Vector3[T]{T(r.Imag), T(r.Jmag), T(r.Kmag)}
}

// RotationMatrix returns the rotation matrix of the normalized quaternion.
func (q Quaternion[T]) RotationMatrix() Matrix3[T] {
	u := q.Normalized()
	w, x, y, z := float64(u.W), float64(u.X), float64(u.Y), float64(u.Z)
	return Matrix3[T]{
		{T(1 - 2*(y*y+z*z)), T(2 * (x*y - w*z)), T(2 * (x*z + w*y))},
		{T(2 * (x*y + w*z)), T(1 - 2*(x*x+z*z)), T(2 * (y*z - w*x))},
		{T(2 * (x*z - w*y)), T(2 * (y*z + w*x)), T(1 - 2*(x*x+y*y))},
	}
}

// Euler returns roll, pitch and yaw as a vector.
// See https://en.wikipedia.org/wiki/Conversion_between_quaternions_and_Euler_angles
func (q Quaternion[T]) Euler() Vector3[T] {
	u := q.Normalized()
	w, x, y, z := float64(u.W), float64(u.X), float64(u.Y), float64(u.Z)
	roll := math.Atan2(2*(w*x+y*z), 1-2*(x*x+y*y))
	pitch := math.Asin(utils.Clamp(2*(w*y-x*z), -1, 1))
	yaw := math.Atan2(2*(w*z+x*y), 1-2*(y*y+z*z))
	return Vector3[T]{T(roll), T(pitch), T(yaw)}
}

// AlmostEqual returns whether every component is within tol of the other's.
func (q Quaternion[T]) AlmostEqual(o Quaternion[T], tol float64) bool {
	return utils.AlmostEqual(q.W, o.W, tol) &&
		utils.AlmostEqual(q.X, o.X, tol) &&
		utils.AlmostEqual(q.Y, o.Y, tol) &&
		utils.AlmostEqual(q.Z, o.Z, tol)
}
