package linalg

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"go.viam.com/gzmath/spatialmath"
	"go.viam.com/gzmath/utils"
)

// Vector3ToMgl returns v as a mathgl vector.
func Vector3ToMgl[T utils.Float](v spatialmath.Vector3[T]) mgl64.Vec3 {
	return mgl64.Vec3{float64(v.X), float64(v.Y), float64(v.Z)}
}

// MglToVector3 converts a mathgl vector.
func MglToVector3[T utils.Float](v mgl64.Vec3) spatialmath.Vector3[T] {
	return spatialmath.Vector3[T]{X: T(v[0]), Y: T(v[1]), Z: T(v[2])}
}

// Matrix3ToMgl returns m as a (column major) mathgl matrix.
func Matrix3ToMgl[T utils.Float](m spatialmath.Matrix3[T]) mgl64.Mat3 {
	return mgl64.Mat3FromRows(
		Vector3ToMgl(m.Row(0)),
		Vector3ToMgl(m.Row(1)),
		Vector3ToMgl(m.Row(2)),
	)
}

// QuaternionToMgl returns q as a mathgl quaternion.
func QuaternionToMgl[T utils.Float](q spatialmath.Quaternion[T]) mgl64.Quat {
	return mgl64.Quat{W: float64(q.W), V: mgl64.Vec3{float64(q.X), float64(q.Y), float64(q.Z)}}
}

// PoseToMat4 returns the homogeneous transform of p.
func PoseToMat4[T utils.Float](p spatialmath.Pose[T]) mgl64.Mat4 {
	rot := Matrix3ToMgl(p.Rot.RotationMatrix()).Mat4()
	return mgl64.Translate3D(float64(p.Pos.X), float64(p.Pos.Y), float64(p.Pos.Z)).Mul4(rot)
}

// Transform is a rigid transformation in 3d, stored as a homogeneous matrix.
type Transform struct {
	mat mgl64.Mat4
}

// NewTransform returns the identity transform.
func NewTransform() *Transform {
	return &Transform{mgl64.Ident4()}
}

// NewTransformFromPose returns the transform of p.
func NewTransformFromPose[T utils.Float](p spatialmath.Pose[T]) *Transform {
	return &Transform{PoseToMat4(p)}
}

// NewTransformFromRotation returns a transform rotated about x, then y, then z by the given degrees.
func NewTransformFromRotation(x, y, z float64) *Transform {
	return &Transform{mgl64.HomogRotate3DZ(utils.DegToRad(z)).Mul4(
		mgl64.HomogRotate3DY(utils.DegToRad(y)).Mul4(
			mgl64.HomogRotate3DX(utils.DegToRad(x))))}
}

// Matrix returns the homogeneous matrix.
func (m *Transform) Matrix() mgl64.Mat4 {
	return m.mat
}

// Rotation returns the top left 3x3 matrix.
func (m *Transform) Rotation() mgl64.Mat3 {
	return m.mat.Mat3()
}

// Quaternion returns the rotation as a quaternion.
func (m *Transform) Quaternion() mgl64.Quat {
	return mgl64.Mat4ToQuat(m.mat)
}

// Translation returns the XYZ translation.
func (m *Transform) Translation() mgl64.Vec3 {
	return m.mat.Col(3).Vec3()
}

// SetTranslation replaces the translation.
func (m *Transform) SetTranslation(x, y, z float64) {
	m.mat.Set(0, 3, x)
	m.mat.Set(1, 3, y)
	m.mat.Set(2, 3, z)
}

// RotX rotates about the local x axis. Takes degrees.
func (m *Transform) RotX(x float64) {
	m.mat = m.mat.Mul4(mgl64.HomogRotate3DX(utils.DegToRad(x)))
}

// RotY rotates about the local y axis. Takes degrees.
func (m *Transform) RotY(y float64) {
	m.mat = m.mat.Mul4(mgl64.HomogRotate3DY(utils.DegToRad(y)))
}

// RotZ rotates about the local z axis. Takes degrees.
func (m *Transform) RotZ(z float64) {
	m.mat = m.mat.Mul4(mgl64.HomogRotate3DZ(utils.DegToRad(z)))
}

// Pose returns the transform as a pose.
func (m *Transform) Pose() spatialmath.Posed {
	q := m.Quaternion()
	return spatialmath.NewPose(
		MglToVector3[float64](m.Translation()),
		spatialmath.Quaterniond{W: q.W, X: q.V[0], Y: q.V[1], Z: q.V[2]},
	)
}

// ToDelta returns the difference between two transforms as dx, dy, dz followed by the rotation
// vector (axis scaled by angle). The rotation uses axis angle because its distances are well-defined.
func (m *Transform) ToDelta(other *Transform) []float64 {
	ret := make([]float64, 6)
	d := other.Translation().Sub(m.Translation())
	ret[0], ret[1], ret[2] = d.Elem()

	q := mgl64.Mat4ToQuat(other.Rotation().Mul3(m.Rotation().Transpose()).Mat4())
	axisAngle := QuatToAxisAngle(q)
	ret[3] = axisAngle[1] * axisAngle[0]
	ret[4] = axisAngle[2] * axisAngle[0]
	ret[5] = axisAngle[3] * axisAngle[0]
	return ret
}

// QuatToAxisAngle converts a quaternion to [angle, x, y, z] the same way Eigen's AngleAxis does.
// https://eigen.tuxfamily.org/dox/AngleAxis_8h_source.html
func QuatToAxisAngle(q mgl64.Quat) []float64 {
	denom := q.V.Len()

	angle := 2 * math.Atan2(denom, math.Abs(q.W))
	if q.W < 0 {
		angle *= -1
	}

	axisAngle := []float64{angle}

	if denom < 1e-6 {
		axisAngle = append(axisAngle, 1, 0, 0)
	} else {
		x, y, z := q.V.Mul(1 / denom).Elem()
		axisAngle = append(axisAngle, x, y, z)
	}
	return axisAngle
}
