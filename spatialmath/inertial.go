package spatialmath

import (
	"go.viam.com/gzmath/utils"
)

// Inertial is the rigid body inertia of a link: its mass matrix about the center of mass, and
// the pose of the center of mass (and of the axes the mass matrix is expressed in) in the link frame.
type Inertial[T utils.Float] struct {
	massMatrix MassMatrix3[T]
	pose       Pose[T]
}

// Inertiald and Inertialf are the double and single precision inertials.
type (
	Inertiald = Inertial[float64]
	Inertialf = Inertial[float32]
)

// NewInertial returns an inertial from a mass matrix and the pose of the center of mass.
func NewInertial[T utils.Float](massMatrix MassMatrix3[T], pose Pose[T]) Inertial[T] {
	return Inertial[T]{massMatrix: massMatrix, pose: pose}
}

// MassMatrix returns the mass matrix about the center of mass.
func (in Inertial[T]) MassMatrix() MassMatrix3[T] { return in.massMatrix }

// Pose returns the pose of the center of mass in the link frame.
func (in Inertial[T]) Pose() Pose[T] { return in.pose }

// SetMassMatrix replaces the mass matrix.
func (in *Inertial[T]) SetMassMatrix(m MassMatrix3[T]) { in.massMatrix = m }

// SetPose replaces the pose of the center of mass.
func (in *Inertial[T]) SetPose(p Pose[T]) { in.pose = p }

// Moi returns the moment of inertia about the center of mass, expressed in the link frame axes.
func (in Inertial[T]) Moi() Matrix3[T] {
	r := in.pose.Rot.RotationMatrix()
	return r.Mul(in.massMatrix.Moi()).Mul(r.Transpose())
}

// SpatialInertiaMatrix returns the 6x6 spatial inertia about the link frame origin, with the
// rotational block in the upper left and the translational block in the lower right.
func (in Inertial[T]) SpatialInertiaMatrix() Matrix6[T] {
	m := in.massMatrix.Mass()
	skew := SkewMatrix3(in.pose.Pos)

	var out Matrix6[T]
	out.SetSubmatrix(TopLeft, in.Moi().Add(skew.Mul(skew.Transpose()).Scale(m)))
	out.SetSubmatrix(TopRight, skew.Scale(m))
	out.SetSubmatrix(BottomLeft, skew.Transpose().Scale(m))
	out.SetSubmatrix(BottomRight, Identity3[T]().Scale(m))
	return out
}

// Add returns the inertial of the two bodies rigidly joined. The result's center of mass is
// the mass weighted mean of both, and its axes are the link frame axes.
func (in Inertial[T]) Add(o Inertial[T]) Inertial[T] {
	m1, m2 := in.massMatrix.Mass(), o.massMatrix.Mass()
	mass := m1 + m2
	var com Vector3[T]
	if mass > 0 {
		com = in.pose.Pos.Mul(m1).Add(o.pose.Pos.Mul(m2)).Div(mass)
	} else {
		com = in.pose.Pos.Add(o.pose.Pos).Div(2)
	}
	moi := parallelAxis(in.Moi(), m1, in.pose.Pos.Sub(com)).
		Add(parallelAxis(o.Moi(), m2, o.pose.Pos.Sub(com)))
	return NewInertial(MassMatrix3FromMoi(mass, moi), NewPoseFromPoint(com))
}

// parallelAxis shifts a moment of inertia about the center of mass to a point offset away.
func parallelAxis[T utils.Float](moi Matrix3[T], mass T, offset Vector3[T]) Matrix3[T] {
	shift := Identity3[T]().Scale(offset.SquaredLength()).Sub(outer(offset, offset))
	return moi.Add(shift.Scale(mass))
}

func outer[T utils.Float](a, b Vector3[T]) Matrix3[T] {
	return Matrix3[T]{
		{a.X * b.X, a.X * b.Y, a.X * b.Z},
		{a.Y * b.X, a.Y * b.Y, a.Y * b.Z},
		{a.Z * b.X, a.Z * b.Y, a.Z * b.Z},
	}
}

// AlmostEqual returns whether the mass matrices and poses are within tol.
func (in Inertial[T]) AlmostEqual(o Inertial[T], tol float64) bool {
	return in.massMatrix.AlmostEqual(o.massMatrix, tol) && in.pose.AlmostEqual(o.pose, tol)
}
