package spatialmath

import (
	"go.viam.com/gzmath/utils"
)

// Pose is a position and a rotation.
type Pose[T utils.Float] struct {
	Pos Vector3[T]    `json:"pos"`
	Rot Quaternion[T] `json:"rot"`
}

// Posed and Posef are the double and single precision poses.
type (
	Posed = Pose[float64]
	Posef = Pose[float32]
)

// NewPose returns a pose from a position and a rotation.
func NewPose[T utils.Float](pos Vector3[T], rot Quaternion[T]) Pose[T] {
	return Pose[T]{Pos: pos, Rot: rot}
}

// NewPoseFromPoint returns a pose at pos with no rotation.
func NewPoseFromPoint[T utils.Float](pos Vector3[T]) Pose[T] {
	return Pose[T]{Pos: pos, Rot: IdentityQuaternion[T]()}
}

// IdentityPose returns the pose at the origin with no rotation.
func IdentityPose[T utils.Float]() Pose[T] {
	return Pose[T]{Rot: IdentityQuaternion[T]()}
}

// TransformPoint expresses a point given in this pose's frame in the parent frame.
func (p Pose[T]) TransformPoint(v Vector3[T]) Vector3[T] {
	return p.Rot.RotateVector(v).Add(p.Pos)
}

// Compose returns p * o: o expressed in the parent frame of p.
func (p Pose[T]) Compose(o Pose[T]) Pose[T] {
	return Pose[T]{
		Pos: p.TransformPoint(o.Pos),
		Rot: p.Rot.Mul(o.Rot).Normalized(),
	}
}

// Inverse returns the pose that undoes p.
func (p Pose[T]) Inverse() Pose[T] {
	inv := p.Rot.Normalized().Conjugate()
	return Pose[T]{Pos: inv.RotateVector(p.Pos).Neg(), Rot: inv}
}

// AlmostEqual returns whether positions and rotations are within tol.
func (p Pose[T]) AlmostEqual(o Pose[T], tol float64) bool {
	return p.Pos.AlmostEqual(o.Pos, tol) && p.Rot.AlmostEqual(o.Rot, tol)
}
