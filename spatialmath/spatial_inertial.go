package spatialmath

import (
	"go.viam.com/gzmath/utils"
)

// SpatialInertial pairs a rigid body inertial with the fluid added mass it may carry.
// The zero value is a massless body without added mass.
type SpatialInertial[T utils.Float] struct {
	inertial       Inertial[T]
	fluidAddedMass FluidAddedMass[T]
	hasAddedMass   bool
}

// SpatialInertiald and SpatialInertialf are the double and single precision spatial inertials.
type (
	SpatialInertiald = SpatialInertial[float64]
	SpatialInertialf = SpatialInertial[float32]
)

// NewSpatialInertial returns a rigid body without added mass.
func NewSpatialInertial[T utils.Float](inertial Inertial[T]) SpatialInertial[T] {
	return SpatialInertial[T]{inertial: inertial}
}

// NewSpatialInertialWithFluid returns a rigid body moving through a fluid.
func NewSpatialInertialWithFluid[T utils.Float](inertial Inertial[T], fluidAddedMass FluidAddedMass[T]) SpatialInertial[T] {
	return SpatialInertial[T]{inertial: inertial, fluidAddedMass: fluidAddedMass, hasAddedMass: true}
}

// Inertial returns the rigid body inertial.
func (s SpatialInertial[T]) Inertial() Inertial[T] { return s.inertial }

// FluidAddedMass returns the added mass, and false if there is none.
func (s SpatialInertial[T]) FluidAddedMass() (FluidAddedMass[T], bool) {
	return s.fluidAddedMass, s.hasAddedMass
}

// WithFluidAddedMass returns a copy carrying the given added mass.
func (s SpatialInertial[T]) WithFluidAddedMass(f FluidAddedMass[T]) SpatialInertial[T] {
	return NewSpatialInertialWithFluid(s.inertial, f)
}

// WithoutFluidAddedMass returns a copy without added mass.
func (s SpatialInertial[T]) WithoutFluidAddedMass() SpatialInertial[T] {
	return NewSpatialInertial(s.inertial)
}

// SpatialInertiaMatrix returns the rigid body spatial inertia plus, if present, the added mass,
// with the rotational block in the upper left and the translational block in the lower right.
func (s SpatialInertial[T]) SpatialInertiaMatrix() Matrix6[T] {
	m := s.inertial.SpatialInertiaMatrix()
	if !s.hasAddedMass {
		return m
	}
	return m.Add(s.fluidAddedMass.SpatialInertiaMatrix())
}

// AlmostEqual returns whether both bodies and their added masses (if any) are within tol.
func (s SpatialInertial[T]) AlmostEqual(o SpatialInertial[T], tol float64) bool {
	if s.hasAddedMass != o.hasAddedMass || !s.inertial.AlmostEqual(o.inertial, tol) {
		return false
	}
	return !s.hasAddedMass || s.fluidAddedMass.AlmostEqual(o.fluidAddedMass, tol)
}
