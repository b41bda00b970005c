package spatialmath

import (
	"math"

	"github.com/pkg/errors"

	"go.viam.com/gzmath/utils"
)

// Ellipsoid is a solid ellipsoid centered at the origin with its radii along the x, y and z axes.
type Ellipsoid[T utils.Float] struct {
	radii    Vector3[T]
	material Material
}

// Ellipsoidd and Ellipsoidf are the double and single precision ellipsoids.
type (
	Ellipsoidd = Ellipsoid[float64]
	Ellipsoidf = Ellipsoid[float32]
)

// NewEllipsoid returns an ellipsoid with the given radii, in meters, and material.
func NewEllipsoid[T utils.Float](radii Vector3[T], material Material) Ellipsoid[T] {
	return Ellipsoid[T]{radii: radii, material: material}
}

func newBadEllipsoidError(e Ellipsoid[float64], reason string) error {
	return errors.Errorf("ellipsoid with radii (%v) and density %v: %s", e.radii, e.material.Density, reason)
}

func (e Ellipsoid[T]) asDouble() Ellipsoid[float64] {
	return Ellipsoid[float64]{
		radii:    Vector3[float64]{float64(e.radii.X), float64(e.radii.Y), float64(e.radii.Z)},
		material: e.material,
	}
}

// Radii returns the radii in meters.
func (e Ellipsoid[T]) Radii() Vector3[T] { return e.radii }

// SetRadii sets the radii in meters.
func (e *Ellipsoid[T]) SetRadii(radii Vector3[T]) { e.radii = radii }

// Material returns the material.
func (e Ellipsoid[T]) Material() Material { return e.material }

// SetMaterial sets the material.
func (e *Ellipsoid[T]) SetMaterial(m Material) { e.material = m }

// Volume returns the volume in m^3.
func (e Ellipsoid[T]) Volume() T {
	return T(4 * math.Pi / 3 * float64(e.radii.X) * float64(e.radii.Y) * float64(e.radii.Z))
}

func (e Ellipsoid[T]) hasPositiveRadii() bool {
	return e.radii.X > 0 && e.radii.Y > 0 && e.radii.Z > 0
}

// MassMatrix returns the mass matrix of the ellipsoid, using its material density.
// It is only meaningful once the radii and material have been set.
func (e Ellipsoid[T]) MassMatrix() (MassMatrix3[T], error) {
	if !e.hasPositiveRadii() {
		return MassMatrix3[T]{}, newBadEllipsoidError(e.asDouble(), "radii must be positive")
	}
	if e.material.Density <= 0 {
		return MassMatrix3[T]{}, newBadEllipsoidError(e.asDouble(), "density must be positive")
	}
	mass := T(e.material.Density) * e.Volume()
	sq := e.radii.MulVec(e.radii)
	moments := Vector3[T]{sq.Y + sq.Z, sq.X + sq.Z, sq.X + sq.Y}.Mul(mass / 5)
	return NewMassMatrix3(mass, moments, Vector3[T]{}), nil
}

// DensityFromMass returns the density that gives the ellipsoid the given mass.
func (e Ellipsoid[T]) DensityFromMass(mass T) (T, error) {
	if !e.hasPositiveRadii() {
		return 0, newBadEllipsoidError(e.asDouble(), "radii must be positive")
	}
	if mass <= 0 {
		return 0, errors.Errorf("mass %v must be positive", float64(mass))
	}
	return mass / e.Volume(), nil
}

// SetDensityFromMass sets the material density so that the ellipsoid has the given mass.
// The material is left unchanged on error.
func (e *Ellipsoid[T]) SetDensityFromMass(mass T) error {
	d, err := e.DensityFromMass(mass)
	if err != nil {
		return err
	}
	e.material.Density = float64(d)
	return nil
}

// AlmostEqual returns whether the radii are within tol and the materials match.
func (e Ellipsoid[T]) AlmostEqual(o Ellipsoid[T], tol float64) bool {
	return e.radii.AlmostEqual(o.radii, tol) && e.material == o.material
}
