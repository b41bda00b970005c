package spatialmath

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestMaterials(t *testing.T) {
	water, err := MaterialByName("Water")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, water, test.ShouldResemble, Material{Name: "water", Density: 1000})

	_, err = MaterialByName("unobtainium")
	test.That(t, err, test.ShouldBeError, `unknown material "unobtainium"`)

	all := Materials()
	test.That(t, len(all), test.ShouldEqual, 15)
	test.That(t, all[0].Name, test.ShouldEqual, "styrofoam")
	test.That(t, all[len(all)-1].Name, test.ShouldEqual, "tungsten")
	for i := 1; i < len(all); i++ {
		test.That(t, all[i].Density, test.ShouldBeGreaterThan, all[i-1].Density)
	}

	test.That(t, NewMaterial(12.5), test.ShouldResemble, Material{Density: 12.5})
}

func TestEllipsoidMassMatrix(t *testing.T) {
	water, err := MaterialByName("water")
	test.That(t, err, test.ShouldBeNil)
	e := NewEllipsoid(Vector3d{1, 2, 3}, water)

	test.That(t, e.Volume(), test.ShouldAlmostEqual, 8*math.Pi)

	mm, err := e.MassMatrix()
	test.That(t, err, test.ShouldBeNil)
	mass := 8000 * math.Pi
	test.That(t, mm.Mass(), test.ShouldAlmostEqual, mass, 1e-6)
	expected := Vector3d{13, 10, 5}.Mul(mass / 5)
	test.That(t, mm.DiagonalMoments().AlmostEqual(expected, 1e-6), test.ShouldBeTrue)
	test.That(t, mm.OffDiagonalMoments(), test.ShouldResemble, Vector3d{})
	test.That(t, mm.IsValid(1e-6), test.ShouldBeTrue)

	// a sphere matches the closed form
	sphere := NewEllipsoid(Vector3d{0.5, 0.5, 0.5}, NewMaterial(1000))
	sm, err := sphere.MassMatrix()
	test.That(t, err, test.ShouldBeNil)
	closed, err := MassMatrixFromSphere(sm.Mass(), 0.5)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, sm.AlmostEqual(closed, 1e-9), test.ShouldBeTrue)
}

func TestEllipsoidErrors(t *testing.T) {
	e := NewEllipsoid(Vector3d{1, 0, 1}, NewMaterial(1000))
	_, err := e.MassMatrix()
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "radii must be positive")
	_, err = e.DensityFromMass(1)
	test.That(t, err, test.ShouldNotBeNil)

	e.SetRadii(Vector3d{1, 1, 1})
	e.SetMaterial(NewMaterial(0))
	_, err = e.MassMatrix()
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "density must be positive")

	_, err = e.DensityFromMass(-2)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, e.SetDensityFromMass(0), test.ShouldNotBeNil)
	test.That(t, e.Material().Density, test.ShouldEqual, 0.)
}

func TestEllipsoidDensityFromMass(t *testing.T) {
	e := NewEllipsoid(Vector3d{1, 2, 3}, Material{})
	d, err := e.DensityFromMass(8000 * math.Pi)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, d, test.ShouldAlmostEqual, 1000.)

	test.That(t, e.SetDensityFromMass(8000*math.Pi), test.ShouldBeNil)
	test.That(t, e.Material().Density, test.ShouldAlmostEqual, 1000.)
	mm, err := e.MassMatrix()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, mm.Mass(), test.ShouldAlmostEqual, 8000*math.Pi, 1e-6)

	test.That(t, e.Radii(), test.ShouldResemble, Vector3d{1, 2, 3})
	test.That(t, e.AlmostEqual(NewEllipsoid(Vector3d{1, 2, 3}, e.Material()), 1e-9), test.ShouldBeTrue)
	test.That(t, e.AlmostEqual(NewEllipsoid(Vector3d{1, 2, 3}, NewMaterial(1)), 1e-9), test.ShouldBeFalse)
}

func TestEllipsoidSinglePrecision(t *testing.T) {
	e := NewEllipsoid(Vector3f{1, 1, 1}, NewMaterial(3/(4*math.Pi)))
	mm, err := e.MassMatrix()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, float64(mm.Mass()), test.ShouldAlmostEqual, 1, 1e-5)
	test.That(t, mm.DiagonalMoments().AlmostEqual(Vector3f{0.4, 0.4, 0.4}, 1e-5), test.ShouldBeTrue)
}
