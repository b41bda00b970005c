package spatialmath

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func offsetBody() Inertiald {
	return NewInertial(
		NewMassMatrix3(2., Vector3d{1, 2, 3}, Vector3d{}),
		NewPoseFromPoint(Vector3d{1, 0, 0}),
	)
}

func TestInertialSpatialInertiaMatrix(t *testing.T) {
	t.Run("centered body", func(t *testing.T) {
		in := NewInertial(NewMassMatrix3(3., Vector3d{1, 2, 3}, Vector3d{}), IdentityPose[float64]())
		expected := Matrix6d{
			{1, 0, 0, 0, 0, 0},
			{0, 2, 0, 0, 0, 0},
			{0, 0, 3, 0, 0, 0},
			{0, 0, 0, 3, 0, 0},
			{0, 0, 0, 0, 3, 0},
			{0, 0, 0, 0, 0, 3},
		}
		test.That(t, in.SpatialInertiaMatrix(), test.ShouldResemble, expected)
	})

	t.Run("offset center of mass", func(t *testing.T) {
		expected := Matrix6d{
			{1, 0, 0, 0, 0, 0},
			{0, 4, 0, 0, 0, -2},
			{0, 0, 5, 0, 2, 0},
			{0, 0, 0, 2, 0, 0},
			{0, 0, 2, 0, 2, 0},
			{0, -2, 0, 0, 0, 2},
		}
		m := offsetBody().SpatialInertiaMatrix()
		test.That(t, m, test.ShouldResemble, expected)
		test.That(t, m.IsSymmetric(0), test.ShouldBeTrue)
	})

	t.Run("rotated inertial frame", func(t *testing.T) {
		pose := NewPose(Vector3d{}, QuaternionFromAxisAngle(UnitZ[float64](), math.Pi/2))
		in := NewInertial(NewMassMatrix3(1., Vector3d{1, 2, 3}, Vector3d{}), pose)
		test.That(t, in.Moi().AlmostEqual(DiagonalMatrix3(Vector3d{2, 1, 3}), 1e-9), test.ShouldBeTrue)
		test.That(t, in.SpatialInertiaMatrix().Submatrix(TopLeft).AlmostEqual(in.Moi(), 1e-12), test.ShouldBeTrue)
	})

	t.Run("zero value", func(t *testing.T) {
		var in Inertiald
		test.That(t, in.SpatialInertiaMatrix(), test.ShouldResemble, Matrix6d{})
	})
}

func TestInertialAdd(t *testing.T) {
	sphere, err := MassMatrixFromSphere(1., 0.5)
	test.That(t, err, test.ShouldBeNil)
	a := NewInertial(sphere, NewPoseFromPoint(Vector3d{1, 0, 0}))
	b := NewInertial(sphere, NewPoseFromPoint(Vector3d{-1, 0, 0}))

	sum := a.Add(b)
	test.That(t, sum.MassMatrix().Mass(), test.ShouldEqual, 2.)
	test.That(t, sum.Pose().Pos, test.ShouldResemble, Vector3d{})
	i := 2 * 0.5 * 0.5 / 5
	expected := DiagonalMatrix3(Vector3d{2 * i, 2*i + 2, 2*i + 2})
	test.That(t, sum.Moi().AlmostEqual(expected, 1e-12), test.ShouldBeTrue)

	// joining at the origin commutes with computing the spatial matrices separately
	test.That(t, sum.SpatialInertiaMatrix().AlmostEqual(
		a.SpatialInertiaMatrix().Add(b.SpatialInertiaMatrix()), 1e-12), test.ShouldBeTrue)

	t.Run("massless", func(t *testing.T) {
		var z Inertiald
		zz := z.Add(z)
		test.That(t, zz.MassMatrix().Mass(), test.ShouldEqual, 0.)
	})
}

func TestSpatialInertialWithoutAddedMass(t *testing.T) {
	body := offsetBody()
	s := NewSpatialInertial(body)
	_, ok := s.FluidAddedMass()
	test.That(t, ok, test.ShouldBeFalse)
	test.That(t, s.SpatialInertiaMatrix(), test.ShouldResemble, body.SpatialInertiaMatrix())

	var zero SpatialInertiald
	test.That(t, zero.SpatialInertiaMatrix(), test.ShouldResemble, Matrix6d{})
	_, ok = zero.FluidAddedMass()
	test.That(t, ok, test.ShouldBeFalse)
}

func TestSpatialInertialWithAddedMass(t *testing.T) {
	body := offsetBody()
	fam := NewFluidAddedMass(testXYZ, testPQR, testMixed)
	s := NewSpatialInertialWithFluid(body, fam)

	got, ok := s.FluidAddedMass()
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, got, test.ShouldResemble, fam)
	test.That(t, s.Inertial(), test.ShouldResemble, body)

	rigid := body.SpatialInertiaMatrix()
	added := fam.SpatialInertiaMatrix()
	m := s.SpatialInertiaMatrix()
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			test.That(t, m[i][j], test.ShouldEqual, rigid[i][j]+added[i][j])
		}
	}
	test.That(t, m.IsSymmetric(1e-12), test.ShouldBeTrue)

	t.Run("zero added mass is the identity", func(t *testing.T) {
		withZero := NewSpatialInertialWithFluid(body, FluidAddedMassd{})
		test.That(t, withZero.SpatialInertiaMatrix(), test.ShouldResemble, rigid)
	})
}

func TestSpatialInertialValueSemantics(t *testing.T) {
	fam := NewFluidAddedMass(testXYZ, testPQR, testMixed)
	s := NewSpatialInertialWithFluid(offsetBody(), fam)
	before := s.SpatialInertiaMatrix()

	cp := s
	cp = cp.WithoutFluidAddedMass()
	test.That(t, s.SpatialInertiaMatrix(), test.ShouldResemble, before)
	_, ok := s.FluidAddedMass()
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, cp.SpatialInertiaMatrix(), test.ShouldResemble, offsetBody().SpatialInertiaMatrix())

	cp = s.WithFluidAddedMass(NewFluidAddedMass(Identity3[float64](), Identity3[float64](), Matrix3d{}))
	test.That(t, s.SpatialInertiaMatrix(), test.ShouldResemble, before)
	test.That(t, cp.AlmostEqual(s, 1e-9), test.ShouldBeFalse)

	body := s.Inertial()
	body.SetMassMatrix(NewMassMatrix3(100., Vector3d{1, 1, 1}, Vector3d{}))
	test.That(t, s.Inertial().MassMatrix().Mass(), test.ShouldEqual, 2.)
	test.That(t, s.SpatialInertiaMatrix(), test.ShouldResemble, before)

	same := NewSpatialInertialWithFluid(offsetBody(), fam)
	test.That(t, same == s, test.ShouldBeTrue)
	test.That(t, same.AlmostEqual(s, 0), test.ShouldBeTrue)
	test.That(t, same.AlmostEqual(s.WithoutFluidAddedMass(), 0), test.ShouldBeFalse)
}

func TestSpatialInertialSinglePrecision(t *testing.T) {
	body := NewInertial(NewMassMatrix3(float32(1), Vector3f{1, 1, 1}, Vector3f{}), IdentityPose[float32]())
	fam := NewFluidAddedMass(
		DiagonalMatrix3(Vector3f{1, 2, 3}),
		DiagonalMatrix3(Vector3f{4, 5, 6}),
		Matrix3f{},
	)
	m := NewSpatialInertialWithFluid(body, fam).SpatialInertiaMatrix()
	diag := []float32{5, 6, 7, 2, 3, 4}
	for i, d := range diag {
		test.That(t, m[i][i], test.ShouldEqual, d)
	}
}
