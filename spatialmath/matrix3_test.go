package spatialmath

import (
	"testing"

	"go.viam.com/test"
)

func TestMatrix3Construction(t *testing.T) {
	m := NewMatrix3(1., 2., 3., 4., 5., 6., 7., 8., 9.)
	test.That(t, m.At(0, 1), test.ShouldEqual, 2.)
	test.That(t, m.At(2, 0), test.ShouldEqual, 7.)
	test.That(t, m.Row(1), test.ShouldResemble, Vector3d{4, 5, 6})
	test.That(t, m.Col(2), test.ShouldResemble, Vector3d{3, 6, 9})
	test.That(t, m.Diagonal(), test.ShouldResemble, Vector3d{1, 5, 9})
	test.That(t, m.Trace(), test.ShouldEqual, 15.)
	test.That(t, m.String(), test.ShouldEqual, "1 2 3 4 5 6 7 8 9")

	m.Set(1, 1, 50)
	test.That(t, m.At(1, 1), test.ShouldEqual, 50.)

	test.That(t, DiagonalMatrix3(Vector3d{1, 2, 3}), test.ShouldResemble, Matrix3d{{1, 0, 0}, {0, 2, 0}, {0, 0, 3}})
	test.That(t, Identity3[float64](), test.ShouldResemble, DiagonalMatrix3(Vector3d{1, 1, 1}))
}

func TestMatrix3Algebra(t *testing.T) {
	m := NewMatrix3(1., 2., 3., 4., 5., 6., 7., 8., 9.)
	test.That(t, m.Transpose(), test.ShouldResemble, Matrix3d{{1, 4, 7}, {2, 5, 8}, {3, 6, 9}})
	test.That(t, m.Add(m), test.ShouldResemble, m.Scale(2))
	test.That(t, m.Sub(m), test.ShouldResemble, Matrix3d{})
	test.That(t, m.Mul(Identity3[float64]()), test.ShouldResemble, m)
	test.That(t, Identity3[float64]().Mul(m), test.ShouldResemble, m)
	test.That(t, m.Mul(m), test.ShouldResemble, Matrix3d{{30, 36, 42}, {66, 81, 96}, {102, 126, 150}})
	test.That(t, m.MulVector(Vector3d{1, 0, -1}), test.ShouldResemble, Vector3d{-2, -2, -2})
	test.That(t, m.Determinant(), test.ShouldEqual, 0.)

	_, err := m.Inverse()
	test.That(t, err, test.ShouldBeError, "matrix is singular")

	n := NewMatrix3(2., 0., 0., 0., 4., 0., 1., 0., 1.)
	inv, err := n.Inverse()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, n.Mul(inv).AlmostEqual(Identity3[float64](), 1e-12), test.ShouldBeTrue)
}

func TestMatrix3Skew(t *testing.T) {
	a := Vector3d{1, 2, 3}
	b := Vector3d{-4, 0.5, 2}
	s := SkewMatrix3(a)
	test.That(t, s.MulVector(b), test.ShouldResemble, a.Cross(b))
	test.That(t, s.Transpose().AlmostEqual(s.Scale(-1), 0), test.ShouldBeTrue)
}

func TestMatrix3Symmetry(t *testing.T) {
	m := NewMatrix3(1., 2., 3., 99., 4., 5., 99., 99., 6.)
	test.That(t, m.IsSymmetric(1e-9), test.ShouldBeFalse)
	s := m.Symmetrized()
	test.That(t, s, test.ShouldResemble, Matrix3d{{1, 2, 3}, {2, 4, 5}, {3, 5, 6}})
	test.That(t, s.IsSymmetric(0), test.ShouldBeTrue)
	// value receiver
	test.That(t, m.At(1, 0), test.ShouldEqual, 99.)
}

func TestMatrix6Blocks(t *testing.T) {
	var m Matrix6d
	a := NewMatrix3(1., 2., 3., 4., 5., 6., 7., 8., 9.)
	m.SetSubmatrix(TopRight, a)
	m.SetSubmatrix(BottomLeft, a.Transpose())

	test.That(t, m.Submatrix(TopRight), test.ShouldResemble, a)
	test.That(t, m.Submatrix(BottomLeft), test.ShouldResemble, a.Transpose())
	test.That(t, m.Submatrix(TopLeft), test.ShouldResemble, Matrix3d{})
	test.That(t, m.At(0, 3), test.ShouldEqual, 1.)
	test.That(t, m.At(5, 2), test.ShouldEqual, 9.)
	test.That(t, m.At(3, 2), test.ShouldEqual, 7.)
	test.That(t, m.IsSymmetric(0), test.ShouldBeTrue)
	test.That(t, m.Transpose(), test.ShouldResemble, m)

	test.That(t, func() { m.Submatrix(Corner(4)) }, test.ShouldPanic)
}

func TestMatrix6Algebra(t *testing.T) {
	id := IdentityMatrix6[float64]()
	for i := 0; i < 6; i++ {
		test.That(t, id.At(i, i), test.ShouldEqual, 1.)
	}
	test.That(t, id.Add(id), test.ShouldResemble, id.Scale(2))
	test.That(t, id.Sub(id), test.ShouldResemble, Matrix6d{})

	other := id
	other[0][5] = 1e-10
	test.That(t, other.AlmostEqual(id, 1e-9), test.ShouldBeTrue)
	test.That(t, other.AlmostEqual(id, 1e-11), test.ShouldBeFalse)
	test.That(t, other.IsSymmetric(1e-11), test.ShouldBeFalse)
}
