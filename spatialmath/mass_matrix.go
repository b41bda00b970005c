package spatialmath

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/gzmath/utils"
)

// MassMatrix3 holds the mass and the moments of inertia of a rigid body about its center of mass.
type MassMatrix3[T utils.Float] struct {
	mass        T
	diagonal    Vector3[T] // Ixx, Iyy, Izz
	offDiagonal Vector3[T] // Ixy, Ixz, Iyz
}

// MassMatrix3d and MassMatrix3f are the double and single precision mass matrices.
type (
	MassMatrix3d = MassMatrix3[float64]
	MassMatrix3f = MassMatrix3[float32]
)

// NewMassMatrix3 returns a mass matrix from a mass, the diagonal moments (Ixx, Iyy, Izz)
// and the off-diagonal products (Ixy, Ixz, Iyz).
func NewMassMatrix3[T utils.Float](mass T, diagonal, offDiagonal Vector3[T]) MassMatrix3[T] {
	return MassMatrix3[T]{mass: mass, diagonal: diagonal, offDiagonal: offDiagonal}
}

func newBadMassPropertiesError(shape string, values ...interface{}) error {
	return errors.Errorf("cannot compute %s mass matrix from non-positive values %v", shape, values)
}

// MassMatrixFromBox returns the mass matrix of a solid box of the given mass and side lengths.
func MassMatrixFromBox[T utils.Float](mass T, size Vector3[T]) (MassMatrix3[T], error) {
	if mass <= 0 || size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		return MassMatrix3[T]{}, newBadMassPropertiesError("box", mass, size)
	}
	sq := size.MulVec(size)
	return NewMassMatrix3(mass, Vector3[T]{sq.Y + sq.Z, sq.X + sq.Z, sq.X + sq.Y}.Mul(mass/12), Vector3[T]{}), nil
}

// MassMatrixFromSphere returns the mass matrix of a solid sphere.
func MassMatrixFromSphere[T utils.Float](mass, radius T) (MassMatrix3[T], error) {
	if mass <= 0 || radius <= 0 {
		return MassMatrix3[T]{}, newBadMassPropertiesError("sphere", mass, radius)
	}
	i := 2 * mass * radius * radius / 5
	return NewMassMatrix3(mass, Vector3[T]{i, i, i}, Vector3[T]{}), nil
}

// MassMatrixFromCylinderZ returns the mass matrix of a solid cylinder whose axis is z.
func MassMatrixFromCylinderZ[T utils.Float](mass, length, radius T) (MassMatrix3[T], error) {
	if mass <= 0 || length <= 0 || radius <= 0 {
		return MassMatrix3[T]{}, newBadMassPropertiesError("cylinder", mass, length, radius)
	}
	ixx := mass * (3*radius*radius + length*length) / 12
	return NewMassMatrix3(mass, Vector3[T]{ixx, ixx, mass * radius * radius / 2}, Vector3[T]{}), nil
}

// Mass returns the mass.
func (m MassMatrix3[T]) Mass() T { return m.mass }

// DiagonalMoments returns Ixx, Iyy and Izz.
func (m MassMatrix3[T]) DiagonalMoments() Vector3[T] { return m.diagonal }

// OffDiagonalMoments returns Ixy, Ixz and Iyz.
func (m MassMatrix3[T]) OffDiagonalMoments() Vector3[T] { return m.offDiagonal }

// Moi returns the symmetric moment of inertia matrix.
func (m MassMatrix3[T]) Moi() Matrix3[T] {
	d, o := m.diagonal, m.offDiagonal
	return Matrix3[T]{
		{d.X, o.X, o.Y},
		{o.X, d.Y, o.Z},
		{o.Y, o.Z, d.Z},
	}
}

// IsPositive returns whether the mass is positive and the moment of inertia matrix is positive definite.
func (m MassMatrix3[T]) IsPositive() bool {
	return m.leadingMinorsAbove(0, false)
}

// IsNearPositive is IsPositive, but allows the mass and leading minors to be as low as -tol.
func (m MassMatrix3[T]) IsNearPositive(tol float64) bool {
	return m.leadingMinorsAbove(tol, true)
}

func (m MassMatrix3[T]) leadingMinorsAbove(tol float64, inclusive bool) bool {
	moi := m.Moi()
	minors := []float64{
		float64(m.mass),
		float64(moi[0][0]),
		float64(moi[0][0]*moi[1][1] - moi[0][1]*moi[1][0]),
		float64(moi.Determinant()),
	}
	for _, v := range minors {
		if inclusive && v < -tol {
			return false
		}
		if !inclusive && v <= 0 {
			return false
		}
	}
	return true
}

// PrincipalMoments returns the eigenvalues of the moment of inertia matrix in ascending order.
func (m MassMatrix3[T]) PrincipalMoments() (Vector3[T], error) {
	moi := m.Moi()
	sym := mat.NewSymDense(3, []float64{
		float64(moi[0][0]), float64(moi[0][1]), float64(moi[0][2]),
		float64(moi[1][0]), float64(moi[1][1]), float64(moi[1][2]),
		float64(moi[2][0]), float64(moi[2][1]), float64(moi[2][2]),
	})
	var eig mat.EigenSym
	if ok := eig.Factorize(sym, false); !ok {
		return Vector3[T]{}, errors.New("eigendecomposition of moment of inertia failed")
	}
	vals := eig.Values(nil)
	return Vector3[T]{T(vals[0]), T(vals[1]), T(vals[2])}, nil
}

// ValidMoments returns whether principal moments are non-negative and satisfy the triangle
// inequality, each within tol.
func ValidMoments[T utils.Float](moments Vector3[T], tol float64) bool {
	x, y, z := float64(moments.X), float64(moments.Y), float64(moments.Z)
	return x >= -tol && y >= -tol && z >= -tol &&
		x+y >= z-tol &&
		y+z >= x-tol &&
		z+x >= y-tol
}

// IsValid returns whether the mass matrix is near positive and its principal moments are physically realizable.
func (m MassMatrix3[T]) IsValid(tol float64) bool {
	if !m.IsNearPositive(tol) {
		return false
	}
	moments, err := m.PrincipalMoments()
	if err != nil {
		return false
	}
	return ValidMoments(moments, tol)
}

// AlmostEqual returns whether masses and moments are within tol.
func (m MassMatrix3[T]) AlmostEqual(o MassMatrix3[T], tol float64) bool {
	return utils.AlmostEqual(m.mass, o.mass, tol) &&
		m.diagonal.AlmostEqual(o.diagonal, tol) &&
		m.offDiagonal.AlmostEqual(o.offDiagonal, tol)
}

// MassMatrix3FromMoi returns a mass matrix from a mass and a moment of inertia matrix.
// Only the diagonal and upper triangle of moi are read.
func MassMatrix3FromMoi[T utils.Float](mass T, moi Matrix3[T]) MassMatrix3[T] {
	return NewMassMatrix3(mass, moi.Diagonal(), Vector3[T]{moi[0][1], moi[0][2], moi[1][2]})
}
