package spatialmath

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"go.viam.com/gzmath/utils"
)

// Matrix3 is a row-major 3x3 matrix.
type Matrix3[T utils.Float] [3][3]T

// Matrix3d and Matrix3f are the double and single precision matrices.
type (
	Matrix3d = Matrix3[float64]
	Matrix3f = Matrix3[float32]
)

// NewMatrix3 returns a matrix from its nine entries, row by row.
func NewMatrix3[T utils.Float](v00, v01, v02, v10, v11, v12, v20, v21, v22 T) Matrix3[T] {
	return Matrix3[T]{
		{v00, v01, v02},
		{v10, v11, v12},
		{v20, v21, v22},
	}
}

// Identity3 returns the 3x3 identity matrix.
func Identity3[T utils.Float]() Matrix3[T] {
	return DiagonalMatrix3(Vector3[T]{1, 1, 1})
}

// DiagonalMatrix3 returns a matrix with d on its diagonal and zeros elsewhere.
func DiagonalMatrix3[T utils.Float](d Vector3[T]) Matrix3[T] {
	return Matrix3[T]{
		{d.X, 0, 0},
		{0, d.Y, 0},
		{0, 0, d.Z},
	}
}

// SkewMatrix3 returns the cross product matrix of v, so that SkewMatrix3(v).MulVector(u) == v.Cross(u).
func SkewMatrix3[T utils.Float](v Vector3[T]) Matrix3[T] {
	return Matrix3[T]{
		{0, -v.Z, v.Y},
		{v.Z, 0, -v.X},
		{-v.Y, v.X, 0},
	}
}

// At returns the entry at row r, column c.
func (m Matrix3[T]) At(r, c int) T {
	return m[r][c]
}

// Set sets the entry at row r, column c.
func (m *Matrix3[T]) Set(r, c int, v T) {
	m[r][c] = v
}

// Row returns row r as a vector.
func (m Matrix3[T]) Row(r int) Vector3[T] {
	return Vector3[T]{m[r][0], m[r][1], m[r][2]}
}

// Col returns column c as a vector.
func (m Matrix3[T]) Col(c int) Vector3[T] {
	return Vector3[T]{m[0][c], m[1][c], m[2][c]}
}

// Diagonal returns the diagonal entries.
func (m Matrix3[T]) Diagonal() Vector3[T] {
	return Vector3[T]{m[0][0], m[1][1], m[2][2]}
}

// Transpose returns the transposed matrix.
func (m Matrix3[T]) Transpose() Matrix3[T] {
	var out Matrix3[T]
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[j][i] = m[i][j]
		}
	}
	return out
}

// Add returns m + o.
func (m Matrix3[T]) Add(o Matrix3[T]) Matrix3[T] {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m[i][j] += o[i][j]
		}
	}
	return m
}

// Sub returns m - o.
func (m Matrix3[T]) Sub(o Matrix3[T]) Matrix3[T] {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m[i][j] -= o[i][j]
		}
	}
	return m
}

// Scale returns m multiplied by the scalar k.
func (m Matrix3[T]) Scale(k T) Matrix3[T] {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m[i][j] *= k
		}
	}
	return m
}

// Mul returns the matrix product m * o.
func (m Matrix3[T]) Mul(o Matrix3[T]) Matrix3[T] {
	var out Matrix3[T]
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m[i][0]*o[0][j] + m[i][1]*o[1][j] + m[i][2]*o[2][j]
		}
	}
	return out
}

// MulVector returns m * v.
func (m Matrix3[T]) MulVector(v Vector3[T]) Vector3[T] {
	return Vector3[T]{m.Row(0).Dot(v), m.Row(1).Dot(v), m.Row(2).Dot(v)}
}

// Trace returns the sum of the diagonal.
func (m Matrix3[T]) Trace() T {
	return m[0][0] + m[1][1] + m[2][2]
}

// Determinant returns the determinant.
func (m Matrix3[T]) Determinant() T {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// Inverse returns the inverse of m, or an error if m is singular.
func (m Matrix3[T]) Inverse() (Matrix3[T], error) {
	det := m.Determinant()
	if det == 0 {
		return Matrix3[T]{}, errors.New("matrix is singular")
	}
	adj := Matrix3[T]{
		{
			m[1][1]*m[2][2] - m[1][2]*m[2][1],
			m[0][2]*m[2][1] - m[0][1]*m[2][2],
			m[0][1]*m[1][2] - m[0][2]*m[1][1],
		},
		{
			m[1][2]*m[2][0] - m[1][0]*m[2][2],
			m[0][0]*m[2][2] - m[0][2]*m[2][0],
			m[0][2]*m[1][0] - m[0][0]*m[1][2],
		},
		{
			m[1][0]*m[2][1] - m[1][1]*m[2][0],
			m[0][1]*m[2][0] - m[0][0]*m[2][1],
			m[0][0]*m[1][1] - m[0][1]*m[1][0],
		},
	}
	return adj.Scale(1 / det), nil
}

// IsSymmetric returns whether m equals its transpose within tol.
func (m Matrix3[T]) IsSymmetric(tol float64) bool {
	return utils.AlmostEqual(m[0][1], m[1][0], tol) &&
		utils.AlmostEqual(m[0][2], m[2][0], tol) &&
		utils.AlmostEqual(m[1][2], m[2][1], tol)
}

// Symmetrized returns the symmetric matrix built from the diagonal and upper triangle of m.
// Entries below the diagonal are ignored.
func (m Matrix3[T]) Symmetrized() Matrix3[T] {
	m[1][0] = m[0][1]
	m[2][0] = m[0][2]
	m[2][1] = m[1][2]
	return m
}

// AlmostEqual returns whether every entry is within tol of the other's.
func (m Matrix3[T]) AlmostEqual(o Matrix3[T], tol float64) bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if !utils.AlmostEqual(m[i][j], o[i][j], tol) {
				return false
			}
		}
	}
	return true
}

// String returns the nine entries, row by row.
func (m Matrix3[T]) String() string {
	parts := make([]string, 0, 9)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			parts = append(parts, fmt.Sprintf("%g", float64(m[i][j])))
		}
	}
	return strings.Join(parts, " ")
}
