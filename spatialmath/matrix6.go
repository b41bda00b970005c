package spatialmath

import (
	"go.viam.com/gzmath/utils"
)

// Matrix6 is a row-major 6x6 matrix, used for spatial (rotational + translational) quantities.
type Matrix6[T utils.Float] [6][6]T

// Matrix6d and Matrix6f are the double and single precision matrices.
type (
	Matrix6d = Matrix6[float64]
	Matrix6f = Matrix6[float32]
)

// Corner names one of the four 3x3 blocks of a Matrix6.
type Corner int

// The four 3x3 blocks of a Matrix6.
const (
	TopLeft Corner = iota
	TopRight
	BottomLeft
	BottomRight
)

func (c Corner) offsets() (int, int) {
	switch c {
	case TopLeft:
		return 0, 0
	case TopRight:
		return 0, 3
	case BottomLeft:
		return 3, 0
	case BottomRight:
		return 3, 3
	}
	panic(utils.NewIndexOutOfRangeError("corner", int(c), 4))
}

// IdentityMatrix6 returns the 6x6 identity matrix.
func IdentityMatrix6[T utils.Float]() Matrix6[T] {
	var m Matrix6[T]
	for i := 0; i < 6; i++ {
		m[i][i] = 1
	}
	return m
}

// At returns the entry at row r, column c.
func (m Matrix6[T]) At(r, c int) T {
	return m[r][c]
}

// Submatrix returns the 3x3 block at the given corner.
func (m Matrix6[T]) Submatrix(c Corner) Matrix3[T] {
	r0, c0 := c.offsets()
	var out Matrix3[T]
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m[r0+i][c0+j]
		}
	}
	return out
}

// SetSubmatrix overwrites the 3x3 block at the given corner.
func (m *Matrix6[T]) SetSubmatrix(c Corner, sub Matrix3[T]) {
	r0, c0 := c.offsets()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m[r0+i][c0+j] = sub[i][j]
		}
	}
}

// Transpose returns the transposed matrix.
func (m Matrix6[T]) Transpose() Matrix6[T] {
	var out Matrix6[T]
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			out[j][i] = m[i][j]
		}
	}
	return out
}

// Add returns m + o.
func (m Matrix6[T]) Add(o Matrix6[T]) Matrix6[T] {
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			m[i][j] += o[i][j]
		}
	}
	return m
}

// Sub returns m - o.
func (m Matrix6[T]) Sub(o Matrix6[T]) Matrix6[T] {
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			m[i][j] -= o[i][j]
		}
	}
	return m
}

// Scale returns m multiplied by the scalar k.
func (m Matrix6[T]) Scale(k T) Matrix6[T] {
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			m[i][j] *= k
		}
	}
	return m
}

// IsSymmetric returns whether m equals its transpose within tol.
func (m Matrix6[T]) IsSymmetric(tol float64) bool {
	for i := 0; i < 6; i++ {
		for j := i + 1; j < 6; j++ {
			if !utils.AlmostEqual(m[i][j], m[j][i], tol) {
				return false
			}
		}
	}
	return true
}

// AlmostEqual returns whether every entry is within tol of the other's.
func (m Matrix6[T]) AlmostEqual(o Matrix6[T], tol float64) bool {
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			if !utils.AlmostEqual(m[i][j], o[i][j], tol) {
				return false
			}
		}
	}
	return true
}
