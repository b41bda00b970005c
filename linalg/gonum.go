// Package linalg converts the spatialmath value types to and from the matrix libraries used for
// numerical work: gonum, mathgl and golang/geo.
package linalg

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/gzmath/spatialmath"
	"go.viam.com/gzmath/utils"
)

func newBadDimensionsError(kind string, wantR, wantC, gotR, gotC int) error {
	return errors.Errorf("cannot convert %dx%d matrix to %s, need %dx%d", gotR, gotC, kind, wantR, wantC)
}

// Vector3ToVecDense returns v as a gonum column vector.
func Vector3ToVecDense[T utils.Float](v spatialmath.Vector3[T]) *mat.VecDense {
	return mat.NewVecDense(3, []float64{float64(v.X), float64(v.Y), float64(v.Z)})
}

// VecDenseToVector3 converts a gonum vector of length 3.
func VecDenseToVector3[T utils.Float](v mat.Vector) (spatialmath.Vector3[T], error) {
	if v.Len() != 3 {
		return spatialmath.Vector3[T]{}, errors.Errorf("cannot convert vector of length %d to Vector3", v.Len())
	}
	return spatialmath.Vector3[T]{X: T(v.AtVec(0)), Y: T(v.AtVec(1)), Z: T(v.AtVec(2))}, nil
}

// Matrix3ToDense returns m as a gonum matrix.
func Matrix3ToDense[T utils.Float](m spatialmath.Matrix3[T]) *mat.Dense {
	data := make([]float64, 0, 9)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			data = append(data, float64(m[i][j]))
		}
	}
	return mat.NewDense(3, 3, data)
}

// DenseToMatrix3 converts a 3x3 gonum matrix.
func DenseToMatrix3[T utils.Float](m mat.Matrix) (spatialmath.Matrix3[T], error) {
	var out spatialmath.Matrix3[T]
	if r, c := m.Dims(); r != 3 || c != 3 {
		return out, newBadDimensionsError("Matrix3", 3, 3, r, c)
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = T(m.At(i, j))
		}
	}
	return out, nil
}

// Matrix6ToDense returns m as a gonum matrix.
func Matrix6ToDense[T utils.Float](m spatialmath.Matrix6[T]) *mat.Dense {
	data := make([]float64, 0, 36)
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			data = append(data, float64(m[i][j]))
		}
	}
	return mat.NewDense(6, 6, data)
}

// Matrix6ToSymDense returns m as a gonum symmetric matrix. Only the upper triangle of m is read.
func Matrix6ToSymDense[T utils.Float](m spatialmath.Matrix6[T]) *mat.SymDense {
	return mat.NewSymDense(6, Matrix6ToDense(m).RawMatrix().Data)
}

// DenseToMatrix6 converts a 6x6 gonum matrix.
func DenseToMatrix6[T utils.Float](m mat.Matrix) (spatialmath.Matrix6[T], error) {
	var out spatialmath.Matrix6[T]
	if r, c := m.Dims(); r != 6 || c != 6 {
		return out, newBadDimensionsError("Matrix6", 6, 6, r, c)
	}
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			out[i][j] = T(m.At(i, j))
		}
	}
	return out, nil
}

// QuaternionToNumber returns q as a gonum quaternion.
func QuaternionToNumber[T utils.Float](q spatialmath.Quaternion[T]) quat.Number {
	return q.Number()
}

// NumberToQuaternion converts a gonum quaternion.
func NumberToQuaternion[T utils.Float](n quat.Number) spatialmath.Quaternion[T] {
	return spatialmath.QuaternionFromNumber[T](n)
}

// SpatialInertiaDense returns the spatial inertia of s as a gonum symmetric matrix.
func SpatialInertiaDense[T utils.Float](s spatialmath.SpatialInertial[T]) *mat.SymDense {
	return Matrix6ToSymDense(s.SpatialInertiaMatrix())
}

// IsPositiveDefinite returns whether a symmetric matrix is positive definite, by attempting a
// Cholesky factorization.
func IsPositiveDefinite(m mat.Symmetric) bool {
	var chol mat.Cholesky
	return chol.Factorize(m)
}

// Eigenvalues returns the eigenvalues of a symmetric matrix in ascending order.
func Eigenvalues(m mat.Symmetric) ([]float64, error) {
	var eig mat.EigenSym
	if ok := eig.Factorize(m, false); !ok {
		return nil, errors.New("eigendecomposition failed")
	}
	return eig.Values(nil), nil
}
