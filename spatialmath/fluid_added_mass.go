package spatialmath

import (
	"go.viam.com/gzmath/utils"
)

// FluidAddedMass is the inertia added to a rigid body by the fluid it displaces as it
// accelerates. It holds the 21 unique values of a symmetric 6x6 matrix.
// The zero value adds no mass.
type FluidAddedMass[T utils.Float] struct {
	// Translational terms. Symmetric; only the diagonal and upper triangle are read.
	xyzBlockDiagonal Matrix3[T]
	// Rotational terms. Symmetric; only the diagonal and upper triangle are read.
	pqrBlockDiagonal Matrix3[T]
	// Mixed terms, one row per translational axis and one column per rotational axis:
	//   xp xq xr
	//   yp yq yr
	//   zp zq zr
	xyzRowColPQR Matrix3[T]
}

// FluidAddedMassd and FluidAddedMassf are the double and single precision added masses.
type (
	FluidAddedMassd = FluidAddedMass[float64]
	FluidAddedMassf = FluidAddedMass[float32]
)

// NewFluidAddedMass returns the added mass made of the translational block, the rotational
// block and the mixed block. The two block diagonal matrices are expected to be symmetric;
// this is not checked, and only their upper triangles are used.
func NewFluidAddedMass[T utils.Float](xyzBlockDiagonal, pqrBlockDiagonal, xyzRowColPQR Matrix3[T]) FluidAddedMass[T] {
	return FluidAddedMass[T]{
		xyzBlockDiagonal: xyzBlockDiagonal,
		pqrBlockDiagonal: pqrBlockDiagonal,
		xyzRowColPQR:     xyzRowColPQR,
	}
}

// XYZBlockDiagonal returns the translational block as given at construction.
func (f FluidAddedMass[T]) XYZBlockDiagonal() Matrix3[T] { return f.xyzBlockDiagonal }

// PQRBlockDiagonal returns the rotational block as given at construction.
func (f FluidAddedMass[T]) PQRBlockDiagonal() Matrix3[T] { return f.pqrBlockDiagonal }

// XYZRowColPQR returns the mixed block as given at construction.
func (f FluidAddedMass[T]) XYZRowColPQR() Matrix3[T] { return f.xyzRowColPQR }

// SpatialInertiaMatrix returns the added mass as a symmetric 6x6 spatial matrix with the
// rotational block in the upper left and the translational block in the lower right.
// The lower left block is the mixed matrix (rows xyz, columns pqr) and the upper right is its transpose.
func (f FluidAddedMass[T]) SpatialInertiaMatrix() Matrix6[T] {
	var out Matrix6[T]
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r, c := min(i, j), max(i, j)
			out[i][j] = f.pqrBlockDiagonal[r][c]
			out[3+i][3+j] = f.xyzBlockDiagonal[r][c]
			out[3+i][j] = f.xyzRowColPQR[i][j]
			out[j][3+i] = f.xyzRowColPQR[i][j]
		}
	}
	return out
}

// AlmostEqual returns whether all three blocks are within tol.
func (f FluidAddedMass[T]) AlmostEqual(o FluidAddedMass[T], tol float64) bool {
	return f.xyzBlockDiagonal.AlmostEqual(o.xyzBlockDiagonal, tol) &&
		f.pqrBlockDiagonal.AlmostEqual(o.pqrBlockDiagonal, tol) &&
		f.xyzRowColPQR.AlmostEqual(o.xyzRowColPQR, tol)
}
