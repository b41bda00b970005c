package spatialmath

import (
	"go.viam.com/gzmath/utils"
)

// AxisAlignedBox is a box whose faces are perpendicular to the coordinate axes.
type AxisAlignedBox[T utils.Float] struct {
	min Vector3[T]
	max Vector3[T]
}

// AxisAlignedBoxd and AxisAlignedBoxf are the double and single precision boxes.
type (
	AxisAlignedBoxd = AxisAlignedBox[float64]
	AxisAlignedBoxf = AxisAlignedBox[float32]
)

// NewAxisAlignedBox returns the box spanned by two opposite corners, in any order.
func NewAxisAlignedBox[T utils.Float](a, b Vector3[T]) AxisAlignedBox[T] {
	return AxisAlignedBox[T]{min: a.Min(b), max: a.Max(b)}
}

// Min returns the corner with the smallest coordinates.
func (b AxisAlignedBox[T]) Min() Vector3[T] { return b.min }

// Max returns the corner with the largest coordinates.
func (b AxisAlignedBox[T]) Max() Vector3[T] { return b.max }

// Center returns the center of the box.
func (b AxisAlignedBox[T]) Center() Vector3[T] {
	return b.min.Add(b.max).Mul(0.5)
}

// Size returns the extent of the box along each axis.
func (b AxisAlignedBox[T]) Size() Vector3[T] {
	return b.max.Sub(b.min)
}

// Contains returns whether pt is inside the box or on its boundary.
func (b AxisAlignedBox[T]) Contains(pt Vector3[T]) bool {
	return pt.X >= b.min.X && pt.X <= b.max.X &&
		pt.Y >= b.min.Y && pt.Y <= b.max.Y &&
		pt.Z >= b.min.Z && pt.Z <= b.max.Z
}

// Corners returns the eight corners of the box.
func (b AxisAlignedBox[T]) Corners() [8]Vector3[T] {
	var out [8]Vector3[T]
	for i := range out {
		c := b.min
		if i&1 != 0 {
			c.X = b.max.X
		}
		if i&2 != 0 {
			c.Y = b.max.Y
		}
		if i&4 != 0 {
			c.Z = b.max.Z
		}
		out[i] = c
	}
	return out
}
