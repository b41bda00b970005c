package spatialmath

import (
	"go.viam.com/gzmath/utils"
)

// Line3 is a line segment between two points.
type Line3[T utils.Float] struct {
	Start Vector3[T] `json:"start"`
	End   Vector3[T] `json:"end"`
}

// Line3d and Line3f are the double and single precision segments.
type (
	Line3d = Line3[float64]
	Line3f = Line3[float32]
)

// NewLine3 returns the segment from start to end.
func NewLine3[T utils.Float](start, end Vector3[T]) Line3[T] {
	return Line3[T]{Start: start, End: end}
}

// Length returns the length of the segment.
func (l Line3[T]) Length() T {
	return l.Start.Distance(l.End)
}

// Direction returns the unit vector from Start to End.
func (l Line3[T]) Direction() Vector3[T] {
	return l.End.Sub(l.Start).Normalized()
}

// ClosestPoint returns the point on the segment closest to pt.
func (l Line3[T]) ClosestPoint(pt Vector3[T]) Vector3[T] {
	seg := l.End.Sub(l.Start)
	lenSq := seg.SquaredLength()
	if lenSq == 0 {
		return l.Start
	}
	t := utils.Clamp(pt.Sub(l.Start).Dot(seg)/lenSq, 0, 1)
	return l.Start.Add(seg.Mul(t))
}

// Distance returns the distance from pt to the segment.
func (l Line3[T]) Distance(pt Vector3[T]) T {
	return pt.Distance(l.ClosestPoint(pt))
}

// Within returns whether pt lies on the segment, within tol.
func (l Line3[T]) Within(pt Vector3[T], tol float64) bool {
	return float64(l.Distance(pt)) <= tol
}
