package spatialmath

import (
	"github.com/pkg/errors"

	"go.viam.com/gzmath/utils"
)

// PlaneSide says on which side of a plane a point lies.
type PlaneSide int

// The sides of a plane. PositiveSide is the side the normal points to.
const (
	OnPlane PlaneSide = iota
	PositiveSide
	NegativeSide
)

// Plane is the set of points x with Normal.Dot(x) == Offset. Normal has unit length.
type Plane[T utils.Float] struct {
	normal Vector3[T]
	offset T
}

// Planed and Planef are the double and single precision planes.
type (
	Planed = Plane[float64]
	Planef = Plane[float32]
)

// NewPlane returns the plane normal.Dot(x) == offset, scaled so the normal has unit length.
func NewPlane[T utils.Float](normal Vector3[T], offset T) (Plane[T], error) {
	l := normal.Length()
	if l == 0 {
		return Plane[T]{}, errors.New("plane normal must be non-zero")
	}
	return Plane[T]{normal: normal.Div(l), offset: offset / l}, nil
}

// NewPlaneFromPoints returns the plane through a, b and c, with the normal (b-a) x (c-a).
func NewPlaneFromPoints[T utils.Float](a, b, c Vector3[T]) (Plane[T], error) {
	n := b.Sub(a).Cross(c.Sub(a))
	if n.Length() == 0 {
		return Plane[T]{}, errors.New("cannot build a plane from collinear points")
	}
	n = n.Normalized()
	return Plane[T]{normal: n, offset: n.Dot(a)}, nil
}

// Normal returns the unit normal.
func (p Plane[T]) Normal() Vector3[T] {
	return p.normal
}

// Offset returns the signed distance of the plane from the origin along the normal.
func (p Plane[T]) Offset() T {
	return p.offset
}

// Distance returns the signed distance of pt from the plane; positive on the side the normal points to.
func (p Plane[T]) Distance(pt Vector3[T]) T {
	return p.normal.Dot(pt) - p.offset
}

// Side returns the side of the plane pt lies on.
func (p Plane[T]) Side(pt Vector3[T]) PlaneSide {
	d := p.Distance(pt)
	switch {
	case d > 0:
		return PositiveSide
	case d < 0:
		return NegativeSide
	default:
		return OnPlane
	}
}

// Intersect returns where the segment crosses the plane. A segment lying in the plane
// intersects at its start.
func (p Plane[T]) Intersect(l Line3[T]) (Vector3[T], bool) {
	d0 := p.Distance(l.Start)
	d1 := p.Distance(l.End)
	if (d0 > 0 && d1 > 0) || (d0 < 0 && d1 < 0) {
		return Vector3[T]{}, false
	}
	if d0 == d1 {
		return l.Start, true
	}
	t := d0 / (d0 - d1)
	return l.Start.Add(l.End.Sub(l.Start).Mul(t)), true
}
