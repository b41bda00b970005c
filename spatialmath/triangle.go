package spatialmath

import (
	"math"

	"go.viam.com/gzmath/utils"
)

// triangleEpsilon is the slack allowed when testing whether a point lies inside a triangle.
const triangleEpsilon = 1e-6

// Triangle3 is a triangle in 3D space.
type Triangle3[T utils.Float] struct {
	pts [3]Vector3[T]
}

// Triangle3d and Triangle3f are the double and single precision triangles.
type (
	Triangle3d = Triangle3[float64]
	Triangle3f = Triangle3[float32]
)

// NewTriangle3 returns the triangle with vertices p0, p1 and p2.
func NewTriangle3[T utils.Float](p0, p1, p2 Vector3[T]) Triangle3[T] {
	return Triangle3[T]{pts: [3]Vector3[T]{p0, p1, p2}}
}

// Vertex returns vertex i.
func (t Triangle3[T]) Vertex(i int) (Vector3[T], error) {
	if i < 0 || i > 2 {
		return Vector3[T]{}, utils.NewIndexOutOfRangeError("vertex", i, 3)
	}
	return t.pts[i], nil
}

// Points returns the three vertices.
func (t Triangle3[T]) Points() [3]Vector3[T] {
	return t.pts
}

// Set replaces vertex i.
func (t *Triangle3[T]) Set(i int, v Vector3[T]) error {
	if i < 0 || i > 2 {
		return utils.NewIndexOutOfRangeError("vertex", i, 3)
	}
	t.pts[i] = v
	return nil
}

// SetVertices replaces all three vertices.
func (t *Triangle3[T]) SetVertices(p0, p1, p2 Vector3[T]) {
	t.pts = [3]Vector3[T]{p0, p1, p2}
}

// Side returns side i: 0 is p0-p1, 1 is p1-p2 and 2 is p2-p0.
func (t Triangle3[T]) Side(i int) (Line3[T], error) {
	if i < 0 || i > 2 {
		return Line3[T]{}, utils.NewIndexOutOfRangeError("side", i, 3)
	}
	return NewLine3(t.pts[i], t.pts[(i+1)%3]), nil
}

func (t Triangle3[T]) sideLengths() (T, T, T) {
	return t.pts[0].Distance(t.pts[1]), t.pts[1].Distance(t.pts[2]), t.pts[2].Distance(t.pts[0])
}

// Valid returns whether the sum of the lengths of any two sides is greater than the length of the third.
func (t Triangle3[T]) Valid() bool {
	a, b, c := t.sideLengths()
	return a+b > c && a+c > b && b+c > a
}

// Perimeter returns the sum of the side lengths.
func (t Triangle3[T]) Perimeter() T {
	a, b, c := t.sideLengths()
	return a + b + c
}

// Area returns the area of the triangle.
func (t Triangle3[T]) Area() T {
	return t.pts[1].Sub(t.pts[0]).Cross(t.pts[2].Sub(t.pts[0])).Length() / 2
}

// Normal returns the unit normal (p1-p0) x (p2-p0). Degenerate triangles have a zero normal.
func (t Triangle3[T]) Normal() Vector3[T] {
	return t.pts[1].Sub(t.pts[0]).Cross(t.pts[2].Sub(t.pts[0])).Normalized()
}

// Centroid returns the mean of the vertices.
func (t Triangle3[T]) Centroid() Vector3[T] {
	return t.pts[0].Add(t.pts[1]).Add(t.pts[2]).Div(3)
}

// ClosestInsidePoint returns the projection of point onto the triangle's plane, and whether
// that projection lies inside the triangle.
// To visualize this- if one draws a tetrahedron using the triangle and the query point, all angles from the triangle to the query point
// must be <= 90 degrees.
func (t Triangle3[T]) ClosestInsidePoint(point Vector3[T]) (Vector3[T], bool) {
	// Parametrize the triangle s.t. a point inside the triangle is
	// Q = p0 + u * e0 + v * e1, when 0 <= u <= 1, 0 <= v <= 1, and
	// 0 <= u + v <= 1. Let e0 = (p1 - p0) and e1 = (p2 - p0).
	// We analytically minimize the distance between the point pt and Q.
	e0 := t.pts[1].Sub(t.pts[0]).R3()
	e1 := t.pts[2].Sub(t.pts[0]).R3()
	a := e0.Norm2()
	b := e0.Dot(e1)
	c := e1.Norm2()
	d := point.Sub(t.pts[0]).R3()
	// The determinant is 0 only if the angle between e1 and e0 is 0
	// (i.e. the triangle has overlapping lines).
	det := a*c - b*b
	if det == 0 {
		return point, false
	}
	u := (c*e0.Dot(d) - b*e1.Dot(d)) / det
	v := (-b*e0.Dot(d) + a*e1.Dot(d)) / det
	eps := triangleEpsilon
	inside := (0 <= u+eps) && (u <= 1+eps) && (0 <= v+eps) && (v <= 1+eps) && (u+v <= 1+eps)
	return Vector3FromR3[T](t.pts[0].R3().Add(e0.Mul(u)).Add(e1.Mul(v))), inside
}

// ClosestPoint returns the point on the triangle closest to point.
func (t Triangle3[T]) ClosestPoint(point Vector3[T]) Vector3[T] {
	closestPtInside, inside := t.ClosestInsidePoint(point)
	if inside {
		return closestPtInside
	}

	// If the closest point is outside the triangle, it must be on an edge, so we
	// check each triangle edge for a closest point to the point pt.
	closestPt := NewLine3(t.pts[0], t.pts[1]).ClosestPoint(point)
	bestDist := point.Sub(closestPt).SquaredLength()

	newPt := NewLine3(t.pts[1], t.pts[2]).ClosestPoint(point)
	if newDist := point.Sub(newPt).SquaredLength(); newDist < bestDist {
		closestPt = newPt
		bestDist = newDist
	}

	newPt = NewLine3(t.pts[2], t.pts[0]).ClosestPoint(point)
	if newDist := point.Sub(newPt).SquaredLength(); newDist < bestDist {
		return newPt
	}
	return closestPt
}

// ContainsPoint returns whether pt lies in the triangle's plane and inside its edges.
func (t Triangle3[T]) ContainsPoint(pt Vector3[T]) bool {
	if !t.Valid() {
		return false
	}
	proj, inside := t.ClosestInsidePoint(pt)
	return inside && float64(proj.Distance(pt)) <= triangleEpsilon
}

// ContainsLine returns whether the triangle completely contains the segment.
func (t Triangle3[T]) ContainsLine(l Line3[T]) bool {
	return t.ContainsPoint(l.Start) && t.ContainsPoint(l.End)
}

// Intersects returns whether the segment touches the triangle, and a point where it does.
func (t Triangle3[T]) Intersects(l Line3[T]) (Vector3[T], bool) {
	plane, err := NewPlaneFromPoints(t.pts[0], t.pts[1], t.pts[2])
	if err != nil {
		return Vector3[T]{}, false
	}
	d0 := plane.Distance(l.Start)
	d1 := plane.Distance(l.End)
	if math.Abs(float64(d0)) <= triangleEpsilon && math.Abs(float64(d1)) <= triangleEpsilon {
		// Coplanar: an endpoint inside the triangle, or a crossing with one of its edges.
		if t.ContainsPoint(l.Start) {
			return l.Start, true
		}
		if t.ContainsPoint(l.End) {
			return l.End, true
		}
		for i := 0; i < 3; i++ {
			side, _ := t.Side(i)
			if pt, ok := segmentsClosestPoint(side, l); ok {
				return pt, true
			}
		}
		return Vector3[T]{}, false
	}
	pt, ok := plane.Intersect(l)
	if !ok {
		return Vector3[T]{}, false
	}
	return pt, t.ContainsPoint(pt)
}

// IntersectsPlane determines if the triangle intersects with a plane.
// Returns true if the triangle intersects with or lies on the plane.
func (t Triangle3[T]) IntersectsPlane(plane Plane[T]) bool {
	// If all points are on the same side of the plane (all distances positive or all negative),
	// there is no intersection
	above, below := 0, 0
	for _, p := range t.pts {
		d := float64(plane.Distance(p))
		if d > triangleEpsilon {
			above++
		} else if d < -triangleEpsilon {
			below++
		}
	}
	return above != 3 && below != 3
}

// segmentsClosestPoint returns a point shared by two coplanar segments, if they touch.
func segmentsClosestPoint[T utils.Float](a, b Line3[T]) (Vector3[T], bool) {
	// Solve a.Start + s*da = b.Start + u*db in the least squares sense.
	da := a.End.Sub(a.Start).R3()
	db := b.End.Sub(b.Start).R3()
	r := a.Start.Sub(b.Start).R3()
	aa := da.Dot(da)
	bb := db.Dot(db)
	ab := da.Dot(db)
	det := aa*bb - ab*ab
	if det == 0 {
		// Parallel: they touch only if an endpoint of one lies on the other.
		for _, pt := range []Vector3[T]{b.Start, b.End} {
			if a.Within(pt, triangleEpsilon) {
				return pt, true
			}
		}
		for _, pt := range []Vector3[T]{a.Start, a.End} {
			if b.Within(pt, triangleEpsilon) {
				return pt, true
			}
		}
		return Vector3[T]{}, false
	}
	s := utils.Clamp((ab*db.Dot(r)-bb*da.Dot(r))/det, 0, 1)
	pt := Vector3FromR3[T](a.Start.R3().Add(da.Mul(s)))
	if b.Within(pt, triangleEpsilon) {
		return pt, true
	}
	return Vector3[T]{}, false
}
