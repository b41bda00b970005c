package spatialmath

import (
	"math"

	"github.com/pkg/errors"
)

// FrustumPlane indexes the six planes bounding a Frustum.
type FrustumPlane int

// The planes of a frustum.
const (
	FrustumNear FrustumPlane = iota
	FrustumFar
	FrustumLeft
	FrustumRight
	FrustumTop
	FrustumBottom
)

// Frustum is a pyramid with its apex cut off, as seen by a camera. It looks along the +X
// axis of its pose with +Z up. All planes have normals pointing into the frustum.
type Frustum struct {
	near   float64
	far    float64
	fov    Angle
	aspect float64
	pose   Posed
	planes [6]Planed
}

// NewFrustum returns a frustum from its near and far distances, horizontal field of view,
// aspect ratio (width / height) and pose.
func NewFrustum(near, far float64, fov Angle, aspectRatio float64, pose Posed) (*Frustum, error) {
	f := &Frustum{near: near, far: far, fov: fov, aspect: aspectRatio, pose: pose}
	if err := f.computePlanes(); err != nil {
		return nil, err
	}
	return f, nil
}

func newBadFrustumError(msg string, args ...interface{}) error {
	return errors.Errorf("invalid frustum: "+msg, args...)
}

func (f *Frustum) validate() error {
	if f.near < 0 {
		return newBadFrustumError("near distance %v is negative", f.near)
	}
	if f.far <= f.near {
		return newBadFrustumError("far distance %v must exceed near distance %v", f.far, f.near)
	}
	if f.fov.Radian() <= 0 || f.fov.Radian() >= math.Pi {
		return newBadFrustumError("field of view %v must be in (0, pi)", f.fov)
	}
	if f.aspect <= 0 {
		return newBadFrustumError("aspect ratio %v must be positive", f.aspect)
	}
	return nil
}

func (f *Frustum) computePlanes() error {
	if err := f.validate(); err != nil {
		return err
	}
	rot := f.pose.Rot
	forward := rot.RotateVector(UnitX[float64]())
	left := rot.RotateVector(UnitY[float64]())
	up := rot.RotateVector(UnitZ[float64]())
	apex := f.pose.Pos

	tanH := math.Tan(f.fov.Radian() / 2)
	tanV := tanH / f.aspect

	normals := [6]Vector3d{
		FrustumNear:   forward,
		FrustumFar:    forward.Neg(),
		FrustumLeft:   forward.Mul(tanH).Sub(left),
		FrustumRight:  forward.Mul(tanH).Add(left),
		FrustumTop:    forward.Mul(tanV).Sub(up),
		FrustumBottom: forward.Mul(tanV).Add(up),
	}
	points := [6]Vector3d{
		FrustumNear: apex.Add(forward.Mul(f.near)),
		FrustumFar:  apex.Add(forward.Mul(f.far)),
	}
	for i := FrustumLeft; i <= FrustumBottom; i++ {
		points[i] = apex
	}
	for i, n := range normals {
		p, err := NewPlane(n, n.Dot(points[i]))
		if err != nil {
			return err
		}
		f.planes[i] = p
	}
	return nil
}

// Near returns the distance to the near plane.
func (f *Frustum) Near() float64 { return f.near }

// Far returns the distance to the far plane.
func (f *Frustum) Far() float64 { return f.far }

// FOV returns the horizontal field of view.
func (f *Frustum) FOV() Angle { return f.fov }

// AspectRatio returns width / height.
func (f *Frustum) AspectRatio() float64 { return f.aspect }

// Pose returns the pose of the frustum's apex.
func (f *Frustum) Pose() Posed { return f.pose }

// Plane returns one of the six bounding planes.
func (f *Frustum) Plane(p FrustumPlane) Planed { return f.planes[p] }

// SetNear sets the near distance.
func (f *Frustum) SetNear(near float64) error {
	return f.update(func(c *Frustum) { c.near = near })
}

// SetFar sets the far distance.
func (f *Frustum) SetFar(far float64) error {
	return f.update(func(c *Frustum) { c.far = far })
}

// SetFOV sets the horizontal field of view.
func (f *Frustum) SetFOV(fov Angle) error {
	return f.update(func(c *Frustum) { c.fov = fov })
}

// SetAspectRatio sets width / height.
func (f *Frustum) SetAspectRatio(aspect float64) error {
	return f.update(func(c *Frustum) { c.aspect = aspect })
}

// SetPose moves the frustum.
func (f *Frustum) SetPose(pose Posed) error {
	return f.update(func(c *Frustum) { c.pose = pose })
}

// update applies change to a copy and only keeps it if the result is a valid frustum.
func (f *Frustum) update(change func(*Frustum)) error {
	c := *f
	change(&c)
	if err := c.computePlanes(); err != nil {
		return err
	}
	*f = c
	return nil
}

// Contains returns whether pt is inside the frustum or on its boundary.
func (f *Frustum) Contains(pt Vector3d) bool {
	for _, p := range f.planes {
		if p.Distance(pt) < 0 {
			return false
		}
	}
	return true
}

// ContainsBox returns false only if the whole box lies outside one of the frustum planes.
// Boxes near a corner of the frustum may be reported as contained.
func (f *Frustum) ContainsBox(b AxisAlignedBoxd) bool {
	corners := b.Corners()
	for _, p := range f.planes {
		outside := true
		for _, c := range corners {
			if p.Distance(c) >= 0 {
				outside = false
				break
			}
		}
		if outside {
			return false
		}
	}
	return true
}
