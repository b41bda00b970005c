// Package config defines the file format describing a rigid body moving through a fluid.
package config

import (
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/gzmath/spatialmath"
	"go.viam.com/gzmath/utils"
)

// momentTolerance is the slack allowed when checking that principal moments are physically realizable.
const momentTolerance = 1e-6

// Body describes the inertia of a rigid body and, optionally, the added mass of the fluid around it.
// The inertia is either given directly or derived from an ellipsoid shape.
type Body struct {
	Name string  `json:"name" yaml:"name"`
	Mass float64 `json:"mass" yaml:"mass"`
	// COM is the center of mass in the link frame, "x y z".
	COM string `json:"com,omitempty" yaml:"com,omitempty"`
	// RPY orients the axes the inertia is expressed in, "roll pitch yaw" in radians.
	RPY       string          `json:"rpy,omitempty" yaml:"rpy,omitempty"`
	Inertia   *Inertia        `json:"inertia,omitempty" yaml:"inertia,omitempty"`
	Ellipsoid *EllipsoidShape `json:"ellipsoid,omitempty" yaml:"ellipsoid,omitempty"`
	AddedMass *AddedMass      `json:"added_mass,omitempty" yaml:"added_mass,omitempty"`
}

// Inertia holds the moments of inertia about the center of mass.
type Inertia struct {
	Ixx float64 `json:"ixx" yaml:"ixx"`
	Iyy float64 `json:"iyy" yaml:"iyy"`
	Izz float64 `json:"izz" yaml:"izz"`
	Ixy float64 `json:"ixy" yaml:"ixy"`
	Ixz float64 `json:"ixz" yaml:"ixz"`
	Iyz float64 `json:"iyz" yaml:"iyz"`
}

// EllipsoidShape derives the inertia from a solid ellipsoid. Its density comes from Material or
// Density when the body's mass is zero, and from the mass otherwise.
type EllipsoidShape struct {
	Radii    string  `json:"radii" yaml:"radii"`
	Material string  `json:"material,omitempty" yaml:"material,omitempty"`
	Density  float64 `json:"density,omitempty" yaml:"density,omitempty"`
}

// AddedMass holds the three 3x3 blocks of a fluid added mass matrix, row major. Omitted blocks are zero.
type AddedMass struct {
	XYZ    [][]float64 `json:"xyz,omitempty" yaml:"xyz,omitempty"`
	PQR    [][]float64 `json:"pqr,omitempty" yaml:"pqr,omitempty"`
	XYZPQR [][]float64 `json:"xyz_pqr,omitempty" yaml:"xyz_pqr,omitempty"`
}

func newBodyFieldError(field string, err error) error {
	return errors.Wrapf(err, "invalid %s", field)
}

// Validate returns every problem with the body, combined.
func (b *Body) Validate() error {
	var err error
	if !utils.IsFinite(b.Mass) || b.Mass < 0 {
		err = multierr.Append(err, errors.Errorf("mass must be a non-negative number, got %v", b.Mass))
	}
	if b.Inertia != nil && b.Mass == 0 {
		err = multierr.Append(err, errors.New("mass must be positive when inertia is given"))
	}
	if _, e := b.pose(); e != nil {
		err = multierr.Append(err, e)
	}
	if b.AddedMass != nil {
		err = multierr.Append(err, b.AddedMass.validate())
	}

	switch {
	case b.Inertia != nil && b.Ellipsoid != nil:
		err = multierr.Append(err, errors.New("inertia and ellipsoid are mutually exclusive"))
	case b.Inertia == nil && b.Ellipsoid == nil:
		err = multierr.Append(err, errors.New("one of inertia or ellipsoid is required"))
	case err == nil:
		// Only check the moments once everything they are built from is known to be good.
		mm, e := b.massMatrix()
		if e != nil {
			err = multierr.Append(err, e)
		} else if !mm.IsValid(momentTolerance) {
			err = multierr.Append(err, errors.Errorf(
				"mass %v and moments %v, %v are not physically realizable",
				mm.Mass(), mm.DiagonalMoments(), mm.OffDiagonalMoments()))
		}
	}
	return err
}

// Warnings lists problems that do not stop the body from being used.
func (b *Body) Warnings() []string {
	var warnings []string
	if b.AddedMass == nil {
		return warnings
	}
	for _, block := range []struct {
		field  string
		values [][]float64
	}{
		{"added_mass.xyz", b.AddedMass.XYZ},
		{"added_mass.pqr", b.AddedMass.PQR},
	} {
		m, err := toMatrix3(block.values)
		if err != nil || m.IsSymmetric(1e-9) {
			continue
		}
		warnings = append(warnings, fmt.Sprintf("%s is not symmetric; only its upper triangle is used", block.field))
	}
	return warnings
}

// SpatialInertial builds the body's spatial inertial.
func (b *Body) SpatialInertial() (spatialmath.SpatialInertial[float64], error) {
	if err := b.Validate(); err != nil {
		return spatialmath.SpatialInertial[float64]{}, err
	}
	mm, err := b.massMatrix()
	if err != nil {
		return spatialmath.SpatialInertial[float64]{}, err
	}
	pose, err := b.pose()
	if err != nil {
		return spatialmath.SpatialInertial[float64]{}, err
	}
	inertial := spatialmath.NewInertial(mm, pose)
	if b.AddedMass == nil {
		return spatialmath.NewSpatialInertial(inertial), nil
	}
	fam, err := b.AddedMass.fluidAddedMass()
	if err != nil {
		return spatialmath.SpatialInertial[float64]{}, err
	}
	return spatialmath.NewSpatialInertialWithFluid(inertial, fam), nil
}

func (b *Body) pose() (spatialmath.Posed, error) {
	pose := spatialmath.IdentityPose[float64]()
	if b.COM != "" {
		com, err := spatialmath.ParseVector3[float64](b.COM)
		if err != nil {
			return pose, newBodyFieldError("com", err)
		}
		pose.Pos = com
	}
	if b.RPY != "" {
		rpy, err := spatialmath.ParseVector3[float64](b.RPY)
		if err != nil {
			return pose, newBodyFieldError("rpy", err)
		}
		pose.Rot = spatialmath.QuaternionFromEuler(rpy.X, rpy.Y, rpy.Z)
	}
	return pose, nil
}

func (b *Body) massMatrix() (spatialmath.MassMatrix3d, error) {
	if b.Inertia != nil {
		in := b.Inertia
		return spatialmath.NewMassMatrix3(
			b.Mass,
			spatialmath.Vector3d{X: in.Ixx, Y: in.Iyy, Z: in.Izz},
			spatialmath.Vector3d{X: in.Ixy, Y: in.Ixz, Z: in.Iyz},
		), nil
	}
	e, err := b.Ellipsoid.ellipsoid()
	if err != nil {
		return spatialmath.MassMatrix3d{}, err
	}
	if b.Mass > 0 {
		if err := e.SetDensityFromMass(b.Mass); err != nil {
			return spatialmath.MassMatrix3d{}, newBodyFieldError("ellipsoid", err)
		}
	}
	mm, err := e.MassMatrix()
	if err != nil {
		return spatialmath.MassMatrix3d{}, newBodyFieldError("ellipsoid", err)
	}
	return mm, nil
}

func (s *EllipsoidShape) ellipsoid() (spatialmath.Ellipsoidd, error) {
	radii, err := spatialmath.ParseVector3[float64](s.Radii)
	if err != nil {
		return spatialmath.Ellipsoidd{}, newBodyFieldError("ellipsoid radii", err)
	}
	material := spatialmath.NewMaterial(s.Density)
	if s.Material != "" {
		if s.Density != 0 {
			return spatialmath.Ellipsoidd{}, errors.New("ellipsoid material and density are mutually exclusive")
		}
		if material, err = spatialmath.MaterialByName(s.Material); err != nil {
			return spatialmath.Ellipsoidd{}, newBodyFieldError("ellipsoid material", err)
		}
	}
	return spatialmath.NewEllipsoid(radii, material), nil
}

func (a *AddedMass) validate() error {
	var err error
	for _, block := range []struct {
		field  string
		values [][]float64
	}{
		{"added_mass.xyz", a.XYZ},
		{"added_mass.pqr", a.PQR},
		{"added_mass.xyz_pqr", a.XYZPQR},
	} {
		if _, e := toMatrix3(block.values); e != nil {
			err = multierr.Append(err, newBodyFieldError(block.field, e))
		}
	}
	return err
}

func (a *AddedMass) fluidAddedMass() (spatialmath.FluidAddedMass[float64], error) {
	xyz, err := toMatrix3(a.XYZ)
	if err != nil {
		return spatialmath.FluidAddedMass[float64]{}, err
	}
	pqr, err := toMatrix3(a.PQR)
	if err != nil {
		return spatialmath.FluidAddedMass[float64]{}, err
	}
	mixed, err := toMatrix3(a.XYZPQR)
	if err != nil {
		return spatialmath.FluidAddedMass[float64]{}, err
	}
	return spatialmath.NewFluidAddedMass(xyz, pqr, mixed), nil
}

// toMatrix3 converts rows of values. No rows is the zero matrix.
func toMatrix3(rows [][]float64) (spatialmath.Matrix3d, error) {
	var m spatialmath.Matrix3d
	if len(rows) == 0 {
		return m, nil
	}
	if len(rows) != 3 {
		return m, errors.Errorf("expected 3 rows but got %d", len(rows))
	}
	for i, row := range rows {
		if len(row) != 3 {
			return m, errors.Errorf("expected 3 columns in row %d but got %d", i, len(row))
		}
		for j, v := range row {
			if !utils.IsFinite(v) {
				return m, errors.Errorf("entry (%d, %d) is not finite", i, j)
			}
			m[i][j] = v
		}
	}
	return m, nil
}
