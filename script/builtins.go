package script

import (
	"sort"
	"strings"
	"time"

	zygo "github.com/glycerine/zygomys/zygo"
	"github.com/pkg/errors"

	"go.viam.com/gzmath/control"
	"go.viam.com/gzmath/spatialmath"
)

// defaultTolerance is used by predicates when no tolerance is given.
const defaultTolerance = 1e-9

// Builtin is a function made available to scripts.
type Builtin struct {
	// Name is the kebab-case name scripts call the builtin by.
	Name    string
	Doc     string
	MinArgs int
	// MaxArgs of -1 means any number of arguments.
	MaxArgs int
	fn      func(args []zygo.Sexp) (zygo.Sexp, error)
}

// Builtins lists every builtin, sorted by name.
func Builtins() []Builtin {
	out := append([]Builtin(nil), builtins...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func newArityError(b Builtin, got int) error {
	switch {
	case b.MaxArgs < 0:
		return errors.Errorf("expected at least %d arguments but got %d", b.MinArgs, got)
	case b.MinArgs == b.MaxArgs:
		return errors.Errorf("expected %d arguments but got %d", b.MinArgs, got)
	default:
		return errors.Errorf("expected %d to %d arguments but got %d", b.MinArgs, b.MaxArgs, got)
	}
}

func registerBuiltins(env *zygo.Zlisp) {
	for _, b := range builtins {
		b := b
		env.AddFunction(strings.ReplaceAll(b.Name, "-", "_"), func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if len(args) < b.MinArgs || (b.MaxArgs >= 0 && len(args) > b.MaxArgs) {
				return zygo.SexpNull, errors.Wrap(newArityError(b, len(args)), b.Name)
			}
			res, err := b.fn(args)
			if err != nil {
				return zygo.SexpNull, errors.Wrap(err, b.Name)
			}
			return res, nil
		})
	}
}

// tolerance reads an optional tolerance argument at index i.
func tolerance(args []zygo.Sexp, i int) (float64, error) {
	if len(args) <= i {
		return defaultTolerance, nil
	}
	return toFloat64(args[i])
}

var builtins = []Builtin{
	{Name: "vector3", Doc: "(vector3 x y z) makes a vector", MinArgs: 3, MaxArgs: 3, fn: func(args []zygo.Sexp) (zygo.Sexp, error) {
		fs, err := toFloats(args)
		if err != nil {
			return nil, err
		}
		return wrap("vector3", spatialmath.NewVector3(fs[0], fs[1], fs[2])), nil
	}},
	{Name: "vec-x", Doc: "(vec-x v) returns the x component", MinArgs: 1, MaxArgs: 1, fn: vectorComponent(0)},
	{Name: "vec-y", Doc: "(vec-y v) returns the y component", MinArgs: 1, MaxArgs: 1, fn: vectorComponent(1)},
	{Name: "vec-z", Doc: "(vec-z v) returns the z component", MinArgs: 1, MaxArgs: 1, fn: vectorComponent(2)},
	{Name: "vec-add", Doc: "(vec-add a b) adds two vectors", MinArgs: 2, MaxArgs: 2, fn: func(args []zygo.Sexp) (zygo.Sexp, error) {
		a, b, err := twoVectors(args)
		if err != nil {
			return nil, err
		}
		return wrap("vector3", a.Add(b)), nil
	}},
	{Name: "vec-dot", Doc: "(vec-dot a b) returns the dot product", MinArgs: 2, MaxArgs: 2, fn: func(args []zygo.Sexp) (zygo.Sexp, error) {
		a, b, err := twoVectors(args)
		if err != nil {
			return nil, err
		}
		return number(a.Dot(b)), nil
	}},
	{Name: "vec-cross", Doc: "(vec-cross a b) returns the cross product", MinArgs: 2, MaxArgs: 2, fn: func(args []zygo.Sexp) (zygo.Sexp, error) {
		a, b, err := twoVectors(args)
		if err != nil {
			return nil, err
		}
		return wrap("vector3", a.Cross(b)), nil
	}},
	{Name: "vec-length", Doc: "(vec-length v) returns the length", MinArgs: 1, MaxArgs: 1, fn: func(args []zygo.Sexp) (zygo.Sexp, error) {
		v, err := toVector3(args[0])
		if err != nil {
			return nil, err
		}
		return number(v.Length()), nil
	}},
	{
		Name:    "matrix3",
		Doc:     "(matrix3 v00 v01 v02 v10 v11 v12 v20 v21 v22) or (matrix3 row0 row1 row2) makes a 3x3 matrix",
		MinArgs: 3,
		MaxArgs: 9,
		fn:      matrix3,
	},
	{Name: "diag3", Doc: "(diag3 v) or (diag3 a b c) makes a diagonal 3x3 matrix", MinArgs: 1, MaxArgs: 3, fn: func(args []zygo.Sexp) (zygo.Sexp, error) {
		var d spatialmath.Vector3d
		switch len(args) {
		case 1:
			v, err := toVector3(args[0])
			if err != nil {
				return nil, err
			}
			d = v
		case 3:
			fs, err := toFloats(args)
			if err != nil {
				return nil, err
			}
			d = spatialmath.NewVector3(fs[0], fs[1], fs[2])
		default:
			return nil, errors.Errorf("expected 1 or 3 arguments but got %d", len(args))
		}
		return wrap("matrix3", spatialmath.DiagonalMatrix3(d)), nil
	}},
	{Name: "mat-at", Doc: "(mat-at m row col) returns an entry of a 3x3 or 6x6 matrix", MinArgs: 3, MaxArgs: 3, fn: func(args []zygo.Sexp) (zygo.Sexp, error) {
		r, err := toInt(args[1])
		if err != nil {
			return nil, err
		}
		c, err := toInt(args[2])
		if err != nil {
			return nil, err
		}
		switch m := args[0].(type) {
		case *value[spatialmath.Matrix3d]:
			if r < 0 || r > 2 || c < 0 || c > 2 {
				return nil, errors.Errorf("entry (%d, %d) is outside a 3x3 matrix", r, c)
			}
			return number(m.val.At(r, c)), nil
		case *value[spatialmath.Matrix6d]:
			if r < 0 || r > 5 || c < 0 || c > 5 {
				return nil, errors.Errorf("entry (%d, %d) is outside a 6x6 matrix", r, c)
			}
			return number(m.val.At(r, c)), nil
		}
		return nil, newWrongTypeError("matrix3 or matrix6", args[0])
	}},
	{Name: "transpose", Doc: "(transpose m) transposes a 3x3 or 6x6 matrix", MinArgs: 1, MaxArgs: 1, fn: func(args []zygo.Sexp) (zygo.Sexp, error) {
		switch m := args[0].(type) {
		case *value[spatialmath.Matrix3d]:
			return wrap("matrix3", m.val.Transpose()), nil
		case *value[spatialmath.Matrix6d]:
			return wrap("matrix6", m.val.Transpose()), nil
		}
		return nil, newWrongTypeError("matrix3 or matrix6", args[0])
	}},
	{Name: "is-symmetric", Doc: "(is-symmetric m [tol]) reports whether a 3x3 or 6x6 matrix is symmetric", MinArgs: 1, MaxArgs: 2, fn: func(args []zygo.Sexp) (zygo.Sexp, error) {
		tol, err := tolerance(args, 1)
		if err != nil {
			return nil, err
		}
		switch m := args[0].(type) {
		case *value[spatialmath.Matrix3d]:
			return boolean(m.val.IsSymmetric(tol)), nil
		case *value[spatialmath.Matrix6d]:
			return boolean(m.val.IsSymmetric(tol)), nil
		}
		return nil, newWrongTypeError("matrix3 or matrix6", args[0])
	}},
	{Name: "angle", Doc: "(angle radians) makes an angle", MinArgs: 1, MaxArgs: 1, fn: func(args []zygo.Sexp) (zygo.Sexp, error) {
		f, err := toFloat64(args[0])
		if err != nil {
			return nil, err
		}
		return wrap("angle", spatialmath.NewAngle(f)), nil
	}},
	{Name: "angle-degrees", Doc: "(angle-degrees degrees) makes an angle", MinArgs: 1, MaxArgs: 1, fn: func(args []zygo.Sexp) (zygo.Sexp, error) {
		f, err := toFloat64(args[0])
		if err != nil {
			return nil, err
		}
		return wrap("angle", spatialmath.AngleFromDegrees(f)), nil
	}},
	{Name: "radians", Doc: "(radians a) returns an angle in radians", MinArgs: 1, MaxArgs: 1, fn: func(args []zygo.Sexp) (zygo.Sexp, error) {
		a, err := toAngle(args[0])
		if err != nil {
			return nil, err
		}
		return number(a.Radian()), nil
	}},
	{Name: "degrees", Doc: "(degrees a) returns an angle in degrees", MinArgs: 1, MaxArgs: 1, fn: func(args []zygo.Sexp) (zygo.Sexp, error) {
		a, err := toAngle(args[0])
		if err != nil {
			return nil, err
		}
		return number(a.Degree()), nil
	}},
	{Name: "normalize-angle", Doc: "(normalize-angle a) wraps an angle into [-pi, pi]", MinArgs: 1, MaxArgs: 1, fn: func(args []zygo.Sexp) (zygo.Sexp, error) {
		a, err := toAngle(args[0])
		if err != nil {
			return nil, err
		}
		return wrap("angle", a.Normalized()), nil
	}},
	{
		Name:    "fluid-added-mass",
		Doc:     "(fluid-added-mass xyz pqr xyz-pqr) makes a fluid added mass from its three 3x3 blocks",
		MinArgs: 3,
		MaxArgs: 3,
		fn: func(args []zygo.Sexp) (zygo.Sexp, error) {
			var blocks [3]spatialmath.Matrix3d
			for i, a := range args {
				m, err := unwrap[spatialmath.Matrix3d](a, "matrix3")
				if err != nil {
					return nil, errors.Wrapf(err, "argument %d", i)
				}
				blocks[i] = m
			}
			return wrap("fluid-added-mass", spatialmath.NewFluidAddedMass(blocks[0], blocks[1], blocks[2])), nil
		},
	},
	{
		Name:    "mass-matrix3",
		Doc:     "(mass-matrix3 mass diagonal [off-diagonal]) makes a mass matrix from moments (ixx iyy izz) and (ixy ixz iyz)",
		MinArgs: 2,
		MaxArgs: 3,
		fn: func(args []zygo.Sexp) (zygo.Sexp, error) {
			mass, err := toFloat64(args[0])
			if err != nil {
				return nil, err
			}
			diag, err := toVector3(args[1])
			if err != nil {
				return nil, err
			}
			var off spatialmath.Vector3d
			if len(args) == 3 {
				if off, err = toVector3(args[2]); err != nil {
					return nil, err
				}
			}
			return wrap("mass-matrix3", spatialmath.NewMassMatrix3(mass, diag, off)), nil
		},
	},
	{Name: "mass", Doc: "(mass m) returns the mass of a mass matrix or inertial", MinArgs: 1, MaxArgs: 1, fn: func(args []zygo.Sexp) (zygo.Sexp, error) {
		switch m := args[0].(type) {
		case *value[spatialmath.MassMatrix3d]:
			return number(m.val.Mass()), nil
		case *value[spatialmath.Inertiald]:
			return number(m.val.MassMatrix().Mass()), nil
		}
		return nil, newWrongTypeError("mass-matrix3 or inertial", args[0])
	}},
	{Name: "inertial", Doc: "(inertial mass-matrix [com]) places a mass matrix at a center of mass", MinArgs: 1, MaxArgs: 2, fn: func(args []zygo.Sexp) (zygo.Sexp, error) {
		mm, err := unwrap[spatialmath.MassMatrix3d](args[0], "mass-matrix3")
		if err != nil {
			return nil, err
		}
		pose := spatialmath.IdentityPose[float64]()
		if len(args) == 2 {
			com, err := toVector3(args[1])
			if err != nil {
				return nil, err
			}
			pose = spatialmath.NewPoseFromPoint(com)
		}
		return wrap("inertial", spatialmath.NewInertial(mm, pose)), nil
	}},
	{
		Name:    "spatial-inertial",
		Doc:     "(spatial-inertial inertial [fluid-added-mass]) pairs an inertial with an optional added mass",
		MinArgs: 1,
		MaxArgs: 2,
		fn: func(args []zygo.Sexp) (zygo.Sexp, error) {
			in, err := unwrap[spatialmath.Inertiald](args[0], "inertial")
			if err != nil {
				return nil, err
			}
			if len(args) == 1 {
				return wrap("spatial-inertial", spatialmath.NewSpatialInertial(in)), nil
			}
			fam, err := unwrap[spatialmath.FluidAddedMassd](args[1], "fluid-added-mass")
			if err != nil {
				return nil, err
			}
			return wrap("spatial-inertial", spatialmath.NewSpatialInertialWithFluid(in, fam)), nil
		},
	},
	{
		Name:    "spatial-inertia-matrix",
		Doc:     "(spatial-inertia-matrix x) returns the 6x6 matrix of an inertial, fluid added mass or spatial inertial",
		MinArgs: 1,
		MaxArgs: 1,
		fn: func(args []zygo.Sexp) (zygo.Sexp, error) {
			var m spatialmath.Matrix6d
			switch v := args[0].(type) {
			case *value[spatialmath.Inertiald]:
				m = v.val.SpatialInertiaMatrix()
			case *value[spatialmath.FluidAddedMassd]:
				m = v.val.SpatialInertiaMatrix()
			case *value[spatialmath.SpatialInertiald]:
				m = v.val.SpatialInertiaMatrix()
			default:
				return nil, newWrongTypeError("inertial, fluid-added-mass or spatial-inertial", args[0])
			}
			return wrap("matrix6", m), nil
		},
	},
	{Name: "material", Doc: `(material "name") looks up a material, (material density) makes one`, MinArgs: 1, MaxArgs: 1, fn: func(args []zygo.Sexp) (zygo.Sexp, error) {
		if name, err := toString(args[0]); err == nil {
			m, err := spatialmath.MaterialByName(name)
			if err != nil {
				return nil, err
			}
			return wrap("material", m), nil
		}
		d, err := toFloat64(args[0])
		if err != nil {
			return nil, newWrongTypeError("material name or density", args[0])
		}
		return wrap("material", spatialmath.NewMaterial(d)), nil
	}},
	{Name: "density", Doc: "(density x) returns the density of a material or ellipsoid", MinArgs: 1, MaxArgs: 1, fn: func(args []zygo.Sexp) (zygo.Sexp, error) {
		switch v := args[0].(type) {
		case *value[spatialmath.Material]:
			return number(v.val.Density), nil
		case *value[spatialmath.Ellipsoidd]:
			return number(v.val.Material().Density), nil
		}
		return nil, newWrongTypeError("material or ellipsoid", args[0])
	}},
	{Name: "ellipsoid", Doc: "(ellipsoid radii [material]) makes a solid ellipsoid", MinArgs: 1, MaxArgs: 2, fn: func(args []zygo.Sexp) (zygo.Sexp, error) {
		radii, err := toVector3(args[0])
		if err != nil {
			return nil, err
		}
		var m spatialmath.Material
		if len(args) == 2 {
			if m, err = unwrap[spatialmath.Material](args[1], "material"); err != nil {
				return nil, err
			}
		}
		return wrap("ellipsoid", spatialmath.NewEllipsoid(radii, m)), nil
	}},
	{Name: "volume", Doc: "(volume e) returns the volume of an ellipsoid", MinArgs: 1, MaxArgs: 1, fn: func(args []zygo.Sexp) (zygo.Sexp, error) {
		e, err := unwrap[spatialmath.Ellipsoidd](args[0], "ellipsoid")
		if err != nil {
			return nil, err
		}
		return number(e.Volume()), nil
	}},
	{Name: "mass-matrix", Doc: "(mass-matrix e) returns the mass matrix of an ellipsoid", MinArgs: 1, MaxArgs: 1, fn: func(args []zygo.Sexp) (zygo.Sexp, error) {
		e, err := unwrap[spatialmath.Ellipsoidd](args[0], "ellipsoid")
		if err != nil {
			return nil, err
		}
		mm, err := e.MassMatrix()
		if err != nil {
			return nil, err
		}
		return wrap("mass-matrix3", mm), nil
	}},
	{
		Name:    "density-from-mass",
		Doc:     "(density-from-mass e mass) returns the density that gives an ellipsoid the mass",
		MinArgs: 2,
		MaxArgs: 2,
		fn: func(args []zygo.Sexp) (zygo.Sexp, error) {
			e, err := unwrap[spatialmath.Ellipsoidd](args[0], "ellipsoid")
			if err != nil {
				return nil, err
			}
			mass, err := toFloat64(args[1])
			if err != nil {
				return nil, err
			}
			d, err := e.DensityFromMass(mass)
			if err != nil {
				return nil, err
			}
			return number(d), nil
		},
	},
	{Name: "triangle3", Doc: "(triangle3 a b c) makes a triangle", MinArgs: 3, MaxArgs: 3, fn: func(args []zygo.Sexp) (zygo.Sexp, error) {
		var pts [3]spatialmath.Vector3d
		for i, a := range args {
			v, err := toVector3(a)
			if err != nil {
				return nil, errors.Wrapf(err, "argument %d", i)
			}
			pts[i] = v
		}
		return wrap("triangle3", spatialmath.NewTriangle3(pts[0], pts[1], pts[2])), nil
	}},
	{Name: "area", Doc: "(area t) returns the area of a triangle", MinArgs: 1, MaxArgs: 1, fn: func(args []zygo.Sexp) (zygo.Sexp, error) {
		t, err := unwrap[spatialmath.Triangle3d](args[0], "triangle3")
		if err != nil {
			return nil, err
		}
		return number(t.Area()), nil
	}},
	{Name: "perimeter", Doc: "(perimeter t) returns the perimeter of a triangle", MinArgs: 1, MaxArgs: 1, fn: func(args []zygo.Sexp) (zygo.Sexp, error) {
		t, err := unwrap[spatialmath.Triangle3d](args[0], "triangle3")
		if err != nil {
			return nil, err
		}
		return number(t.Perimeter()), nil
	}},
	{Name: "normal", Doc: "(normal t) returns the unit normal of a triangle", MinArgs: 1, MaxArgs: 1, fn: func(args []zygo.Sexp) (zygo.Sexp, error) {
		t, err := unwrap[spatialmath.Triangle3d](args[0], "triangle3")
		if err != nil {
			return nil, err
		}
		return wrap("vector3", t.Normal()), nil
	}},
	{
		Name:    "is-valid",
		Doc:     "(is-valid x [tol]) reports whether a triangle is non-degenerate or a mass matrix is physically realizable",
		MinArgs: 1,
		MaxArgs: 2,
		fn: func(args []zygo.Sexp) (zygo.Sexp, error) {
			tol, err := tolerance(args, 1)
			if err != nil {
				return nil, err
			}
			switch v := args[0].(type) {
			case *value[spatialmath.Triangle3d]:
				return boolean(v.val.Valid()), nil
			case *value[spatialmath.MassMatrix3d]:
				return boolean(v.val.IsValid(tol)), nil
			}
			return nil, newWrongTypeError("triangle3 or mass-matrix3", args[0])
		},
	},
	{
		Name:    "frustum",
		Doc:     "(frustum near far fov aspect-ratio [position]) makes a frustum looking along +x",
		MinArgs: 4,
		MaxArgs: 5,
		fn: func(args []zygo.Sexp) (zygo.Sexp, error) {
			near, err := toFloat64(args[0])
			if err != nil {
				return nil, err
			}
			far, err := toFloat64(args[1])
			if err != nil {
				return nil, err
			}
			fov, err := toAngle(args[2])
			if err != nil {
				return nil, err
			}
			aspect, err := toFloat64(args[3])
			if err != nil {
				return nil, err
			}
			pose := spatialmath.IdentityPose[float64]()
			if len(args) == 5 {
				pos, err := toVector3(args[4])
				if err != nil {
					return nil, err
				}
				pose = spatialmath.NewPoseFromPoint(pos)
			}
			f, err := spatialmath.NewFrustum(near, far, fov, aspect, pose)
			if err != nil {
				return nil, err
			}
			return wrap("frustum", *f), nil
		},
	},
	{Name: "contains", Doc: "(contains frustum point) reports whether a frustum contains a point", MinArgs: 2, MaxArgs: 2, fn: func(args []zygo.Sexp) (zygo.Sexp, error) {
		f, err := unwrap[spatialmath.Frustum](args[0], "frustum")
		if err != nil {
			return nil, err
		}
		pt, err := toVector3(args[1])
		if err != nil {
			return nil, err
		}
		return boolean(f.Contains(pt)), nil
	}},
	{Name: "pid", Doc: "(pid p i d) makes a PID controller with no limits", MinArgs: 3, MaxArgs: 3, fn: func(args []zygo.Sexp) (zygo.Sexp, error) {
		fs, err := toFloats(args)
		if err != nil {
			return nil, err
		}
		cfg := control.DefaultPIDConfig()
		cfg.PGain, cfg.IGain, cfg.DGain = fs[0], fs[1], fs[2]
		p, err := control.NewPID(cfg)
		if err != nil {
			return nil, err
		}
		return &pidValue{pid: p}, nil
	}},
	{
		Name:    "pid-update",
		Doc:     "(pid-update pid error dt) steps a PID by dt seconds and returns its command",
		MinArgs: 3,
		MaxArgs: 3,
		fn: func(args []zygo.Sexp) (zygo.Sexp, error) {
			p, err := toPID(args[0])
			if err != nil {
				return nil, err
			}
			stateErr, err := toFloat64(args[1])
			if err != nil {
				return nil, err
			}
			dt, err := toFloat64(args[2])
			if err != nil {
				return nil, err
			}
			return number(p.Update(stateErr, time.Duration(dt*float64(time.Second)))), nil
		},
	},
	{
		Name:    "copy",
		Doc:     "(copy x) copies a value; a copied PID has the same gains and a reset state",
		MinArgs: 1,
		MaxArgs: 1,
		fn: func(args []zygo.Sexp) (zygo.Sexp, error) {
			switch v := args[0].(type) {
			case *pidValue:
				p, err := control.NewPID(v.pid.Config())
				if err != nil {
					return nil, err
				}
				return &pidValue{pid: p}, nil
			case copier:
				return v.copy(), nil
			}
			return args[0], nil
		},
	},
}

type copier interface {
	copy() zygo.Sexp
}

func (v *value[T]) copy() zygo.Sexp { return wrap(v.kind, v.val) }

func vectorComponent(i int) func(args []zygo.Sexp) (zygo.Sexp, error) {
	return func(args []zygo.Sexp) (zygo.Sexp, error) {
		v, err := toVector3(args[0])
		if err != nil {
			return nil, err
		}
		return number(v.Index(i)), nil
	}
}

func twoVectors(args []zygo.Sexp) (spatialmath.Vector3d, spatialmath.Vector3d, error) {
	a, err := toVector3(args[0])
	if err != nil {
		return a, a, errors.Wrap(err, "argument 0")
	}
	b, err := toVector3(args[1])
	if err != nil {
		return a, b, errors.Wrap(err, "argument 1")
	}
	return a, b, nil
}

func matrix3(args []zygo.Sexp) (zygo.Sexp, error) {
	var m spatialmath.Matrix3d
	switch len(args) {
	case 3:
		for i, a := range args {
			row, err := toVector3(a)
			if err != nil {
				return nil, errors.Wrapf(err, "row %d", i)
			}
			m[i] = [3]float64{row.X, row.Y, row.Z}
		}
	case 9:
		fs, err := toFloats(args)
		if err != nil {
			return nil, err
		}
		for i, f := range fs {
			m[i/3][i%3] = f
		}
	default:
		return nil, errors.Errorf("expected 3 rows or 9 numbers but got %d arguments", len(args))
	}
	return wrap("matrix3", m), nil
}
