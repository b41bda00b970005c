package script

import (
	"fmt"

	zygo "github.com/glycerine/zygomys/zygo"
	"github.com/pkg/errors"

	"go.viam.com/gzmath/control"
	"go.viam.com/gzmath/spatialmath"
)

// value wraps a Go value so it can be passed between builtins. It holds its own copy.
type value[T any] struct {
	kind string
	val  T
}

func wrap[T any](kind string, v T) *value[T] {
	return &value[T]{kind: kind, val: v}
}

func (v *value[T]) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(%s %v)", v.kind, v.val)
}

func (v *value[T]) Type() *zygo.RegisteredType { return nil }

// pidValue is the only stateful value: updates through any reference are seen by all of them.
type pidValue struct {
	pid *control.PID
}

func (p *pidValue) SexpString(ps *zygo.PrintState) string {
	pe, ie, de := p.pid.Errors()
	return fmt.Sprintf("(pid cmd %v errors %v %v %v)", p.pid.Cmd(), pe, ie, de)
}

func (p *pidValue) Type() *zygo.RegisteredType { return nil }

func newWrongTypeError(want string, got zygo.Sexp) error {
	return errors.Errorf("expected %s, got %s", want, got.SexpString(nil))
}

func unwrap[T any](s zygo.Sexp, want string) (T, error) {
	if v, ok := s.(*value[T]); ok {
		return v.val, nil
	}
	var zero T
	return zero, newWrongTypeError(want, s)
}

func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, newWrongTypeError("number", s)
}

func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", newWrongTypeError("string", s)
}

func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, newWrongTypeError("integer", s)
}

func toFloats(args []zygo.Sexp) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		f, err := toFloat64(a)
		if err != nil {
			return nil, errors.Wrapf(err, "argument %d", i)
		}
		out[i] = f
	}
	return out, nil
}

// toVector3 accepts a vector, or an array of three numbers.
func toVector3(s zygo.Sexp) (spatialmath.Vector3d, error) {
	if arr, ok := s.(*zygo.SexpArray); ok {
		if len(arr.Val) != 3 {
			return spatialmath.Vector3d{}, errors.Errorf("expected 3 numbers but got %d", len(arr.Val))
		}
		fs, err := toFloats(arr.Val)
		if err != nil {
			return spatialmath.Vector3d{}, err
		}
		return spatialmath.Vector3d{X: fs[0], Y: fs[1], Z: fs[2]}, nil
	}
	return unwrap[spatialmath.Vector3d](s, "vector3")
}

// toAngle accepts an angle, or a number of radians.
func toAngle(s zygo.Sexp) (spatialmath.Angle, error) {
	if f, err := toFloat64(s); err == nil {
		return spatialmath.NewAngle(f), nil
	}
	return unwrap[spatialmath.Angle](s, "angle")
}

func toPID(s zygo.Sexp) (*control.PID, error) {
	if p, ok := s.(*pidValue); ok {
		return p.pid, nil
	}
	return nil, newWrongTypeError("pid", s)
}

func number(f float64) zygo.Sexp { return &zygo.SexpFloat{Val: f} }

func boolean(b bool) zygo.Sexp { return &zygo.SexpBool{Val: b} }

// toGo converts an evaluation result to a Go value. Numbers become float64, and wrapped values
// are returned as their spatialmath or control type.
func toGo(s zygo.Sexp) (interface{}, error) {
	switch v := s.(type) {
	case *zygo.SexpFloat:
		return v.Val, nil
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpBool:
		return v.Val, nil
	case *zygo.SexpStr:
		return v.S, nil
	case *zygo.SexpArray:
		out := make([]interface{}, 0, len(v.Val))
		for _, e := range v.Val {
			g, err := toGo(e)
			if err != nil {
				return nil, err
			}
			out = append(out, g)
		}
		return out, nil
	case *pidValue:
		return v.pid, nil
	case *value[spatialmath.Frustum]:
		f := v.val
		return &f, nil
	case interface{ goValue() interface{} }:
		return v.goValue(), nil
	}
	if s == zygo.SexpNull {
		return nil, nil
	}
	return nil, errors.Errorf("cannot convert %s to a Go value", s.SexpString(nil))
}

func (v *value[T]) goValue() interface{} { return v.val }
