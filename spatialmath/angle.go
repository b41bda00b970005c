package spatialmath

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"go.viam.com/gzmath/utils"
)

// angleTolerance is the tolerance, in radians, used by all Angle comparisons.
const angleTolerance = 1e-3

// Angle is an angle stored in radians.
type Angle struct {
	value float64
}

// Commonly used angles.
var (
	AngleZero   = Angle{}
	AngleHalfPi = Angle{math.Pi / 2}
	AnglePi     = Angle{math.Pi}
	AngleTwoPi  = Angle{2 * math.Pi}
)

// NewAngle returns an Angle of the given radians.
func NewAngle(radians float64) Angle {
	return Angle{radians}
}

// AngleFromDegrees returns an Angle of the given degrees.
func AngleFromDegrees(degrees float64) Angle {
	return Angle{utils.DegToRad(degrees)}
}

// ParseAngle parses a radian value, as written by String.
func ParseAngle(s string) (Angle, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return Angle{}, errors.Wrapf(err, "cannot parse angle %q", s)
	}
	return Angle{v}, nil
}

// Radian returns the angle in radians.
func (a Angle) Radian() float64 {
	return a.value
}

// Degree returns the angle in degrees.
func (a Angle) Degree() float64 {
	return utils.RadToDeg(a.value)
}

// Normalized returns the angle wrapped to (-pi, pi].
func (a Angle) Normalized() Angle {
	return Angle{math.Atan2(math.Sin(a.value), math.Cos(a.value))}
}

// Add returns a + b.
func (a Angle) Add(b Angle) Angle { return Angle{a.value + b.value} }

// Sub returns a - b.
func (a Angle) Sub(b Angle) Angle { return Angle{a.value - b.value} }

// Mul returns a * b.
func (a Angle) Mul(b Angle) Angle { return Angle{a.value * b.value} }

// Div returns a / b.
func (a Angle) Div(b Angle) Angle { return Angle{a.value / b.value} }

// Neg returns -a.
func (a Angle) Neg() Angle { return Angle{-a.value} }

// Equal returns whether the two angles are within 0.001 radians of each other.
func (a Angle) Equal(b Angle) bool {
	return utils.Float64AlmostEqual(a.value, b.value, angleTolerance)
}

// Less returns whether a is smaller than b and not Equal to it.
func (a Angle) Less(b Angle) bool {
	return a.value < b.value && !a.Equal(b)
}

// LessEqual returns whether a is smaller than or Equal to b.
func (a Angle) LessEqual(b Angle) bool {
	return a.value < b.value || a.Equal(b)
}

// Greater returns whether a is larger than b and not Equal to it.
func (a Angle) Greater(b Angle) bool {
	return a.value > b.value && !a.Equal(b)
}

// GreaterEqual returns whether a is larger than or Equal to b.
func (a Angle) GreaterEqual(b Angle) bool {
	return a.value > b.value || a.Equal(b)
}

// String returns the radian value.
func (a Angle) String() string {
	return strconv.FormatFloat(a.value, 'g', -1, 64)
}
