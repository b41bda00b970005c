package spatialmath

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"go.viam.com/gzmath/utils"
)

// spaceDelimitedStringToSlice splits up space-delimited fields, such as the xyz or rpy attributes of a model file.
func spaceDelimitedStringToSlice(s string, want int) ([]float64, error) {
	fields := strings.Fields(s)
	if len(fields) != want {
		return nil, errors.Errorf("expected %d space-delimited values but got %d in %q", want, len(fields), s)
	}
	converted := make([]float64, 0, want)
	for _, field := range fields {
		value, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot parse %q", s)
		}
		converted = append(converted, value)
	}
	return converted, nil
}

// ParseVector3 parses "x y z".
func ParseVector3[T utils.Float](s string) (Vector3[T], error) {
	v, err := spaceDelimitedStringToSlice(s, 3)
	if err != nil {
		return Vector3[T]{}, err
	}
	return Vector3[T]{T(v[0]), T(v[1]), T(v[2])}, nil
}

// ParsePose parses "x y z roll pitch yaw", with the angles in radians.
func ParsePose[T utils.Float](s string) (Pose[T], error) {
	v, err := spaceDelimitedStringToSlice(s, 6)
	if err != nil {
		return Pose[T]{}, err
	}
	return NewPose(
		Vector3[T]{T(v[0]), T(v[1]), T(v[2])},
		QuaternionFromEuler(T(v[3]), T(v[4]), T(v[5])),
	), nil
}
