package utils

import (
	"github.com/pkg/errors"
)

// NewIndexOutOfRangeError is used when an index into a fixed-size value is invalid.
func NewIndexOutOfRangeError(kind string, index, size int) error {
	return errors.Errorf("%s index %d out of range [0, %d)", kind, index, size)
}
