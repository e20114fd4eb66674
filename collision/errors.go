package collision

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrMissingInput is reported when a mesh role has no input.
var ErrMissingInput = errors.New("collision input is missing")

// ErrMissingTransform is reported when a mesh role has neither a transform nor a matrix.
var ErrMissingTransform = errors.New("collision transform is missing")

// InvalidRoleError is returned when a role other than 0 or 1 is used.
type InvalidRoleError struct {
	Role int
}

func (e *InvalidRoleError) Error() string {
	return fmt.Sprintf("invalid mesh role %d, must be 0 or 1", e.Role)
}

// NewInvalidRoleError returns an error for an out of range role.
func NewInvalidRoleError(role int) error {
	return &InvalidRoleError{Role: role}
}

// IsInvalidRole returns true if err is or wraps an InvalidRoleError.
func IsInvalidRole(err error) bool {
	var target *InvalidRoleError
	return errors.As(err, &target)
}

// checkRole logs and returns an InvalidRoleError for roles other than 0 and 1.
func (f *Filter) checkRole(role int) error {
	if role == 0 || role == 1 {
		return nil
	}
	err := NewInvalidRoleError(role)
	f.logger.Errorw("ignoring request for invalid role", "role", role, "error", err)
	return err
}
