package mesh

import (
	"fmt"

	"github.com/pkg/errors"
)

// UnsupportedCellTypeError is returned when a cell is not a triangle where one is required.
type UnsupportedCellTypeError struct {
	CellID         int64
	NumberOfPoints int
}

func (e *UnsupportedCellTypeError) Error() string {
	return fmt.Sprintf("cell %d has %d points, only triangles are supported", e.CellID, e.NumberOfPoints)
}

// NewUnsupportedCellTypeError returns an error describing a non-triangular cell.
func NewUnsupportedCellTypeError(cellID int64, numberOfPoints int) error {
	return &UnsupportedCellTypeError{CellID: cellID, NumberOfPoints: numberOfPoints}
}

// IsUnsupportedCellType returns true if err, or an error it wraps, is an UnsupportedCellTypeError.
func IsUnsupportedCellType(err error) bool {
	var target *UnsupportedCellTypeError
	return errors.As(err, &target)
}

func newCellOutOfRangeError(cellID int64, numCells int) error {
	return errors.Errorf("cell id %d out of range [0, %d)", cellID, numCells)
}

func newPointOutOfRangeError(cellID, pointID int64, numPoints int) error {
	return errors.Errorf("cell %d references point %d, outside [0, %d)", cellID, pointID, numPoints)
}
