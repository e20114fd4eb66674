package obbtree

import "github.com/pkg/errors"

// ErrEmptyTree is returned when an operation needs a built tree and there is none.
var ErrEmptyTree = errors.New("obb tree has not been built")

// ErrNoDataSet is returned when building without a dataset.
var ErrNoDataSet = errors.New("obb tree has no dataset")

// ErrEmptyCellSet is returned when a bounding box is requested for no geometry.
var ErrEmptyCellSet = errors.New("cannot compute a bounding box of zero points")

func newInvalidCellsPerNodeError(n int) error {
	return errors.Errorf("number of cells per node must be at least 1, got %d", n)
}
