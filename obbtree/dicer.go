package obbtree

import (
	"sort"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// Dice splits a point set into numberOfPieces groups of nearby points and returns the group id of
// every point. Each set is split in half at the median of its projections on the longest axis of
// its bounding box, and the requested number of pieces is divided between the halves. Splitting
// stops early at single points, so fewer pieces may be produced than requested.
func Dice(points []r3.Vector, numberOfPieces int) ([]int, error) {
	if numberOfPieces < 1 {
		return nil, errors.Errorf("number of pieces must be at least 1, got %d", numberOfPieces)
	}
	ids := make([]int, len(points))
	all := make([]int, len(points))
	for i := range all {
		all[i] = i
	}
	d := dicer{points: points, ids: ids}
	if err := d.dice(all, numberOfPieces); err != nil {
		return nil, err
	}
	return ids, nil
}

type dicer struct {
	points []r3.Vector
	ids    []int
	next   int
}

func (d *dicer) dice(subset []int, pieces int) error {
	if len(subset) == 0 {
		return nil
	}
	if pieces <= 1 || len(subset) == 1 {
		for _, i := range subset {
			d.ids[i] = d.next
		}
		d.next++
		return nil
	}

	pts := make([]r3.Vector, len(subset))
	for k, i := range subset {
		pts[k] = d.points[i]
	}
	box, err := ComputeOBBFromPoints(pts)
	if err != nil {
		return err
	}
	center := box.Center()
	proj := make(map[int]float64, len(subset))
	for _, i := range subset {
		proj[i] = d.points[i].Sub(center).Dot(box.Directions[0])
	}
	sorted := append([]int(nil), subset...)
	sort.SliceStable(sorted, func(x, y int) bool {
		return proj[sorted[x]] < proj[sorted[y]]
	})

	leftPieces := pieces / 2
	mid := len(sorted) * leftPieces / pieces
	if mid == 0 {
		mid = 1
	}
	if err := d.dice(sorted[:mid], leftPieces); err != nil {
		return err
	}
	return d.dice(sorted[mid:], pieces-leftPieces)
}
