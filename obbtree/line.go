package obbtree

import (
	"math"
	"sort"

	"github.com/golang/geo/r3"

	"github.com/srizzi88/SENSEI-sub038/spatialmath"
)

// LineHit is one crossing of a segment with a mesh cell.
type LineHit struct {
	// T is the parametric position along the segment, in [0, 1].
	T      float64
	Point  r3.Vector
	CellID int64
}

// IntersectWithLine returns every crossing of the segment p0-p1 with a polygon cell of the
// dataset, ordered by T and then by cell id. Cells are only tested inside leaves whose box the
// segment passes through.
func (t *Tree) IntersectWithLine(p0, p1 r3.Vector) ([]LineHit, error) {
	if t.Root() == NoNode {
		return nil, ErrEmptyTree
	}
	var hits []LineHit
	var buf []r3.Vector
	stack := []NodeID{t.Root()}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := &t.nodes[id]
		if !segmentHitsBox(node.Box(), p0, p1, t.tolerance) {
			continue
		}
		if !node.IsLeaf() {
			stack = append(stack, node.Children[1], node.Children[0])
			continue
		}
		for _, cellID := range node.Cells {
			buf = t.dataSet.CellPoints(cellID, buf)
			if len(buf) < 3 {
				continue
			}
			n := spatialmath.PolygonNormal(buf)
			crossing, param, x := spatialmath.NewPlane(buf[0], n).IntersectSegment(p0, p1)
			if crossing != spatialmath.SegmentCrosses {
				continue
			}
			if spatialmath.PointInPolygon(x, buf, n, t.tolerance) {
				hits = append(hits, LineHit{T: param, Point: x, CellID: cellID})
			}
		}
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].T != hits[j].T {
			return hits[i].T < hits[j].T
		}
		return hits[i].CellID < hits[j].CellID
	})
	return hits, nil
}

// segmentHitsBox clips the segment against the three slabs of the box grown by tolerance.
func segmentHitsBox(box spatialmath.OrientedBox, p0, p1 r3.Vector, tolerance float64) bool {
	origin := p0.Sub(box.Corner)
	ray := p1.Sub(p0)
	tNear, tFar := 0.0, 1.0
	for i := 0; i < 3; i++ {
		lo, hi := -tolerance, box.Axes[i].Norm()+tolerance
		start := origin.Dot(box.Directions[i])
		delta := ray.Dot(box.Directions[i])
		if math.Abs(delta) < 1e-12 {
			if start < lo || start > hi {
				return false
			}
			continue
		}
		t0 := (lo - start) / delta
		t1 := (hi - start) / delta
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		tNear = math.Max(tNear, t0)
		tFar = math.Min(tFar, t1)
		if tNear > tFar {
			return false
		}
	}
	return true
}

// insideOutsideDirection is skewed off the coordinate axes so rays rarely graze mesh edges.
var insideOutsideDirection = r3.Vector{X: 0.5773502691896258, Y: 0.5773502691896257, Z: 0.5773502691896259}.
	Add(r3.Vector{X: 0.0123, Y: -0.0311, Z: 0.0071}).Normalize()

// InsideOrOutside classifies a point against a closed mesh by the parity of ray crossings.
// It returns -1 for inside and 1 for outside.
func (t *Tree) InsideOrOutside(pt r3.Vector) (int, error) {
	if t.Root() == NoNode {
		return 0, ErrEmptyTree
	}
	bounds := t.dataSet.Bounds()
	length := 2*bounds.Diagonal() + pt.Sub(bounds.Center()).Norm() + 1
	hits, err := t.IntersectWithLine(pt, pt.Add(insideOutsideDirection.Mul(length)))
	if err != nil {
		return 0, err
	}

	// crossings through a shared edge are found once per adjacent cell
	crossings := 0
	last := math.Inf(-1)
	for _, h := range hits {
		if (h.T-last)*length > 1e-9 {
			crossings++
			last = h.T
		}
	}
	if crossings%2 == 1 {
		return -1, nil
	}
	return 1, nil
}
