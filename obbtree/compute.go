package obbtree

import (
	"math"
	"sort"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"

	"github.com/srizzi88/SENSEI-sub038/spatialmath"
)

// OBB is an oriented bounding box together with the variance of the points along each of its axes.
type OBB struct {
	spatialmath.OrientedBox
	// Sizes are the covariance eigenvalues paired with Axes.
	Sizes [3]float64
}

// ComputeOBBFromPoints fits a box to a point set. The axes are the eigenvectors of the point
// covariance matrix; the box spans the extreme projections of the points on each of them, so every
// point lies on or inside it. Axes are ordered by decreasing edge length.
func ComputeOBBFromPoints(points []r3.Vector) (OBB, error) {
	if len(points) == 0 {
		return OBB{}, ErrEmptyCellSet
	}
	mean := spatialmath.Centroid(points)

	var cov [9]float64
	for _, p := range points {
		d := p.Sub(mean)
		c := [3]float64{d.X, d.Y, d.Z}
		for i := 0; i < 3; i++ {
			for j := i; j < 3; j++ {
				cov[3*i+j] += c[i] * c[j]
			}
		}
	}
	n := float64(len(points))
	for i := 0; i < 3; i++ {
		for j := i; j < 3; j++ {
			cov[3*i+j] /= n
			cov[3*j+i] = cov[3*i+j]
		}
	}

	dirs, values := principalAxes(mat.NewSymDense(3, cov[:]))

	var tMin, tMax [3]float64
	for i := 0; i < 3; i++ {
		tMin[i] = math.Inf(1)
		tMax[i] = math.Inf(-1)
	}
	for _, p := range points {
		d := p.Sub(mean)
		for i := 0; i < 3; i++ {
			t := d.Dot(dirs[i])
			tMin[i] = math.Min(tMin[i], t)
			tMax[i] = math.Max(tMax[i], t)
		}
	}

	order := []int{0, 1, 2}
	sort.SliceStable(order, func(x, y int) bool {
		return tMax[order[x]]-tMin[order[x]] > tMax[order[y]]-tMin[order[y]]
	})

	out := OBB{}
	out.Corner = mean
	for k, i := range order {
		out.Corner = out.Corner.Add(dirs[i].Mul(tMin[i]))
		out.Axes[k] = dirs[i].Mul(tMax[i] - tMin[i])
		out.Directions[k] = dirs[i]
		out.Sizes[k] = values[i]
	}
	return out, nil
}

// principalAxes returns the unit eigenvectors of a symmetric 3x3 matrix sorted by decreasing
// eigenvalue. If the decomposition fails the coordinate axes are used.
func principalAxes(sym *mat.SymDense) ([3]r3.Vector, [3]float64) {
	var eig mat.EigenSym
	if !eig.Factorize(sym, true) {
		return [3]r3.Vector{{X: 1}, {Y: 1}, {Z: 1}}, [3]float64{}
	}
	values := eig.Values(nil)
	var vectors mat.Dense
	eig.VectorsTo(&vectors)

	// gonum returns ascending eigenvalues
	var dirs [3]r3.Vector
	var sizes [3]float64
	for k := 0; k < 3; k++ {
		col := 2 - k
		dirs[k] = r3.Vector{X: vectors.At(0, col), Y: vectors.At(1, col), Z: vectors.At(2, col)}.Normalize()
		sizes[k] = values[col]
	}
	// keep the frame right handed so flattened boxes have a well defined third direction
	dirs[2] = dirs[0].Cross(dirs[1]).Normalize()
	return dirs, sizes
}

// ComputeOBB fits a box to the points used by the given cells of the tree's dataset.
func (t *Tree) ComputeOBB(cellIDs []int64) (OBB, error) {
	if t.dataSet == nil {
		return OBB{}, ErrNoDataSet
	}
	seen := make(map[int64]struct{})
	points := make([]r3.Vector, 0, 3*len(cellIDs))
	for _, cellID := range cellIDs {
		for _, pid := range t.dataSet.CellPointIDs(cellID) {
			if _, ok := seen[pid]; ok {
				continue
			}
			seen[pid] = struct{}{}
			points = append(points, t.dataSet.Point(pid))
		}
	}
	return ComputeOBBFromPoints(points)
}
