package obbtree

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/montanaflynn/stats"

	"github.com/srizzi88/SENSEI-sub038/mesh"
)

// GenerateRepresentation returns a mesh with one box (eight points, six quads) for every node at
// the given level. Leaves above that level are included so the boxes cover the whole dataset.
func (t *Tree) GenerateRepresentation(level int) (*mesh.PolyData, error) {
	if t.Root() == NoNode {
		return nil, ErrEmptyTree
	}
	out := mesh.NewPolyData()
	var collect func(id NodeID)
	collect = func(id NodeID) {
		node := &t.nodes[id]
		if node.Level == level || node.IsLeaf() {
			box := node.Box()
			base := int64(out.NumberOfPoints())
			for _, v := range box.Vertices() {
				out.InsertNextPoint(v)
			}
			for _, face := range box.Faces() {
				out.InsertNextCell(mesh.PolygonCell,
					base+int64(face[0]), base+int64(face[1]), base+int64(face[2]), base+int64(face[3]))
			}
			return
		}
		collect(node.Children[0])
		collect(node.Children[1])
	}
	collect(t.Root())
	return out, nil
}

// Stats summarizes the shape of a built tree.
type Stats struct {
	Nodes  int
	Leaves int
	Levels int
	Cells  int

	MeanLeafCells   float64
	MedianLeafCells float64
	MaxLeafCells    float64
}

// Stats computes the tree summary.
func (t *Tree) Stats() (Stats, error) {
	if t.Root() == NoNode {
		return Stats{}, ErrEmptyTree
	}
	var sizes stats.Float64Data
	cells := 0
	for i := range t.nodes {
		if t.nodes[i].IsLeaf() {
			sizes = append(sizes, float64(len(t.nodes[i].Cells)))
			cells += len(t.nodes[i].Cells)
		}
	}
	out := Stats{Nodes: len(t.nodes), Leaves: len(sizes), Levels: t.level + 1, Cells: cells}
	var err error
	if out.MeanLeafCells, err = sizes.Mean(); err != nil {
		return Stats{}, err
	}
	if out.MedianLeafCells, err = sizes.Median(); err != nil {
		return Stats{}, err
	}
	if out.MaxLeafCells, err = sizes.Max(); err != nil {
		return Stats{}, err
	}
	return out, nil
}

// String returns a table of the statistics.
func (s Stats) String() string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Nodes", "Leaves", "Levels", "Cells", "Mean Leaf", "Median Leaf", "Max Leaf"})
	t.AppendRow(table.Row{
		s.Nodes, s.Leaves, s.Levels, s.Cells,
		fmt.Sprintf("%.2f", s.MeanLeafCells),
		fmt.Sprintf("%.1f", s.MedianLeafCells),
		fmt.Sprintf("%.0f", s.MaxLeafCells),
	})
	return strings.TrimSpace(t.Render())
}
