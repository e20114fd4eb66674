package obbtree

import (
	"context"

	"github.com/golang/geo/r3"
	"go.opencensus.io/trace"

	"github.com/srizzi88/SENSEI-sub038/logging"
	"github.com/srizzi88/SENSEI-sub038/mesh"
)

const (
	// DefaultNumberOfCellsPerNode is the leaf size used when none is configured.
	DefaultNumberOfCellsPerNode = 32
	// DefaultMaxLevel bounds the depth of a tree.
	DefaultMaxLevel = 12
)

// Tree is an OBB hierarchy over the cells of one mesh. Nodes live in a flat arena and refer to
// each other by NodeID; the root is the first node.
type Tree struct {
	dataSet *mesh.PolyData
	logger  logging.Logger

	numberOfCellsPerNode int
	maxLevel             int
	tolerance            float64

	nodes []Node
	level int

	buildTime         uint64
	builtCellsPerNode int
	builtMaxLevel     int
}

// NewTree returns an unbuilt tree over ds.
func NewTree(ds *mesh.PolyData, logger logging.Logger) *Tree {
	return &Tree{
		dataSet:              ds,
		logger:               logger,
		numberOfCellsPerNode: DefaultNumberOfCellsPerNode,
		maxLevel:             DefaultMaxLevel,
	}
}

// DataSet returns the mesh the tree indexes.
func (t *Tree) DataSet() *mesh.PolyData {
	return t.dataSet
}

// SetDataSet changes the indexed mesh. The tree is rebuilt on the next BuildLocator.
func (t *Tree) SetDataSet(ds *mesh.PolyData) {
	if ds != t.dataSet {
		t.dataSet = ds
		t.buildTime = 0
	}
}

// NumberOfCellsPerNode is the leaf threshold: nodes with at most this many cells are not split.
func (t *Tree) NumberOfCellsPerNode() int {
	return t.numberOfCellsPerNode
}

// SetNumberOfCellsPerNode sets the leaf threshold.
func (t *Tree) SetNumberOfCellsPerNode(n int) error {
	if n < 1 {
		return newInvalidCellsPerNodeError(n)
	}
	t.numberOfCellsPerNode = n
	return nil
}

// MaxLevel is the deepest level a node may be created at.
func (t *Tree) MaxLevel() int {
	return t.maxLevel
}

// SetMaxLevel sets the depth limit. Negative values are treated as zero.
func (t *Tree) SetMaxLevel(level int) {
	if level < 0 {
		level = 0
	}
	t.maxLevel = level
}

// Tolerance is the slack used by the tree's box disjointness tests.
func (t *Tree) Tolerance() float64 {
	return t.tolerance
}

// SetTolerance sets the box test slack.
func (t *Tree) SetTolerance(tol float64) {
	t.tolerance = tol
}

// Root returns the id of the root node, or NoNode if the tree is empty.
func (t *Tree) Root() NodeID {
	if len(t.nodes) == 0 {
		return NoNode
	}
	return 0
}

// Node returns the node with the given id. The pointer is valid until the tree is rebuilt.
func (t *Tree) Node(id NodeID) *Node {
	return &t.nodes[id]
}

// NumberOfNodes returns the size of the arena.
func (t *Tree) NumberOfNodes() int {
	return len(t.nodes)
}

// Level returns the deepest level of the built tree. A tree with only a root has level 0.
func (t *Tree) Level() int {
	return t.level
}

// NumberOfLeaves returns the number of leaf nodes.
func (t *Tree) NumberOfLeaves() int {
	leaves := 0
	for i := range t.nodes {
		if t.nodes[i].IsLeaf() {
			leaves++
		}
	}
	return leaves
}

// BuildLocator builds the tree if it is missing, or if the dataset or build parameters changed
// since the last build.
func (t *Tree) BuildLocator(ctx context.Context) error {
	if t.dataSet == nil {
		return ErrNoDataSet
	}
	if len(t.nodes) > 0 &&
		t.buildTime > t.dataSet.MTime() &&
		t.builtCellsPerNode == t.numberOfCellsPerNode &&
		t.builtMaxLevel == t.maxLevel {
		return nil
	}
	return t.ForceBuildLocator(ctx)
}

// ForceBuildLocator rebuilds the tree unconditionally.
func (t *Tree) ForceBuildLocator(ctx context.Context) error {
	if t.dataSet == nil {
		return ErrNoDataSet
	}
	_, span := trace.StartSpan(ctx, "obbtree::Build")
	defer span.End()

	t.FreeSearchStructure()
	numCells := t.dataSet.NumberOfCells()
	if numCells > 0 {
		cellIDs := make([]int64, numCells)
		for i := range cellIDs {
			cellIDs[i] = int64(i)
		}
		t.nodes = make([]Node, 1, 2*(numCells/t.numberOfCellsPerNode+1))
		t.nodes[0] = Node{Parent: NoNode, Children: [2]NodeID{NoNode, NoNode}}
		if err := t.buildTree(cellIDs, 0, 0); err != nil {
			t.FreeSearchStructure()
			return err
		}
	}
	t.builtCellsPerNode = t.numberOfCellsPerNode
	t.builtMaxLevel = t.maxLevel
	// a later modification of the dataset gets a newer stamp than this build
	var stamp mesh.TimeStamp
	stamp.Modified()
	t.buildTime = stamp.MTime()

	if t.logger != nil {
		t.logger.CDebugw(ctx, "built OBB tree",
			"levels", t.level, "leaves", t.NumberOfLeaves(), "nodes", len(t.nodes), "cells", numCells)
	}
	return nil
}

// FreeSearchStructure drops the built nodes.
func (t *Tree) FreeSearchStructure() {
	t.nodes = nil
	t.level = 0
	t.buildTime = 0
}

// buildTree fits a box to cellIDs, stores it in node id and splits it into two children when the
// node is larger than the leaf threshold and not at the depth limit.
//
// The split plane passes through the box center perpendicular to its longest axis; cells whose
// centroid lies on the negative side go left. When one side would be empty the next axis is
// tried, and when every axis fails the node stays a leaf.
func (t *Tree) buildTree(cellIDs []int64, id NodeID, level int) error {
	box, err := t.ComputeOBB(cellIDs)
	if err != nil {
		return err
	}
	node := &t.nodes[id]
	node.setBox(box.OrientedBox)
	node.Level = level
	if level > t.level {
		t.level = level
	}

	if len(cellIDs) <= t.numberOfCellsPerNode || level >= t.maxLevel {
		node.Cells = cellIDs
		return nil
	}

	center := box.Center()
	var left, right []int64
	for axis := 0; axis < 3; axis++ {
		left, right = t.partition(cellIDs, center, box.Directions[axis])
		if len(left) > 0 && len(right) > 0 {
			break
		}
	}
	if len(left) == 0 || len(right) == 0 {
		node.Cells = cellIDs
		return nil
	}

	leftID := NodeID(len(t.nodes))
	rightID := leftID + 1
	t.nodes = append(t.nodes,
		Node{Parent: id, Children: [2]NodeID{NoNode, NoNode}},
		Node{Parent: id, Children: [2]NodeID{NoNode, NoNode}},
	)
	t.nodes[id].Children = [2]NodeID{leftID, rightID}

	if err := t.buildTree(left, leftID, level+1); err != nil {
		return err
	}
	return t.buildTree(right, rightID, level+1)
}

func (t *Tree) partition(cellIDs []int64, origin, normal r3.Vector) ([]int64, []int64) {
	left := make([]int64, 0, len(cellIDs)/2+1)
	right := make([]int64, 0, len(cellIDs)/2+1)
	for _, cellID := range cellIDs {
		if t.dataSet.CellCentroid(cellID).Sub(origin).Dot(normal) < 0 {
			left = append(left, cellID)
		} else {
			right = append(right, cellID)
		}
	}
	return left, right
}
