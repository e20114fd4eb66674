// Package obbtree builds oriented-bounding-box hierarchies over mesh cells and walks pairs of them
// to find intersecting cells.
package obbtree

import (
	"fmt"
	"io"
	"strings"

	"github.com/golang/geo/r3"

	"github.com/srizzi88/SENSEI-sub038/spatialmath"
)

// NodeID addresses a node in a tree's arena.
type NodeID int32

// NoNode marks an absent parent or child.
const NoNode NodeID = -1

// Node is one bounding box of the hierarchy. Corner is one vertex of the box and Corner + Axes[i]
// the opposite face along axis i; the axes are mutually orthogonal and ordered longest first.
// A node has either no children (a leaf, owning Cells) or exactly two.
type Node struct {
	Corner     r3.Vector
	Axes       [3]r3.Vector
	Directions [3]r3.Vector

	Parent   NodeID
	Children [2]NodeID
	Cells    []int64
	Level    int
}

// IsLeaf returns true if the node has no children.
func (n *Node) IsLeaf() bool {
	return n.Children[0] == NoNode
}

// Box returns the node's bounding volume.
func (n *Node) Box() spatialmath.OrientedBox {
	return spatialmath.OrientedBox{Corner: n.Corner, Axes: n.Axes, Directions: n.Directions}
}

func (n *Node) setBox(box spatialmath.OrientedBox) {
	n.Corner = box.Corner
	n.Axes = box.Axes
	n.Directions = box.Directions
}

// Print writes the subtree rooted at id, one node per line, indented by level.
func (t *Tree) Print(w io.Writer, id NodeID) error {
	if id == NoNode || int(id) >= len(t.nodes) {
		return nil
	}
	n := &t.nodes[id]
	indent := strings.Repeat("  ", n.Level)
	box := n.Box()
	kind := "node"
	if n.IsLeaf() {
		kind = fmt.Sprintf("leaf cells=%v", n.Cells)
	}
	if _, err := fmt.Fprintf(w, "%s#%d %s %s\n", indent, id, kind, box.String()); err != nil {
		return err
	}
	if n.IsLeaf() {
		return nil
	}
	if err := t.Print(w, n.Children[0]); err != nil {
		return err
	}
	return t.Print(w, n.Children[1])
}
