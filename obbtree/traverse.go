package obbtree

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/srizzi88/SENSEI-sub038/spatialmath"
)

// AreDisjoint returns true if the boxes of a and b, with b first mapped by transformBtoA (nil for
// identity), are separated by more than tolerance along one of the 15 candidate axes.
func AreDisjoint(a, b *Node, transformBtoA *mgl64.Mat4, tolerance float64) bool {
	boxB := b.Box()
	if transformBtoA != nil {
		boxB = boxB.Transform(*transformBtoA)
	}
	return spatialmath.SeparatingAxis(a.Box(), boxB, tolerance) >= 0
}

// DisjointOBBNodes is AreDisjoint with the tree's tolerance.
func (t *Tree) DisjointOBBNodes(a, b *Node, transformBtoA *mgl64.Mat4) bool {
	return AreDisjoint(a, b, transformBtoA, t.tolerance)
}

// VisitResult tells a traversal whether to keep going.
type VisitResult int

const (
	// Continue proceeds with the remaining node pairs.
	Continue VisitResult = iota
	// Stop ends the traversal.
	Stop
)

// Visitor is called for every pair of leaves whose boxes are not disjoint. transformBtoA maps the
// coordinates of b's mesh into a's frame and is nil for identity.
type Visitor func(a, b *Node, transformBtoA *mgl64.Mat4) VisitResult

// TraversalResult reports how many box pairs were tested and whether a visitor stopped the walk.
type TraversalResult struct {
	BoxTests int
	Stopped  bool
}

// IntersectWithOBBTree walks this tree against other. Each visited node pair counts as one box
// test; disjoint pairs are pruned, pairs of leaves are handed to visitor, and otherwise the
// internal node(s) are descended in the order (a0,b0), (a0,b1), (a1,b0), (a1,b1).
func (t *Tree) IntersectWithOBBTree(other *Tree, transformBtoA *mgl64.Mat4, visitor Visitor) (TraversalResult, error) {
	if t.Root() == NoNode || other.Root() == NoNode {
		return TraversalResult{}, ErrEmptyTree
	}
	w := walker{a: t, b: other, transform: transformBtoA, visitor: visitor}
	stopped := w.traverse(t.Root(), other.Root())
	return TraversalResult{BoxTests: w.count, Stopped: stopped}, nil
}

type walker struct {
	a, b      *Tree
	transform *mgl64.Mat4
	visitor   Visitor
	count     int
}

func (w *walker) traverse(idA, idB NodeID) bool {
	w.count++
	nodeA := &w.a.nodes[idA]
	nodeB := &w.b.nodes[idB]
	if w.a.DisjointOBBNodes(nodeA, nodeB, w.transform) {
		return false
	}

	switch {
	case nodeA.IsLeaf() && nodeB.IsLeaf():
		return w.visitor(nodeA, nodeB, w.transform) == Stop
	case nodeB.IsLeaf():
		return w.traverse(nodeA.Children[0], idB) || w.traverse(nodeA.Children[1], idB)
	case nodeA.IsLeaf():
		return w.traverse(idA, nodeB.Children[0]) || w.traverse(idA, nodeB.Children[1])
	default:
		for _, childA := range nodeA.Children {
			for _, childB := range nodeB.Children {
				if w.traverse(childA, childB) {
					return true
				}
			}
		}
		return false
	}
}
