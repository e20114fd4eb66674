package obbtree

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/srizzi88/SENSEI-sub038/spatialmath"
)

func leafNode(corner r3.Vector, axes [3]r3.Vector) *Node {
	box := spatialmath.NewOrientedBox(corner, axes)
	n := &Node{Parent: NoNode, Children: [2]NodeID{NoNode, NoNode}}
	n.setBox(box)
	return n
}

func TestAreDisjoint(t *testing.T) {
	unit := [3]r3.Vector{{X: 1}, {Y: 1}, {Z: 1}}
	a := leafNode(r3.Vector{}, unit)
	b := leafNode(r3.Vector{X: 1.5}, unit)

	test.That(t, AreDisjoint(a, b, nil, 0), test.ShouldBeTrue)
	test.That(t, AreDisjoint(a, b, nil, 0.6), test.ShouldBeFalse)

	back := mgl64.Translate3D(-1, 0, 0)
	test.That(t, AreDisjoint(a, b, &back, 0), test.ShouldBeFalse)

	// a diamond rotated 45 degrees about z just clear of the corner of a
	rot := spatialmath.NewTransform().Translate(2.3, 0.5, 0.5).RotateZ(45).Translate(-0.5, -0.5, -0.5).Matrix()
	test.That(t, AreDisjoint(a, leafNode(r3.Vector{}, unit), &rot, 0), test.ShouldBeTrue)
	near := spatialmath.NewTransform().Translate(1.6, 0.5, 0.5).RotateZ(45).Translate(-0.5, -0.5, -0.5).Matrix()
	test.That(t, AreDisjoint(a, leafNode(r3.Vector{}, unit), &near, 0), test.ShouldBeFalse)

	t.Run("tilted", func(t *testing.T) {
		edge := spatialmath.NewTransform().
			Translate(1.75, 1.75, 0.5).
			RotateWXYZ(45, 1, -1, 0).
			RotateZ(45).
			Translate(-0.5, -0.5, -0.5).Matrix()
		other := leafNode(r3.Vector{}, unit)
		boxB := other.Box().Transform(edge)
		axis := spatialmath.SeparatingAxis(a.Box(), boxB, 0)
		test.That(t, AreDisjoint(a, other, &edge, 0), test.ShouldEqual, axis >= 0)
	})
}

// countPairs independently re-derives how many node pairs a traversal visits.
func countPairs(ta, tb *Tree, a, b NodeID, m *mgl64.Mat4) int {
	na, nb := ta.Node(a), tb.Node(b)
	if AreDisjoint(na, nb, m, ta.Tolerance()) {
		return 1
	}
	count := 1
	switch {
	case na.IsLeaf() && nb.IsLeaf():
	case nb.IsLeaf():
		count += countPairs(ta, tb, na.Children[0], b, m) + countPairs(ta, tb, na.Children[1], b, m)
	case na.IsLeaf():
		count += countPairs(ta, tb, a, nb.Children[0], m) + countPairs(ta, tb, a, nb.Children[1], m)
	default:
		for _, ca := range na.Children {
			for _, cb := range nb.Children {
				count += countPairs(ta, tb, ca, cb, m)
			}
		}
	}
	return count
}

func TestTraverseCounts(t *testing.T) {
	treeA := buildTree(t, makeSphere(t, r3.Vector{}, 5, 16), 2)
	treeB := buildTree(t, makeSphere(t, r3.Vector{X: 4.9}, 5, 12), 3)

	for _, m := range []*mgl64.Mat4{nil, ptr(mgl64.Translate3D(0, 0.3, 0)), ptr(mgl64.Translate3D(20, 0, 0))} {
		var leafPairs [][2]*Node
		res, err := treeA.IntersectWithOBBTree(treeB, m, func(a, b *Node, _ *mgl64.Mat4) VisitResult {
			leafPairs = append(leafPairs, [2]*Node{a, b})
			return Continue
		})
		test.That(t, err, test.ShouldBeNil)
		test.That(t, res.Stopped, test.ShouldBeFalse)
		test.That(t, res.BoxTests, test.ShouldEqual, countPairs(treeA, treeB, treeA.Root(), treeB.Root(), m))
		for _, pair := range leafPairs {
			test.That(t, pair[0].IsLeaf() && pair[1].IsLeaf(), test.ShouldBeTrue)
			test.That(t, AreDisjoint(pair[0], pair[1], m, 0), test.ShouldBeFalse)
		}
	}

	far := mgl64.Translate3D(20, 0, 0)
	res, err := treeA.IntersectWithOBBTree(treeB, &far, func(a, b *Node, _ *mgl64.Mat4) VisitResult {
		t.Fatal("disjoint trees should not reach leaves")
		return Stop
	})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, res.BoxTests, test.ShouldEqual, 1)
}

func TestTraverseStop(t *testing.T) {
	tree := buildTree(t, makeSphere(t, r3.Vector{}, 5, 16), 2)
	calls := 0
	res, err := tree.IntersectWithOBBTree(tree, nil, func(a, b *Node, _ *mgl64.Mat4) VisitResult {
		calls++
		if calls == 3 {
			return Stop
		}
		return Continue
	})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, res.Stopped, test.ShouldBeTrue)
	test.That(t, calls, test.ShouldEqual, 3)
	test.That(t, res.BoxTests, test.ShouldBeLessThan, countPairs(tree, tree, 0, 0, nil))
}

func TestTraverseDeterministic(t *testing.T) {
	tree := buildTree(t, makeSphere(t, r3.Vector{}, 5, 14), 2)
	other := buildTree(t, makeSphere(t, r3.Vector{Y: 3}, 4, 10), 2)
	order := func() [][2][]int64 {
		var out [][2][]int64
		_, err := tree.IntersectWithOBBTree(other, nil, func(a, b *Node, _ *mgl64.Mat4) VisitResult {
			out = append(out, [2][]int64{a.Cells, b.Cells})
			return Continue
		})
		test.That(t, err, test.ShouldBeNil)
		return out
	}
	first := order()
	test.That(t, first, test.ShouldNotBeEmpty)
	test.That(t, order(), test.ShouldResemble, first)
}

func ptr(m mgl64.Mat4) *mgl64.Mat4 {
	return &m
}
