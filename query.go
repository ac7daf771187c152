// Package trimesh answers collision and distance queries between two rigid triangle meshes.
//
// Each mesh is a finalized mesh.Model placed in the world by a geometry.Transform. Queries never
// modify the models, so any number of them can run concurrently on shared models.
//
// Both queries descend the two bounding volume hierarchies at the same time, in the local frame
// of the first model: the second model's boxes are compared as oriented boxes through the
// relative transform, and its triangles are moved into that frame only when a leaf pair is
// reached.
package trimesh

import (
	"sync"

	"github.com/akmonengine/trimesh/bvh"
	"github.com/akmonengine/trimesh/geometry"
	"github.com/akmonengine/trimesh/mesh"
)

// nodePair references one node of each hierarchy.
type nodePair struct {
	a, b  int32
	bound float64
}

var stackPool = sync.Pool{
	New: func() interface{} {
		s := make([]nodePair, 0, 64)
		return &s
	},
}

// pairQuery holds what both traversals need, expressed in A's local frame.
type pairQuery struct {
	a, b  *mesh.Model
	ta    geometry.Transform
	treeA *bvh.BVH
	treeB *bvh.BVH
	bToA  geometry.Transform
}

func newPairQuery(a *mesh.Model, ta geometry.Transform, b *mesh.Model, tb geometry.Transform) pairQuery {
	return pairQuery{
		a:     a,
		b:     b,
		ta:    ta,
		treeA: a.BVH(),
		treeB: b.BVH(),
		bToA:  tb.RelativeTo(ta),
	}
}

func (q *pairQuery) empty() bool {
	return q.a.IsEmpty() || q.b.IsEmpty()
}

// gap is the separating-axis bound between node ia of A and node ib of B.
func (q *pairQuery) gap(ia, ib int32) float64 {
	return geometry.BoxGap(q.treeA.Node(ia).Bounds, q.treeB.Node(ib).Bounds, q.bToA)
}

// triangleB returns the i-th triangle of B in A's local frame.
func (q *pairQuery) triangleB(i int) geometry.Triangle {
	return q.b.Triangle(i).Transform(q.bToA)
}

// splitA decides which node of a non leaf-leaf pair is descended: the internal one, or the one
// with the larger box diagonal when both are internal. Ties descend A.
func splitA(na, nb bvh.Node) bool {
	if nb.IsLeaf() {
		return true
	}
	if na.IsLeaf() {
		return false
	}
	return na.Bounds.Size().LenSqr() >= nb.Bounds.Size().LenSqr()
}

// children expands pair p into the two pairs obtained by descending one side.
func (q *pairQuery) children(p nodePair) [2]nodePair {
	na := q.treeA.Node(p.a)
	nb := q.treeB.Node(p.b)
	if splitA(na, nb) {
		return [2]nodePair{{a: na.Left, b: p.b}, {a: na.Right, b: p.b}}
	}
	return [2]nodePair{{a: p.a, b: nb.Left}, {a: p.a, b: nb.Right}}
}
