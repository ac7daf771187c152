package trimesh

import (
	"github.com/akmonengine/trimesh/geometry"
	"github.com/akmonengine/trimesh/mesh"
	"github.com/akmonengine/trimesh/narrowphase"
)

// Collide reports whether model a placed by ta and model b placed by tb share at least one
// point. Touching counts as a collision. Empty models never collide.
func Collide(a *mesh.Model, ta geometry.Transform, b *mesh.Model, tb geometry.Transform) bool {
	q := newPairQuery(a, ta, b, tb)
	if q.empty() {
		return false
	}

	stackPtr := stackPool.Get().(*[]nodePair)
	stack := append((*stackPtr)[:0], nodePair{a: q.treeA.Root(), b: q.treeB.Root()})
	defer func() {
		*stackPtr = stack[:0]
		stackPool.Put(stackPtr)
	}()

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if q.gap(p.a, p.b) > 0 {
			continue
		}

		na := q.treeA.Node(p.a)
		nb := q.treeB.Node(p.b)
		if na.IsLeaf() && nb.IsLeaf() {
			if q.leavesIntersect(p.a, p.b) {
				return true
			}
			continue
		}

		c := q.children(p)
		// Pushed in reverse so the left child is visited first.
		stack = append(stack, c[1], c[0])
	}

	return false
}

func (q *pairQuery) leavesIntersect(la, lb int32) bool {
	for _, ib := range q.treeB.LeafIndices(lb) {
		tb := q.triangleB(ib)
		for _, ia := range q.treeA.LeafIndices(la) {
			if narrowphase.TrianglesIntersect(q.a.Triangle(ia), tb) {
				return true
			}
		}
	}
	return false
}
