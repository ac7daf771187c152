package trimesh

import (
	"container/heap"
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/akmonengine/trimesh/geometry"
	"github.com/akmonengine/trimesh/mesh"
	"github.com/akmonengine/trimesh/narrowphase"
)

// DistanceResult is a separation distance with the closest point of each model, in world space.
type DistanceResult struct {
	Distance float64
	PointA   mgl64.Vec3
	PointB   mgl64.Vec3
}

// pairHeap is a min-heap of node pairs ordered by lower bound, then by node indices.
type pairHeap []nodePair

func (h pairHeap) Len() int { return len(h) }
func (h pairHeap) Less(i, j int) bool {
	if h[i].bound != h[j].bound {
		return h[i].bound < h[j].bound
	}
	if h[i].a != h[j].a {
		return h[i].a < h[j].a
	}
	return h[i].b < h[j].b
}
func (h pairHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *pairHeap) Push(x interface{}) {
	*h = append(*h, x.(nodePair))
}
func (h *pairHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

var heapPool = sync.Pool{
	New: func() interface{} {
		h := make(pairHeap, 0, 64)
		return &h
	},
}

// Distance returns the minimum distance between model a placed by ta and model b placed by tb,
// within the tolerances of opts. ok is false when the models overlap or touch, or when either
// model is empty.
func Distance(a *mesh.Model, ta geometry.Transform, b *mesh.Model, tb geometry.Transform, opts DistanceOptions) (float64, bool) {
	res, ok := DistanceWithPoints(a, ta, b, tb, opts)
	return res.Distance, ok
}

// DistanceWithPoints is Distance, also returning a closest point on each model in world space.
//
// The reported distance d is achieved by the returned points, so it may overestimate the true
// minimum d* but never underestimates it: d - AbsoluteError <= d* <= d and d* >= d * (1 - RelativeError).
func DistanceWithPoints(a *mesh.Model, ta geometry.Transform, b *mesh.Model, tb geometry.Transform, opts DistanceOptions) (DistanceResult, bool) {
	q := newPairQuery(a, ta, b, tb)
	if q.empty() {
		return DistanceResult{}, false
	}
	opts = opts.clamped()

	hPtr := heapPool.Get().(*pairHeap)
	*hPtr = (*hPtr)[:0]
	defer func() {
		*hPtr = (*hPtr)[:0]
		heapPool.Put(hPtr)
	}()

	root := nodePair{a: q.treeA.Root(), b: q.treeB.Root()}
	root.bound = math.Max(0, q.gap(root.a, root.b))
	heap.Push(hPtr, root)

	best := narrowphase.Result{Distance: math.Inf(1)}

	for hPtr.Len() > 0 {
		p := heap.Pop(hPtr).(nodePair)
		// Every remaining pair is at least as far: the current best is good enough.
		if opts.prunes(p.bound, best.Distance) {
			break
		}

		na := q.treeA.Node(p.a)
		nb := q.treeB.Node(p.b)
		if na.IsLeaf() && nb.IsLeaf() {
			if q.leafDistance(p.a, p.b, &best) {
				return DistanceResult{}, false
			}
			continue
		}

		for _, c := range q.children(p) {
			c.bound = math.Max(0, q.gap(c.a, c.b))
			if opts.prunes(c.bound, best.Distance) {
				continue
			}
			heap.Push(hPtr, c)
		}
	}

	if !(best.Distance > 0) || math.IsInf(best.Distance, 1) {
		return DistanceResult{}, false
	}

	return DistanceResult{
		Distance: best.Distance,
		PointA:   q.ta.Apply(best.PointA),
		PointB:   q.ta.Apply(best.PointB),
	}, true
}

// leafDistance updates best with the closest triangle pair of two leaves. It returns true as
// soon as a pair of triangles intersects.
func (q *pairQuery) leafDistance(la, lb int32, best *narrowphase.Result) bool {
	for _, ib := range q.treeB.LeafIndices(lb) {
		tb := q.triangleB(ib)
		for _, ia := range q.treeA.LeafIndices(la) {
			tri := q.a.Triangle(ia)
			if narrowphase.TrianglesIntersect(tri, tb) {
				return true
			}
			if r := narrowphase.TriangleDistance(tri, tb); r.Distance < best.Distance {
				*best = r
			}
		}
	}
	return false
}
