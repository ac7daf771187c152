// Package bvh builds a static bounding volume hierarchy over a slice of triangles.
//
// Nodes live in a flat arena in pre-order with the root at index 0. Children are referenced
// by index, so the tree has no pointers and can be shared read-only between goroutines.
//
// Construction is top-down: the bounds of the current triangle set are computed, the set
// becomes a leaf when it holds at most LeafSize triangles, otherwise it is split in two halves
// at the median centroid along the longest axis of its bounds. Triangles are ordered by
// (centroid coordinate, original index), so a given triangle list always yields the same tree.
package bvh

import (
	"cmp"
	"slices"

	"github.com/akmonengine/trimesh/geometry"
)

// DefaultLeafSize is the number of triangles stored per leaf when no size is given.
const DefaultLeafSize = 1

// Node is either an internal node (Left and Right are valid node indices) or a leaf
// (Left < 0) covering Indices[First:First+Count] of its BVH.
type Node struct {
	Bounds geometry.AABB
	Left   int32
	Right  int32
	First  int32
	Count  int32
}

// IsLeaf reports whether the node stores triangles directly.
func (n Node) IsLeaf() bool {
	return n.Left < 0
}

// BVH is an immutable hierarchy over a triangle slice it does not own.
type BVH struct {
	nodes    []Node
	indices  []int
	leafSize int
}

// Build constructs the hierarchy for tris. Sizes below 1 fall back to DefaultLeafSize.
// An empty slice yields an empty BVH.
func Build(tris []geometry.Triangle, leafSize int) *BVH {
	if leafSize < 1 {
		leafSize = DefaultLeafSize
	}

	b := &BVH{
		nodes:    make([]Node, 0, max(0, 2*len(tris)-1)),
		indices:  make([]int, len(tris)),
		leafSize: leafSize,
	}
	if len(tris) == 0 {
		return b
	}

	bounds := make([]geometry.AABB, len(tris))
	centroids := make([]float64, 0, 3*len(tris))
	for i, tri := range tris {
		b.indices[i] = i
		bounds[i] = tri.Bounds()
		c := tri.Centroid()
		centroids = append(centroids, c[0], c[1], c[2])
	}

	b.build(bounds, centroids, 0, len(tris))
	return b
}

// build appends the subtree for indices[first:end] and returns its node index.
func (b *BVH) build(bounds []geometry.AABB, centroids []float64, first, end int) int32 {
	box := geometry.EmptyAABB()
	for _, idx := range b.indices[first:end] {
		box = box.Union(bounds[idx])
	}

	nodeIdx := int32(len(b.nodes))
	b.nodes = append(b.nodes, Node{Bounds: box, Left: -1, Right: -1})

	count := end - first
	if count <= b.leafSize {
		b.nodes[nodeIdx].First = int32(first)
		b.nodes[nodeIdx].Count = int32(count)
		return nodeIdx
	}

	axis := box.LongestAxis()
	slices.SortFunc(b.indices[first:end], func(i, j int) int {
		if c := cmp.Compare(centroids[3*i+axis], centroids[3*j+axis]); c != 0 {
			return c
		}
		return cmp.Compare(i, j)
	})

	mid := first + count/2
	left := b.build(bounds, centroids, first, mid)
	right := b.build(bounds, centroids, mid, end)

	b.nodes[nodeIdx].Left = left
	b.nodes[nodeIdx].Right = right
	return nodeIdx
}

// Root returns the index of the root node. Only meaningful when Len() > 0.
func (b *BVH) Root() int32 {
	return 0
}

// Len returns the number of nodes.
func (b *BVH) Len() int {
	if b == nil {
		return 0
	}
	return len(b.nodes)
}

// Node returns a copy of the i-th node.
func (b *BVH) Node(i int32) Node {
	return b.nodes[i]
}

// LeafIndices returns the triangle indices stored in leaf i. The slice aliases the BVH and
// must not be modified.
func (b *BVH) LeafIndices(i int32) []int {
	n := b.nodes[i]
	return b.indices[n.First : n.First+n.Count]
}

// LeafSize returns the maximum number of triangles per leaf.
func (b *BVH) LeafSize() int {
	return b.leafSize
}

// Bounds returns the root box, or an empty box for an empty BVH.
func (b *BVH) Bounds() geometry.AABB {
	if b.Len() == 0 {
		return geometry.EmptyAABB()
	}
	return b.nodes[0].Bounds
}

// NumLeaves counts the leaf nodes.
func (b *BVH) NumLeaves() int {
	leaves := 0
	for i := 0; i < b.Len(); i++ {
		if b.nodes[i].IsLeaf() {
			leaves++
		}
	}
	return leaves
}

// Depth returns the number of nodes on the longest root-to-leaf path.
func (b *BVH) Depth() int {
	if b.Len() == 0 {
		return 0
	}
	return b.depth(0)
}

func (b *BVH) depth(i int32) int {
	n := b.nodes[i]
	if n.IsLeaf() {
		return 1
	}
	return 1 + max(b.depth(n.Left), b.depth(n.Right))
}
