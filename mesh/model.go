package mesh

import (
	"github.com/akmonengine/trimesh/bvh"
	"github.com/akmonengine/trimesh/geometry"
)

var emptyTree = bvh.Build(nil, bvh.DefaultLeafSize)

// Model is a finalized triangle mesh with its hierarchy. It is immutable and safe to share
// between goroutines. The zero Model is empty: it never collides and has no distance.
type Model struct {
	triangles []geometry.Triangle
	tree      *bvh.BVH
}

// NumTriangles returns the number of triangles.
func (m *Model) NumTriangles() int {
	if m == nil {
		return 0
	}
	return len(m.triangles)
}

// Triangle returns the i-th triangle in model-local coordinates.
func (m *Model) Triangle(i int) geometry.Triangle {
	return m.triangles[i]
}

// Triangles returns a copy of all triangles, in insertion order.
func (m *Model) Triangles() []geometry.Triangle {
	if m == nil {
		return nil
	}
	out := make([]geometry.Triangle, len(m.triangles))
	copy(out, m.triangles)
	return out
}

// BVH returns the hierarchy, never nil.
func (m *Model) BVH() *bvh.BVH {
	if m == nil || m.tree == nil {
		return emptyTree
	}
	return m.tree
}

// Bounds returns the model-local bounding box.
func (m *Model) Bounds() geometry.AABB {
	return m.BVH().Bounds()
}

// IsEmpty reports whether the model has no triangle.
func (m *Model) IsEmpty() bool {
	return m.NumTriangles() == 0 || m.BVH().Len() == 0
}
