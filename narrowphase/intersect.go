package narrowphase

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/akmonengine/trimesh/geometry"
)

const (
	// axisEpsilon is the relative squared sine under which a cross product axis is skipped
	// and a face counts as flat.
	axisEpsilon = 1e-18
	// touchEpsilon is the gap, relative to the triangle size, still counted as contact.
	touchEpsilon = 1e-12
)

// TrianglesIntersect reports whether two triangles share at least one point.
// Touching triangles (a shared vertex, an edge resting on a face) intersect.
//
// The test projects both triangles on the candidate separating axes:
//   - the two face normals
//   - the nine cross products of an edge of a with an edge of b
//   - the in-plane edge normals (face normal x edge), which cover coplanar pairs
//
// Any axis that separates the projections proves the triangles disjoint, so thin faces keep
// their normals; only cross products that vanish are skipped. When both triangles are flat
// (collapsed onto a segment or a point up to rounding) those axes are no longer enough, and
// the feature distance must also fall within the thickness of the two triangles.
func TrianglesIntersect(a, b geometry.Triangle) bool {
	// The test is translation invariant; centering on a's first vertex keeps projections small.
	origin := a[0]
	for i := 0; i < 3; i++ {
		a[i] = a[i].Sub(origin)
		b[i] = b[i].Sub(origin)
	}

	size := math.Sqrt(triangleScale(a, b))
	extent := size
	for i := 0; i < 3; i++ {
		extent = math.Max(extent, b[i].Len())
	}
	tol := touchEpsilon * extent

	var ea, eb [3]mgl64.Vec3
	for i := 0; i < 3; i++ {
		_, ea[i] = a.Edge(i)
		_, eb[i] = b.Edge(i)
	}
	na := a.Normal()
	nb := b.Normal()

	separated := func(axis mgl64.Vec3) bool {
		minA, maxA := project(a, axis)
		minB, maxB := project(b, axis)
		slack := tol * axis.Len()
		return maxA+slack < minB || maxB+slack < minA
	}
	separatedCross := func(u, v mgl64.Vec3) bool {
		axis := u.Cross(v)
		if axis.LenSqr() <= axisEpsilon*u.LenSqr()*v.LenSqr() {
			return false
		}
		return separated(axis)
	}

	// A zero normal projects everything on 0 and never separates.
	if separated(na) || separated(nb) {
		return false
	}

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if separatedCross(ea[i], eb[j]) {
				return false
			}
		}
	}

	// In-plane normals. The cross terms (nb x ea, na x eb) are needed when one triangle
	// collapses onto a segment lying in the other's plane.
	for i := 0; i < 3; i++ {
		if separatedCross(na, ea[i]) || separatedCross(nb, eb[i]) {
			return false
		}
		if separatedCross(nb, ea[i]) || separatedCross(na, eb[i]) {
			return false
		}
	}

	flatA, heightA := flatness(na, ea)
	flatB, heightB := flatness(nb, eb)
	if flatA && flatB {
		// Every point of a flat triangle lies within its height of its longest edge.
		return TriangleDistance(a, b).Distance <= tol+heightA+heightB
	}

	return true
}

// flatness reports whether a face normal vanishes relative to the longest edge, and the
// triangle height over that edge.
func flatness(n mgl64.Vec3, edges [3]mgl64.Vec3) (bool, float64) {
	longest := math.Max(edges[0].LenSqr(), math.Max(edges[1].LenSqr(), edges[2].LenSqr()))
	if longest == 0 {
		return true, 0
	}
	return n.LenSqr() <= axisEpsilon*longest*longest, n.Len() / math.Sqrt(longest)
}

func project(t geometry.Triangle, axis mgl64.Vec3) (float64, float64) {
	p0 := t[0].Dot(axis)
	p1 := t[1].Dot(axis)
	p2 := t[2].Dot(axis)
	return math.Min(p0, math.Min(p1, p2)), math.Max(p0, math.Max(p1, p2))
}

// triangleScale returns the squared length of the longest edge of either triangle, or 1 when
// both collapse to the same point.
func triangleScale(a, b geometry.Triangle) float64 {
	var s float64
	for i := 0; i < 3; i++ {
		_, da := a.Edge(i)
		_, db := b.Edge(i)
		s = math.Max(s, math.Max(da.LenSqr(), db.LenSqr()))
	}
	if s == 0 {
		return 1
	}
	return s
}
