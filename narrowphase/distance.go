// Package narrowphase implements the exact tests between two individual triangles:
// an overlap predicate and a minimum distance with witness points.
//
// Both tests work on triangles already expressed in a common frame. Degenerate input
// (zero-length edges, zero-area triangles, parallel edges) is handled by falling back to
// segment and vertex comparisons; finite input never produces NaN.
//
// References:
//   - Ericson: "Real-Time Collision Detection" (2005), 5.1.2, 5.1.5, 5.1.9
//   - Gottschalk, Lin, Manocha: "OBBTree" (1996) for the separating axis triangle test
package narrowphase

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/akmonengine/trimesh/geometry"
)

// parallelEpsilon is the relative threshold below which two segments are treated as parallel.
const parallelEpsilon = 1e-12

// Result is the minimum distance between two triangles and the closest point on each.
type Result struct {
	Distance float64
	PointA   mgl64.Vec3
	PointB   mgl64.Vec3
}

// ClosestPointOnSegment returns the point of segment [a, b] closest to p.
// A zero-length segment returns a.
func ClosestPointOnSegment(a, b, p mgl64.Vec3) mgl64.Vec3 {
	ab := b.Sub(a)
	denom := ab.LenSqr()
	if denom == 0 {
		return a
	}
	t := clamp01(p.Sub(a).Dot(ab) / denom)
	return a.Add(ab.Mul(t))
}

// ClosestPointsSegmentSegment returns the closest pair of points between segments [p1, q1]
// and [p2, q2]. Parallel segments get a valid pair anchored at the first segment's start
// (clamped), zero-length segments degrade to point/segment queries.
func ClosestPointsSegmentSegment(p1, q1, p2, q2 mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	d1 := q1.Sub(p1)
	d2 := q2.Sub(p2)
	r := p1.Sub(p2)
	a := d1.LenSqr()
	e := d2.LenSqr()
	f := d2.Dot(r)

	// Both segments degenerate into points
	if a == 0 && e == 0 {
		return p1, p2
	}

	var s, t float64
	switch {
	case a == 0:
		// First segment degenerates into a point
		s = 0
		t = clamp01(f / e)
	case e == 0:
		// Second segment degenerates into a point
		t = 0
		s = clamp01(-d1.Dot(r) / a)
	default:
		c := d1.Dot(r)
		b := d1.Dot(d2)
		denom := a*e - b*b

		// Non-parallel: closest point on the infinite line 1 to line 2, clamped to segment 1.
		// Parallel: any s works, pick s = 0.
		if denom > parallelEpsilon*a*e {
			s = clamp01((b*f - c*e) / denom)
		} else {
			s = 0
		}

		t = (b*s + f) / e

		// If t is outside [0,1], clamp it and recompute s for the new t
		if t < 0 {
			t = 0
			s = clamp01(-c / a)
		} else if t > 1 {
			t = 1
			s = clamp01((b - c) / a)
		}
	}

	return p1.Add(d1.Mul(s)), p2.Add(d2.Mul(t))
}

// ClosestPointOnTriangle returns the point of triangle tri closest to p, using Voronoi
// region classification. Degenerate triangles fall back to the closest point on their edges.
func ClosestPointOnTriangle(tri geometry.Triangle, p mgl64.Vec3) mgl64.Vec3 {
	if tri.IsDegenerate() {
		return closestPointOnEdges(tri, p)
	}

	a, b, c := tri[0], tri[1], tri[2]
	ab := b.Sub(a)
	ac := c.Sub(a)

	// Check if P in vertex region outside A
	ap := p.Sub(a)
	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return a
	}

	// Check if P in vertex region outside B
	bp := p.Sub(b)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return b
	}

	// Check if P in edge region of AB
	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		return a.Add(ab.Mul(v))
	}

	// Check if P in vertex region outside C
	cp := p.Sub(c)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return c
	}

	// Check if P in edge region of AC
	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		return a.Add(ac.Mul(w))
	}

	// Check if P in edge region of BC
	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return b.Add(c.Sub(b).Mul(w))
	}

	// P inside face region
	sum := va + vb + vc
	if sum == 0 {
		return closestPointOnEdges(tri, p)
	}
	denom := 1.0 / sum
	v := vb * denom
	w := vc * denom
	return a.Add(ab.Mul(v)).Add(ac.Mul(w))
}

func closestPointOnEdges(tri geometry.Triangle, p mgl64.Vec3) mgl64.Vec3 {
	best := ClosestPointOnSegment(tri[0], tri[1], p)
	bestDist := p.Sub(best).LenSqr()

	for i := 1; i < 3; i++ {
		q := ClosestPointOnSegment(tri[i], tri[(i+1)%3], p)
		if d := p.Sub(q).LenSqr(); d < bestDist {
			best, bestDist = q, d
		}
	}
	return best
}

// TriangleDistance returns the minimum distance between two triangles and a witness pair.
//
// The candidates are the nine edge-edge pairs and the six vertex-face projections; the
// smallest one wins, earlier candidates winning ties. The result is exact for disjoint
// triangles. For intersecting triangles the reported value is not meaningful: callers are
// expected to run TrianglesIntersect first.
func TriangleDistance(a, b geometry.Triangle) Result {
	res := Result{Distance: math.Inf(1)}
	bestSq := math.Inf(1)

	consider := func(pa, pb mgl64.Vec3) {
		if d := pa.Sub(pb).LenSqr(); d < bestSq {
			bestSq = d
			res.PointA = pa
			res.PointB = pb
		}
	}

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			pa, pb := ClosestPointsSegmentSegment(a[i], a[(i+1)%3], b[j], b[(j+1)%3])
			consider(pa, pb)
		}
	}

	for i := 0; i < 3; i++ {
		consider(a[i], ClosestPointOnTriangle(b, a[i]))
	}
	for j := 0; j < 3; j++ {
		consider(ClosestPointOnTriangle(a, b[j]), b[j])
	}

	res.Distance = math.Sqrt(bestSq)
	return res
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
