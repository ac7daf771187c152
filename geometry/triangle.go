package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// degenerateAreaRatio is the squared-normal to squared-edge ratio below which a triangle is
// considered collapsed onto a segment or a point.
const degenerateAreaRatio = 1e-12

// Triangle is three vertices in winding order.
type Triangle [3]mgl64.Vec3

// NewTriangle builds a triangle from its vertices.
func NewTriangle(p0, p1, p2 mgl64.Vec3) Triangle {
	return Triangle{p0, p1, p2}
}

// Edge returns the i-th edge as a start point and a direction: edge 0 is p0->p1, 1 is p1->p2, 2 is p2->p0.
func (t Triangle) Edge(i int) (mgl64.Vec3, mgl64.Vec3) {
	start := t[i%3]
	return start, t[(i+1)%3].Sub(start)
}

// Normal returns the unnormalized face normal (p1-p0) x (p2-p0). Its length is twice the area.
func (t Triangle) Normal() mgl64.Vec3 {
	return t[1].Sub(t[0]).Cross(t[2].Sub(t[0]))
}

// UnitNormal returns the normalized face normal, or the zero vector for a degenerate triangle.
func (t Triangle) UnitNormal() mgl64.Vec3 {
	if t.IsDegenerate() {
		return mgl64.Vec3{}
	}
	return t.Normal().Normalize()
}

// Area returns the triangle area.
func (t Triangle) Area() float64 {
	return 0.5 * t.Normal().Len()
}

// IsDegenerate reports whether the triangle has collapsed onto a segment or a point,
// relative to the length of its longest edge.
func (t Triangle) IsDegenerate() bool {
	maxEdge := math.Max(t[1].Sub(t[0]).LenSqr(), math.Max(t[2].Sub(t[1]).LenSqr(), t[0].Sub(t[2]).LenSqr()))
	if maxEdge == 0 {
		return true
	}
	return t.Normal().LenSqr() <= degenerateAreaRatio*maxEdge*maxEdge
}

// Centroid returns the mean of the three vertices.
func (t Triangle) Centroid() mgl64.Vec3 {
	return t[0].Add(t[1]).Add(t[2]).Mul(1.0 / 3.0)
}

// Bounds returns the axis-aligned box of the triangle.
func (t Triangle) Bounds() AABB {
	return EmptyAABB().Extend(t[0]).Extend(t[1]).Extend(t[2])
}

// Transform returns a copy of the triangle placed by tr. The receiver is left untouched.
func (t Triangle) Transform(tr Transform) Triangle {
	return Triangle{tr.Apply(t[0]), tr.Apply(t[1]), tr.Apply(t[2])}
}

// IsFinite reports whether every coordinate is a finite number.
func (t Triangle) IsFinite() bool {
	for _, v := range t {
		for _, c := range v {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				return false
			}
		}
	}
	return true
}
