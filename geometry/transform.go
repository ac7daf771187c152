// Package geometry holds the value types shared by the mesh, bvh and query packages:
// rigid transforms, axis-aligned boxes and triangles.
package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Transform represents a rigid placement in 3D space.
// A local point p is mapped to Rotation*p + Translation.
type Transform struct {
	Rotation    mgl64.Mat3
	Translation mgl64.Vec3
}

// NewTransform creates an identity transform
func NewTransform() Transform {
	return Transform{
		Rotation:    mgl64.Ident3(),
		Translation: mgl64.Vec3{0, 0, 0},
	}
}

// NewTransformFrom creates a transform from a rotation matrix and a translation.
func NewTransformFrom(rotation mgl64.Mat3, translation mgl64.Vec3) Transform {
	return Transform{Rotation: rotation, Translation: translation}
}

// NewTransformFromQuat creates a transform from a unit quaternion and a translation.
func NewTransformFromQuat(rotation mgl64.Quat, translation mgl64.Vec3) Transform {
	return Transform{Rotation: RotationFromQuat(rotation), Translation: translation}
}

// Translation creates a transform that only translates.
func Translation(x, y, z float64) Transform {
	return Transform{Rotation: mgl64.Ident3(), Translation: mgl64.Vec3{x, y, z}}
}

// RotationFromEuler returns Rz(yaw) * Ry(pitch) * Rx(roll).
func RotationFromEuler(roll, pitch, yaw float64) mgl64.Mat3 {
	return mgl64.Rotate3DZ(yaw).Mul3(mgl64.Rotate3DY(pitch)).Mul3(mgl64.Rotate3DX(roll))
}

// RotationFromQuat converts a quaternion to a rotation matrix. The quaternion is normalized first.
func RotationFromQuat(q mgl64.Quat) mgl64.Mat3 {
	return q.Normalize().Mat4().Mat3()
}

// IsRotation reports whether m is orthonormal with determinant +1, within tol.
func IsRotation(m mgl64.Mat3, tol float64) bool {
	for _, v := range m {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	if math.Abs(m.Det()-1) > tol {
		return false
	}

	return m.Transpose().Mul3(m).ApproxEqualThreshold(mgl64.Ident3(), tol)
}

// Apply maps a local point into the parent frame.
func (t Transform) Apply(p mgl64.Vec3) mgl64.Vec3 {
	return t.Rotation.Mul3x1(p).Add(t.Translation)
}

// ApplyVector rotates a direction, ignoring the translation.
func (t Transform) ApplyVector(v mgl64.Vec3) mgl64.Vec3 {
	return t.Rotation.Mul3x1(v)
}

// InverseApply maps a point of the parent frame back into the local frame.
func (t Transform) InverseApply(p mgl64.Vec3) mgl64.Vec3 {
	return t.Rotation.Transpose().Mul3x1(p.Sub(t.Translation))
}

// Compose returns the transform applying inner first, then t.
func (t Transform) Compose(inner Transform) Transform {
	return Transform{
		Rotation:    t.Rotation.Mul3(inner.Rotation),
		Translation: t.Rotation.Mul3x1(inner.Translation).Add(t.Translation),
	}
}

// Inverse relies on the rotation being orthonormal: the inverse rotation is its transpose.
func (t Transform) Inverse() Transform {
	rt := t.Rotation.Transpose()
	return Transform{
		Rotation:    rt,
		Translation: rt.Mul3x1(t.Translation).Mul(-1),
	}
}

// RelativeTo returns the transform mapping points of t's local frame into other's local frame.
func (t Transform) RelativeTo(other Transform) Transform {
	return other.Inverse().Compose(t)
}
