package geometry

import "math"

// boxAxisEpsilon pads the absolute rotation terms so near-parallel edge axes stay conservative.
const boxAxisEpsilon = 1e-10

// BoxGap runs the separating axis test between box a, expressed in frame A, and box b,
// expressed in frame B, where bToA places frame B inside frame A.
//
// The 15 candidate axes are the three face normals of each box and the nine cross products
// of their edge directions (Ericson, "Real-Time Collision Detection", 4.4.1). Every axis is
// normalized, so the returned maximum projected gap is a lower bound on the Euclidean distance
// between the boxes:
//   - > 0: the boxes are separated by at least this distance
//   - <= 0: the boxes overlap or touch
//
// Empty boxes never overlap anything and report +Inf.
func BoxGap(a, b AABB, bToA Transform) float64 {
	if a.IsEmpty() || b.IsEmpty() {
		return math.Inf(1)
	}

	ha := a.HalfExtents()
	hb := b.HalfExtents()

	// Center of b in A's frame, relative to a's center.
	t := bToA.Apply(b.Center()).Sub(a.Center())

	// A's axes are the identity, so R[i][j] = A_i . B_j is the rotation itself.
	var r, absR [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = bToA.Rotation.At(i, j)
			absR[i][j] = math.Abs(r[i][j]) + boxAxisEpsilon
		}
	}

	best := math.Inf(-1)

	// Face axes of A.
	for i := 0; i < 3; i++ {
		rb := hb[0]*absR[i][0] + hb[1]*absR[i][1] + hb[2]*absR[i][2]
		if g := math.Abs(t[i]) - ha[i] - rb; g > best {
			best = g
		}
	}

	// Face axes of B.
	for j := 0; j < 3; j++ {
		ra := ha[0]*absR[0][j] + ha[1]*absR[1][j] + ha[2]*absR[2][j]
		proj := t[0]*r[0][j] + t[1]*r[1][j] + t[2]*r[2][j]
		if g := math.Abs(proj) - ra - hb[j]; g > best {
			best = g
		}
	}

	// Edge axes A_i x B_j, normalized by |A_i x B_j| = sqrt(1 - R[i][j]^2).
	for i := 0; i < 3; i++ {
		i1, i2 := (i+1)%3, (i+2)%3
		for j := 0; j < 3; j++ {
			l2 := 1 - r[i][j]*r[i][j]
			if l2 <= boxAxisEpsilon {
				// Parallel edges: the face axes already cover this direction.
				continue
			}
			j1, j2 := (j+1)%3, (j+2)%3

			ra := ha[i1]*absR[i2][j] + ha[i2]*absR[i1][j]
			rb := hb[j1]*absR[i][j2] + hb[j2]*absR[i][j1]
			raw := math.Abs(t[i2]*r[i1][j]-t[i1]*r[i2][j]) - ra - rb
			if g := raw / math.Sqrt(l2); g > best {
				best = g
			}
		}
	}

	return best
}

// BoxLowerBound clamps BoxGap at zero, giving a lower bound on the distance between any point
// of a and any point of b.
func BoxLowerBound(a, b AABB, bToA Transform) float64 {
	return math.Max(0, BoxGap(a, b, bToA))
}
