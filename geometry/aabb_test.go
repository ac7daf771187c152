package geometry

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// =============================================================================
// Construction
// =============================================================================

func TestEmptyAABB(t *testing.T) {
	empty := EmptyAABB()
	if !empty.IsEmpty() {
		t.Fatal("EmptyAABB should report IsEmpty")
	}
	if empty.ContainsPoint(mgl64.Vec3{0, 0, 0}) {
		t.Error("Empty box should not contain the origin")
	}

	single := empty.Extend(mgl64.Vec3{1, 2, 3})
	if single.IsEmpty() {
		t.Fatal("Box extended by a point should not be empty")
	}
	if single.Min != single.Max || single.Min != (mgl64.Vec3{1, 2, 3}) {
		t.Errorf("Expected zero-extent box at (1,2,3), got %v", single)
	}
}

func TestAABBExtendAndUnion(t *testing.T) {
	tests := []struct {
		name     string
		a        AABB
		b        AABB
		expected AABB
	}{
		{
			name:     "Disjoint boxes",
			a:        AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{1, 1, 1}},
			b:        AABB{Min: mgl64.Vec3{2, -1, 0}, Max: mgl64.Vec3{3, 0, 4}},
			expected: AABB{Min: mgl64.Vec3{0, -1, 0}, Max: mgl64.Vec3{3, 1, 4}},
		},
		{
			name:     "Nested boxes",
			a:        AABB{Min: mgl64.Vec3{-5, -5, -5}, Max: mgl64.Vec3{5, 5, 5}},
			b:        AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{1, 1, 1}},
			expected: AABB{Min: mgl64.Vec3{-5, -5, -5}, Max: mgl64.Vec3{5, 5, 5}},
		},
		{
			name:     "Union with empty",
			a:        AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{1, 1, 1}},
			b:        EmptyAABB(),
			expected: AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{1, 1, 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Union(tt.b)
			if got != tt.expected {
				t.Errorf("Union = %v, expected %v", got, tt.expected)
			}
			// Test symmetry
			if got := tt.b.Union(tt.a); got != tt.expected {
				t.Errorf("Union (symmetry) = %v, expected %v", got, tt.expected)
			}
			if !got.Contains(tt.a) {
				t.Errorf("Union should contain its first operand")
			}
		})
	}
}

// =============================================================================
// Overlap / containment
// =============================================================================

func TestAABBOverlaps(t *testing.T) {
	tests := []struct {
		name          string
		aabb1         AABB
		aabb2         AABB
		shouldOverlap bool
	}{
		{
			name:          "Separated on X axis",
			aabb1:         AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{1, 1, 1}},
			aabb2:         AABB{Min: mgl64.Vec3{2, 0, 0}, Max: mgl64.Vec3{3, 1, 1}},
			shouldOverlap: false,
		},
		{
			name:          "Separated on Z axis (negative)",
			aabb1:         AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{1, 1, 1}},
			aabb2:         AABB{Min: mgl64.Vec3{0, 0, -2}, Max: mgl64.Vec3{1, 1, -1}},
			shouldOverlap: false,
		},
		{
			name:          "Partial overlap on all axes",
			aabb1:         AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{2, 2, 2}},
			aabb2:         AABB{Min: mgl64.Vec3{1, 1, 1}, Max: mgl64.Vec3{3, 3, 3}},
			shouldOverlap: true,
		},
		{
			name:          "Face touching",
			aabb1:         AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{1, 1, 1}},
			aabb2:         AABB{Min: mgl64.Vec3{1, 0, 0}, Max: mgl64.Vec3{2, 1, 1}},
			shouldOverlap: true, // Touching faces should be considered overlapping
		},
		{
			name:          "Flat box crossing a solid box",
			aabb1:         AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{2, 2, 2}},
			aabb2:         AABB{Min: mgl64.Vec3{-1, -1, 1}, Max: mgl64.Vec3{3, 3, 1}},
			shouldOverlap: true,
		},
		{
			name:          "Point boxes at different positions",
			aabb1:         AABB{Min: mgl64.Vec3{1, 1, 1}, Max: mgl64.Vec3{1, 1, 1}},
			aabb2:         AABB{Min: mgl64.Vec3{2, 2, 2}, Max: mgl64.Vec3{2, 2, 2}},
			shouldOverlap: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.aabb1.Overlaps(tt.aabb2); got != tt.shouldOverlap {
				t.Errorf("Expected overlap=%v, got %v", tt.shouldOverlap, got)
			}
			// Test symmetry
			if got := tt.aabb2.Overlaps(tt.aabb1); got != tt.shouldOverlap {
				t.Errorf("Expected overlap=%v (symmetry test), got %v", tt.shouldOverlap, got)
			}
		})
	}
}

func TestAABBContainsPoint(t *testing.T) {
	aabb := AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{2, 2, 2}}

	tests := []struct {
		name     string
		point    mgl64.Vec3
		expected bool
	}{
		{"Center point", mgl64.Vec3{1, 1, 1}, true},
		{"Min corner", mgl64.Vec3{0, 0, 0}, true},
		{"Max corner", mgl64.Vec3{2, 2, 2}, true},
		{"Outside (X too large)", mgl64.Vec3{3, 1, 1}, false},
		{"Outside (Y too small)", mgl64.Vec3{1, -1, 1}, false},
		{"Outside (Z too large)", mgl64.Vec3{1, 1, 3}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := aabb.ContainsPoint(tt.point)
			if result != tt.expected {
				t.Errorf("ContainsPoint(%v) = %v, expected %v", tt.point, result, tt.expected)
			}
		})
	}
}

// =============================================================================
// Metrics
// =============================================================================

func TestAABBDistance(t *testing.T) {
	tests := []struct {
		name     string
		aabb1    AABB
		aabb2    AABB
		expected float64
	}{
		{
			name:     "Overlapping boxes",
			aabb1:    AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{2, 2, 2}},
			aabb2:    AABB{Min: mgl64.Vec3{1, 1, 1}, Max: mgl64.Vec3{3, 3, 3}},
			expected: 0,
		},
		{
			name:     "Separated along X",
			aabb1:    AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{1, 1, 1}},
			aabb2:    AABB{Min: mgl64.Vec3{3, 0, 0}, Max: mgl64.Vec3{4, 1, 1}},
			expected: 2,
		},
		{
			name:     "Separated diagonally",
			aabb1:    AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{1, 1, 1}},
			aabb2:    AABB{Min: mgl64.Vec3{4, 5, 1}, Max: mgl64.Vec3{5, 6, 2}},
			expected: 5, // gaps (3, 4, 0)
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.aabb1.Distance(tt.aabb2); math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("Distance = %v, expected %v", got, tt.expected)
			}
			if got := tt.aabb2.Distance(tt.aabb1); math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("Distance (symmetry) = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestAABBLongestAxis(t *testing.T) {
	tests := []struct {
		name     string
		aabb     AABB
		expected int
	}{
		{"X longest", AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{5, 1, 1}}, 0},
		{"Y longest", AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{1, 5, 1}}, 1},
		{"Z longest", AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{1, 1, 5}}, 2},
		{"Cube ties to X", AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{1, 1, 1}}, 0},
		{"Y and Z tie to Y", AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{1, 3, 3}}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.aabb.LongestAxis(); got != tt.expected {
				t.Errorf("LongestAxis = %d, expected %d", got, tt.expected)
			}
		})
	}
}

func TestAABBTransform(t *testing.T) {
	box := AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{2, 1, 1}}

	t.Run("Identity", func(t *testing.T) {
		got := box.Transform(NewTransform())
		if !got.Min.ApproxEqual(box.Min) || !got.Max.ApproxEqual(box.Max) {
			t.Errorf("Identity transform changed the box: %v", got)
		}
	})

	t.Run("Translation only", func(t *testing.T) {
		got := box.Transform(Translation(5, 3, 2))
		if !got.Min.ApproxEqual(mgl64.Vec3{5, 3, 2}) || !got.Max.ApproxEqual(mgl64.Vec3{7, 4, 3}) {
			t.Errorf("Unexpected translated box: %v", got)
		}
	})

	t.Run("90 degree rotation around Z", func(t *testing.T) {
		got := box.Transform(NewTransformFrom(mgl64.Rotate3DZ(math.Pi/2), mgl64.Vec3{}))
		// (x, y) -> (-y, x)
		if !got.Min.ApproxEqualThreshold(mgl64.Vec3{-1, 0, 0}, 1e-12) ||
			!got.Max.ApproxEqualThreshold(mgl64.Vec3{0, 2, 1}, 1e-12) {
			t.Errorf("Unexpected rotated box: %v", got)
		}
	})
}
