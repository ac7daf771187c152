package scene

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap/zaptest"
	"go.viam.com/test"

	"github.com/akmonengine/trimesh"
)

func TestLoadFile(t *testing.T) {
	s, err := LoadFile(filepath.Join("testdata", "fixtures.json"))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, s.Models, test.ShouldHaveLength, 3)
	test.That(t, s.Queries, test.ShouldHaveLength, 5)
	test.That(t, s.Models[2].LeafSize, test.ShouldEqual, 2)
	test.That(t, s.Options(), test.ShouldResemble, trimesh.DistanceOptions{AbsoluteError: 0.001})
	test.That(t, s.Validate(), test.ShouldBeNil)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, os.IsNotExist(errors.Cause(err)), test.ShouldBeTrue)
}

func TestLoad(t *testing.T) {
	t.Run("unknown fields are rejected", func(t *testing.T) {
		_, err := Load(strings.NewReader(`{"models": [], "shapes": []}`))
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, "shapes")
	})

	t.Run("malformed triangles are rejected", func(t *testing.T) {
		_, err := Load(strings.NewReader(`{"models": [{"name": "a", "triangles": [[[1, 2]]]}]}`))
		test.That(t, err, test.ShouldNotBeNil)
	})
}

func TestBuild(t *testing.T) {
	s, err := LoadFile(filepath.Join("testdata", "fixtures.json"))
	test.That(t, err, test.ShouldBeNil)

	built, err := s.Build(zaptest.NewLogger(t))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, built.Models, test.ShouldHaveLength, 3)
	test.That(t, built.Names, test.ShouldResemble, []string{"crossing", "quarter turn", "quarter turn matrix", "slid into", "slid past"})

	collisions := trimesh.CollideAll(built.Queries, 2)
	test.That(t, collisions, test.ShouldResemble, []bool{true, false, false, true, false})

	results := trimesh.DistanceAll(built.Queries, built.Options, 2)
	test.That(t, results[0].OK, test.ShouldBeFalse)
	test.That(t, results[1].OK, test.ShouldBeTrue)
	test.That(t, results[1].Distance, test.ShouldAlmostEqual, 5, 1e-3)
	test.That(t, results[2].Distance, test.ShouldAlmostEqual, 5, 1e-3)
	test.That(t, results[3].OK, test.ShouldBeFalse)
	test.That(t, results[4].Distance, test.ShouldAlmostEqual, 2, 1e-3)
}

func TestValidate(t *testing.T) {
	s := &Scene{
		RelativeError: 2,
		Models: []ModelSpec{
			{Name: "a", Triangles: [][3][3]float64{{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}}},
			{Name: "a", Triangles: [][3][3]float64{{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}}},
			{Name: "", LeafSize: -1},
		},
		Queries: []QuerySpec{
			{A: "a", B: "ghost"},
			{
				Name:  "bad pose",
				A:     "a",
				B:     "a",
				PoseA: Pose{Matrix: &[9]float64{2, 0, 0, 0, 1, 0, 0, 0, 1}},
				PoseB: Pose{Rotation: &Euler{}, Matrix: &[9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1}},
			},
		},
	}

	err := s.Validate()
	test.That(t, err, test.ShouldNotBeNil)
	// relative error, duplicate name, missing name, no triangles, negative leaf size,
	// unknown model, bad matrix, conflicting rotation.
	test.That(t, multierr.Errors(err), test.ShouldHaveLength, 8)
	test.That(t, err.Error(), test.ShouldContainSubstring, `duplicate model name "a"`)
	test.That(t, err.Error(), test.ShouldContainSubstring, `query #0: unknown model "ghost"`)
	test.That(t, err.Error(), test.ShouldContainSubstring, `query "bad pose": pose_a`)

	_, err = s.Build(nil)
	test.That(t, err, test.ShouldNotBeNil)

	test.That(t, (&Scene{}).Validate(), test.ShouldBeError)
}

func TestBuildRejectsBadPose(t *testing.T) {
	tri := [][3][3]float64{{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}}
	s := &Scene{
		Models: []ModelSpec{{Name: "a", Triangles: tri}, {Name: "b", Triangles: tri}},
		Queries: []QuerySpec{
			{A: "a", B: "b"},
			{Name: "tilted", A: "a", B: "b", PoseB: Pose{Matrix: &[9]float64{1, 0, 0, 0, 1, 0, 0, 0, -1}}},
		},
	}

	built, err := s.Build(zaptest.NewLogger(t))
	test.That(t, built, test.ShouldBeNil)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `query "tilted": pose_b`)
}

func TestPoseTransform(t *testing.T) {
	t.Run("translation only", func(t *testing.T) {
		tr, err := Pose{Translation: [3]float64{1, 2, 3}}.Transform()
		test.That(t, err, test.ShouldBeNil)
		test.That(t, tr.Rotation, test.ShouldResemble, mgl64.Ident3())
		test.That(t, tr.Translation, test.ShouldResemble, mgl64.Vec3{1, 2, 3})
	})

	t.Run("matrix rows", func(t *testing.T) {
		tr, err := Pose{Matrix: &[9]float64{0, -1, 0, 1, 0, 0, 0, 0, 1}}.Transform()
		test.That(t, err, test.ShouldBeNil)
		// A quarter turn about Z sends X to Y.
		test.That(t, tr.Apply(mgl64.Vec3{1, 0, 0}).ApproxEqual(mgl64.Vec3{0, 1, 0}), test.ShouldBeTrue)
	})

	t.Run("euler matches matrix", func(t *testing.T) {
		fromEuler, err := Pose{Rotation: &Euler{Yaw: math.Pi / 2}}.Transform()
		test.That(t, err, test.ShouldBeNil)
		fromMatrix, err := Pose{Matrix: &[9]float64{0, -1, 0, 1, 0, 0, 0, 0, 1}}.Transform()
		test.That(t, err, test.ShouldBeNil)
		test.That(t, fromEuler.Rotation.ApproxEqualThreshold(fromMatrix.Rotation, 1e-12), test.ShouldBeTrue)
	})

	t.Run("reflection is rejected", func(t *testing.T) {
		_, err := Pose{Matrix: &[9]float64{-1, 0, 0, 0, 1, 0, 0, 0, 1}}.Transform()
		test.That(t, err, test.ShouldNotBeNil)
	})

	t.Run("non-finite values are rejected", func(t *testing.T) {
		_, err := Pose{Translation: [3]float64{math.Inf(1), 0, 0}}.Transform()
		test.That(t, err, test.ShouldNotBeNil)
		_, err = Pose{Rotation: &Euler{Roll: math.NaN()}}.Transform()
		test.That(t, err, test.ShouldNotBeNil)
	})
}
