package scene

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/akmonengine/trimesh"
	"github.com/akmonengine/trimesh/geometry"
	"github.com/akmonengine/trimesh/mesh"
)

// rotationTolerance is how far a pose matrix may be from a proper rotation.
const rotationTolerance = 1e-6

// Built holds the finalized models and the queries of a scene.
type Built struct {
	Models  map[string]*mesh.Model
	Queries []trimesh.Query
	// Names has one entry per query; unnamed queries are called "a/b".
	Names   []string
	Options trimesh.DistanceOptions
}

// Options returns the distance tolerances of the scene.
func (s *Scene) Options() trimesh.DistanceOptions {
	return trimesh.DistanceOptions{
		AbsoluteError: s.AbsoluteError,
		RelativeError: s.RelativeError,
	}
}

// Validate reports every problem of the scene at once.
func (s *Scene) Validate() error {
	var err error

	err = multierr.Append(err, s.Options().Validate())

	if len(s.Models) == 0 {
		err = multierr.Append(err, errors.New("scene has no models"))
	}
	for _, name := range lo.FindDuplicates(lo.Map(s.Models, func(m ModelSpec, _ int) string { return m.Name })) {
		err = multierr.Append(err, errors.Errorf("duplicate model name %q", name))
	}
	for i, m := range s.Models {
		err = multierr.Append(err, m.validate(i))
	}

	known := lo.KeyBy(s.Models, func(m ModelSpec) string { return m.Name })
	for i, q := range s.Queries {
		label := q.label(i)
		for _, name := range []string{q.A, q.B} {
			if _, ok := known[name]; !ok {
				err = multierr.Append(err, errors.Errorf("query %s: unknown model %q", label, name))
			}
		}
		if _, poseErr := q.PoseA.Transform(); poseErr != nil {
			err = multierr.Append(err, errors.Wrapf(poseErr, "query %s: pose_a", label))
		}
		if _, poseErr := q.PoseB.Transform(); poseErr != nil {
			err = multierr.Append(err, errors.Wrapf(poseErr, "query %s: pose_b", label))
		}
	}

	return err
}

func (m ModelSpec) validate(i int) error {
	var err error
	if m.Name == "" {
		err = multierr.Append(err, errors.Errorf("model %d has no name", i))
	}
	if len(m.Triangles) == 0 {
		err = multierr.Append(err, errors.Errorf("model %q has no triangles", m.Name))
	}
	if m.LeafSize < 0 {
		err = multierr.Append(err, errors.Errorf("model %q: negative leaf size %d", m.Name, m.LeafSize))
	}
	return err
}

func (q QuerySpec) label(i int) string {
	if q.Name != "" {
		return fmt.Sprintf("%q", q.Name)
	}
	return fmt.Sprintf("#%d", i)
}

// Transform converts the pose, checking that a matrix rotation is a proper rotation.
func (p Pose) Transform() (geometry.Transform, error) {
	translation := mgl64.Vec3(p.Translation)
	for _, v := range translation {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return geometry.Transform{}, errors.New("non-finite translation")
		}
	}

	switch {
	case p.Rotation != nil && p.Matrix != nil:
		return geometry.Transform{}, errors.New("rotation and matrix are mutually exclusive")
	case p.Matrix != nil:
		m := p.Matrix
		// mgl64 matrices are column-major.
		rot := mgl64.Mat3{m[0], m[3], m[6], m[1], m[4], m[7], m[2], m[5], m[8]}
		if !geometry.IsRotation(rot, rotationTolerance) {
			return geometry.Transform{}, errors.Errorf("matrix %v is not a rotation", *m)
		}
		return geometry.NewTransformFrom(rot, translation), nil
	case p.Rotation != nil:
		rot := geometry.RotationFromEuler(p.Rotation.Roll, p.Rotation.Pitch, p.Rotation.Yaw)
		if !geometry.IsRotation(rot, rotationTolerance) {
			return geometry.Transform{}, errors.Errorf("invalid euler angles %+v", *p.Rotation)
		}
		return geometry.NewTransformFrom(rot, translation), nil
	default:
		return geometry.NewTransformFrom(mgl64.Ident3(), translation), nil
	}
}

// Build validates the scene, then finalizes every model and resolves the queries.
func (s *Scene) Build(logger *zap.Logger) (*Built, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := s.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid scene")
	}

	models := make(map[string]*mesh.Model, len(s.Models))
	for _, spec := range s.Models {
		m, err := spec.build(logger)
		if err != nil {
			return nil, err
		}
		models[spec.Name] = m
	}

	built := &Built{
		Models:  models,
		Queries: make([]trimesh.Query, 0, len(s.Queries)),
		Names:   make([]string, 0, len(s.Queries)),
		Options: s.Options(),
	}
	for i, q := range s.Queries {
		ta, err := q.PoseA.Transform()
		if err != nil {
			return nil, errors.Wrapf(err, "query %s: pose_a", q.label(i))
		}
		tb, err := q.PoseB.Transform()
		if err != nil {
			return nil, errors.Wrapf(err, "query %s: pose_b", q.label(i))
		}
		built.Queries = append(built.Queries, trimesh.Query{A: models[q.A], TA: ta, B: models[q.B], TB: tb})

		name := q.Name
		if name == "" {
			name = q.A + "/" + q.B
		}
		built.Names = append(built.Names, name)
	}

	logger.Debug("scene built", zap.Int("models", len(models)), zap.Int("queries", len(built.Queries)))
	return built, nil
}

func (m ModelSpec) build(logger *zap.Logger) (*mesh.Model, error) {
	b := mesh.NewBuilder(
		mesh.WithLeafSize(m.LeafSize),
		mesh.WithLogger(logger.With(zap.String("model", m.Name))),
	)
	b.AddTriangles(lo.Map(m.Triangles, func(t [3][3]float64, _ int) geometry.Triangle {
		return geometry.NewTriangle(t[0], t[1], t[2])
	})...)

	model, err := b.Finish()
	if err != nil {
		return nil, errors.Wrapf(err, "model %q", m.Name)
	}
	return model, nil
}
