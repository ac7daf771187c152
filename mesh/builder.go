// Package mesh turns a list of triangles into an immutable collision model.
//
// A model is built in two states: a Builder accepts triangles in model-local coordinates, then
// Finish consumes it and returns a Model carrying its bounding volume hierarchy. Only a Model
// can be queried, so an unfinished mesh never reaches the query engine.
package mesh

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/akmonengine/trimesh/bvh"
	"github.com/akmonengine/trimesh/geometry"
)

var (
	// ErrBuilderFinished is returned (or panicked with) when a builder is used after Finish.
	ErrBuilderFinished = errors.New("mesh builder already finished")
	// ErrEmptyModel is returned when Finish is called without any triangle.
	ErrEmptyModel = errors.New("mesh has no triangles")
	// ErrNonFiniteVertex is returned when a vertex coordinate is NaN or infinite.
	ErrNonFiniteVertex = errors.New("non-finite vertex coordinate")
)

// Builder accumulates triangles before the model is finalized.
// A Builder is not safe for concurrent use.
type Builder struct {
	triangles []geometry.Triangle
	config    config
	finished  bool
}

// NewBuilder returns an empty builder.
func NewBuilder(opts ...Option) *Builder {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Builder{config: cfg}
}

// AddTriangle appends a triangle given in model-local coordinates. No geometric validation is
// done: degenerate triangles are kept. It panics if the builder was already finished.
func (b *Builder) AddTriangle(p0, p1, p2 mgl64.Vec3) {
	b.AddTriangles(geometry.NewTriangle(p0, p1, p2))
}

// AddTriangles appends several triangles in order.
func (b *Builder) AddTriangles(tris ...geometry.Triangle) {
	if b.finished {
		panic(ErrBuilderFinished)
	}
	b.triangles = append(b.triangles, tris...)
}

// Len returns the number of triangles added so far.
func (b *Builder) Len() int {
	return len(b.triangles)
}

// Finish validates the triangles, builds the hierarchy and returns the immutable model.
// The builder cannot be used afterwards.
func (b *Builder) Finish() (*Model, error) {
	if b.finished {
		return nil, ErrBuilderFinished
	}
	if len(b.triangles) == 0 {
		return nil, ErrEmptyModel
	}
	for i, tri := range b.triangles {
		if !tri.IsFinite() {
			return nil, errors.Wrapf(ErrNonFiniteVertex, "triangle %d", i)
		}
	}

	b.finished = true
	tris := b.triangles
	b.triangles = nil

	tree := bvh.Build(tris, b.config.leafSize)
	b.config.logger.Debug("mesh model finished",
		zap.Int("triangles", len(tris)),
		zap.Int("nodes", tree.Len()),
		zap.Int("leaves", tree.NumLeaves()),
		zap.Int("depth", tree.Depth()),
		zap.Int("leafSize", tree.LeafSize()),
	)

	return &Model{triangles: tris, tree: tree}, nil
}
