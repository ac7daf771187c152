package mesh

import (
	"go.uber.org/zap"

	"github.com/akmonengine/trimesh/bvh"
)

type config struct {
	leafSize int
	logger   *zap.Logger
}

func defaultConfig() config {
	return config{
		leafSize: bvh.DefaultLeafSize,
		logger:   zap.NewNop(),
	}
}

// Option configures a Builder.
type Option func(*config)

// WithLeafSize sets the maximum number of triangles per BVH leaf. Values below 1 use the default.
func WithLeafSize(n int) Option {
	return func(c *config) {
		c.leafSize = max(bvh.DefaultLeafSize, n)
	}
}

// WithLogger attaches a logger used while finishing the model. A nil logger is ignored.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}
