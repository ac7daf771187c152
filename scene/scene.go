// Package scene reads a JSON description of triangle meshes and the placements to query them at.
//
// A scene document looks like:
//
//	{
//	  "absolute_error": 0.001,
//	  "models": [
//	    {"name": "a", "leaf_size": 2, "triangles": [[[10, 0, 0], [0, 0, 1], [0, 0, -1]]]}
//	  ],
//	  "queries": [
//	    {
//	      "name": "quarter turn",
//	      "a": "a", "b": "a",
//	      "pose_a": {"rotation": {"yaw": 1.5707963267948966}},
//	      "pose_b": {"translation": [0, 0, 5]}
//	    }
//	  ]
//	}
//
// A pose rotation is given either as roll/pitch/yaw radians or as a row-major 3x3 "matrix".
package scene

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
)

// Scene is the decoded document.
type Scene struct {
	AbsoluteError float64     `json:"absolute_error,omitempty"`
	RelativeError float64     `json:"relative_error,omitempty"`
	Models        []ModelSpec `json:"models"`
	Queries       []QuerySpec `json:"queries"`
}

// ModelSpec describes one mesh. Each triangle is three [x, y, z] vertices.
type ModelSpec struct {
	Name      string          `json:"name"`
	LeafSize  int             `json:"leaf_size,omitempty"`
	Triangles [][3][3]float64 `json:"triangles"`
}

// QuerySpec places two models, by name.
type QuerySpec struct {
	Name  string `json:"name,omitempty"`
	A     string `json:"a"`
	B     string `json:"b"`
	PoseA Pose   `json:"pose_a"`
	PoseB Pose   `json:"pose_b"`
}

// Pose is a rotation followed by a translation. A pose without rotation is a pure translation.
type Pose struct {
	Rotation    *Euler      `json:"rotation,omitempty"`
	Matrix      *[9]float64 `json:"matrix,omitempty"`
	Translation [3]float64  `json:"translation"`
}

// Euler angles in radians, applied as yaw(Z) * pitch(Y) * roll(X).
type Euler struct {
	Roll  float64 `json:"roll"`
	Pitch float64 `json:"pitch"`
	Yaw   float64 `json:"yaw"`
}

// Load decodes a scene. Unknown fields are rejected.
func Load(r io.Reader) (*Scene, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var s Scene
	if err := dec.Decode(&s); err != nil {
		return nil, errors.Wrap(err, "decoding scene")
	}
	return &s, nil
}

// LoadFile decodes the scene stored at path.
func LoadFile(path string) (*Scene, error) {
	//nolint:gosec
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening scene %q", path)
	}
	defer f.Close()

	s, err := Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "scene %q", path)
	}
	return s, nil
}
