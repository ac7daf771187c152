package main

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/akmonengine/trimesh/scene"
)

// demoScene reproduces the reference scenarios: a blade-shaped triangle against a wall, turned
// out of it, then slid into and past a raised wall.
func demoScene() *scene.Scene {
	blade := [3][3]float64{{10, 0, 0}, {0, 0, 1}, {0, 0, -1}}
	wall := [3][3]float64{{5, -10, -10}, {5, -10, 10}, {5, 10, 0}}
	raised := [3][3]float64{{5, 1, -10}, {5, 1, 10}, {5, 10, 0}}

	return &scene.Scene{
		Models: []scene.ModelSpec{
			{Name: "blade", Triangles: [][3][3]float64{blade}},
			{Name: "wall", Triangles: [][3][3]float64{wall}},
			{Name: "raised wall", Triangles: [][3][3]float64{raised}},
		},
		Queries: []scene.QuerySpec{
			{Name: "crossing", A: "blade", B: "wall"},
			{
				Name:  "quarter turn",
				A:     "blade",
				B:     "wall",
				PoseA: scene.Pose{Rotation: &scene.Euler{Yaw: math.Pi / 2}},
			},
			{Name: "raised", A: "blade", B: "raised wall"},
			{
				Name:  "slid into",
				A:     "blade",
				B:     "raised wall",
				PoseA: scene.Pose{Translation: [3]float64{0, 2, 0}},
			},
			{
				Name:  "slid past",
				A:     "blade",
				B:     "raised wall",
				PoseA: scene.Pose{Translation: [3]float64{0, 12, 0}},
			},
		},
	}
}

func formatPoint(p mgl64.Vec3) string {
	return fmt.Sprintf("X:%.3f, Y:%.3f, Z:%.3f", p.X(), p.Y(), p.Z())
}
