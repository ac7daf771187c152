// Package main is a small command line client of the trimesh engine: it runs the reference
// scenarios or the queries of a JSON scene file and prints the results as a table.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/akmonengine/trimesh"
	"github.com/akmonengine/trimesh/scene"
)

const (
	// Flags.
	flagDebug    = "debug"
	flagScene    = "scene"
	flagAbsError = "abs-error"
	flagRelError = "rel-error"
	flagWorkers  = "workers"
	flagPoints   = "points"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	logger := zap.NewNop()

	queryFlags := []cli.Flag{
		&cli.IntFlag{
			Name:    flagWorkers,
			Usage:   "number of goroutines running queries",
			Value:   trimesh.DEFAULT_WORKERS,
			EnvVars: []string{"MESHQUERY_WORKERS"},
		},
		&cli.BoolFlag{
			Name:  flagPoints,
			Usage: "print the closest point of each model",
		},
	}

	return &cli.App{
		Name:  "meshquery",
		Usage: "collision and distance queries between triangle meshes",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  flagDebug,
				Usage: "enable debug logging",
			},
		},
		Before: func(c *cli.Context) error {
			if !c.Bool(flagDebug) {
				return nil
			}
			l, err := zap.NewDevelopment()
			if err != nil {
				return errors.Wrap(err, "creating logger")
			}
			logger = l
			return nil
		},
		After: func(c *cli.Context) error {
			//nolint:errcheck
			logger.Sync()
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "demo",
				Usage: "run the reference scenarios",
				Flags: queryFlags,
				Action: func(c *cli.Context) error {
					return runScene(c, logger, demoScene())
				},
			},
			{
				Name:      "run",
				Usage:     "run the queries of a scene file",
				UsageText: "meshquery run --scene FILE [--abs-error A] [--rel-error R] [--workers N] [--points]",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:     flagScene,
						Usage:    "load the scene from `FILE`",
						Required: true,
						EnvVars:  []string{"MESHQUERY_SCENE"},
					},
					&cli.Float64Flag{
						Name:  flagAbsError,
						Usage: "override the absolute distance tolerance of the scene",
					},
					&cli.Float64Flag{
						Name:  flagRelError,
						Usage: "override the relative distance tolerance of the scene",
					},
				}, queryFlags...),
				Action: func(c *cli.Context) error {
					s, err := scene.LoadFile(c.String(flagScene))
					if err != nil {
						return err
					}
					if c.IsSet(flagAbsError) {
						s.AbsoluteError = c.Float64(flagAbsError)
					}
					if c.IsSet(flagRelError) {
						s.RelativeError = c.Float64(flagRelError)
					}
					return runScene(c, logger, s)
				},
			},
		},
	}
}

func runScene(c *cli.Context, logger *zap.Logger, s *scene.Scene) error {
	built, err := s.Build(logger)
	if err != nil {
		return err
	}

	workers := c.Int(flagWorkers)
	logger.Debug("running queries",
		zap.Int("queries", len(built.Queries)),
		zap.Int("workers", workers),
		zap.Float64("absoluteError", built.Options.AbsoluteError),
		zap.Float64("relativeError", built.Options.RelativeError),
	)

	collisions := trimesh.CollideAll(built.Queries, workers)
	distances := trimesh.DistanceAll(built.Queries, built.Options, workers)

	fmt.Fprintln(c.App.Writer, renderResults(built.Names, collisions, distances, c.Bool(flagPoints)))
	return nil
}

func renderResults(names []string, collisions []bool, distances []trimesh.QueryResult, points bool) string {
	t := table.NewWriter()
	header := table.Row{"#", "Query", "Collide", "Distance"}
	if points {
		header = append(header, "Point A", "Point B")
	}
	t.AppendHeader(header)

	for i, name := range names {
		row := table.Row{i + 1, name, collisions[i], "-"}
		res := distances[i]
		if res.OK {
			row[3] = fmt.Sprintf("%.3f", res.Distance)
		}
		if points {
			if res.OK {
				row = append(row, formatPoint(res.PointA), formatPoint(res.PointB))
			} else {
				row = append(row, "-", "-")
			}
		}
		t.AppendRow(row)
	}
	return t.Render()
}
