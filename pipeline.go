package trimesh

import (
	"sync"

	"github.com/akmonengine/trimesh/geometry"
	"github.com/akmonengine/trimesh/mesh"
)

const DEFAULT_WORKERS = 1

// Query places two models for a collision or distance check.
type Query struct {
	A  *mesh.Model
	TA geometry.Transform
	B  *mesh.Model
	TB geometry.Transform
}

// QueryResult is the answer of DistanceAll for one query.
type QueryResult struct {
	DistanceResult
	// OK is false when the models overlap or one of them is empty.
	OK bool
}

// CollideAll runs Collide for every query, spreading them over workers goroutines.
// Results are in input order.
func CollideAll(queries []Query, workers int) []bool {
	results := make([]bool, len(queries))
	task(max(DEFAULT_WORKERS, workers), queries, func(i int, q Query) {
		results[i] = Collide(q.A, q.TA, q.B, q.TB)
	})
	return results
}

// DistanceAll runs DistanceWithPoints for every query with the same options, spreading them
// over workers goroutines. Results are in input order.
func DistanceAll(queries []Query, opts DistanceOptions, workers int) []QueryResult {
	results := make([]QueryResult, len(queries))
	task(max(DEFAULT_WORKERS, workers), queries, func(i int, q Query) {
		res, ok := DistanceWithPoints(q.A, q.TA, q.B, q.TB, opts)
		results[i] = QueryResult{DistanceResult: res, OK: ok}
	})
	return results
}

// task splits data in contiguous chunks, one per worker, and calls fn with each element index.
func task[T any](workersCount int, data []T, fn func(i int, data T)) {
	var wg sync.WaitGroup
	dataSize := len(data)
	chunkSize := (dataSize + workersCount - 1) / workersCount

	for workerID := 0; workerID < workersCount; workerID++ {
		start, end := workerID*chunkSize, min((workerID+1)*chunkSize, dataSize)
		if start >= end {
			break
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(i, data[i])
			}
		}(start, end)
	}
	wg.Wait()
}
