// Package runner seeds grids from patterns and advances them for a fixed number of generations.
package runner

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-gol/model"
	"github.com/sheikhrachel/go-gol/utils"
)

// Job describes one simulation run
type Job struct {
	Name        string
	Width       uint32
	Height      uint32
	Generations int
	Cells       []model.Coord
}

// Result is a finished run
type Result struct {
	Job               Job
	Grid              *model.Grid
	Stats             *utils.Stats
	InitialPopulation int
}

// Seed builds the grid for a job with its cells as the current generation
func Seed(job Job) (*model.Grid, error) {
	if err := model.CheckDimensions(job.Width, job.Height); err != nil {
		return nil, errors.Wrapf(err, "[Seed] job %q", job.Name)
	}
	grid := model.NewGrid(job.Width, job.Height)
	for _, c := range job.Cells {
		grid.Set(c.X, c.Y, true)
	}
	grid.Commit()
	return grid, nil
}

// Advance runs n generations on grid, recording timing and population in stats.
// The context is checked between generations.
func Advance(ctx context.Context, grid *model.Grid, n int, stats *utils.Stats) error {
	stats.Start(grid.CountLivingCells())
	start := time.Now()
	for i := 1; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return errors.Wrapf(err, "[Advance] stopped after %d of %d generations", i-1, n)
		}
		grid.Advance()
		stats.Update(i, grid.CountLivingCells(), time.Since(start))
	}
	stats.Elapsed = time.Since(start)
	return nil
}

// Run seeds and advances a single job
func Run(ctx context.Context, job Job) (*Result, error) {
	grid, err := Seed(job)
	if err != nil {
		return nil, err
	}
	initial := grid.CountLivingCells()
	stats := utils.NewStats()
	if err = Advance(ctx, grid, job.Generations, stats); err != nil {
		return nil, errors.Wrapf(err, "[Run] job %q", job.Name)
	}
	return &Result{Job: job, Grid: grid, Stats: stats, InitialPopulation: initial}, nil
}

// RunAll runs jobs concurrently, at most workers at a time, and returns results in job order.
// Every grid is owned by the goroutine running its job. The first failure cancels the rest.
func RunAll(ctx context.Context, jobs []Job, workers int) ([]*Result, error) {
	results := make([]*Result, len(jobs))
	eg, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		eg.SetLimit(workers)
	}

	for i, job := range jobs {
		eg.Go(func() error {
			result, err := Run(ctx, job)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, errors.Wrap(err, "[RunAll]")
	}
	return results, nil
}
