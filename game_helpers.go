package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-gol/model"
	"github.com/sheikhrachel/go-gol/pattern"
	"github.com/sheikhrachel/go-gol/runner"
	"github.com/sheikhrachel/go-gol/utils"
)

// loadConfig loads the configuration file, falling back to defaults if it doesn't exist
func loadConfig(path string) utils.Config {
	config, err := utils.LoadConfig(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Fatalf("%v", err)
		}
		config = utils.DefaultConfig()
	}
	return config
}

// runSingle runs one pattern, read from stdin when no pattern file is given
func runSingle(ctx context.Context, config utils.Config, params utils.Params) error {
	path := "-"
	if len(params.Patterns) == 1 {
		path = params.Patterns[0]
	}
	cells, err := pattern.Load(path)
	if err != nil {
		return err
	}
	job := runner.Job{
		Name:        path,
		Width:       params.Width,
		Height:      params.Height,
		Generations: params.Generations,
		Cells:       cells,
	}
	log.Printf("running for %d steps on %dx%d grid, %d live cells at start",
		job.Generations, job.Width, job.Height, len(job.Cells))

	grid, err := runner.Seed(job)
	if err != nil {
		return err
	}

	renderer := model.NewTerminalRenderer(config.AliveGlyph, config.DeadGlyph)
	if config.DumpGrid {
		if err = renderer.Display(os.Stdout, grid); err != nil {
			return err
		}
	}

	initial := grid.CountLivingCells()
	var stats *utils.Stats
	if config.Watch {
		stats, err = watchGrid(ctx, config, grid, job.Generations)
	} else {
		stats = utils.NewStats()
		err = runner.Advance(ctx, grid, job.Generations, stats)
	}
	if err != nil {
		return err
	}
	result := &runner.Result{Job: job, Grid: grid, Stats: stats, InitialPopulation: initial}
	return writeResult(os.Stdout, config, renderer, result, false)
}

// runBatch runs every pattern on its own grid concurrently and prints the results in argument order
func runBatch(ctx context.Context, config utils.Config, params utils.Params) error {
	jobs := make([]runner.Job, 0, len(params.Patterns))
	for _, path := range params.Patterns {
		cells, err := pattern.Load(path)
		if err != nil {
			return err
		}
		jobs = append(jobs, runner.Job{
			Name:        path,
			Width:       params.Width,
			Height:      params.Height,
			Generations: params.Generations,
			Cells:       cells,
		})
	}
	log.Printf("running %d patterns for %d steps on %dx%d grids with %d workers",
		len(jobs), params.Generations, params.Width, params.Height, config.Workers)

	results, err := runner.RunAll(ctx, jobs, config.Workers)
	if err != nil {
		return err
	}
	renderer := model.NewTerminalRenderer(config.AliveGlyph, config.DeadGlyph)
	for _, result := range results {
		if err = writeResult(os.Stdout, config, renderer, result, true); err != nil {
			return err
		}
	}
	return nil
}

// watchGrid animates the run on the terminal, which is restored before returning
func watchGrid(ctx context.Context, config utils.Config, grid *model.Grid, generations int) (*utils.Stats, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.Wrap(err, "[watchGrid] failed to create screen")
	}
	if err = screen.Init(); err != nil {
		return nil, errors.Wrap(err, "[watchGrid] failed to initialize screen")
	}
	defer screen.Fini()

	return watchOnScreen(ctx, screen, config, grid, generations)
}

// watchOnScreen runs the viewer on an initialized screen. The elapsed time includes frame pacing.
func watchOnScreen(ctx context.Context, screen tcell.Screen, config utils.Config, grid *model.Grid, generations int) (*utils.Stats, error) {
	stats := utils.NewStats()
	stats.Start(grid.CountLivingCells())
	ran, err := model.NewViewer(screen, config.FrameRate).Watch(ctx, grid, generations)
	if err != nil {
		return nil, err
	}
	stats.Update(ran, grid.CountLivingCells(), time.Since(stats.StartTime))
	return stats, nil
}

// writeResult prints the final grid, the timing and the live cells as enabled by config
func writeResult(w io.Writer, config utils.Config, renderer *model.TerminalRenderer, result *runner.Result, header bool) error {
	if header {
		fmt.Fprintf(w, "# %s\n", result.Job.Name)
	}
	if config.DumpGrid {
		if err := renderer.Display(w, result.Grid); err != nil {
			return err
		}
	}
	if config.ShowTiming && result.Stats != nil {
		log.Printf("%s: took %v for %d generations (%.1f gen/sec), %d live cells at start, %d at end",
			result.Job.Name, result.Stats.Elapsed, result.Stats.TotalGenerations,
			result.Stats.GenerationsPerSecond, result.InitialPopulation, result.Stats.FinalPopulation)
	}
	if config.EmitCoords {
		return pattern.WriteCoords(w, result.Grid.LiveCells())
	}
	return nil
}
