package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sheikhrachel/go-gol/utils"
)

const usage = `Usage: %s [options] <generations> <width> <height> [pattern ...]

Runs Conway's Game of Life on a bounded width x height grid. Cells outside the
grid are permanently dead. Without a pattern argument, live cells are read from
stdin as one "x y" pair per line. Pattern files ending in .rle are decoded as
RLE, anything else as "x y" pairs. With several patterns, each is run on its own
grid concurrently.

Options:
`

func main() {
	log.SetFlags(0)
	log.SetPrefix("gol: ")

	defaults := utils.DefaultConfig()
	var (
		configPath = flag.String("config", "config.json", "JSON configuration file")
		dumpGrid   = flag.Bool("dump", defaults.DumpGrid, "Print the grid before and after the run")
		emitCoords = flag.Bool("coords", defaults.EmitCoords, "Print the final live cells as \"x y\" lines")
		showTiming = flag.Bool("time", defaults.ShowTiming, "Log the time taken by the run")
		watch      = flag.Bool("watch", defaults.Watch, "Animate the run in the terminal")
		frameRate  = flag.Duration("frame-rate", defaults.FrameRate, "Delay between generations with -watch")
		workers    = flag.Int("workers", defaults.Workers, "Concurrent runs when several patterns are given")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, usage, os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	config := loadConfig(*configPath)
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "dump":
			config.DumpGrid = *dumpGrid
		case "coords":
			config.EmitCoords = *emitCoords
		case "time":
			config.ShowTiming = *showTiming
		case "watch":
			config.Watch = *watch
		case "frame-rate":
			config.FrameRate = *frameRate
		case "workers":
			config.Workers = *workers
		}
	})

	params, err := utils.ParseArgs(flag.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}

	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	if len(params.Patterns) > 1 {
		err = runBatch(ctx, config, params)
	} else {
		err = runSingle(ctx, config, params)
	}
	stop()
	if err != nil {
		log.Fatalf("%v", err)
	}
}
