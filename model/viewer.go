package model

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
)

const (
	defaultFrameRate = 150 * time.Millisecond

	viewerAlive = '█'
	viewerDead  = ' '
)

// Viewer animates a grid generation by generation on a terminal screen
type Viewer struct {
	screen    tcell.Screen
	frameRate time.Duration
	style     tcell.Style
}

// NewViewer returns a viewer drawing on an initialized screen. The caller owns the screen.
func NewViewer(screen tcell.Screen, frameRate time.Duration) *Viewer {
	if frameRate <= 0 {
		frameRate = defaultFrameRate
	}
	return &Viewer{
		screen:    screen,
		frameRate: frameRate,
		style:     tcell.StyleDefault.Foreground(tcell.ColorGreen),
	}
}

// Draw renders the part of the grid that fits on the screen followed by a status line
func (v *Viewer) Draw(g *Grid, status string) {
	v.screen.Clear()
	cols, rows := v.screen.Size()
	for y := 0; y < rows-1 && uint32(y) < g.height; y++ {
		for x := 0; x*2+1 < cols && uint32(x) < g.width; x++ {
			r := viewerDead
			if g.Get(uint32(x), uint32(y)) {
				r = viewerAlive
			}
			v.screen.SetContent(x*2, y, r, nil, v.style)
			v.screen.SetContent(x*2+1, y, r, nil, v.style)
		}
	}

	row := min(int(g.height), rows-1)
	col := 0
	for _, r := range status {
		v.screen.SetContent(col, row, r, nil, tcell.StyleDefault)
		col++
	}
	v.screen.Show()
}

// Status describes the grid for the status line and records its state for stagnation detection
func (v *Viewer) Status(g *Grid) string {
	var (
		living  = g.CountLivingCells()
		density = float64(living) / float64(uint64(g.width)*uint64(g.height)) * 100
		state   = "Active"
	)
	if g.IsStagnant() {
		state = "Stagnant"
	}
	if living == 0 {
		state = "Extinct"
	}
	g.UpdateHistory()
	return fmt.Sprintf("Gen: %d | Living: %d | Density: %.1f%% | Status: %s | q to quit",
		g.Generation(), living, density, state)
}

// Watch advances the grid up to generations times, drawing each generation.
// It stops early when q, Esc or Ctrl+C is pressed, and returns the number of generations run.
func (v *Viewer) Watch(ctx context.Context, g *Grid, generations int) (int, error) {
	quit := make(chan struct{})
	go v.pollQuit(quit)

	ticker := time.NewTicker(v.frameRate)
	defer ticker.Stop()

	for run := 0; ; run++ {
		v.Draw(g, v.Status(g))
		if run >= generations {
			return run, nil
		}
		select {
		case <-ctx.Done():
			return run, errors.Wrap(ctx.Err(), "[Watch] interrupted")
		case <-quit:
			return run, nil
		case <-ticker.C:
		}
		g.Advance()
	}
}

// pollQuit closes quit on a quit key. It returns when the screen is finalized.
func (v *Viewer) pollQuit(quit chan<- struct{}) {
	for {
		switch ev := v.screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventResize:
			v.screen.Sync()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
				close(quit)
				return
			}
		}
	}
}
