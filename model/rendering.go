package model

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
)

const (
	gridPosBlock = "█"
	gridPosEmpty = " "
)

// TerminalRenderer renders the current generation as rows of glyphs
type TerminalRenderer struct {
	Alive string
	Dead  string
}

// NewTerminalRenderer returns a renderer using the given glyphs, falling back to the defaults when empty
func NewTerminalRenderer(alive, dead string) *TerminalRenderer {
	if alive == "" {
		alive = gridPosBlock
	}
	if dead == "" {
		dead = gridPosEmpty
	}
	return &TerminalRenderer{Alive: alive, Dead: dead}
}

// Display writes the grid to w, one line per row
func (r *TerminalRenderer) Display(w io.Writer, g *Grid) error {
	bw := bufio.NewWriter(w)
	for y := range g.height {
		for x := range g.width {
			if g.Get(x, y) {
				bw.WriteString(r.Alive)
			} else {
				bw.WriteString(r.Dead)
			}
		}
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, "[Display] failed to write grid")
	}
	return nil
}
