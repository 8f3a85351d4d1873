package model

import (
	"crypto/md5"
	"encoding/binary"
	"fmt"
	"iter"
	"math/bits"
	"slices"

	"github.com/bits-and-blooms/bitset"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-gol/rules"
)

// historySize is how many recent grid hashes are kept for cycle detection
const historySize = 5

// ErrDimensionOverflow is returned when width*height does not fit the 32-bit cell index
var ErrDimensionOverflow = errors.New("grid dimensions overflow the cell index")

// Coord identifies a single cell
type Coord struct {
	X, Y uint32
}

// Grid is a fixed-size Game of Life board stored as two packed bit buffers.
//
// Set writes into the next generation and Get reads the current one, so a full
// generation is always computed from the previous generation only. Coordinates
// outside the board read as dead and ignore writes, which gives the board a hard
// border of permanently dead cells.
//
// A Grid is not safe for concurrent use.
type Grid struct {
	width      uint32
	height     uint32
	current    *bitset.BitSet
	next       *bitset.BitSet
	generation uint64
	history    []string // Store recent grid states for cycle detection
}

// CheckDimensions reports whether a width x height board can be addressed
func CheckDimensions(width, height uint32) error {
	if hi, _ := bits.Mul32(width, height); hi != 0 {
		return errors.Wrapf(ErrDimensionOverflow, "[CheckDimensions] %dx%d", width, height)
	}
	return nil
}

// NewGrid creates a new grid with the specified dimensions.
// It panics if width*height overflows uint32; callers validate with CheckDimensions first.
func NewGrid(width, height uint32) *Grid {
	if err := CheckDimensions(width, height); err != nil {
		panic(err)
	}
	size := uint(width * height)
	return &Grid{
		width:   width,
		height:  height,
		current: bitset.New(size),
		next:    bitset.New(size),
	}
}

// GetWidth returns the width of the grid
func (g *Grid) GetWidth() uint32 {
	return g.width
}

// GetHeight returns the height of the grid
func (g *Grid) GetHeight() uint32 {
	return g.height
}

// Generation returns how many times the grid has been advanced
func (g *Grid) Generation() uint64 {
	return g.generation
}

func (g *Grid) inBounds(x, y uint32) bool {
	return x < g.width && y < g.height
}

func (g *Grid) index(x, y uint32) uint {
	return uint(y*g.width + x)
}

// Set writes a cell of the next generation. Out-of-bounds writes have no effect.
func (g *Grid) Set(x, y uint32, alive bool) {
	if g.inBounds(x, y) {
		g.next.SetTo(g.index(x, y), alive)
	}
}

// Get returns the state of a cell in the current generation. Out-of-bounds reads return false.
func (g *Grid) Get(x, y uint32) bool {
	if !g.inBounds(x, y) {
		return false
	}
	return g.current.Test(g.index(x, y))
}

// CountNeighbors counts the living neighbors of a cell in the current generation
func (g *Grid) CountNeighbors(x, y uint32) int {
	count := 0
	for _, o := range rules.Offsets {
		// Offsets of -1 wrap to values past any valid coordinate, which Get treats as dead
		if g.Get(x+uint32(o[0]), y+uint32(o[1])) {
			count++
		}
	}
	return count
}

// Commit makes the cells written with Set the current generation without applying the rules
func (g *Grid) Commit() {
	g.swap()
}

// Advance computes the next generation and makes it current
func (g *Grid) Advance() {
	for y := range g.height {
		for x := range g.width {
			if rules.ApplyConwayRules(g.CountNeighbors(x, y), g.Get(x, y)) {
				g.Set(x, y, true)
			}
		}
	}
	g.swap()
	g.generation++
}

// swap promotes next to current and clears the stale buffer for the following writes
func (g *Grid) swap() {
	g.current, g.next = g.next, g.current
	g.next.ClearAll()
}

// Cells yields the living cells of the current generation in row-major order
func (g *Grid) Cells() iter.Seq[Coord] {
	return func(yield func(Coord) bool) {
		for i, ok := g.current.NextSet(0); ok; i, ok = g.current.NextSet(i + 1) {
			idx := uint32(i)
			if !yield(Coord{X: idx % g.width, Y: idx / g.width}) {
				return
			}
		}
	}
}

// LiveCells returns the living cells of the current generation in row-major order
func (g *Grid) LiveCells() []Coord {
	return slices.Collect(g.Cells())
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() int {
	return int(g.current.Count())
}

// GetGridHash returns an MD5 hash of the current grid state
func (g *Grid) GetGridHash() string {
	var (
		h   = md5.New()
		buf = make([]byte, 0, 4)
	)
	for c := range g.Cells() {
		buf = binary.LittleEndian.AppendUint32(buf[:0], c.Y*g.width+c.X)
		h.Write(buf)
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// UpdateHistory adds current state to history and maintains size
func (g *Grid) UpdateHistory() {
	g.history = append(g.history, g.GetGridHash())
	if len(g.history) > historySize {
		g.history = g.history[1:]
	}
}

// IsStagnant reports whether the current state repeats one of the last three recorded states
func (g *Grid) IsStagnant() bool {
	if len(g.history) == 0 {
		return false
	}
	currentHash := g.GetGridHash()
	for i := len(g.history) - 1; i >= 0 && i >= len(g.history)-3; i-- {
		if g.history[i] == currentHash {
			return true
		}
	}
	return false
}
