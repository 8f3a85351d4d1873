package utils

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-gol/model"
)

var (
	// ErrMissingArgument is returned when a required positional argument is absent
	ErrMissingArgument = errors.New("missing argument")
	// ErrInvalidInteger is returned when a positional argument is not a valid integer
	ErrInvalidInteger = errors.New("invalid integer")
)

// Params are the positional arguments of a run
type Params struct {
	Generations int
	Width       uint32
	Height      uint32
	Patterns    []string
}

// ParseArgs parses "<generations> <width> <height> [pattern ...]" and checks the grid can be addressed
func ParseArgs(args []string) (Params, error) {
	var p Params
	names := []string{"generations", "width", "height"}
	values := make([]uint32, len(names))
	for i, name := range names {
		if i >= len(args) {
			return p, errors.Wrapf(ErrMissingArgument, "[ParseArgs] %s", name)
		}
		v, err := strconv.ParseUint(args[i], 10, 32)
		if err != nil {
			return p, errors.Wrapf(ErrInvalidInteger, "[ParseArgs] %s = %q", name, args[i])
		}
		values[i] = uint32(v)
	}
	p.Generations = int(values[0])
	p.Width, p.Height = values[1], values[2]
	p.Patterns = args[len(names):]

	if p.Width == 0 || p.Height == 0 {
		return p, errors.Wrapf(ErrInvalidInteger, "[ParseArgs] grid must be at least 1x1, got %dx%d", p.Width, p.Height)
	}
	if err := model.CheckDimensions(p.Width, p.Height); err != nil {
		return p, errors.Wrap(err, "[ParseArgs]")
	}
	return p, nil
}
