package utils

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"
)

// Config holds the configuration for a run
type Config struct {
	DumpGrid   bool          `json:"dump_grid"`
	EmitCoords bool          `json:"emit_coords"`
	ShowTiming bool          `json:"show_timing"`
	AliveGlyph string        `json:"alive_glyph"`
	DeadGlyph  string        `json:"dead_glyph"`
	Watch      bool          `json:"watch"`
	FrameRate  time.Duration `json:"frame_rate"`
	Workers    int           `json:"workers"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		DumpGrid:   true,
		EmitCoords: true,
		ShowTiming: true,
		AliveGlyph: "█",
		DeadGlyph:  " ",
		Watch:      false,
		FrameRate:  150 * time.Millisecond,
		Workers:    4,
	}
}

// LoadConfig loads configuration from JSON file
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}
