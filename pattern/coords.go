// Package pattern reads initial live-cell sets from plain coordinate lists and RLE files
// and writes coordinate lists back out.
package pattern

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-gol/model"
)

// ErrSyntax is returned for malformed pattern input
var ErrSyntax = errors.New("pattern syntax error")

// ReadCoords reads one "x y" pair per line. Blank lines and lines starting with '#' are skipped.
func ReadCoords(r io.Reader) ([]model.Coord, error) {
	var (
		cells   []model.Coord
		scanner = bufio.NewScanner(r)
		line    = 0
	)
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != 2 {
			return nil, errors.Wrapf(ErrSyntax, "[ReadCoords] line %d: want \"x y\", got %q", line, text)
		}
		x, err := parseUint32(fields[0])
		if err != nil {
			return nil, errors.Wrapf(err, "[ReadCoords] line %d: bad x", line)
		}
		y, err := parseUint32(fields[1])
		if err != nil {
			return nil, errors.Wrapf(err, "[ReadCoords] line %d: bad y", line)
		}
		cells = append(cells, model.Coord{X: x, Y: y})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "[ReadCoords] failed to read input")
	}
	return cells, nil
}

func parseUint32(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, errors.Wrapf(ErrSyntax, "%q is not an unsigned 32-bit integer", s)
	}
	return uint32(v), nil
}

// WriteCoords writes one "x y" line per cell
func WriteCoords(w io.Writer, cells []model.Coord) error {
	bw := bufio.NewWriter(w)
	for _, c := range cells {
		bw.WriteString(strconv.FormatUint(uint64(c.X), 10))
		bw.WriteByte(' ')
		bw.WriteString(strconv.FormatUint(uint64(c.Y), 10))
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, "[WriteCoords] failed to write coordinates")
	}
	return nil
}

// Load reads a pattern file, or stdin when path is "-". Files ending in .rle are decoded as RLE.
func Load(path string) ([]model.Coord, error) {
	if path == "-" {
		return ReadCoords(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "[Load] failed to open pattern: %+v", path)
	}
	defer f.Close()

	var cells []model.Coord
	if strings.EqualFold(filepath.Ext(path), ".rle") {
		cells, err = DecodeRLE(f)
	} else {
		cells, err = ReadCoords(f)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "[Load] %s", path)
	}
	return cells, nil
}
