package pattern

import (
	"bufio"
	"io"
	"math/bits"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-gol/model"
)

// ErrUnsupportedRule is returned for RLE patterns written for a rule other than B3/S23
var ErrUnsupportedRule = errors.New("unsupported rule")

var conwayRules = map[string]bool{
	"b3/s23": true,
	"23/3":   true,
	"s23/b3": true,
}

// DecodeRLE decodes a run-length encoded pattern into live cells relative to its top-left corner.
// The header is required and every run must stay inside its x by y bounding box.
func DecodeRLE(r io.Reader) ([]model.Coord, error) {
	var (
		cells         []model.Coord
		scanner       = bufio.NewScanner(r)
		line          = 0
		seenHeader    = false
		width, height uint32
		x, y          uint32
		run           uint32
		inRun         = false
	)

	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if !seenHeader {
			if !strings.HasPrefix(text, "x") {
				return nil, errors.Wrapf(ErrSyntax, "[DecodeRLE] line %d: missing \"x = m, y = n\" header", line)
			}
			var err error
			if width, height, err = parseHeader(text); err != nil {
				return nil, errors.Wrapf(err, "[DecodeRLE] line %d", line)
			}
			seenHeader = true
			continue
		}

		for _, ch := range text {
			switch {
			case ch >= '0' && ch <= '9':
				hi, tens := bits.Mul32(run, 10)
				next, carry := bits.Add32(tens, uint32(ch-'0'), 0)
				if hi != 0 || carry != 0 {
					return nil, errors.Wrapf(ErrSyntax, "[DecodeRLE] line %d: run count overflows", line)
				}
				run, inRun = next, true
				continue
			case ch == ' ' || ch == '\t':
				continue
			}

			count := uint32(1)
			if inRun {
				count = run
			}
			run, inRun = 0, false

			switch {
			case ch == '!':
				return cells, nil
			case ch == '$':
				// a trailing row terminator may step one past the last row
				if uint64(y)+uint64(count) > uint64(height) {
					return nil, errors.Wrapf(ErrSyntax, "[DecodeRLE] line %d: row %d past pattern height %d", line, uint64(y)+uint64(count), height)
				}
				y += count
				x = 0
			case ch == 'b' || ch == '.':
				if uint64(x)+uint64(count) > uint64(width) {
					return nil, errors.Wrapf(ErrSyntax, "[DecodeRLE] line %d: run of %d at x = %d past pattern width %d", line, count, x, width)
				}
				x += count
			case (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z'):
				if y >= height || uint64(x)+uint64(count) > uint64(width) {
					return nil, errors.Wrapf(ErrSyntax, "[DecodeRLE] line %d: run of %d at (%d, %d) outside %dx%d pattern", line, count, x, y, width, height)
				}
				for range count {
					cells = append(cells, model.Coord{X: x, Y: y})
					x++
				}
			default:
				return nil, errors.Wrapf(ErrSyntax, "[DecodeRLE] line %d: unexpected %q", line, ch)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "[DecodeRLE] failed to read input")
	}
	if !seenHeader {
		return nil, errors.Wrap(ErrSyntax, "[DecodeRLE] missing \"x = m, y = n\" header")
	}
	if inRun {
		return nil, errors.Wrapf(ErrSyntax, "[DecodeRLE] dangling run count %d", run)
	}
	return cells, nil
}

// parseHeader reads "x = m, y = n, rule = ..." and rejects non-Conway rules
func parseHeader(text string) (width, height uint32, err error) {
	var seenX, seenY bool
	for _, part := range strings.Split(text, ",") {
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			return 0, 0, errors.Wrapf(ErrSyntax, "malformed header field %q", part)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		switch key {
		case "x", "y":
			v, err := strconv.ParseUint(value, 10, 32)
			if err != nil {
				return 0, 0, errors.Wrapf(ErrSyntax, "header %s = %q is not an unsigned 32-bit integer", key, value)
			}
			if key == "x" {
				width, seenX = uint32(v), true
			} else {
				height, seenY = uint32(v), true
			}
		case "rule":
			if !conwayRules[strings.ToLower(value)] {
				return 0, 0, errors.Wrapf(ErrUnsupportedRule, "%q", value)
			}
		}
	}
	if !seenX || !seenY {
		return 0, 0, errors.Wrapf(ErrSyntax, "header %q needs both x and y", text)
	}
	return width, height, nil
}
