package pattern

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-gol/model"
)

func TestReadCoords(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		input   string
		want    []model.Coord
		wantErr bool
	}{
		{
			name:  "plain pairs",
			input: "1 0\n2 1\n0 2\n",
			want:  []model.Coord{{X: 1, Y: 0}, {X: 2, Y: 1}, {X: 0, Y: 2}},
		},
		{
			name:  "life 1.06 header and blanks",
			input: "#Life 1.06\n\n  3 4  \n#N comment\n5\t6",
			want:  []model.Coord{{X: 3, Y: 4}, {X: 5, Y: 6}},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
		{
			name:    "negative coordinate",
			input:   "-1 0\n",
			wantErr: true,
		},
		{
			name:    "not a number",
			input:   "1 two\n",
			wantErr: true,
		},
		{
			name:    "missing y",
			input:   "1\n",
			wantErr: true,
		},
		{
			name:    "too large",
			input:   "4294967296 0\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ReadCoords(strings.NewReader(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadCoords() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, ErrSyntax) {
					t.Fatalf("error %v is not ErrSyntax", err)
				}
				return
			}
			if !slices.Equal(got, tt.want) {
				t.Fatalf("ReadCoords() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReadCoordsReportsLine(t *testing.T) {
	t.Parallel()
	_, err := ReadCoords(strings.NewReader("0 0\n1 1\nx y\n"))
	if err == nil || !strings.Contains(err.Error(), "line 3") {
		t.Fatalf("error = %v, want mention of line 3", err)
	}
}

func TestWriteCoords(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	if err := WriteCoords(&buf, []model.Coord{{X: 1, Y: 0}, {X: 20, Y: 300}}); err != nil {
		t.Fatalf("WriteCoords: %v", err)
	}
	if got, want := buf.String(), "1 0\n20 300\n"; got != want {
		t.Fatalf("WriteCoords wrote %q, want %q", got, want)
	}
	back, err := ReadCoords(&buf)
	if err != nil {
		t.Fatalf("ReadCoords: %v", err)
	}
	if !slices.Equal(back, []model.Coord{{X: 1, Y: 0}, {X: 20, Y: 300}}) {
		t.Fatalf("read back %v", back)
	}
}

func TestDecodeRLE(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		input   string
		want    []model.Coord
		wantErr error
	}{
		{
			name:  "glider",
			input: "#N Glider\nx = 3, y = 3, rule = B3/S23\nbob$2bo$3o!\n",
			want:  []model.Coord{{X: 1, Y: 0}, {X: 2, Y: 1}, {X: 0, Y: 2}, {X: 1, Y: 2}, {X: 2, Y: 2}},
		},
		{
			name:  "multi-digit runs and blank rows",
			input: "x = 12, y = 4\n10bo$2$12o!",
			want: func() []model.Coord {
				cells := []model.Coord{{X: 10, Y: 0}}
				for x := range uint32(12) {
					cells = append(cells, model.Coord{X: x, Y: 3})
				}
				return cells
			}(),
		},
		{
			name:  "body split across lines",
			input: "x = 2, y = 2, rule = 23/3\n2o$\n2o!\n",
			want:  []model.Coord{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}},
		},
		{
			name:  "trailing row terminator",
			input: "x = 2, y = 2\n2o$2o$!",
			want:  []model.Coord{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}},
		},
		{
			name:  "ignores text after terminator",
			input: "x = 1, y = 1\no!trailing comment 3o",
			want:  []model.Coord{{X: 0, Y: 0}},
		},
		{
			name:    "other rule",
			input:   "x = 3, y = 1, rule = B36/S23\n3o!",
			wantErr: ErrUnsupportedRule,
		},
		{
			name:    "bad character",
			input:   "x = 3, y = 1\n2o*!",
			wantErr: ErrSyntax,
		},
		{
			name:    "bad header",
			input:   "x = three, y = 1\n3o!",
			wantErr: ErrSyntax,
		},
		{
			name:    "dead run past pattern width",
			input:   "x = 3, y = 1\n4294967295b2o!",
			wantErr: ErrSyntax,
		},
		{
			name:    "run count overflows",
			input:   "x = 3, y = 1\n4294967297o!",
			wantErr: ErrSyntax,
		},
		{
			name:    "live run past pattern width",
			input:   "x = 1, y = 1\n5o!",
			wantErr: ErrSyntax,
		},
		{
			name:    "huge live run",
			input:   "x = 3, y = 1\n4000000000o!",
			wantErr: ErrSyntax,
		},
		{
			name:    "rows past pattern height",
			input:   "x = 1, y = 2\no$o$o!",
			wantErr: ErrSyntax,
		},
		{
			name:    "missing header",
			input:   "3o!",
			wantErr: ErrSyntax,
		},
		{
			name:    "header without y",
			input:   "x = 3\n3o!",
			wantErr: ErrSyntax,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := DecodeRLE(strings.NewReader(tt.input))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("DecodeRLE() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeRLE() error = %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Fatalf("DecodeRLE() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	rle := filepath.Join(dir, "blinker.rle")
	plain := filepath.Join(dir, "blinker.lif")
	if err := os.WriteFile(rle, []byte("x = 3, y = 1\n3o!\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(plain, []byte("#Life 1.06\n0 0\n1 0\n2 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	want := []model.Coord{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}
	for _, path := range []string{rle, plain} {
		got, err := Load(path)
		if err != nil {
			t.Fatalf("Load(%s): %v", path, err)
		}
		if !slices.Equal(got, want) {
			t.Fatalf("Load(%s) = %v, want %v", path, got, want)
		}
	}

	if _, err := Load(filepath.Join(dir, "missing.rle")); err == nil {
		t.Fatal("Load of a missing file succeeded")
	}
}
