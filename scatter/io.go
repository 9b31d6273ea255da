package scatter

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	vec3d "github.com/flywave/go3d/float64/vec3"
)

// ErrColumns marks table rows that do not match the expected column layout.
var ErrColumns = errors.New("scatter: bad column count")

// Read loads a displacement table from disk. See Parse for the format.
func Read(path string) (Points, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("scatter: %w", err)
	}
	defer f.Close()
	pts, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("scatter: %s: %w", path, err)
	}
	return pts, nil
}

// Parse reads whitespace-separated rows of
//
//	x_km  y_km  disp  look_e  look_n  look_u  index  [sigma]
//
// with coordinates in kilometers and displacements in meters. The sigma
// column is all or nothing: every row must have the same width as the
// first. Blank lines and lines starting with # are skipped.
func Parse(r io.Reader) (Points, error) {
	var pts Points
	sc := bufio.NewScanner(r)
	line := 0
	width := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != 7 && len(fields) != 8 {
			return nil, fmt.Errorf("%w: line %d has %d columns, want 7 or 8", ErrColumns, line, len(fields))
		}
		if width == 0 {
			width = len(fields)
		} else if len(fields) != width {
			return nil, fmt.Errorf("%w: line %d has %d columns, want %d", ErrColumns, line, len(fields), width)
		}
		vals := make([]float64, 6)
		for i := range vals {
			v, err := strconv.ParseFloat(fields[i], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d column %d: %w", line, i+1, err)
			}
			vals[i] = v
		}
		idx, err := strconv.Atoi(fields[6])
		if err != nil {
			return nil, fmt.Errorf("line %d column 7: %w", line, err)
		}
		p := Point{
			X:     vals[0] * 1000,
			Y:     vals[1] * 1000,
			Disp:  vals[2],
			Look:  vec3d.T{vals[3], vals[4], vals[5]},
			Index: idx,
		}
		if width == 8 {
			sig, err := strconv.ParseFloat(fields[7], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d column 8: %w", line, err)
			}
			p.Sigma = sig
		}
		pts = append(pts, p)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scatter: %w", err)
	}
	return pts, nil
}

// Write stores the points in the format Parse reads, coordinates back in
// kilometers. The sigma column is emitted when any point carries one.
func Write(path string, pts Points) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("scatter: %w", err)
	}

	sigmas := false
	for i := range pts {
		if pts[i].Sigma != 0 {
			sigmas = true
			break
		}
	}
	w := bufio.NewWriter(f)
	for i := range pts {
		p := &pts[i]
		fmt.Fprintf(w, "%.10g %.10g %.10g %.10g %.10g %.10g %d",
			p.X/1000, p.Y/1000, p.Disp, p.Look[0], p.Look[1], p.Look[2], p.Index)
		if sigmas {
			fmt.Fprintf(w, " %.10g", p.Sigma)
		}
		fmt.Fprintln(w)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("scatter: %s: %w", path, err)
	}
	return f.Close()
}
