package gnss

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
)

// Read loads a position series from disk. See Parse for the format.
func Read(path string) (*Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gnss: %w", err)
	}
	defer f.Close()
	s, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("gnss: %s: %w", path, err)
	}
	return s, nil
}

// Parse reads whitespace-separated rows of
//
//	decimal_year  east  north  up  [sig_e  sig_n  sig_u]
//
// in meters. Blank lines and lines starting with # are skipped, except that
// a "# station: NAME" header names the site. The sigma columns are all or
// nothing: every row must have the same width as the first.
func Parse(r io.Reader) (*Series, error) {
	s := &Series{}
	sc := bufio.NewScanner(r)
	line := 0
	width := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		if strings.HasPrefix(text, "#") {
			if rest, ok := strings.CutPrefix(text, "# station:"); ok {
				s.Station = strings.TrimSpace(rest)
			}
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != 4 && len(fields) != 7 {
			return nil, fmt.Errorf("%w: line %d has %d columns, want 4 or 7", ErrColumns, line, len(fields))
		}
		if width == 0 {
			width = len(fields)
		} else if len(fields) != width {
			return nil, fmt.Errorf("%w: line %d has %d columns, want %d", ErrColumns, line, len(fields), width)
		}
		vals := make([]float64, len(fields))
		for i, fld := range fields {
			v, err := strconv.ParseFloat(fld, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d column %d: %w", line, i+1, err)
			}
			vals[i] = v
		}
		s.Epochs = append(s.Epochs, vals[0])
		s.East = append(s.East, vals[1])
		s.North = append(s.North, vals[2])
		s.Up = append(s.Up, vals[3])
		if width == 7 {
			s.SigmaE = append(s.SigmaE, vals[4])
			s.SigmaN = append(s.SigmaN, vals[5])
			s.SigmaU = append(s.SigmaU, vals[6])
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("gnss: %w", err)
	}
	return s, nil
}

// Write stores the series in the format Parse reads.
func Write(path string, s *Series) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("gnss: %w", err)
	}

	w := bufio.NewWriter(f)
	if s.Station != "" {
		fmt.Fprintf(w, "# station: %s\n", s.Station)
	}
	for i := range s.Epochs {
		fmt.Fprintf(w, "%.6f %.10g %.10g %.10g", s.Epochs[i], s.East[i], s.North[i], s.Up[i])
		if s.SigmaE != nil {
			fmt.Fprintf(w, " %.10g %.10g %.10g", s.SigmaE[i], s.SigmaN[i], s.SigmaU[i])
		}
		fmt.Fprintln(w)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("gnss: %s: %w", path, err)
	}
	return f.Close()
}

// FetchSeries downloads a position series from an archive URL. A non-empty
// token is sent as a bearer credential; managing tokens is the caller's
// problem. A nil client falls back to http.DefaultClient.
func FetchSeries(ctx context.Context, client *http.Client, url, token string) (*Series, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("gnss: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned %s", ErrFetch, url, resp.Status)
	}
	s, err := Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("gnss: %s: %w", url, err)
	}
	return s, nil
}
