package gnss

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const sample = `# station: P613
# decimal_year east north up sig_e sig_n sig_u

2020.0000 0.0100 -0.0020 0.0300 0.001 0.001 0.003
2020.0027 0.0101 -0.0018 0.0295 0.001 0.001 0.003
2020.0055 0.0103 -0.0019 0.0310 0.002 0.001 0.004
`

func TestParse(t *testing.T) {
	a := assert.New(t)

	s, err := Parse(strings.NewReader(sample))
	a.NoError(err)
	a.Equal("P613", s.Station)
	a.Equal(3, s.Len())
	a.Equal([]float64{2020.0000, 2020.0027, 2020.0055}, s.Epochs)
	a.Equal(0.0103, s.East[2])
	a.Equal(-0.0020, s.North[0])
	a.Equal([]float64{0.003, 0.003, 0.004}, s.SigmaU)

	t0, t1 := s.Span()
	a.Equal(2020.0000, t0)
	a.Equal(2020.0055, t1)

	a.Equal(s.East, s.Values(East))
	a.Equal(s.SigmaN, s.Sigmas(North))
}

func TestParseNoSigmas(t *testing.T) {
	a := assert.New(t)

	s, err := Parse(strings.NewReader("2020.0 0.01 0.02 0.03\n2020.1 0.02 0.03 0.04\n"))
	a.NoError(err)
	a.Equal(2, s.Len())
	a.Nil(s.SigmaE)
	a.Nil(s.Sigmas(Up))
}

func TestParseBadRows(t *testing.T) {
	a := assert.New(t)

	_, err := Parse(strings.NewReader("2020.0 0.01 0.02\n"))
	a.ErrorIs(err, ErrColumns)

	// sigma columns are all or nothing
	_, err = Parse(strings.NewReader("2020.0 0.01 0.02 0.03 0.001 0.001 0.003\n2020.1 0.02 0.03 0.04\n"))
	a.ErrorIs(err, ErrColumns)

	_, err = Parse(strings.NewReader("2020.0 0.01 oops 0.03\n"))
	a.Error(err)
	a.Contains(err.Error(), "line 1")
}

func TestReadWriteRoundTrip(t *testing.T) {
	a := assert.New(t)

	s, err := Parse(strings.NewReader(sample))
	a.NoError(err)

	path := filepath.Join(t.TempDir(), "p613.txt")
	a.NoError(Write(path, s))

	back, err := Read(path)
	a.NoError(err)
	a.Equal(s, back)

	_, err = Read(filepath.Join(t.TempDir(), "absent.txt"))
	a.Error(err)
}

func TestFetchSeries(t *testing.T) {
	a := assert.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer sesame" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		fmt.Fprint(w, sample)
	}))
	defer srv.Close()

	s, err := FetchSeries(context.Background(), srv.Client(), srv.URL, "sesame")
	a.NoError(err)
	a.Equal("P613", s.Station)
	a.Equal(3, s.Len())

	// nil client falls back to the default one
	s, err = FetchSeries(context.Background(), nil, srv.URL, "sesame")
	a.NoError(err)
	a.Equal(3, s.Len())

	_, err = FetchSeries(context.Background(), srv.Client(), srv.URL, "wrong")
	a.ErrorIs(err, ErrFetch)

	_, err = FetchSeries(context.Background(), srv.Client(), "http://127.0.0.1:1", "sesame")
	a.ErrorIs(err, ErrFetch)
}
