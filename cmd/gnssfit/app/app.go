package app

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/geniusinaction/GEO244/gnss"
)

// Run decomposes a position series and prints the parameter table, one row
// per fitted term with its one-sigma uncertainty.
func Run(ctx context.Context, config *Config, logger *slog.Logger) error {
	var series *gnss.Series
	var err error
	if config.URL != "" {
		logger.Info("fetching series", slog.String("url", config.URL))
		series, err = gnss.FetchSeries(ctx, nil, config.URL, config.Token)
	} else {
		series, err = gnss.Read(config.Input)
	}
	if err != nil {
		return err
	}
	t0, t1 := series.Span()
	logger.Info("loaded series",
		slog.String("station", series.Station),
		slog.Int("epochs", series.Len()),
		slog.Float64("start", t0),
		slog.Float64("end", t1))

	dec, err := gnss.Decompose(series, config.Model)
	if err != nil {
		return fmt.Errorf("decomposing: %w", err)
	}

	w := bufio.NewWriter(os.Stdout)
	fmt.Fprintf(w, "%-6s %-26s %14s %14s\n", "comp", "term", "estimate", "sigma")
	for _, c := range []gnss.Component{gnss.East, gnss.North, gnss.Up} {
		fit := dec.Fit(c)
		for j, name := range fit.Names {
			fmt.Fprintf(w, "%-6s %-26s %14.6g %14.6g\n", c, name, fit.Params[j], fit.Sigmas[j])
		}
		v, sig := fit.Velocity()
		logger.Info("fitted component",
			slog.String("component", c.String()),
			slog.Float64("velocity", v),
			slog.Float64("sigma", sig),
			slog.Float64("rms", fit.RMS))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if config.Output == "" {
		return nil
	}
	for _, c := range []gnss.Component{gnss.East, gnss.North, gnss.Up} {
		path := fmt.Sprintf("%s.%s.txt", config.Output, c)
		if err := writeComponents(path, series, c, dec.Fit(c)); err != nil {
			return err
		}
		logger.Info("wrote decomposition", slog.String("path", path))
	}
	return nil
}

// writeComponents stores the observed series next to the fitted curve and
// its separated parts.
func writeComponents(path string, s *gnss.Series, c gnss.Component, fit *gnss.Fit) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	trend := fit.Part(gnss.Trend)
	steps := fit.Part(gnss.Steps)
	trans := fit.Part(gnss.Transients)
	seas := fit.Part(gnss.Seasonal)
	vals := s.Values(c)

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "# epoch observed fitted residual trend steps transients seasonal")
	for i, t := range s.Epochs {
		fmt.Fprintf(w, "%.6f %.10g %.10g %.10g %.10g %.10g %.10g %.10g\n",
			t, vals[i], fit.Fitted[i], fit.Residuals[i], trend[i], steps[i], trans[i], seas[i])
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
