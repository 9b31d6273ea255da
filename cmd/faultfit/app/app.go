package app

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	"github.com/dustin/go-humanize"
	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"

	"github.com/geniusinaction/GEO244/covar"
	"github.com/geniusinaction/GEO244/invert"
	"github.com/geniusinaction/GEO244/okada"
	"github.com/geniusinaction/GEO244/scatter"
)

// Run inverts scattered line-of-sight displacements for a rectangular
// dislocation and prints the best-fit source.
func Run(ctx context.Context, config *Config, logger *slog.Logger) error {
	pts, err := scatter.Read(config.Points)
	if err != nil {
		return err
	}
	logger.Info("loaded observations",
		slog.String("path", config.Points),
		slog.String("points", humanize.Comma(int64(len(pts)))))

	if config.BlockMean > 0 {
		pts, err = pts.BlockMean(config.BlockMean)
		if err != nil {
			return fmt.Errorf("block averaging: %w", err)
		}
		logger.Info("block averaged",
			slog.Float64("cellSize", config.BlockMean),
			slog.String("points", humanize.Comma(int64(len(pts)))))
	}

	objective := &invert.Objective{Points: pts, Opening: config.Opening, Nu: config.Nu}
	if config.CovarModel != "" {
		if objective.Weights, err = loadWeights(config.CovarModel, pts, logger); err != nil {
			return err
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	switch config.Mode {
	case ModeLinear:
		return runLinear(objective, config, logger)
	default:
		return runMonteCarlo(objective, config, logger)
	}
}

// loadWeights turns a stored covariance model into the weight matrix, the
// pseudoinverse of the covariance between every observation pair.
func loadWeights(path string, pts scatter.Points, logger *slog.Logger) (*mat.Dense, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var params covar.Params
	if err := yaml.Unmarshal(raw, &params); err != nil {
		return nil, fmt.Errorf("parsing covariance model: %w", err)
	}

	e, err := covar.Matrix(params, pts.Positions())
	if err != nil {
		return nil, fmt.Errorf("building covariance: %w", err)
	}
	w, err := covar.PInv(e)
	if err != nil {
		return nil, fmt.Errorf("inverting covariance: %w", err)
	}
	logger.Info("built covariance weighting",
		slog.String("model", string(params.Model)),
		slog.Int("size", len(pts)))
	return w, nil
}

func runMonteCarlo(objective *invert.Objective, config *Config, logger *slog.Logger) error {
	opts := invert.MonteCarloOptions{
		Starts:        config.Starts,
		MaxIterations: config.MaxIterations,
	}
	if config.Seed != 0 {
		opts.Rand = rand.New(rand.NewSource(config.Seed))
	}

	res, err := invert.MonteCarlo(objective, config.Bounds, opts)
	if err != nil {
		return fmt.Errorf("monte carlo search: %w", err)
	}
	logger.Info("search finished",
		slog.String("evaluations", humanize.Comma(int64(res.Evaluations))),
		slog.Float64("misfit", res.Misfit))

	return printSource(res.Source, res.Misfit)
}

func runLinear(objective *invert.Objective, config *Config, logger *slog.Logger) error {
	fit, err := invert.LinearSlip(objective, &config.Geometry)
	if err != nil {
		return fmt.Errorf("linear slip inversion: %w", err)
	}
	logger.Info("solved for slip",
		slog.Float64("strikeSlip", fit.StrikeSlip),
		slog.Float64("strikeSlipSigma", fit.Sigmas[0]),
		slog.Float64("dipSlip", fit.DipSlip),
		slog.Float64("dipSlipSigma", fit.Sigmas[1]),
		slog.Float64("misfit", fit.Misfit))

	return printSource(fit.Source, fit.Misfit)
}

func printSource(s *okada.Source, misfit float64) error {
	w := bufio.NewWriter(os.Stdout)
	fmt.Fprintf(w, "x       %14.6g\n", s.X)
	fmt.Fprintf(w, "y       %14.6g\n", s.Y)
	fmt.Fprintf(w, "depth   %14.6g\n", s.Depth)
	fmt.Fprintf(w, "strike  %14.6g\n", s.Strike)
	fmt.Fprintf(w, "dip     %14.6g\n", s.Dip)
	fmt.Fprintf(w, "rake    %14.6g\n", s.Rake)
	fmt.Fprintf(w, "slip    %14.6g\n", s.Slip)
	fmt.Fprintf(w, "length  %14.6g\n", s.Length)
	fmt.Fprintf(w, "width   %14.6g\n", s.Width)
	fmt.Fprintf(w, "misfit  %14.6g\n", misfit)
	return w.Flush()
}
