package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/geniusinaction/GEO244/covar"
	"github.com/geniusinaction/GEO244/raster"
)

// Run estimates a noise covariance model from an interferogram and writes
// the fitted parameters.
func Run(ctx context.Context, config *Config, logger *slog.Logger) error {
	opts := raster.Options{
		Band:      config.Band,
		NoData:    config.NoData,
		SRS:       config.SRS,
		PixelSize: config.PixelSize,
	}

	ifg, err := raster.Read(config.Interferogram, opts)
	if err != nil {
		return fmt.Errorf("reading interferogram: %w", err)
	}
	logger.Info("loaded interferogram",
		slog.String("path", config.Interferogram),
		slog.Int("rows", ifg.Rows),
		slog.Int("cols", ifg.Cols),
		slog.Float64("pixelSize", ifg.PixelSize),
		slog.String("valid", humanize.Comma(int64(ifg.CountValid()))))

	if config.Correlation != "" {
		corr, err := raster.Read(config.Correlation, opts)
		if err != nil {
			return fmt.Errorf("reading correlation: %w", err)
		}
		if err := ifg.Threshold(corr, config.CorrelationMin); err != nil {
			return fmt.Errorf("masking by correlation: %w", err)
		}
		logger.Info("kept coherent pixels",
			slog.Float64("correlationMin", config.CorrelationMin),
			slog.String("valid", humanize.Comma(int64(ifg.CountValid()))))
	}
	if config.WaterMask != "" {
		mask, err := raster.Read(config.WaterMask, opts)
		if err != nil {
			return fmt.Errorf("reading water mask: %w", err)
		}
		if err := ifg.ApplyMask(mask); err != nil {
			return fmt.Errorf("applying water mask: %w", err)
		}
		logger.Info("masked water",
			slog.String("valid", humanize.Comma(int64(ifg.CountValid()))))
	}
	if config.Crop != nil {
		cropped, err := ifg.Crop(config.Crop.Row0, config.Crop.Col0, config.Crop.Row1, config.Crop.Col1)
		if err != nil {
			return fmt.Errorf("cropping: %w", err)
		}
		ifg = cropped
		logger.Info("cropped",
			slog.Int("rows", ifg.Rows),
			slog.Int("cols", ifg.Cols),
			slog.String("valid", humanize.Comma(int64(ifg.CountValid()))))
	}

	ifg.ScalePhase(config.Wavelength)

	plane, err := covar.Detrend(ifg)
	if err != nil {
		return fmt.Errorf("detrending: %w", err)
	}
	logger.Debug("removed best-fit plane",
		slog.Float64("offset", plane.Offset),
		slog.Float64("xSlope", plane.XSlope),
		slog.Float64("ySlope", plane.YSlope))

	if err := ctx.Err(); err != nil {
		return err
	}

	ac, err := covar.Autocov(ifg)
	if err != nil {
		return fmt.Errorf("autocovariance: %w", err)
	}
	prof, err := ac.Profile(config.BinWidth)
	if err != nil {
		return fmt.Errorf("radial profile: %w", err)
	}
	prof = prof.Clean()
	logger.Debug("built radial profile", slog.Int("annuli", len(prof.Bins)))

	fit, err := covar.FitModel(prof, config.Model, covar.FitOptions{
		Alpha0:        config.Alpha0,
		Beta0:         config.Beta0,
		MaxIterations: config.MaxIterations,
	})
	if err != nil {
		return fmt.Errorf("fitting %s model: %w", config.Model, err)
	}
	logger.Info("fitted covariance model",
		slog.String("model", string(fit.Model)),
		slog.Float64("amp", fit.Amp),
		slog.Float64("alpha", fit.Alpha),
		slog.Float64("beta", fit.Beta),
		slog.Float64("efoldingDistance", 1/fit.Alpha),
		slog.Float64("residual", fit.Residual),
		slog.Int("evaluations", fit.Evaluations))

	if config.Output == "" {
		return nil
	}
	return writeModel(config.Output, fit.Params)
}

func writeModel(path string, p covar.Params) error {
	raw, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding model: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("writing model: %w", err)
	}
	return nil
}
