// Package charts renders bandwidth and speedup plots from result rows.
package charts

import (
	"fmt"
	"os"

	"github.com/drbench/drbench/model"
	"github.com/drbench/drbench/results"
	"github.com/rs/zerolog"
)

// Formats lists the image formats a chart can be saved in.
var Formats = []string{"png", "svg", "pdf"}

// DefaultFormat is used when no format is configured.
const DefaultFormat = "png"

var bandwidthBenchmarks = []string{
	"Stream_Copy",
	"Stream_Scale",
	"Stream_Add",
	"Stream_Triad",
}

var speedupBenchmarks = []string{
	"BlackScholes",
	"DotProduct",
	"Gemm",
	"Exclusive_Scan",
	"Inclusive_Scan",
	"Reduce",
	"Stencil2D",
}

// These have no reference implementation and are compared against their own
// rank 1 run.
var selfSpeedupBenchmarks = []string{
	"FFT3D",
	"WaveEquation",
}

type Charts struct {
	logger zerolog.Logger
	rows   []model.Row
	prefix string
	format string
}

// New returns a chart builder for rows. Files are written as
// {prefix}-{benchmark}-{device}.{csv,format}.
func New(logger zerolog.Logger, rows []model.Row, prefix, format string) (*Charts, error) {
	if format == "" {
		format = DefaultFormat
	}
	valid := false
	for _, f := range Formats {
		if f == format {
			valid = true
		}
	}
	if !valid {
		return nil, fmt.Errorf("unsupported format %q (valid: %v)", format, Formats)
	}

	return &Charts{
		logger: logger,
		rows:   rows,
		prefix: prefix,
		format: format,
	}, nil
}

// CreateAll writes every chart that has data and returns the written image
// paths.
func (c *Charts) CreateAll() ([]string, error) {
	var written []string
	write := func(chart Chart, ok bool, benchmark, device string) error {
		if !ok {
			return nil
		}
		path, err := c.write(chart, benchmark, device)
		if err != nil {
			return err
		}
		written = append(written, path)
		return nil
	}

	for _, device := range []string{model.DeviceCPU.String(), model.DeviceGPU.String()} {
		for _, bench := range bandwidthBenchmarks {
			chart, ok := c.BandwidthChart(bench, device)
			if err := write(chart, ok, bench, device); err != nil {
				return written, err
			}
		}
		for _, bench := range speedupBenchmarks {
			chart, ok := c.SpeedupChart(bench, device, "", "")
			if err := write(chart, ok, bench, device); err != nil {
				return written, err
			}
		}
		for _, bench := range selfSpeedupBenchmarks {
			chart, ok := c.SpeedupChart(bench, device, "", bench+"_DR")
			if err := write(chart, ok, bench, device); err != nil {
				return written, err
			}
		}
	}

	return written, nil
}

func (c *Charts) write(chart Chart, benchmark, device string) (string, error) {
	base := c.fileBase(benchmark, device)
	c.logger.Info().Str("file", base).Msg("Writing chart")

	f, err := os.Create(base + ".csv")
	if err != nil {
		return "", fmt.Errorf("failed to create CSV: %w", err)
	}
	if err := results.WriteCSV(f, chart.Rows); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write %s.csv: %w", base, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s.csv: %w", base, err)
	}

	path := base + "." + c.format
	if err := Render(chart, path); err != nil {
		return "", err
	}
	return path, nil
}
