package charts

import (
	"fmt"
	"sort"

	"github.com/drbench/drbench/model"
	"gonum.org/v1/plot/plotter"
)

const (
	tbsTitle     = "Bandwidth (TB/s)"
	gbsTitle     = "Bandwidth (GB/s)"
	speedupTitle = "Speedup"
	gpusTitle    = "Number of GPU Tiles"
	socketsTitle = "Number of CPU Sockets"
)

type deviceInfo struct {
	xTitle  string
	targets []string
	// bandwidth axis
	yTitle  string
	yDomain []float64
}

var devices = map[string]deviceInfo{
	model.DeviceGPU.String(): {
		xTitle:  gpusTitle,
		targets: []string{"MHP_SYCL_GPU", "SHP_SYCL_GPU"},
		yTitle:  tbsTitle,
		yDomain: []float64{1, 2, 4, 8, 16},
	},
	model.DeviceCPU.String(): {
		xTitle:  socketsTitle,
		targets: []string{"MHP_SYCL_CPU", "MHP_DIRECT_CPU"},
		yTitle:  gbsTitle,
		yDomain: []float64{100, 200, 400, 800},
	},
}

// Line is one labelled series of a chart.
type Line struct {
	Label string
	XYs   plotter.XYs
}

// Chart is everything needed to render one plot.
type Chart struct {
	Title   string
	XTitle  string
	YTitle  string
	XDomain []float64
	YDomain []float64
	Lines   []Line
	// Rows the chart was built from, written next to the plot as CSV
	Rows []model.Row
}

func xValue(r model.Row, device string) float64 {
	if device == model.DeviceGPU.String() {
		return float64(r.Ranks)
	}
	return r.CPUSockets
}

func bandwidth(r model.Row, device string) float64 {
	if device == model.DeviceGPU.String() {
		return r.TBs()
	}
	return r.GBs()
}

// sortRows orders rows by target, then by x value.
func sortRows(rows []model.Row, device string) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Target != rows[j].Target {
			return rows[i].Target < rows[j].Target
		}
		return xValue(rows[i], device) < xValue(rows[j], device)
	})
}

func filterRows(rows []model.Row, keep func(model.Row) bool) []model.Row {
	var out []model.Row
	for _, r := range rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// findTargets returns the device targets that have rows, in the fixed
// per-device order.
func (c *Charts) findTargets(rows []model.Row, device string) []string {
	var targets []string
	for _, target := range devices[device].targets {
		found := false
		for _, r := range rows {
			if r.Target == target {
				found = true
				break
			}
		}
		if !found {
			c.logger.Info().Str("target", target).Str("device", device).Msg("No data for target")
			continue
		}
		targets = append(targets, target)
	}
	return targets
}

// xDomain starts at the first x value of target and doubles until it reaches
// the last one.
func xDomain(rows []model.Row, target, device string) []float64 {
	var xs []float64
	for _, r := range rows {
		if r.Target == target {
			xs = append(xs, xValue(r, device))
		}
	}
	if len(xs) == 0 || xs[0] <= 0 {
		return nil
	}

	val, last := xs[0], xs[len(xs)-1]
	domain := []float64{val}
	for val < last {
		val *= 2
		domain = append(domain, val)
	}
	return domain
}

// BandwidthChart builds the strong scaling bandwidth chart of benchmark on
// device. It returns false when there is nothing to plot.
func (c *Charts) BandwidthChart(benchmark, device string) (Chart, bool) {
	info, ok := devices[device]
	if !ok {
		return Chart{}, false
	}

	rows := filterRows(c.rows, func(r model.Row) bool {
		return r.Benchmark == benchmark && r.Scaling == model.ScalingStrong && r.Device == device
	})
	sortRows(rows, device)

	targets := c.findTargets(rows, device)
	if len(rows) == 0 || len(targets) == 0 {
		c.logger.Info().Str("benchmark", benchmark).Str("device", device).Msg("No bandwidth data")
		return Chart{}, false
	}

	chart := Chart{
		Title:   benchmark,
		XTitle:  info.xTitle,
		YTitle:  info.yTitle,
		XDomain: xDomain(rows, targets[0], device),
		YDomain: info.yDomain,
		Rows:    rows,
	}
	for _, target := range targets {
		line := Line{Label: target}
		for _, r := range rows {
			if r.Target == target {
				line.XYs = append(line.XYs, plotter.XY{X: xValue(r, device), Y: bandwidth(r, device)})
			}
		}
		chart.Lines = append(chart.Lines, line)
	}

	return chart, true
}

// SpeedupChart builds the speedup chart of benchmark on device. Every line
// is the rank 1 time of referenceName divided by the time of benchmarkName.
func (c *Charts) SpeedupChart(benchmark, device, benchmarkName, referenceName string) (Chart, bool) {
	info, ok := devices[device]
	if !ok {
		return Chart{}, false
	}
	if benchmarkName == "" {
		benchmarkName = benchmark + "_DR"
	}
	if referenceName == "" {
		referenceName = benchmark + "_Reference"
	}

	rows := filterRows(c.rows, func(r model.Row) bool {
		return r.Benchmark == benchmark && r.Device == device
	})
	sortRows(rows, device)

	targets := c.findTargets(rows, device)
	if len(rows) == 0 || len(targets) == 0 {
		c.logger.Info().Str("benchmark", benchmark).Str("device", device).Msg("No speedup data")
		return Chart{}, false
	}

	var referenceTime float64
	for _, r := range rows {
		if r.BenchName == referenceName && r.Ranks == 1 {
			referenceTime = r.RealTime
			break
		}
	}
	if referenceTime <= 0 {
		c.logger.Info().Str("benchmark", benchmark).Str("device", device).Msg("No reference data")
		return Chart{}, false
	}

	domain := xDomain(rows, targets[0], device)
	chart := Chart{
		Title:   benchmark,
		XTitle:  info.xTitle,
		YTitle:  speedupTitle,
		XDomain: domain,
		YDomain: domain,
		Rows:    rows,
	}

	for _, scaling := range []model.Scaling{model.ScalingWeak, model.ScalingStrong} {
		for _, target := range targets {
			for _, deviceMemory := range []bool{true, false} {
				line := Line{Label: lineLabel(target, scaling, deviceMemory)}
				for _, r := range rows {
					if r.BenchName != benchmarkName || r.Target != target || r.Scaling != scaling || r.DeviceMemory != deviceMemory {
						continue
					}
					total := r.RealTime
					if scaling == model.ScalingWeak {
						total /= float64(r.Ranks)
					}
					if total <= 0 {
						continue
					}
					line.XYs = append(line.XYs, plotter.XY{X: xValue(r, device), Y: referenceTime / total})
				}
				if len(line.XYs) == 0 {
					c.logger.Debug().
						Str("benchmark", benchmarkName).
						Str("target", target).
						Str("scaling", string(scaling)).
						Bool("device_memory", deviceMemory).
						Msg("No data for line")
					continue
				}
				chart.Lines = append(chart.Lines, line)
			}
		}
	}

	if len(chart.Lines) == 0 {
		c.logger.Info().Str("benchmark", benchmarkName).Str("device", device).Msg("No speedup lines")
		return Chart{}, false
	}

	return chart, true
}

func lineLabel(target string, scaling model.Scaling, deviceMemory bool) string {
	label := target
	if scaling == model.ScalingWeak {
		label += " weak scaling"
	}
	if deviceMemory {
		label += " device memory"
	}
	return label
}

// fileBase is the path of a chart's output files without extension.
func (c *Charts) fileBase(benchmark, device string) string {
	return fmt.Sprintf("%s-%s-%s", c.prefix, benchmark, device)
}
