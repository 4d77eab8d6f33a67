package charts

import (
	"fmt"
	"image/color"
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Fraction of the first value the perfect scaling line starts below it.
const perfectScalingOffset = 0.15

func ticks(values []float64) plot.ConstantTicks {
	t := make([]plot.Tick, len(values))
	for i, v := range values {
		t[i] = plot.Tick{Value: v, Label: strconv.FormatFloat(v, 'g', 3, 64)}
	}
	return plot.ConstantTicks(t)
}

// positive drops the points a log axis cannot show.
func positive(xys plotter.XYs) plotter.XYs {
	var out plotter.XYs
	for _, xy := range xys {
		if xy.X > 0 && xy.Y > 0 && !math.IsInf(xy.Y, 0) {
			out = append(out, xy)
		}
	}
	return out
}

// widen gives a single valued axis a range a log scale can normalize.
func widen(a *plot.Axis) {
	if a.Min == a.Max {
		a.Min /= 2
		a.Max *= 2
	}
}

func perfectScaling(chart Chart) plotter.XYs {
	if len(chart.XDomain) == 0 || len(chart.Lines) == 0 || len(chart.Lines[0].XYs) == 0 {
		return nil
	}
	start := chart.Lines[0].XYs[0].Y * (1 - perfectScalingOffset)
	xys := make(plotter.XYs, len(chart.XDomain))
	for i, x := range chart.XDomain {
		xys[i] = plotter.XY{X: x, Y: start * x / chart.XDomain[0]}
	}
	return xys
}

// Render draws chart on log-log axes and saves it to path. The image format
// follows the path extension.
func Render(chart Chart, path string) error {
	p := plot.New()
	p.Title.Text = chart.Title
	p.X.Label.Text = chart.XTitle
	p.Y.Label.Text = chart.YTitle
	p.X.Scale = plot.LogScale{}
	p.Y.Scale = plot.LogScale{}
	p.X.Tick.Marker = ticks(chart.XDomain)
	p.Y.Tick.Marker = ticks(chart.YDomain)
	p.Legend.Top = true
	p.Legend.Left = true
	p.Legend.Padding = 1 * vg.Millimeter
	p.Add(plotter.NewGrid())

	if ideal := positive(perfectScaling(chart)); len(ideal) > 0 {
		l, err := plotter.NewLine(ideal)
		if err != nil {
			return fmt.Errorf("failed to create perfect scaling line: %w", err)
		}
		l.Color = color.Gray{128}
		l.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
		p.Add(l)
		p.Legend.Add("perfect scaling", l)
	}

	var lines []interface{}
	for _, line := range chart.Lines {
		xys := positive(line.XYs)
		if len(xys) == 0 {
			continue
		}
		lines = append(lines, line.Label, xys)
	}
	if len(lines) == 0 {
		return fmt.Errorf("no positive data to plot in %s", chart.Title)
	}
	if err := plotutil.AddLinePoints(p, lines...); err != nil {
		return fmt.Errorf("failed to add lines to %s: %w", chart.Title, err)
	}

	widen(&p.X)
	widen(&p.Y)

	if err := p.Save(8*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}
