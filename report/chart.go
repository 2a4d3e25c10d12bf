package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/Jpfonseca/Mirrors-Statistics-Crawler/bandwidth"
)

const (
	defaultChartWidth  = 1280
	defaultChartHeight = 640
)

// Purpose: Draw the monthly bandwidth line chart as a PNG.
// Key aspects: The y axis is scaled to gibibytes and the x labels are the
// period keys rotated vertical so multi-year ranges stay legible. The x range
// always snaps to the span of the period ticks, so a single-month aggregate
// pads its lone tick with unlabeled neighbors; a flat series pins the y range
// because the renderer rejects a zero axis delta.
// Upstream: Generate.
// Downstream: github.com/wcharczuk/go-chart/v2.
func RenderChart(path string, agg Aggregate, width, height int) error {
	if len(agg.Entries) == 0 {
		return fmt.Errorf("report: no periods to chart")
	}
	if width <= 0 {
		width = defaultChartWidth
	}
	if height <= 0 {
		height = defaultChartHeight
	}

	xs := make([]float64, len(agg.Entries))
	ys := make([]float64, len(agg.Entries))
	ticks := make([]chart.Tick, len(agg.Entries))
	minY, maxY := 0.0, 0.0
	for i, e := range agg.Entries {
		xs[i] = float64(i)
		ys[i] = float64(e.Bytes) / float64(bandwidth.GB)
		if i == 0 || ys[i] < minY {
			minY = ys[i]
		}
		if ys[i] > maxY {
			maxY = ys[i]
		}
		ticks[i] = chart.Tick{Value: float64(i), Label: e.Period.Key()}
	}
	if len(agg.Entries) == 1 {
		// A lone tick spans zero width. The neighbors carry no label, so the
		// single point still renders centered under its period key.
		ticks = []chart.Tick{{Value: -1}, ticks[0], {Value: 1}}
	}

	graph := chart.Chart{
		Title:  "Monthly Bandwidth Usage for Private IP Addresses",
		Width:  width,
		Height: height,
		XAxis: chart.XAxis{
			Name:  "Year-Month",
			Ticks: ticks,
			TickStyle: chart.Style{
				TextRotationDegrees: 90,
			},
		},
		YAxis: chart.YAxis{
			Name: "Bandwidth (GB)",
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
					DotColor:    chart.ColorBlue,
					DotWidth:    3,
				},
				XValues: xs,
				YValues: ys,
			},
		},
	}
	if minY == maxY {
		graph.YAxis.Range = &chart.ContinuousRange{Min: 0, Max: maxY + 1}
	}

	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("report: mkdir %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: create chart: %w", err)
	}
	if err := graph.Render(chart.PNG, f); err != nil {
		_ = f.Close()
		return fmt.Errorf("report: render chart: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("report: close chart: %w", err)
	}
	return nil
}
