// Package charts renders the dataset aggregations as PNG images.
package charts

import (
	"bytes"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/citypairs/flight-explorer/internal/flights"
)

// Rendered size. Wide enough that forty years of monthly ticks stay legible.
const (
	chartWidth  = 10 * vg.Inch
	chartHeight = 5 * vg.Inch
)

var (
	trendColor   = color.RGBA{R: 0, G: 102, B: 204, A: 255}
	factorColor  = color.RGBA{R: 0, G: 128, B: 64, A: 255}
	scatterColor = color.RGBA{R: 178, G: 34, B: 34, A: 255}
)

// TrendLine renders monthly passenger trips as a line chart.
func TrendLine(points []flights.TrendPoint, title string) ([]byte, error) {
	if len(points) == 0 {
		return nil, flights.ErrNoData
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Month"
	p.Y.Label.Text = "Passenger trips"
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01"}

	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i].X = float64(pt.Period.Time().Unix())
		xys[i].Y = float64(pt.PassengerTrips)
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, fmt.Errorf("build trend line: %w", err)
	}
	line.Color = trendColor
	line.Width = vg.Points(1.5)

	p.Add(line)
	p.Add(plotter.NewGrid())
	p.Y.Min = 0

	return renderPNG(p)
}

// LoadFactorLine renders the monthly load-factor series as a line chart with
// a fixed 0-100 percent axis.
func LoadFactorLine(points []flights.LoadFactorPoint, title string) ([]byte, error) {
	if len(points) == 0 {
		return nil, flights.ErrNoData
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Month"
	p.Y.Label.Text = "Load factor (%)"
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01"}

	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i].X = float64(pt.Period.Time().Unix())
		xys[i].Y = pt.LoadFactor
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, fmt.Errorf("build load-factor line: %w", err)
	}
	line.Color = factorColor
	line.Width = vg.Points(1.5)

	p.Add(line)
	p.Add(plotter.NewGrid())
	p.Y.Min = 0
	p.Y.Max = 100

	return renderPNG(p)
}

// DistanceScatter renders route distance against load factor, one glyph per
// record. The pairing is presented raw; no fit or model is drawn.
func DistanceScatter(points []flights.DistancePoint, title string) ([]byte, error) {
	if len(points) == 0 {
		return nil, flights.ErrNoData
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Great-circle distance (km)"
	p.Y.Label.Text = "Load factor (%)"

	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i].X = pt.DistanceKM
		xys[i].Y = pt.LoadFactor
	}
	scatter, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, fmt.Errorf("build distance scatter: %w", err)
	}
	scatter.GlyphStyle.Color = scatterColor
	scatter.GlyphStyle.Radius = vg.Points(1.5)

	p.Add(scatter)
	p.Add(plotter.NewGrid())
	p.X.Min = 0
	p.Y.Min = 0
	p.Y.Max = 100

	return renderPNG(p)
}

func renderPNG(p *plot.Plot) ([]byte, error) {
	w, err := p.WriterTo(chartWidth, chartHeight, "png")
	if err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode chart: %w", err)
	}
	return buf.Bytes(), nil
}
