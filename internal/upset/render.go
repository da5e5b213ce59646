package upset

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// RenderOptions controls the rendered chart.
type RenderOptions struct {
	Title  string
	Width  vg.Length
	Height vg.Length
}

func (o RenderOptions) withDefaults() RenderOptions {
	if o.Title == "" {
		o.Title = "Leading-edge gene intersections"
	}
	if o.Width == 0 {
		o.Width = 12 * vg.Inch
	}
	if o.Height == 0 {
		o.Height = 6 * vg.Inch
	}
	return o
}

// Render draws the intersection matrix as a bar chart and writes it in the
// given format ("svg" or "png").
func Render(m *Matrix, w io.Writer, format string, opts RenderOptions) error {
	if len(m.Combos) == 0 {
		return fmt.Errorf("no intersections to plot")
	}
	opts = opts.withDefaults()

	p := plot.New()
	p.Title.Text = opts.Title
	p.Y.Label.Text = "Gene Count"
	p.X.Label.Text = "Dataset Combination"

	values := make(plotter.Values, len(m.Combos))
	labels := make([]string, len(m.Combos))
	for i, c := range m.Combos {
		values[i] = float64(c.Count)
		labels[i] = c.Label()
	}

	bars, err := plotter.NewBarChart(values, vg.Points(14))
	if err != nil {
		return fmt.Errorf("create bar chart: %w", err)
	}
	bars.Color = color.RGBA{R: 50, G: 100, B: 200, A: 255}
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = -1.2
	p.X.Tick.Label.XAlign = -0.9

	// Count labels above each bar.
	countLabels := plotter.XYLabels{
		XYs:    make(plotter.XYs, len(m.Combos)),
		Labels: make([]string, len(m.Combos)),
	}
	for i, c := range m.Combos {
		countLabels.XYs[i].X = float64(i)
		countLabels.XYs[i].Y = float64(c.Count)
		countLabels.Labels[i] = fmt.Sprintf("%d", c.Count)
	}
	counts, err := plotter.NewLabels(countLabels)
	if err != nil {
		return fmt.Errorf("create count labels: %w", err)
	}
	p.Add(counts)

	writer, err := p.WriterTo(opts.Width, opts.Height, format)
	if err != nil {
		return fmt.Errorf("create %s writer: %w", format, err)
	}
	if _, err := writer.WriteTo(w); err != nil {
		return fmt.Errorf("write %s: %w", format, err)
	}
	return nil
}
