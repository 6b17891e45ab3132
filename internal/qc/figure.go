package qc

import (
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

const (
	figureWidth  = 8 * vg.Inch
	figureHeight = 4 * vg.Inch
	figureFormat = "png"
)

// Figure is a diagnostic plot attached to a result. It implements io.WriterTo
// and renders as PNG.
type Figure struct {
	Plot *plot.Plot
}

// WriteTo renders the figure into w.
func (f Figure) WriteTo(w io.Writer) (int64, error) {
	wt, err := f.Plot.WriterTo(figureWidth, figureHeight, figureFormat)
	if err != nil {
		return 0, err
	}
	return wt.WriteTo(w)
}

// traceFigure plots y against x with horizontal reference lines at limit and level.
func traceFigure(title, yLabel string, x, y []float64, limit, level float64) (Figure, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Reference time (s)"
	p.Y.Label.Text = yLabel

	pts := make(plotter.XYs, 0, len(y))
	for i := range y {
		if i >= len(x) {
			break
		}
		pt := plotter.XY{X: x[i], Y: y[i]}
		if len(finite([]float64{pt.X, pt.Y})) != 2 {
			continue
		}
		pts = append(pts, pt)
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return Figure{}, err
	}
	p.Add(line)

	limitLine := plotter.NewFunction(func(float64) float64 { return limit })
	limitLine.Color = color.RGBA{R: 200, A: 255}
	limitLine.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	levelLine := plotter.NewFunction(func(float64) float64 { return level })
	levelLine.Color = color.RGBA{B: 200, A: 255}
	p.Add(limitLine, levelLine)
	p.Legend.Add("limit", limitLine)
	p.Legend.Add("floor", levelLine)
	return Figure{Plot: p}, nil
}
