package lagscan

import (
	"fmt"
	"image/color"
	"io"

	chartjs "github.com/brentp/go-chartjs"
	"github.com/brentp/go-chartjs/types"
	"github.com/pkg/errors"
	"go4.org/sort"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// vs satisfies chartjs.Values and plotter.XYer.
type vs struct {
	xs []float64
	ys []float64
}

func (v *vs) Xs() []float64 { return v.xs }

func (v *vs) Ys() []float64 { return v.ys }

func (v *vs) Rs() []float64 { return nil }

func (v *vs) Len() int { return len(v.xs) }

func (v *vs) XY(i int) (x, y float64) { return v.xs[i], v.ys[i] }

func byLag(points []Point) []Point {
	s := append([]Point(nil), points...)
	sort.Slice(s, func(i, j int) bool { return s[i].Lag < s[j].Lag })
	return s
}

func asValues(points []Point) *vs {
	v := &vs{xs: make([]float64, 0, len(points)), ys: make([]float64, 0, len(points))}
	for _, p := range byLag(points) {
		v.xs = append(v.xs, float64(p.Lag))
		v.ys = append(v.ys, p.LogLikelihood)
	}
	return v
}

// fitValues samples the fitted curve at n evenly spaced lags.
func fitValues(fit Poly, n int) *vs {
	v := &vs{xs: make([]float64, n), ys: make([]float64, n)}
	for i := range v.xs {
		x := fit.Lo + (fit.Hi-fit.Lo)*float64(i)/float64(n-1)
		v.xs[i], v.ys[i] = x, fit.At(x)
	}
	return v
}

var (
	pointColor = &types.RGBA{R: 31, G: 119, B: 180, A: 240}
	fitColor   = &types.RGBA{R: 214, G: 39, B: 40, A: 240}
)

// WriteTSV writes the points ordered by lag.
func WriteTSV(w io.Writer, points []Point) error {
	if _, err := fmt.Fprintln(w, "#lag\tlog_likelihood"); err != nil {
		return errors.Wrap(err, "lagscan: write")
	}
	for _, p := range byLag(points) {
		if _, err := fmt.Fprintf(w, "%d\t%.6f\n", p.Lag, p.LogLikelihood); err != nil {
			return errors.Wrap(err, "lagscan: write")
		}
	}
	return nil
}

// Chart returns an interactive chart of the points and, if peak is not nil, its fit.
func Chart(points []Point, peak *Peak, label string) (chartjs.Chart, error) {
	chart := chartjs.Chart{Label: label}
	xa, err := chart.AddXAxis(chartjs.Axis{Type: chartjs.Linear, Position: chartjs.Bottom,
		ScaleLabel: &chartjs.ScaleLabel{FontSize: 16, LabelString: "lag (bins)", Display: chartjs.True}})
	if err != nil {
		return chart, err
	}
	ya, err := chart.AddYAxis(chartjs.Axis{Type: chartjs.Linear, Position: chartjs.Left,
		ScaleLabel: &chartjs.ScaleLabel{FontSize: 16, LabelString: "log-likelihood", Display: chartjs.True}})
	if err != nil {
		return chart, err
	}

	ds := chartjs.Dataset{Data: asValues(points), Label: "scan", Fill: chartjs.False, PointRadius: 3, BorderWidth: 0,
		BorderColor: pointColor, BackgroundColor: pointColor, PointHitRadius: 6, ShowLine: chartjs.False}
	ds.XAxisID = xa
	ds.YAxisID = ya
	chart.AddDataset(ds)

	if peak != nil {
		fs := chartjs.Dataset{Data: fitValues(peak.Fit, 200), Label: fmt.Sprintf("fit (peak %.3g +/- %.2g)", peak.Lag, peak.StdDev),
			Fill: chartjs.False, PointRadius: 0, BorderWidth: 1.5, BorderColor: fitColor, BackgroundColor: fitColor}
		fs.XAxisID = xa
		fs.YAxisID = ya
		chart.AddDataset(fs)
	}
	chart.Options.Responsive = chartjs.False
	chart.Options.Tooltip = &chartjs.Tooltip{Mode: "nearest"}
	return chart, nil
}

// WriteHTML writes the Chart of points and peak to w.
func WriteHTML(w io.Writer, points []Point, peak *Peak, label string) error {
	chart, err := Chart(points, peak, label)
	if err != nil {
		return err
	}
	return chart.SaveHTML(w, map[string]interface{}{"width": 850, "height": 550})
}

// SavePNG draws the points and, if peak is not nil, its fit to a png at path.
func SavePNG(path string, points []Point, peak *Peak, label string) error {
	p := plot.New()
	p.Title.Text = label
	p.X.Label.Text = "lag (bins)"
	p.Y.Label.Text = "log-likelihood"

	s, err := plotter.NewScatter(asValues(points))
	if err != nil {
		return errors.Wrap(err, "lagscan: plot points")
	}
	s.GlyphStyle.Color = color.RGBA(*pointColor)
	s.GlyphStyle.Radius = vg.Points(2)
	p.Add(s)

	if peak != nil {
		l, err := plotter.NewLine(fitValues(peak.Fit, 200))
		if err != nil {
			return errors.Wrap(err, "lagscan: plot fit")
		}
		l.LineStyle.Width = vg.Points(0.8)
		l.Color = color.RGBA(*fitColor)
		p.Add(l)
	}
	return errors.Wrap(p.Save(6*vg.Inch, 4*vg.Inch, path), "lagscan: save png")
}
