// Package plot renders trajectory charts: a static ground-track image via
// gonum/plot and an interactive altitude profile via go-echarts.
package plot

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"path/filepath"
	"strings"

	"github.com/banshee-data/sbet/internal/units"
	"github.com/banshee-data/sbet/sbet"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	gplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ErrNoRecords is returned when there is nothing to draw.
var ErrNoRecords = errors.New("no records to plot")

// Options controls chart size and content.
type Options struct {
	Title string
	// Width and Height are in inches for images and scaled to pixels
	// (x96) for HTML.
	Width  float64
	Height float64
	// MaxPoints caps the number of plotted epochs; longer trajectories are
	// decimated evenly. Zero means no cap.
	MaxPoints int
}

// DefaultOptions returns an 8x8 inch chart capped at 20000 points.
func DefaultOptions() Options {
	return Options{Title: "Trajectory", Width: 8, Height: 8, MaxPoints: 20000}
}

// Format returns the output format implied by a file name: "html", or an
// image format understood by gonum/plot.
func Format(path string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "html", "png", "svg", "pdf", "jpg", "jpeg":
		return ext, nil
	}
	return "", fmt.Errorf("unsupported plot format %q (want .png, .svg, .pdf, .jpg or .html)", filepath.Ext(path))
}

// Render draws records to w in the given format.
func Render(w io.Writer, format string, records []sbet.Record, o Options) error {
	if format == "html" {
		return AltitudeProfile(w, records, o)
	}
	return GroundTrack(w, format, records, o)
}

// GroundTrack draws longitude against latitude, in degrees, with the first
// epoch marked.
func GroundTrack(w io.Writer, format string, records []sbet.Record, o Options) error {
	if len(records) == 0 {
		return ErrNoRecords
	}
	records = decimate(records, o.MaxPoints)

	pts := make(plotter.XYs, len(records))
	for i, r := range records {
		pts[i].X = units.ConvertAngle(r.Longitude, units.Degrees)
		pts[i].Y = units.ConvertAngle(r.Latitude, units.Degrees)
	}

	p := gplot.New()
	p.Title.Text = o.Title
	p.X.Label.Text = "Longitude (deg)"
	p.Y.Label.Text = "Latitude (deg)"
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("failed to create track line: %w", err)
	}
	line.Width = vg.Points(1)
	line.Color = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	p.Add(line)
	p.Legend.Add("track", line)

	start, err := plotter.NewScatter(pts[:1])
	if err != nil {
		return fmt.Errorf("failed to create start marker: %w", err)
	}
	start.GlyphStyle.Shape = draw.CircleGlyph{}
	start.GlyphStyle.Radius = vg.Points(4)
	start.GlyphStyle.Color = color.RGBA{R: 44, G: 160, B: 44, A: 255}
	p.Add(start)
	p.Legend.Add("start", start)

	wt, err := p.WriterTo(vg.Length(o.Width)*vg.Inch, vg.Length(o.Height)*vg.Inch, format)
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", format, err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write %s: %w", format, err)
	}
	return nil
}

// AltitudeProfile writes a standalone HTML page charting altitude against
// GPS time.
func AltitudeProfile(w io.Writer, records []sbet.Record, o Options) error {
	if len(records) == 0 {
		return ErrNoRecords
	}
	records = decimate(records, o.MaxPoints)

	altitude := make([]opts.LineData, len(records))
	for i, r := range records {
		altitude[i] = opts.LineData{Value: []interface{}{r.Time, r.Altitude}}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: o.Title,
			Width:     fmt.Sprintf("%.0fpx", o.Width*96),
			Height:    fmt.Sprintf("%.0fpx", o.Height*96),
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    o.Title,
			Subtitle: fmt.Sprintf("epochs=%d t=%.3f..%.3f", len(records), records[0].Time, records[len(records)-1].Time),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "GPS time (s)", NameLocation: "middle", NameGap: 25, Min: "dataMin", Max: "dataMax"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "Altitude (m)", Scale: opts.Bool(true)}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", Start: 0, End: 100}),
	)
	line.AddSeries("altitude", altitude, charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}))

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// decimate returns at most max records spread evenly across records, always
// keeping the first and last.
func decimate(records []sbet.Record, max int) []sbet.Record {
	if max < 2 || len(records) <= max {
		return records
	}
	out := make([]sbet.Record, max)
	step := float64(len(records)-1) / float64(max-1)
	for i := range out {
		out[i] = records[int(float64(i)*step+0.5)]
	}
	return out
}
