/*
Package plot renders the MAPQ histogram as a bar chart image.
*/
package plot

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	gonumplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/virus-evolution/samstats/pkg/stats"
)

const (
	width  = 10 * vg.Inch
	height = 6 * vg.Inch
)

var (
	barFill = color.RGBA{R: 135, G: 206, B: 235, A: 255}
	barEdge = color.Black
)

// MapQHistogram builds a bar chart of the given MAPQ bins, in the order given.
func MapQHistogram(bins []stats.Bin) (*gonumplot.Plot, error) {

	p := gonumplot.New()
	p.Title.Text = "MAPQ score distribution"
	p.X.Label.Text = "MAPQ bin"
	p.Y.Label.Text = "Number of reads"

	if len(bins) == 0 {
		return p, nil
	}

	values := make(plotter.Values, len(bins))
	labels := make([]string, len(bins))
	for i, bin := range bins {
		values[i] = float64(bin.Count)
		labels[i] = bin.Label
	}

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return nil, err
	}
	bars.Color = barFill
	bars.LineStyle.Color = barEdge
	bars.LineStyle.Width = vg.Length(1)

	p.Add(bars)
	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = -1
	p.Y.Min = 0

	return p, nil
}

// Write renders the chart for bins to w in the given format ("png", "svg", "pdf", ...).
func Write(w io.Writer, bins []stats.Bin, format string) error {
	p, err := MapQHistogram(bins)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(width, height, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// Save renders the chart for bins to filename; the extension picks the image format.
func Save(filename string, bins []stats.Bin) error {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if format == "" {
		return fmt.Errorf("plot file %s has no extension to choose an image format from", filename)
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}

	if err := Write(f, bins, format); err != nil {
		f.Close()
		os.Remove(filename)
		return err
	}
	return f.Close()
}
