// Package chart draws clustering results as a PNG scatter plot or an
// interactive HTML page.
package chart

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/banshee-data/kmeans/internal/fsutil"
	"github.com/banshee-data/kmeans/internal/kmeans"
)

const (
	plotWidth  = 8 * vg.Inch
	plotHeight = 8 * vg.Inch
)

// groupByLabel splits labelled points into one XY series per cluster.
// Points with a label outside [0,k) are dropped.
func groupByLabel(labeled []kmeans.LabeledPoint, k int) []plotter.XYs {
	groups := make([]plotter.XYs, k)
	for _, lp := range labeled {
		if lp.Label < 0 || lp.Label >= k {
			continue
		}
		groups[lp.Label] = append(groups[lp.Label], plotter.XY{X: lp.X, Y: lp.Y})
	}
	return groups
}

// NewPlot builds the scatter plot: one coloured series per non-empty
// cluster and the centroids as crosses in the same colour.
func NewPlot(title string, labeled []kmeans.LabeledPoint, centroids []kmeans.Point) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "X"
	p.Y.Label.Text = "Y"
	p.Add(plotter.NewGrid())

	for i, pts := range groupByLabel(labeled, len(centroids)) {
		if len(pts) == 0 {
			continue
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, fmt.Errorf("failed to create scatter for cluster %d: %w", i, err)
		}
		s.GlyphStyle.Color = plotutil.Color(i)
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		s.GlyphStyle.Radius = vg.Points(2.5)
		p.Add(s)
		p.Legend.Add(fmt.Sprintf("cluster %d (%d)", i, len(pts)), s)
	}

	for i, c := range centroids {
		s, err := plotter.NewScatter(plotter.XYs{{X: c.X, Y: c.Y}})
		if err != nil {
			return nil, fmt.Errorf("failed to create centroid marker %d: %w", i, err)
		}
		s.GlyphStyle.Color = plotutil.Color(i)
		s.GlyphStyle.Shape = draw.CrossGlyph{}
		s.GlyphStyle.Radius = vg.Points(6)
		p.Add(s)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10
	return p, nil
}

// WritePNG renders the plot to path on fsys, creating parent directories.
func WritePNG(fsys fsutil.FileSystem, path, title string, labeled []kmeans.LabeledPoint, centroids []kmeans.Point) error {
	p, err := NewPlot(title, labeled, centroids)
	if err != nil {
		return err
	}

	wt, err := p.WriterTo(plotWidth, plotHeight, "png")
	if err != nil {
		return fmt.Errorf("failed to render plot: %w", err)
	}

	f, err := fsutil.CreateAll(fsys, path)
	if err != nil {
		return fmt.Errorf("failed to create plot file %s: %w", path, err)
	}
	if _, err := wt.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write plot file %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close plot file %s: %w", path, err)
	}
	return nil
}
