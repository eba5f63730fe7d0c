package chart

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/kmeans/internal/fsutil"
	"github.com/banshee-data/kmeans/internal/kmeans"
)

// CentroidSeries is the series name used for the centroid markers.
const CentroidSeries = "centroids"

// bounds returns a padded extent over all points and centroids.
func bounds(labeled []kmeans.LabeledPoint, centroids []kmeans.Point) (minX, maxX, minY, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	grow := func(x, y float64) {
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	for _, lp := range labeled {
		grow(lp.X, lp.Y)
	}
	for _, c := range centroids {
		grow(c.X, c.Y)
	}
	if math.IsInf(minX, 1) {
		return -1, 1, -1, 1
	}
	padX := math.Max((maxX-minX)*0.05, 1)
	padY := math.Max((maxY-minY)*0.05, 1)
	return minX - padX, maxX + padX, minY - padY, maxY + padY
}

// NewScatter builds the echarts scatter: one series per cluster and a
// final series holding the centroids.
func NewScatter(title string, labeled []kmeans.LabeledPoint, centroids []kmeans.Point) *charts.Scatter {
	k := len(centroids)
	minX, maxX, minY, maxY := bounds(labeled, centroids)

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("points=%d clusters=%d", len(labeled), k)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
		charts.WithXAxisOpts(opts.XAxis{Min: minX, Max: maxX, Name: "X", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: minY, Max: maxY, Name: "Y", NameLocation: "middle", NameGap: 30}),
	)

	series := make([][]opts.ScatterData, k)
	for _, lp := range labeled {
		if lp.Label < 0 || lp.Label >= k {
			continue
		}
		series[lp.Label] = append(series[lp.Label], opts.ScatterData{Value: []interface{}{lp.X, lp.Y}})
	}
	for i, data := range series {
		scatter.AddSeries(fmt.Sprintf("cluster %d", i), data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 8}))
	}

	centroidData := make([]opts.ScatterData, 0, k)
	for i, c := range centroids {
		centroidData = append(centroidData, opts.ScatterData{Name: fmt.Sprintf("centroid %d", i), Value: []interface{}{c.X, c.Y, i}})
	}
	scatter.AddSeries(CentroidSeries, centroidData, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 18}))
	return scatter
}

// RenderHTML writes a standalone HTML page with the scatter chart to w.
func RenderHTML(w io.Writer, title string, labeled []kmeans.LabeledPoint, centroids []kmeans.Point) error {
	if err := NewScatter(title, labeled, centroids).Render(w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

// WriteHTML renders the chart page to path on fsys.
func WriteHTML(fsys fsutil.FileSystem, path, title string, labeled []kmeans.LabeledPoint, centroids []kmeans.Point) error {
	f, err := fsutil.CreateAll(fsys, path)
	if err != nil {
		return fmt.Errorf("failed to create chart file %s: %w", path, err)
	}
	if err := RenderHTML(f, title, labeled, centroids); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close chart file %s: %w", path, err)
	}
	return nil
}
