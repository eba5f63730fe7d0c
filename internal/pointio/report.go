package pointio

import (
	"bufio"
	"fmt"
	"io"

	"github.com/banshee-data/kmeans/internal/fsutil"
	"github.com/banshee-data/kmeans/internal/kmeans"
)

// DefaultReportPath is where the tool writes the labelled points unless told otherwise.
const DefaultReportPath = "kmeans-output.txt"

// ReportHeader is the first line of every report.
const ReportHeader = "X  Y   clusterLabel"

// WriteReport writes one line per point, "x y   label" with two decimals, in
// the order given.
func WriteReport(w io.Writer, points []kmeans.LabeledPoint) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, ReportHeader)
	for _, p := range points {
		fmt.Fprintf(bw, "%.2f %.2f   %d\n", p.X, p.Y, p.Label)
	}
	return bw.Flush()
}

// WriteReportFile writes the report to path on fsys.
func WriteReportFile(fsys fsutil.FileSystem, path string, points []kmeans.LabeledPoint) error {
	f, err := fsutil.CreateAll(fsys, path)
	if err != nil {
		return fmt.Errorf("failed to create report %s: %w", path, err)
	}
	if err := WriteReport(f, points); err != nil {
		f.Close()
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return f.Close()
}
