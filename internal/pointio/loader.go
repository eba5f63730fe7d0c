// Package pointio reads 2-D points from text sources and writes labelled
// clustering reports.
package pointio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/banshee-data/kmeans/internal/fsutil"
	"github.com/banshee-data/kmeans/internal/kmeans"
	"github.com/banshee-data/kmeans/internal/monitoring"
)

// ErrAllocationFailure is returned when a source holds more points than the
// configured limit allows.
var ErrAllocationFailure = errors.New("point limit exceeded")

// ReadPoints reads whitespace-separated numbers from r and pairs them into
// points. Reading stops at the first token that is not a number, and an
// unpaired trailing number is dropped; the points read up to that position
// are returned. maxPoints <= 0 disables the size limit.
func ReadPoints(r io.Reader, maxPoints int) ([]kmeans.Point, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	var (
		points  []kmeans.Point
		pending []float64
		tokens  int
	)
	for sc.Scan() {
		tokens++
		v, err := strconv.ParseFloat(sc.Text(), 64)
		if err != nil {
			monitoring.Logf("pointio: stopped at token %d %q after %d points", tokens, sc.Text(), len(points))
			return points, nil
		}
		pending = append(pending, v)
		if len(pending) < 2 {
			continue
		}
		if maxPoints > 0 && len(points) >= maxPoints {
			return nil, fmt.Errorf("%w: more than %d points", ErrAllocationFailure, maxPoints)
		}
		points = append(points, kmeans.Point{X: pending[0], Y: pending[1]})
		pending = pending[:0]
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read points: %w", err)
	}
	if len(pending) != 0 {
		monitoring.Logf("pointio: dropped unpaired trailing value %g after %d points", pending[0], len(points))
	}
	return points, nil
}

// LoadFile reads points from the named file on fsys.
func LoadFile(fsys fsutil.FileSystem, path string, maxPoints int) ([]kmeans.Point, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open data file %s: %w", path, err)
	}
	defer f.Close()

	points, err := ReadPoints(f, maxPoints)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return points, nil
}
