// Package testutil provides shared test utilities and fixtures.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/banshee-data/kmeans/internal/kmeans"
)

// TwoPairs is the smallest input with an obvious two-cluster answer:
// seeded with indices 0 and 2 it converges after one iteration.
var TwoPairs = []kmeans.Point{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 10, Y: 0}, {X: 10, Y: 1}}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// FormatPoints renders points in the whitespace-separated data file format,
// one "x y" pair per line.
func FormatPoints(points []kmeans.Point) string {
	var b strings.Builder
	for _, p := range points {
		fmt.Fprintf(&b, "%g %g\n", p.X, p.Y)
	}
	return b.String()
}

// WritePointsFile writes points to name under dir and returns the full path.
func WritePointsFile(t *testing.T, dir, name string, points []kmeans.Point) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(FormatPoints(points)), 0o644); err != nil {
		t.Fatalf("failed to write points file: %v", err)
	}
	return path
}
