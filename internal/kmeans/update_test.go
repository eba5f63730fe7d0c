package kmeans

import (
	"math"
	"testing"
)

func TestUpdate_Mean(t *testing.T) {
	store := NewPointStore([]Point{{0, 0}, {0, 1}, {10, 0}, {10, 1}, {10, 2}})
	labels := []int{0, 0, 1, 1, 1}
	centroids := []Point{{0, 0}, {10, 0}}

	Update(store, labels, centroids)

	if centroids[0] != (Point{X: 0, Y: 0.5}) {
		t.Errorf("expected centroid 0 at (0, 0.5), got %v", centroids[0])
	}
	if centroids[1] != (Point{X: 10, Y: 1}) {
		t.Errorf("expected centroid 1 at (10, 1), got %v", centroids[1])
	}
}

func TestUpdate_EmptyClusterUnchanged(t *testing.T) {
	store := NewPointStore([]Point{{0, 0}, {1, 1}, {2, 0}})
	empty := Point{X: 0.1 + 0.2, Y: -1e-300}
	centroids := []Point{{0, 0}, empty, {5, 5}}
	labels := []int{0, 0, 2}

	Update(store, labels, centroids)

	if math.Float64bits(centroids[1].X) != math.Float64bits(empty.X) ||
		math.Float64bits(centroids[1].Y) != math.Float64bits(empty.Y) {
		t.Errorf("empty centroid changed from %v to %v", empty, centroids[1])
	}
	if centroids[2] != (Point{X: 2, Y: 0}) {
		t.Errorf("expected centroid 2 at (2, 0), got %v", centroids[2])
	}
}

func TestUpdate_IgnoresUnassigned(t *testing.T) {
	store := NewPointStore([]Point{{4, 4}, {100, 100}})
	centroids := []Point{{0, 0}}
	Update(store, []int{0, Unassigned}, centroids)
	if centroids[0] != (Point{X: 4, Y: 4}) {
		t.Errorf("expected centroid at (4, 4), got %v", centroids[0])
	}
}
