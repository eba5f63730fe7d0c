package kmeans

import "math"

// Unassigned is the label every point carries before the first assignment round.
const Unassigned = -1

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Nearest returns the index of the centroid closest to p.
// The scan keeps the first minimum, so equidistant centroids resolve to the lowest index.
func Nearest(p Point, centroids []Point) int {
	best := 0
	minDist := math.MaxFloat64
	for c, centroid := range centroids {
		if d := Distance(p, centroid); d < minDist {
			minDist = d
			best = c
		}
	}
	return best
}

// Assign relabels every point in store with its nearest centroid and returns
// how many labels changed. labels must have store.Len() entries; it is updated
// in place. Centroids are not modified.
func Assign(store *PointStore, centroids []Point, labels []int) int {
	changes := 0
	for i, p := range store.points {
		c := Nearest(p, centroids)
		if labels[i] != c {
			labels[i] = c
			changes++
		}
	}
	return changes
}
