package kmeans

// Update moves each centroid to the mean of the points labelled with its index.
// Sums and counts are accumulated in a single pass over the store. A centroid
// with no assigned points keeps its previous coordinates.
func Update(store *PointStore, labels []int, centroids []Point) {
	sums := make([]Point, len(centroids))
	counts := make([]int, len(centroids))

	for i, p := range store.points {
		c := labels[i]
		if c < 0 || c >= len(centroids) {
			continue
		}
		sums[c].X += p.X
		sums[c].Y += p.Y
		counts[c]++
	}

	for c := range centroids {
		if counts[c] == 0 {
			continue
		}
		centroids[c] = Point{
			X: sums[c].X / float64(counts[c]),
			Y: sums[c].Y / float64(counts[c]),
		}
	}
}
