package kmeans

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ClusterSummary describes one cluster of a finished run.
type ClusterSummary struct {
	Label    int
	Size     int
	Centroid Point
	// Inertia is the sum of squared point-to-centroid distances.
	Inertia      float64
	MeanDistance float64
	// StdDistance is the sample standard deviation of point-to-centroid
	// distances; zero for clusters with fewer than two points.
	StdDistance float64
}

// Summary aggregates per-cluster statistics for a Result.
type Summary struct {
	Clusters     []ClusterSummary
	TotalInertia float64
}

// Summarize computes cluster statistics for r over store.
func Summarize(store *PointStore, r *Result) Summary {
	k := len(r.Centroids)
	dists := make([][]float64, k)
	for i, p := range store.points {
		c := r.Labels[i]
		if c < 0 || c >= k {
			continue
		}
		dists[c] = append(dists[c], Distance(p, r.Centroids[c]))
	}

	s := Summary{Clusters: make([]ClusterSummary, k)}
	inertias := make([]float64, k)
	for c := 0; c < k; c++ {
		cs := ClusterSummary{
			Label:    c,
			Size:     len(dists[c]),
			Centroid: r.Centroids[c],
		}
		switch {
		case cs.Size == 1:
			cs.MeanDistance = dists[c][0]
			cs.Inertia = dists[c][0] * dists[c][0]
		case cs.Size > 1:
			cs.MeanDistance, cs.StdDistance = stat.MeanStdDev(dists[c], nil)
			cs.Inertia = floats.Dot(dists[c], dists[c])
		}
		inertias[c] = cs.Inertia
		s.Clusters[c] = cs
	}
	s.TotalInertia = floats.Sum(inertias)
	return s
}
