package kmeans

// LabeledPoint pairs an input point with its final cluster label.
type LabeledPoint struct {
	Point
	Label int
}

// LabeledPoints returns every point of store with its label from r, in the
// store's original order.
func (r *Result) LabeledPoints(store *PointStore) []LabeledPoint {
	out := make([]LabeledPoint, store.Len())
	for i, p := range store.points {
		out[i] = LabeledPoint{Point: p, Label: r.Labels[i]}
	}
	return out
}
