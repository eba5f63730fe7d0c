package kmeans

import "fmt"

// Point is a 2-D coordinate pair. Points are identified by their index in a
// PointStore; seed indices and cluster labels both refer to that index.
type Point struct {
	X, Y float64
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// PointStore holds the ordered input points for one run.
// It is immutable once created; indices stay stable for the lifetime of the store.
type PointStore struct {
	points []Point
}

// NewPointStore creates a store from points. The slice is copied so later
// changes by the caller do not leak into a running clustering.
func NewPointStore(points []Point) *PointStore {
	owned := make([]Point, len(points))
	copy(owned, points)
	return &PointStore{points: owned}
}

// Len returns the number of points in the store.
func (s *PointStore) Len() int {
	if s == nil {
		return 0
	}
	return len(s.points)
}

// At returns the point at index i.
func (s *PointStore) At(i int) Point { return s.points[i] }

// Points returns a copy of the stored points in their original order.
func (s *PointStore) Points() []Point {
	out := make([]Point, len(s.points))
	copy(out, s.points)
	return out
}
