package kmeans

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingSeeds struct{ err error }

func (f failingSeeds) SeedIndices(n, k int) ([]int, error) { return nil, f.err }

func TestCluster_TwoPairs(t *testing.T) {
	t.Parallel()

	store := NewPointStore([]Point{{0, 0}, {0, 1}, {10, 0}, {10, 1}})
	c := NewClusterer(Params{K: 2, Seeds: FixedSeeds{0, 2}})

	res, err := c.Cluster(store)
	require.NoError(t, err)

	assert.Equal(t, StateConverged, res.State)
	assert.True(t, res.Converged())
	assert.Equal(t, 1, res.Iterations)
	assert.Equal(t, 2, res.Rounds)
	assert.Equal(t, []int{4, 0}, res.RoundChanges)
	assert.Equal(t, []int{0, 0, 1, 1}, res.Labels)
	assert.Equal(t, []int{0, 2}, res.SeedIndices)
	assert.InDelta(t, 0.0, res.Centroids[0].X, 1e-12)
	assert.InDelta(t, 0.5, res.Centroids[0].Y, 1e-12)
	assert.InDelta(t, 10.0, res.Centroids[1].X, 1e-12)
	assert.InDelta(t, 0.5, res.Centroids[1].Y, 1e-12)
	assert.Equal(t, "converged after 1 iterations", res.Diagnostic())
}

func TestCluster_MultipleRounds(t *testing.T) {
	t.Parallel()

	store := NewPointStore([]Point{{0, 0}, {1, 0}, {2, 0}, {10, 0}, {11, 0}, {12, 0}})
	res, err := NewClusterer(Params{K: 2, Seeds: FixedSeeds{0, 1}}).Cluster(store)
	require.NoError(t, err)

	assert.Equal(t, StateConverged, res.State)
	assert.Equal(t, []int{6, 2, 0}, res.RoundChanges)
	assert.Equal(t, 2, res.Iterations)
	assert.Equal(t, 3, res.Rounds)
	assert.Equal(t, []int{0, 0, 0, 1, 1, 1}, res.Labels)
	assert.Equal(t, Point{X: 1, Y: 0}, res.Centroids[0])
	assert.Equal(t, Point{X: 11, Y: 0}, res.Centroids[1])
}

func TestCluster_EachPointOwnCluster(t *testing.T) {
	t.Parallel()

	pts := []Point{{1, 1}, {-3, 2}, {7, 7}, {0, -5}, {2.5, 2.5}}
	store := NewPointStore(pts)
	res, err := NewClusterer(Params{K: len(pts), RandSeed: 11}).Cluster(store)
	require.NoError(t, err)

	assert.Equal(t, StateConverged, res.State)
	assert.Equal(t, 1, res.Iterations)
	assert.Equal(t, []int{len(pts), 0}, res.RoundChanges)
	for c, idx := range res.SeedIndices {
		assert.Equal(t, pts[idx], res.Centroids[c], "centroid %d", c)
		assert.Equal(t, c, res.Labels[idx], "label of point %d", idx)
	}
}

func TestCluster_IdenticalPoints(t *testing.T) {
	t.Parallel()

	pts := make([]Point, 5)
	for i := range pts {
		pts[i] = Point{X: 2, Y: -2}
	}
	res, err := NewClusterer(Params{K: 3, RandSeed: 5}).Cluster(NewPointStore(pts))
	require.NoError(t, err)

	assert.Equal(t, StateConverged, res.State)
	assert.Equal(t, []int{0, 0, 0, 0, 0}, res.Labels)
	for _, c := range res.Centroids {
		assert.Equal(t, Point{X: 2, Y: -2}, c)
	}
}

func TestCluster_LabelsInRange(t *testing.T) {
	t.Parallel()

	pts := make([]Point, 0, 60)
	for i := 0; i < 60; i++ {
		fi := float64(i)
		pts = append(pts, Point{X: math.Sin(fi) * fi, Y: math.Cos(fi*0.7) * 10})
	}
	store := NewPointStore(pts)

	for k := 1; k <= 8; k++ {
		res, err := NewClusterer(Params{K: k, RandSeed: int64(k)}).Cluster(store)
		require.NoError(t, err)
		require.Len(t, res.Labels, len(pts))
		require.Len(t, res.Centroids, k)
		for i, l := range res.Labels {
			assert.True(t, l >= 0 && l < k, "point %d has label %d for k=%d", i, l, k)
		}
	}
}

func TestCluster_Deterministic(t *testing.T) {
	t.Parallel()

	pts := make([]Point, 0, 40)
	for i := 0; i < 40; i++ {
		pts = append(pts, Point{X: float64(i%7) * 1.3, Y: float64(i%5) * 0.9})
	}
	store := NewPointStore(pts)
	params := Params{K: 4, Seeds: FixedSeeds{3, 17, 22, 39}}

	first, err := NewClusterer(params).Cluster(store)
	require.NoError(t, err)
	second, err := NewClusterer(params).Cluster(store)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// a fixed random seed is equally reproducible
	r1, err := NewClusterer(Params{K: 4, RandSeed: 123}).Cluster(store)
	require.NoError(t, err)
	r2, err := NewClusterer(Params{K: 4, RandSeed: 123}).Cluster(store)
	require.NoError(t, err)
	assert.Equal(t, r1, r2)
}

func TestCluster_ConvergedStateIsStable(t *testing.T) {
	t.Parallel()

	store := NewPointStore([]Point{{0, 0}, {1, 0}, {2, 0}, {10, 0}, {11, 0}, {12, 0}, {5, 5}})
	res, err := NewClusterer(Params{K: 3, Seeds: FixedSeeds{0, 3, 6}}).Cluster(store)
	require.NoError(t, err)
	require.Equal(t, StateConverged, res.State)

	labels := append([]int(nil), res.Labels...)
	centroids := append([]Point(nil), res.Centroids...)
	assert.Equal(t, 0, Assign(store, centroids, labels))
	Update(store, labels, centroids)
	assert.Equal(t, res.Centroids, centroids)
}

func TestCluster_MaxIterationsReached(t *testing.T) {
	t.Parallel()

	store := NewPointStore([]Point{{0, 0}, {0, 1}, {10, 0}, {10, 1}})
	c := NewClusterer(Params{K: 2, Seeds: FixedSeeds{0, 2}})
	c.maxRounds = 1

	res, err := c.Cluster(store)
	require.NoError(t, err)
	assert.Equal(t, StateMaxIterationsReached, res.State)
	assert.False(t, res.Converged())
	assert.Equal(t, 1, res.Rounds)
	assert.Equal(t, 1, res.Iterations)
	assert.Equal(t, []int{0, 0, 1, 1}, res.Labels)
	assert.Equal(t, "maximum iterations reached without convergence", res.Diagnostic())
}

func TestCluster_Errors(t *testing.T) {
	t.Parallel()

	store := NewPointStore([]Point{{0, 0}, {1, 1}, {2, 2}})
	boom := errors.New("stdin closed")

	tests := []struct {
		name   string
		store  *PointStore
		params Params
		want   error
	}{
		{"k zero", store, Params{K: 0}, ErrInvalidClusterCount},
		{"k above n", store, Params{K: 4}, ErrInvalidClusterCount},
		{"no points", NewPointStore(nil), Params{K: 1}, ErrInvalidClusterCount},
		{"seed out of range", store, Params{K: 2, Seeds: FixedSeeds{0, 3}}, ErrIndexOutOfRange},
		{"seed count", store, Params{K: 2, Seeds: FixedSeeds{0}}, ErrSeedCount},
		{"provider failure", store, Params{K: 2, Seeds: failingSeeds{boom}}, boom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := NewClusterer(tt.params).Cluster(tt.store)
			assert.Nil(t, res)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestClusterer_Params(t *testing.T) {
	c := NewClusterer(Params{K: 2})
	assert.Equal(t, 2, c.GetParams().K)

	c.SetParams(Params{K: 5, RandSeed: 9})
	assert.Equal(t, Params{K: 5, RandSeed: 9}, c.GetParams())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "running", StateRunning.String())
	assert.Equal(t, "converged", StateConverged.String())
	assert.Equal(t, "max_iterations_reached", StateMaxIterationsReached.String())
	assert.Equal(t, "State(7)", State(7).String())
}

func TestLabeledPoints(t *testing.T) {
	store := NewPointStore([]Point{{0, 0}, {0, 1}, {10, 0}, {10, 1}})
	res, err := NewClusterer(Params{K: 2, Seeds: FixedSeeds{0, 2}}).Cluster(store)
	require.NoError(t, err)

	got := res.LabeledPoints(store)
	want := []LabeledPoint{
		{Point: Point{0, 0}, Label: 0},
		{Point: Point{0, 1}, Label: 0},
		{Point: Point{10, 0}, Label: 1},
		{Point: Point{10, 1}, Label: 1},
	}
	assert.Equal(t, want, got)
}

func TestPointStore_Owned(t *testing.T) {
	pts := []Point{{1, 2}, {3, 4}}
	store := NewPointStore(pts)
	pts[0] = Point{99, 99}
	assert.Equal(t, Point{1, 2}, store.At(0))

	out := store.Points()
	out[1] = Point{0, 0}
	assert.Equal(t, Point{3, 4}, store.At(1))
	assert.Equal(t, 0, (*PointStore)(nil).Len())
}
