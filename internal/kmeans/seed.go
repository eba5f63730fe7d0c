package kmeans

import (
	"fmt"
	"math/rand"
)

// SeedProvider supplies optional initial centroid indices.
// Returning a nil slice (and nil error) asks for random seeding.
type SeedProvider interface {
	SeedIndices(n, k int) ([]int, error)
}

// FixedSeeds is a SeedProvider returning a literal list of point indices.
// A nil FixedSeeds selects random seeding.
type FixedSeeds []int

// SeedIndices returns a copy of the fixed indices.
func (f FixedSeeds) SeedIndices(n, k int) ([]int, error) {
	if f == nil {
		return nil, nil
	}
	out := make([]int, len(f))
	copy(out, f)
	return out, nil
}

// validateClusterCount checks 1 <= k <= n.
func validateClusterCount(n, k int) error {
	if k <= 0 || k > n {
		return fmt.Errorf("%w: %d (must be > 0 and <= number of points %d)", ErrInvalidClusterCount, k, n)
	}
	return nil
}

// RandomIndices draws k distinct indices from [0, n-1] by rejection sampling:
// a draw already taken is discarded and drawn again. The caller must ensure
// 1 <= k <= n so that the loop terminates.
func RandomIndices(n, k int, rng *rand.Rand) []int {
	indices := make([]int, 0, k)
	taken := make(map[int]struct{}, k)
	for len(indices) < k {
		idx := rng.Intn(n)
		if _, dup := taken[idx]; dup {
			continue
		}
		taken[idx] = struct{}{}
		indices = append(indices, idx)
	}
	return indices
}

// SeedCentroids produces the K initial centroid positions for store.
//
// When indices is non-nil each entry must lie in [0, N-1]; duplicates are
// accepted and produce duplicate initial centroids. When indices is nil, K
// distinct indices are drawn from rng. The indices actually used are returned
// alongside the centroids.
func SeedCentroids(store *PointStore, k int, indices []int, rng *rand.Rand) ([]Point, []int, error) {
	n := store.Len()
	if err := validateClusterCount(n, k); err != nil {
		return nil, nil, err
	}

	if indices == nil {
		indices = RandomIndices(n, k, rng)
	} else {
		if len(indices) != k {
			return nil, nil, fmt.Errorf("%w: got %d, want %d", ErrSeedCount, len(indices), k)
		}
		for i, idx := range indices {
			if idx < 0 || idx >= n {
				return nil, nil, fmt.Errorf("%w: seed %d is %d (valid 0..%d)", ErrIndexOutOfRange, i, idx, n-1)
			}
		}
	}

	centroids := make([]Point, k)
	for i, idx := range indices {
		centroids[i] = store.At(idx)
	}
	return centroids, indices, nil
}
