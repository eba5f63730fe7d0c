package kmeans

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/banshee-data/kmeans/internal/monitoring"
)

// MaxIterations is the number of completed Assignment+Update rounds after
// which a run stops even if labels are still changing.
const MaxIterations = 120

// State is the convergence controller state.
type State int

const (
	StateRunning State = iota
	StateConverged
	StateMaxIterationsReached
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateConverged:
		return "converged"
	case StateMaxIterationsReached:
		return "max_iterations_reached"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Params configures a Clusterer.
type Params struct {
	// K is the number of clusters; it must satisfy 1 <= K <= number of points.
	K int
	// Seeds supplies initial centroid indices. nil means random seeding.
	Seeds SeedProvider
	// RandSeed seeds the random index sampler. Zero uses the current time.
	RandSeed int64
}

// Result is the final state of one clustering run.
type Result struct {
	State State
	// Iterations is the iteration counter of the terminal state: the number of
	// rounds that changed at least one label before the run stopped.
	Iterations int
	// Rounds is the number of Assignment+Update passes executed.
	Rounds int
	// RoundChanges holds the label change count of every round, in order.
	RoundChanges []int

	SeedIndices []int
	Labels      []int
	Centroids   []Point
}

// Converged reports whether the run stopped on a round without label changes.
func (r *Result) Converged() bool { return r.State == StateConverged }

// Diagnostic returns the human readable outcome of the run.
func (r *Result) Diagnostic() string {
	if r.State == StateConverged {
		return fmt.Sprintf("converged after %d iterations", r.Iterations)
	}
	return "maximum iterations reached without convergence"
}

// Clusterer runs Lloyd's k-means over a PointStore.
// It keeps no state between Cluster calls.
type Clusterer struct {
	params    Params
	maxRounds int
}

// NewClusterer creates a clusterer with the given parameters.
func NewClusterer(params Params) *Clusterer {
	return &Clusterer{
		params:    params,
		maxRounds: MaxIterations,
	}
}

// GetParams returns the current clustering parameters.
func (c *Clusterer) GetParams() Params {
	return c.params
}

// SetParams updates the clustering parameters.
func (c *Clusterer) SetParams(params Params) {
	c.params = params
}

func (c *Clusterer) newRand() *rand.Rand {
	seed := c.params.RandSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Cluster seeds K centroids and alternates Assign and Update until a round
// changes no label or the round cap is reached. Configuration errors are
// returned before any round runs.
func (c *Clusterer) Cluster(store *PointStore) (*Result, error) {
	n := store.Len()
	k := c.params.K
	if err := validateClusterCount(n, k); err != nil {
		return nil, err
	}

	var supplied []int
	if c.params.Seeds != nil {
		var err error
		supplied, err = c.params.Seeds.SeedIndices(n, k)
		if err != nil {
			return nil, fmt.Errorf("failed to obtain seed indices: %w", err)
		}
	}

	centroids, seeds, err := SeedCentroids(store, k, supplied, c.newRand())
	if err != nil {
		return nil, err
	}
	monitoring.Debugf("kmeans: seeded %d centroids from indices %v", k, seeds)

	labels := make([]int, n)
	for i := range labels {
		labels[i] = Unassigned
	}

	res := &Result{
		State:        StateRunning,
		SeedIndices:  seeds,
		RoundChanges: make([]int, 0, 8),
	}

	for iteration := 0; res.State == StateRunning; iteration++ {
		changes := Assign(store, centroids, labels)
		Update(store, labels, centroids)
		res.Rounds++
		res.RoundChanges = append(res.RoundChanges, changes)
		monitoring.Debugf("kmeans: round %d changed %d labels", res.Rounds, changes)

		switch {
		case changes == 0:
			res.State = StateConverged
			res.Iterations = iteration
		case res.Rounds >= c.maxRounds:
			res.State = StateMaxIterationsReached
			res.Iterations = res.Rounds
		}
	}

	res.Labels = labels
	res.Centroids = centroids
	return res, nil
}
