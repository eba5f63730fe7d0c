package kmeans

import "errors"

// Configuration errors. All of them abort a run before any clustering work.
var (
	// ErrInvalidClusterCount is returned when K <= 0 or K > number of points.
	ErrInvalidClusterCount = errors.New("invalid number of clusters")
	// ErrIndexOutOfRange is returned when a supplied seed index is outside [0, N-1].
	ErrIndexOutOfRange = errors.New("seed index out of range")
	// ErrSeedCount is returned when the number of supplied seed indices differs from K.
	ErrSeedCount = errors.New("wrong number of seed indices")
)
