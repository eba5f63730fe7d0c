// Package kmeans implements Lloyd's k-means clustering for 2-D points.
//
// A run seeds K centroids (from caller-supplied point indices or by sampling
// distinct indices at random), then alternates an assignment step (each point
// takes the label of its nearest centroid, lowest index on ties) and an update
// step (each centroid moves to the mean of its points, empty clusters stay
// put) until no label changes or MaxIterations rounds have completed.
package kmeans
