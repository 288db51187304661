package clusterer

import (
	"math"
	"math/rand"
)

const (
	kmeansSeed     = 42
	kmeansRestarts = 10
	kmeansMaxIter  = 100
)

// partition assigns every point to one of k groups by Lloyd's algorithm with
// a fixed seed and kmeansRestarts re-initialisations, keeping the best run by
// inertia (sum of squared distances to group centroids). Every point receives
// a label.
func partition(points [][]float64, k int) ([]int, float64) {
	n := len(points)
	if k <= 1 || n == 0 {
		return make([]int, n), inertiaOf(points, make([]int, n), 1)
	}
	if k >= n {
		labels := make([]int, n)
		for i := range labels {
			labels[i] = i
		}
		return labels, 0
	}

	rng := rand.New(rand.NewSource(kmeansSeed))
	bestInertia := math.Inf(1)
	var bestLabels []int
	for r := 0; r < kmeansRestarts; r++ {
		labels, inertia := lloyd(points, k, rng)
		if inertia < bestInertia {
			bestInertia = inertia
			bestLabels = labels
		}
	}
	return bestLabels, bestInertia
}

func lloyd(points [][]float64, k int, rng *rand.Rand) ([]int, float64) {
	n := len(points)
	dim := len(points[0])

	// Initial centroids: k distinct points.
	centroids := make([][]float64, k)
	for i, idx := range rng.Perm(n)[:k] {
		centroids[i] = append([]float64(nil), points[idx]...)
	}

	labels := make([]int, n)
	for iter := 0; iter < kmeansMaxIter; iter++ {
		changed := false
		for i, p := range points {
			best := nearestCentroid(p, centroids)
			if best != labels[i] {
				labels[i] = best
				changed = true
			}
		}
		if iter > 0 && !changed {
			break
		}

		// Recompute centroids.
		counts := make([]int, k)
		next := make([][]float64, k)
		for c := range next {
			next[c] = make([]float64, dim)
		}
		for i, p := range points {
			c := labels[i]
			counts[c]++
			for d, x := range p {
				next[c][d] += x
			}
		}
		for c := range next {
			if counts[c] == 0 {
				// Repair an empty cluster with the point farthest from its
				// current centroid.
				far := farthestPoint(points, labels, centroids)
				labels[far] = c
				next[c] = append([]float64(nil), points[far]...)
				counts[c] = 1
				continue
			}
			for d := range next[c] {
				next[c][d] /= float64(counts[c])
			}
		}
		centroids = next
	}
	return labels, inertiaFromCentroids(points, labels, centroids)
}

func nearestCentroid(p []float64, centroids [][]float64) int {
	best, bestDist := 0, math.Inf(1)
	for c, centroid := range centroids {
		if d := squaredDistance(p, centroid); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func farthestPoint(points [][]float64, labels []int, centroids [][]float64) int {
	far, farDist := 0, -1.0
	for i, p := range points {
		if d := squaredDistance(p, centroids[labels[i]]); d > farDist {
			far, farDist = i, d
		}
	}
	return far
}

func squaredDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return sum
}

// inertiaOf computes partition cost from labels alone, recomputing centroids.
func inertiaOf(points [][]float64, labels []int, k int) float64 {
	if len(points) == 0 {
		return 0
	}
	dim := len(points[0])
	sums := make([][]float64, k)
	counts := make([]int, k)
	for c := range sums {
		sums[c] = make([]float64, dim)
	}
	for i, p := range points {
		c := labels[i]
		counts[c]++
		for d, x := range p {
			sums[c][d] += x
		}
	}
	for c := range sums {
		if counts[c] == 0 {
			continue
		}
		for d := range sums[c] {
			sums[c][d] /= float64(counts[c])
		}
	}
	return inertiaFromCentroids(points, labels, sums)
}

func inertiaFromCentroids(points [][]float64, labels []int, centroids [][]float64) float64 {
	var total float64
	for i, p := range points {
		total += squaredDistance(p, centroids[labels[i]])
	}
	return total
}
