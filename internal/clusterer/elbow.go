package clusterer

// selectK chooses the number of clusters for n feature vectors, capped at
// maxClusters. For each candidate k the partitioner runs with its fixed seed
// and the final partition cost is recorded; the chosen k is the one whose
// step to k+1 yields the largest cost improvement (the elbow), smallest k on
// ties.
func selectK(points [][]float64, maxClusters int) int {
	n := len(points)
	if n < 3 {
		return 1
	}
	upper := maxClusters
	if n-1 < upper {
		upper = n - 1
	}
	if upper < 2 {
		return 1
	}
	if upper == 2 {
		return 2
	}

	costs := make([]float64, 0, upper-1)
	for k := 2; k <= upper; k++ {
		_, cost := partition(points, k)
		costs = append(costs, cost)
	}

	bestK, bestDiff := 2, -1.0
	for i := 0; i+1 < len(costs); i++ {
		if diff := costs[i] - costs[i+1]; diff > bestDiff {
			bestDiff = diff
			bestK = i + 2
		}
	}
	return bestK
}
