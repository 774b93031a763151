package dedupe

import (
	"math"
	"time"
)

// Cluster is a transient grouping of report indices. Seed is the lowest
// index and serves as the cluster's representative.
type Cluster struct {
	Seed    int
	Members []int
}

// buildClusters runs the first clustering pass. Indices are scanned in
// order; each unassigned index opens a cluster and later unassigned
// indices join when they are similar enough to the SEED and published
// within the time window. Membership is decided only against the seed,
// never against other members — deliberate single-linkage from the
// representative, not transitive closure.
func buildClusters(sim [][]float64, published []time.Time, threshold float64, windowDays int) []Cluster {
	n := len(sim)
	assigned := make([]bool, n)
	var clusters []Cluster

	for i := 0; i < n; i++ {
		if assigned[i] {
			continue
		}
		cluster := Cluster{Seed: i, Members: []int{i}}
		assigned[i] = true

		for j := i + 1; j < n; j++ {
			if assigned[j] {
				continue
			}
			if sim[i][j] < threshold {
				continue
			}
			if dayDiff(published[i], published[j]) > windowDays {
				continue
			}
			cluster.Members = append(cluster.Members, j)
			assigned[j] = true
		}

		clusters = append(clusters, cluster)
	}
	return clusters
}

// dayDiff is the absolute whole-day difference between two timestamps,
// flooring the signed difference first.
func dayDiff(a, b time.Time) int {
	days := int(math.Floor(b.Sub(a).Hours() / 24))
	if days < 0 {
		return -days
	}
	return days
}
