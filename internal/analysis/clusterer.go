package analysis

import (
	"sort"

	"github.com/brandproof/brandproof/internal/colorx"
)

// Clusterer partitions pixel colors into at most k representative colors,
// most visually significant first. It is a capability chosen at configuration
// time, not an exception-driven fallback.
type Clusterer interface {
	Cluster(pixels []colorx.RGBA, k int) []colorx.RGBA
}

// KMeansClusterer groups pixels by iterative centroid refinement. Centroids
// are seeded from the image's distinct colors at evenly spaced positions, so
// the result is fully deterministic for fixed input.
type KMeansClusterer struct {
	// MaxIterations bounds the refinement loop. Zero means 10.
	MaxIterations int
}

func (c KMeansClusterer) Cluster(pixels []colorx.RGBA, k int) []colorx.RGBA {
	if len(pixels) == 0 || k <= 0 {
		return nil
	}
	iterations := c.MaxIterations
	if iterations <= 0 {
		iterations = 10
	}

	distinct := distinctColors(pixels)
	if k > len(distinct) {
		k = len(distinct)
	}

	// Evenly spaced distinct colors make a stable starting palette.
	centroids := make([]colorx.RGBA, k)
	for i := range centroids {
		centroids[i] = distinct[i*len(distinct)/k]
	}

	assign := make([]int, len(pixels))
	for iter := 0; iter < iterations; iter++ {
		changed := false
		for i, p := range pixels {
			best, bestDist := 0, colorx.Distance(p, centroids[0])
			for j := 1; j < len(centroids); j++ {
				if d := colorx.Distance(p, centroids[j]); d < bestDist {
					best, bestDist = j, d
				}
			}
			if assign[i] != best {
				assign[i] = best
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}

		members := make([][]colorx.RGBA, k)
		for i, a := range assign {
			members[a] = append(members[a], pixels[i])
		}
		for j := range centroids {
			if len(members[j]) > 0 {
				centroids[j] = colorx.WeightedMean(members[j], nil)
			}
		}
	}

	// Largest cluster first.
	counts := make([]int, k)
	for _, a := range assign {
		counts[a]++
	}
	order := make([]int, k)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return counts[order[a]] > counts[order[b]]
	})

	result := make([]colorx.RGBA, k)
	for i, idx := range order {
		result[i] = centroids[idx]
	}
	return result
}

// FrequencyClusterer returns the k most frequent exact pixel colors. It
// finds dominant values rather than centroids, which may disagree slightly
// with k-means on gradient-heavy images; both satisfy the same contract.
type FrequencyClusterer struct{}

func (FrequencyClusterer) Cluster(pixels []colorx.RGBA, k int) []colorx.RGBA {
	if len(pixels) == 0 || k <= 0 {
		return nil
	}

	counts := make(map[colorx.RGBA]int, len(pixels))
	var order []colorx.RGBA // first-encountered order for stable ties
	for _, p := range pixels {
		if counts[p] == 0 {
			order = append(order, p)
		}
		counts[p]++
	}

	sort.SliceStable(order, func(a, b int) bool {
		return counts[order[a]] > counts[order[b]]
	})
	if k > len(order) {
		k = len(order)
	}
	return order[:k]
}

// distinctColors returns the distinct colors of a pixel set in
// first-encountered order.
func distinctColors(pixels []colorx.RGBA) []colorx.RGBA {
	seen := make(map[colorx.RGBA]struct{}, len(pixels))
	var distinct []colorx.RGBA
	for _, p := range pixels {
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			distinct = append(distinct, p)
		}
	}
	return distinct
}
