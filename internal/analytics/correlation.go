package analytics

import (
	"fmt"
	"math"
)

// Minimum populated buckets for a Pearson estimate; below this a
// first-vs-last trend read is used instead.
const minBucketsForPearson = 3

// Insight produces a qualitative description of how match scores relate
// to introduction success across score buckets. The trend fallback is a
// directional read only, not a statistical claim.
func Insight(scoreBuckets []Bucket) string {
	var xs, ys []float64
	for _, b := range scoreBuckets {
		if b.Total == 0 {
			continue
		}
		xs = append(xs, b.AvgScore)
		ys = append(ys, b.SuccessRate)
	}

	if len(xs) == 0 {
		return "Not enough introduction history to relate match scores to outcomes."
	}

	if len(xs) >= minBucketsForPearson {
		if r, ok := pearson(xs, ys); ok {
			return describeCorrelation(r)
		}
	}

	// Sign-only heuristic: compare the lowest and highest populated bands
	first, last := ys[0], ys[len(ys)-1]
	switch {
	case last > first:
		return "Directional read: higher-scored introductions succeed more often (insufficient data for correlation)."
	case last < first:
		return "Directional read: higher-scored introductions succeed less often (insufficient data for correlation)."
	default:
		return "Directional read: success rate is flat across score bands (insufficient data for correlation)."
	}
}

func describeCorrelation(r float64) string {
	strength := "weak"
	switch {
	case math.Abs(r) >= 0.7:
		strength = "strong"
	case math.Abs(r) >= 0.4:
		strength = "moderate"
	}

	direction := "positive"
	if r < 0 {
		direction = "negative"
	}

	return fmt.Sprintf("Match scores show a %s %s correlation with introduction success (r=%.2f).", strength, direction, r)
}

// pearson computes the Pearson correlation coefficient. Returns false
// when either series has zero variance.
func pearson(xs, ys []float64) (float64, bool) {
	n := float64(len(xs))

	var sumX, sumY float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX, meanY := sumX/n, sumY/n

	var cov, varX, varY float64
	for i := range xs {
		dx, dy := xs[i]-meanX, ys[i]-meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}

	if varX == 0 || varY == 0 {
		return 0, false
	}

	return cov / math.Sqrt(varX*varY), true
}
