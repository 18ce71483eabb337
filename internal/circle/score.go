// Package circle implements CIRCLE.EXE, a test of how round a freehand
// stroke is.
package circle

import "math"

// MinSamples is the fewest points a stroke needs to be scored.
const MinSamples = 20

// Point is one pointer sample.
type Point struct {
	X, Y float64
}

// Fit describes the circle fitted to a stroke.
type Fit struct {
	Center Point
	// Radius is the mean distance from the centroid.
	Radius float64
	// StdDev is the population standard deviation of those distances.
	StdDev float64
	// Raw is the unrounded score.
	Raw float64
}

// Score rates a stroke from 0 to 100: the centroid is taken as the center
// and the score drops by 4 points per percent of relative radial deviation.
// Strokes with fewer than MinSamples points, or no spread, score 0.
func Score(points []Point) (int, Fit) {
	if len(points) < MinSamples {
		return 0, Fit{}
	}
	n := float64(len(points))
	var c Point
	for _, p := range points {
		c.X += p.X
		c.Y += p.Y
	}
	c.X /= n
	c.Y /= n

	dist := make([]float64, len(points))
	var mean float64
	for i, p := range points {
		dist[i] = math.Hypot(p.X-c.X, p.Y-c.Y)
		mean += dist[i]
	}
	mean /= n

	var variance float64
	for _, d := range dist {
		variance += (d - mean) * (d - mean)
	}
	std := math.Sqrt(variance / n)

	fit := Fit{Center: c, Radius: mean, StdDev: std}
	if mean == 0 {
		return 0, fit
	}
	fit.Raw = max(0, 100-(std/mean)*400)
	return int(math.Round(fit.Raw)), fit
}
