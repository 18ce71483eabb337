package circle

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// ring samples n points around (cx, cy), alternating between radius r+d
// and r-d.
func ring(n int, cx, cy, r, d float64) []Point {
	pts := make([]Point, n)
	for i := range pts {
		rad := r + d
		if i%2 == 1 {
			rad = r - d
		}
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = Point{X: cx + rad*math.Cos(a), Y: cy + rad*math.Sin(a)}
	}
	return pts
}

func TestScorePerfectCircle(t *testing.T) {
	score, fit := Score(ring(64, 40, 12, 10, 0))
	assert.Equal(t, 100, score)
	assert.InDelta(t, 40, fit.Center.X, 1e-9)
	assert.InDelta(t, 12, fit.Center.Y, 1e-9)
	assert.InDelta(t, 10, fit.Radius, 1e-9)
}

func TestScoreTooFewSamples(t *testing.T) {
	score, _ := Score(ring(MinSamples-1, 0, 0, 10, 0))
	assert.Equal(t, 0, score)
	score, _ = Score(nil)
	assert.Equal(t, 0, score)
}

func TestScoreDegenerate(t *testing.T) {
	pts := make([]Point, 30)
	for i := range pts {
		pts[i] = Point{X: 5, Y: 5}
	}
	score, fit := Score(pts)
	assert.Equal(t, 0, score)
	assert.Zero(t, fit.Radius)
}

func TestScoreKnownDeviation(t *testing.T) {
	// std/mean = 0.05 costs 20 points
	score, fit := Score(ring(64, 0, 0, 100, 5))
	assert.Equal(t, 80, score)
	assert.InDelta(t, 5, fit.StdDev, 1e-9)

	score, _ = Score(ring(64, 0, 0, 100, 40))
	assert.Equal(t, 0, score, "clamped at zero")
}

func TestScoreNonIncreasingInVariance(t *testing.T) {
	prev := math.MaxInt
	for d := 0.0; d <= 30; d += 0.5 {
		score, _ := Score(ring(64, 0, 0, 100, d))
		assert.LessOrEqual(t, score, prev, "deviation %v", d)
		prev = score
	}
}
