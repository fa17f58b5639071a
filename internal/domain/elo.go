package domain

import "math"

const (
	KFactor       = 32.0
	InitialRating = 1500.0
)

// ExpectedScore is the probability-like score A is expected to take off B.
func ExpectedScore(ratingA, ratingB float64) float64 {
	return 1.0 / (1.0 + math.Pow(10.0, (ratingB-ratingA)/400.0))
}

// UpdateElo returns both new ratings after one game.
// score is A's result: 1.0 for a win, 0.5 for a draw, and 0.0 for a loss.
func UpdateElo(ratingA, ratingB, score float64) (float64, float64) {
	delta := KFactor * (score - ExpectedScore(ratingA, ratingB))
	newA, newB := ratingA+delta, ratingB-delta
	if newA < 0 {
		newA = 0
	}
	if newB < 0 {
		newB = 0
	}
	return newA, newB
}
