package rating

import "math"

// DeltaFunc computes the rating points transferred from the losing team to
// the winning team. scoreDiff is the winner's margin (always > 0),
// ratingDiff is winner team rating minus loser team rating, winScore is the
// winning side's final score.
type DeltaFunc func(scoreDiff, ratingDiff float64, winScore int) float64

const (
	MethodSigmoid = "sigmoid"
	MethodSquare  = "square"
	MethodFlat    = "flat"
)

// Sigmoid scales the score differential by how unexpected the result was and
// squashes the outcome into (0, 40), so blowout scores cannot produce
// unbounded swings.
func Sigmoid(scoreDiff, ratingDiff float64, winScore int) float64 {
	expectedScoreDiff := (2.0/(1.0+math.Exp(-ratingDiff/40.0)) - 1.0) * float64(winScore)
	errValue := scoreDiff - expectedScoreDiff

	// Scored more than expected -> large coefficient, less -> small.
	errCoef := 1.5/(1.0+math.Exp(-errValue)) + 0.25
	// Favorite won -> small coefficient, underdog won -> large.
	ratingDiffCoef := 1.5/(1.0+math.Exp(ratingDiff/40.0)) + 0.25

	delta := math.Pow(scoreDiff, 1.3) * errCoef * ratingDiffCoef
	return (40.0/(1.0+math.Exp(-delta/30.0)) - 20.0) * 2.0
}

// Square is the naive policy: the squared score differential, blind to the
// teams' ratings.
func Square(scoreDiff, _ float64, _ int) float64 {
	return scoreDiff * scoreDiff
}

const flatDelta = 20.0

// Flat transfers a fixed number of points scaled down as the winner's rating
// advantage grows.
func Flat(_, ratingDiff float64, _ int) float64 {
	return flatDelta / (1.0 + math.Exp(ratingDiff/40.0))
}
