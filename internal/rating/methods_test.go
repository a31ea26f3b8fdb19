package rating

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSigmoidBounded(t *testing.T) {
	// Even absurd blowouts stay inside (0, 40).
	for _, tt := range []struct {
		scoreDiff  float64
		ratingDiff float64
		winScore   int
	}{
		{1, 0, 10},
		{10, 0, 10},
		{10, -400, 10},
		{100, -1000, 100},
		{1, 1000, 10},
	} {
		d := Sigmoid(tt.scoreDiff, tt.ratingDiff, tt.winScore)
		assert.Greater(t, d, 0.0, "scoreDiff=%v ratingDiff=%v", tt.scoreDiff, tt.ratingDiff)
		assert.Less(t, d, 40.0, "scoreDiff=%v ratingDiff=%v", tt.scoreDiff, tt.ratingDiff)
	}
}

func TestSigmoidUnderdogWinsMore(t *testing.T) {
	favorite := Sigmoid(5, 100, 10)
	equal := Sigmoid(5, 0, 10)
	underdog := Sigmoid(5, -100, 10)
	assert.Greater(t, underdog, equal)
	assert.Greater(t, equal, favorite)
}

func TestSigmoidGrowsWithMargin(t *testing.T) {
	assert.Greater(t, Sigmoid(9, 0, 10), Sigmoid(1, 0, 10))
}

func TestSquare(t *testing.T) {
	assert.Equal(t, 25.0, Square(5, 0, 10))
	assert.Equal(t, 1.0, Square(1, 300, 10))
}

func TestFlat(t *testing.T) {
	assert.Equal(t, 10.0, Flat(5, 0, 10))
	// Rating advantage shrinks the transfer.
	assert.Less(t, Flat(5, 100, 10), 10.0)
	assert.Greater(t, Flat(5, -100, 10), 10.0)
}
