package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestWinner(t *testing.T) {
	g := Game{
		YellowOffense: uuid.New(),
		YellowDefense: uuid.New(),
		BlackOffense:  uuid.New(),
		BlackDefense:  uuid.New(),
		YellowScore:   10,
		BlackScore:    4,
	}
	win, lose := g.Winner()
	assert.Equal(t, g.YellowOffense, win.Offense)
	assert.Equal(t, 10, win.Score)
	assert.Equal(t, g.BlackOffense, lose.Offense)

	g.YellowScore, g.BlackScore = 4, 10
	win, lose = g.Winner()
	assert.Equal(t, g.BlackOffense, win.Offense)
	assert.Equal(t, g.YellowOffense, lose.Offense)
}

func TestTruncateDay(t *testing.T) {
	moscow := time.FixedZone("MSK", 3*60*60)
	in := time.Date(2024, 3, 1, 23, 59, 0, 0, moscow)
	got := TruncateDay(in)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), got)
}
