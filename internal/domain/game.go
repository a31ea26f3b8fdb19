package domain

import (
	"fmt"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"
)

// Game is one 2v2 foosball match. Day and Seq together form the position of
// the game in the season's log: games are ordered by calendar day, and games
// sharing a day are ordered by Seq.
type Game struct {
	ID       uuid.UUID
	SeasonID uuid.UUID
	Day      time.Time
	Seq      int

	YellowOffense uuid.UUID
	YellowDefense uuid.UUID
	BlackOffense  uuid.UUID
	BlackDefense  uuid.UUID
	YellowScore   int
	BlackScore    int

	CreatedAt time.Time
}

// Side is one team of a game with its final score.
type Side struct {
	Offense uuid.UUID
	Defense uuid.UUID
	Score   int
}

func (g Game) Yellow() Side {
	return Side{Offense: g.YellowOffense, Defense: g.YellowDefense, Score: g.YellowScore}
}

func (g Game) Black() Side {
	return Side{Offense: g.BlackOffense, Defense: g.BlackDefense, Score: g.BlackScore}
}

// Winner returns the winning and losing sides. Ties are rejected by
// Validate, so the winner is always defined.
func (g Game) Winner() (win Side, lose Side) {
	if g.YellowScore > g.BlackScore {
		return g.Yellow(), g.Black()
	}
	return g.Black(), g.Yellow()
}

// Players returns the four participants in slot order: yellow offense,
// yellow defense, black offense, black defense.
func (g Game) Players() [4]uuid.UUID {
	return [4]uuid.UUID{g.YellowOffense, g.YellowDefense, g.BlackOffense, g.BlackDefense}
}

func (g Game) Validate() error {
	players := mapset.NewSet[uuid.UUID]()
	for _, id := range g.Players() {
		if id == uuid.Nil {
			return fmt.Errorf("%w: all four player slots must be set", ErrValidation)
		}
		players.Add(id)
	}
	if players.Cardinality() != 4 {
		return fmt.Errorf("%w: players must be distinct", ErrValidation)
	}
	if g.YellowScore < 0 || g.BlackScore < 0 {
		return fmt.Errorf("%w: scores must be non-negative", ErrValidation)
	}
	if g.YellowScore == 0 && g.BlackScore == 0 {
		return fmt.Errorf("%w: game has no result", ErrValidation)
	}
	if g.YellowScore == g.BlackScore {
		return fmt.Errorf("%w: tie games are not allowed", ErrValidation)
	}
	if g.Day.IsZero() {
		return fmt.Errorf("%w: game date must be set", ErrValidation)
	}
	return nil
}

// TruncateDay strips a timestamp down to its calendar day in UTC.
func TruncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
