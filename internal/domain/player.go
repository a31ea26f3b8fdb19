package domain

import (
	"time"

	"github.com/google/uuid"
)

type Player struct {
	ID           uuid.UUID
	Name         string
	Color        string
	RegisteredAt time.Time
}

// PlayerRating is a leaderboard row derived from the rating history.
type PlayerRating struct {
	Player       Player
	Rating       float64
	GamesPlayed  int
	Wins         int
	WinRate      float64
	Probationary bool
	Rank         int
}
