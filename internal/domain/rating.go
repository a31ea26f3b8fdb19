package domain

import (
	"time"

	"github.com/google/uuid"
)

// RatingRecord is one player's rating change produced by one game. Records
// are derived data: the game log is the source of truth and every record is
// reproducible by replaying it.
type RatingRecord struct {
	GameID       uuid.UUID
	PlayerID     uuid.UUID
	RatingBefore float64
	RatingAfter  float64
	Delta        float64
	Win          bool
	Probationary bool
}

// TimeSeriesPoint holds every participating player's end-of-day rating and
// aggregate delta for one calendar day. Players without games that day are
// absent from the maps.
type TimeSeriesPoint struct {
	Date    time.Time
	Ratings map[uuid.UUID]float64
	Deltas  map[uuid.UUID]float64
}

// AnnotatedSlot is one participant of a historical game together with the
// rating movement the game caused for them.
type AnnotatedSlot struct {
	Player Player
	Before float64
	After  float64
	Delta  float64
}

type AnnotatedGame struct {
	Game          Game
	YellowOffense AnnotatedSlot
	YellowDefense AnnotatedSlot
	BlackOffense  AnnotatedSlot
	BlackDefense  AnnotatedSlot
}

// Season is an isolated rating namespace with its own game log and history.
type Season struct {
	ID           uuid.UUID
	Name         string
	RatingMethod string
	Active       bool
	StartedAt    time.Time
}
