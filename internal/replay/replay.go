// Package replay rebuilds the derived rating history after the game log
// mutates. Records before the earliest stale position are reused as-is; the
// per-player state is snapshotted at that position and the rest of the log
// is fed through the engine game by game.
package replay

import (
	"github.com/google/uuid"

	"github.com/goserg/foosrating/internal/domain"
	"github.com/goserg/foosrating/internal/rating"
)

// Rebuild returns the full replacement history for games, which must be in
// log order. history is the current record list; from is the earliest stale
// log position. A corrupt or incomplete prefix forces a full replay.
func Rebuild(games []domain.Game, history []domain.RatingRecord, from int, eng *rating.Engine) ([]domain.RatingRecord, error) {
	if from < 0 {
		from = 0
	}
	if from > len(games) {
		from = len(games)
	}

	byGame := make(map[uuid.UUID][]domain.RatingRecord, len(history)/4)
	for _, rec := range history {
		byGame[rec.GameID] = append(byGame[rec.GameID], rec)
	}
	for i := 0; i < from; i++ {
		if len(byGame[games[i].ID]) != 4 {
			from = 0
			break
		}
	}

	records := make([]domain.RatingRecord, 0, len(games)*4)
	states := make(map[uuid.UUID]rating.State)
	for i := 0; i < from; i++ {
		for _, rec := range byGame[games[i].ID] {
			states[rec.PlayerID] = rating.State{
				Rating: rec.RatingAfter,
				Games:  states[rec.PlayerID].Games + 1,
			}
			records = append(records, rec)
		}
	}
	for i := from; i < len(games); i++ {
		recs, after, err := eng.Apply(games[i], states)
		if err != nil {
			return nil, err
		}
		records = append(records, recs...)
		for id, st := range after {
			states[id] = st
		}
	}
	return records, nil
}
