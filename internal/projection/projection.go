// Package projection derives read-side views from the game log and its
// rating history. Everything here is a pure function recomputed on demand;
// the only state transition in the system is a game-log mutation.
package projection

import (
	"sort"

	"github.com/google/uuid"

	"github.com/goserg/foosrating/internal/domain"
)

type playerTally struct {
	rating       float64
	games        int
	wins         int
	probationary bool
}

// Leaderboard ranks players by their latest rating. Probationary players are
// partitioned to the bottom tier; both tiers stay rating-sorted and the sort
// is stable. Players without a single game rank as probationary at the base
// rating.
func Leaderboard(players []domain.Player, history []domain.RatingRecord, baseRating float64) []domain.PlayerRating {
	tallies := make(map[uuid.UUID]*playerTally, len(players))
	for _, rec := range history {
		t, ok := tallies[rec.PlayerID]
		if !ok {
			t = &playerTally{}
			tallies[rec.PlayerID] = t
		}
		t.rating = rec.RatingAfter
		t.games++
		if rec.Win {
			t.wins++
		}
		t.probationary = rec.Probationary
	}

	rows := make([]domain.PlayerRating, 0, len(players))
	for _, p := range players {
		row := domain.PlayerRating{
			Player:       p,
			Rating:       baseRating,
			Probationary: true,
		}
		if t, ok := tallies[p.ID]; ok {
			row.Rating = t.rating
			row.GamesPlayed = t.games
			row.Wins = t.wins
			row.Probationary = t.probationary
			if t.games > 0 {
				row.WinRate = float64(t.wins) / float64(t.games)
			}
		}
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Probationary != rows[j].Probationary {
			return !rows[i].Probationary
		}
		return rows[i].Rating > rows[j].Rating
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}

// TimeSeries folds the history into one point per calendar day holding each
// participant's end-of-day rating and the day's aggregate delta. Days
// without games for a player simply omit the player; nothing is
// interpolated.
func TimeSeries(games []domain.Game, history []domain.RatingRecord) []domain.TimeSeriesPoint {
	byGame := groupByGame(history)
	var points []domain.TimeSeriesPoint
	for _, g := range games {
		if len(points) == 0 || !points[len(points)-1].Date.Equal(g.Day) {
			points = append(points, domain.TimeSeriesPoint{
				Date:    g.Day,
				Ratings: make(map[uuid.UUID]float64),
				Deltas:  make(map[uuid.UUID]float64),
			})
		}
		point := &points[len(points)-1]
		for _, rec := range byGame[g.ID] {
			point.Ratings[rec.PlayerID] = rec.RatingAfter
			point.Deltas[rec.PlayerID] += rec.Delta
		}
	}
	return points
}

// MatchHistory annotates every game with its participants' rating movement,
// newest game first.
func MatchHistory(games []domain.Game, history []domain.RatingRecord, players []domain.Player) []domain.AnnotatedGame {
	byGame := groupByGame(history)
	byID := make(map[uuid.UUID]domain.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}

	annotated := make([]domain.AnnotatedGame, 0, len(games))
	for i := len(games) - 1; i >= 0; i-- {
		g := games[i]
		ag := domain.AnnotatedGame{Game: g}
		for _, rec := range byGame[g.ID] {
			slot := domain.AnnotatedSlot{
				Player: byID[rec.PlayerID],
				Before: rec.RatingBefore,
				After:  rec.RatingAfter,
				Delta:  rec.Delta,
			}
			switch rec.PlayerID {
			case g.YellowOffense:
				ag.YellowOffense = slot
			case g.YellowDefense:
				ag.YellowDefense = slot
			case g.BlackOffense:
				ag.BlackOffense = slot
			case g.BlackDefense:
				ag.BlackDefense = slot
			}
		}
		annotated = append(annotated, ag)
	}
	return annotated
}

func groupByGame(history []domain.RatingRecord) map[uuid.UUID][]domain.RatingRecord {
	byGame := make(map[uuid.UUID][]domain.RatingRecord, len(history)/4)
	for _, rec := range history {
		byGame[rec.GameID] = append(byGame[rec.GameID], rec)
	}
	return byGame
}
