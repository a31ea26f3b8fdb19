package projection

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goserg/foosrating/internal/domain"
	"github.com/goserg/foosrating/internal/rating"
	"github.com/goserg/foosrating/internal/replay"
)

func player(name string) domain.Player {
	return domain.Player{ID: uuid.New(), Name: name}
}

func testHistory(t *testing.T, players []domain.Player, games []domain.Game) []domain.RatingRecord {
	t.Helper()
	eng, err := rating.New(rating.DefaultConfig())
	require.NoError(t, err)
	history, err := replay.Rebuild(games, nil, 0, eng)
	require.NoError(t, err)
	return history
}

func game(players []domain.Player, d int, yellowScore, blackScore int) domain.Game {
	return domain.Game{
		ID:            uuid.New(),
		Day:           time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC),
		YellowOffense: players[0].ID,
		YellowDefense: players[1].ID,
		BlackOffense:  players[2].ID,
		BlackDefense:  players[3].ID,
		YellowScore:   yellowScore,
		BlackScore:    blackScore,
	}
}

func TestLeaderboard(t *testing.T) {
	players := []domain.Player{player("A"), player("B"), player("C"), player("D")}
	games := []domain.Game{
		game(players, 1, 10, 5),
		game(players, 1, 10, 2),
	}
	history := testHistory(t, players, games)

	rows := Leaderboard(players, history, 500)
	require.Len(t, rows, 4)
	for i, row := range rows {
		assert.Equal(t, i+1, row.Rank)
		assert.Equal(t, 2, row.GamesPlayed)
		assert.True(t, row.Probationary)
	}
	// Winners on top within the tier.
	assert.Greater(t, rows[0].Rating, rows[2].Rating)
	assert.Equal(t, 1.0, rows[0].WinRate)
	assert.Equal(t, 0.0, rows[3].WinRate)
}

func TestLeaderboardPartitionsProbationary(t *testing.T) {
	players := []domain.Player{player("A"), player("B"), player("C"), player("D")}
	var games []domain.Game
	for i := 0; i < 12; i++ {
		games = append(games, game(players, 1, 10, 5))
	}
	history := testHistory(t, players, games)

	// A fifth player with a single game stays probationary even with a high
	// rating.
	rookie := player("Rookie")
	rookieHistory := append(history, domain.RatingRecord{
		GameID:       uuid.New(),
		PlayerID:     rookie.ID,
		RatingBefore: 500,
		RatingAfter:  900,
		Delta:        400,
		Win:          true,
		Probationary: true,
	})
	rows := Leaderboard(append(players, rookie), rookieHistory, 500)
	require.Len(t, rows, 5)
	for _, row := range rows[:4] {
		assert.False(t, row.Probationary)
	}
	assert.Equal(t, rookie.ID, rows[4].Player.ID)
	assert.Equal(t, 5, rows[4].Rank)
}

func TestLeaderboardPlayerWithoutGames(t *testing.T) {
	idle := player("Idle")
	rows := Leaderboard([]domain.Player{idle}, nil, 500)
	require.Len(t, rows, 1)
	assert.Equal(t, 500.0, rows[0].Rating)
	assert.True(t, rows[0].Probationary)
	assert.Equal(t, 0, rows[0].GamesPlayed)
	assert.Equal(t, 0.0, rows[0].WinRate)
}

func TestTimeSeries(t *testing.T) {
	players := []domain.Player{player("A"), player("B"), player("C"), player("D")}
	games := []domain.Game{
		game(players, 1, 10, 5),
		game(players, 1, 3, 10),
		game(players, 3, 10, 8),
	}
	history := testHistory(t, players, games)

	points := TimeSeries(games, history)
	require.Len(t, points, 2)
	assert.Equal(t, games[0].Day, points[0].Date)
	assert.Equal(t, games[2].Day, points[1].Date)

	// Day one: the rating is the end-of-day value and the deltas sum over
	// both games.
	a := players[0].ID
	assert.Equal(t, history[4].RatingAfter, points[0].Ratings[a])
	assert.InDelta(t, history[0].Delta+history[4].Delta, points[0].Deltas[a], 1e-9)
}

func TestTimeSeriesOmitsIdlePlayers(t *testing.T) {
	players := []domain.Player{player("A"), player("B"), player("C"), player("D")}
	games := []domain.Game{game(players, 1, 10, 5)}
	history := testHistory(t, players, games)

	idle := uuid.New()
	points := TimeSeries(games, history)
	require.Len(t, points, 1)
	_, ok := points[0].Ratings[idle]
	assert.False(t, ok)
}

func TestMatchHistory(t *testing.T) {
	players := []domain.Player{player("A"), player("B"), player("C"), player("D")}
	games := []domain.Game{
		game(players, 1, 10, 5),
		game(players, 2, 3, 10),
	}
	history := testHistory(t, players, games)

	annotated := MatchHistory(games, history, players)
	require.Len(t, annotated, 2)
	// Newest first.
	assert.Equal(t, games[1].ID, annotated[0].Game.ID)
	assert.Equal(t, games[0].ID, annotated[1].Game.ID)

	first := annotated[1]
	assert.Equal(t, players[0].Name, first.YellowOffense.Player.Name)
	assert.Equal(t, 500.0, first.YellowOffense.Before)
	assert.Greater(t, first.YellowOffense.Delta, 0.0)
	assert.Less(t, first.BlackDefense.Delta, 0.0)
	// Chain into the second game.
	second := annotated[0]
	assert.Equal(t, first.YellowOffense.After, second.YellowOffense.Before)
}
