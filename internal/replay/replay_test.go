package replay

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goserg/foosrating/internal/domain"
	"github.com/goserg/foosrating/internal/rating"
)

var (
	playerA = uuid.New()
	playerB = uuid.New()
	playerC = uuid.New()
	playerD = uuid.New()
)

func testEngine(t *testing.T) *rating.Engine {
	t.Helper()
	eng, err := rating.New(rating.DefaultConfig())
	require.NoError(t, err)
	return eng
}

func game(d int, yellowScore, blackScore int) domain.Game {
	return domain.Game{
		ID:            uuid.New(),
		Day:           time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC),
		YellowOffense: playerA,
		YellowDefense: playerB,
		BlackOffense:  playerC,
		BlackDefense:  playerD,
		YellowScore:   yellowScore,
		BlackScore:    blackScore,
	}
}

func TestRebuildFromScratch(t *testing.T) {
	eng := testEngine(t)
	games := []domain.Game{game(1, 10, 5), game(1, 3, 10), game(2, 10, 8)}

	records, err := Rebuild(games, nil, 0, eng)
	require.NoError(t, err)
	require.Len(t, records, 12)

	// The chain rating_before[n+1] == rating_after[n] holds per player.
	last := make(map[uuid.UUID]float64)
	for _, rec := range records {
		if prev, ok := last[rec.PlayerID]; ok {
			assert.Equal(t, prev, rec.RatingBefore)
		} else {
			assert.Equal(t, 500.0, rec.RatingBefore)
		}
		last[rec.PlayerID] = rec.RatingAfter
	}
}

func TestRebuildDeterministic(t *testing.T) {
	eng := testEngine(t)
	games := []domain.Game{game(1, 10, 5), game(1, 3, 10), game(2, 10, 8)}

	records1, err := Rebuild(games, nil, 0, eng)
	require.NoError(t, err)
	records2, err := Rebuild(games, nil, 0, eng)
	require.NoError(t, err)
	assert.Equal(t, records1, records2)
}

func TestRebuildReusesPrefix(t *testing.T) {
	eng := testEngine(t)
	games := []domain.Game{game(1, 10, 5), game(1, 3, 10), game(2, 10, 8)}
	full, err := Rebuild(games, nil, 0, eng)
	require.NoError(t, err)

	// Replaying only the suffix over the existing history changes nothing.
	partial, err := Rebuild(games, full, 2, eng)
	require.NoError(t, err)
	assert.Equal(t, full, partial)
}

func TestRebuildSuffixAfterEdit(t *testing.T) {
	eng := testEngine(t)
	games := []domain.Game{game(1, 10, 5), game(1, 3, 10), game(2, 10, 8)}
	full, err := Rebuild(games, nil, 0, eng)
	require.NoError(t, err)

	games[1].YellowScore = 9
	games[1].BlackScore = 10
	updated, err := Rebuild(games, full, 1, eng)
	require.NoError(t, err)

	// The prefix survives untouched, the suffix is different.
	assert.Equal(t, full[:4], updated[:4])
	assert.NotEqual(t, full[4:8], updated[4:8])
	want, err := Rebuild(games, nil, 0, eng)
	require.NoError(t, err)
	assert.Equal(t, want, updated)
}

func TestRebuildAfterDeletion(t *testing.T) {
	eng := testEngine(t)
	first := game(1, 10, 5)
	second := game(1, 3, 10)
	full, err := Rebuild([]domain.Game{first, second}, nil, 0, eng)
	require.NoError(t, err)

	// Deleting the first game reverts the second to the baseline.
	records, err := Rebuild([]domain.Game{second}, full, 0, eng)
	require.NoError(t, err)
	require.Len(t, records, 4)
	for _, rec := range records {
		assert.Equal(t, second.ID, rec.GameID)
		assert.Equal(t, 500.0, rec.RatingBefore)
	}
}

func TestRebuildCorruptPrefixForcesFullReplay(t *testing.T) {
	eng := testEngine(t)
	games := []domain.Game{game(1, 10, 5), game(1, 3, 10)}
	full, err := Rebuild(games, nil, 0, eng)
	require.NoError(t, err)

	// A prefix with a missing record cannot be trusted.
	records, err := Rebuild(games, full[:3], 1, eng)
	require.NoError(t, err)
	assert.Equal(t, full, records)
}

func TestRebuildClampsFrom(t *testing.T) {
	eng := testEngine(t)
	games := []domain.Game{game(1, 10, 5)}

	records, err := Rebuild(games, nil, -5, eng)
	require.NoError(t, err)
	assert.Len(t, records, 4)

	records, err = Rebuild(games, records, 100, eng)
	require.NoError(t, err)
	assert.Len(t, records, 4)
}

func TestRebuildInvalidGame(t *testing.T) {
	eng := testEngine(t)
	bad := game(1, 5, 5)
	_, err := Rebuild([]domain.Game{bad}, nil, 0, eng)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
