package gamelog

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goserg/foosrating/internal/domain"
)

var (
	p1 = uuid.New()
	p2 = uuid.New()
	p3 = uuid.New()
	p4 = uuid.New()
)

func day(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

func game(d int) domain.Game {
	return domain.Game{
		ID:            uuid.New(),
		Day:           day(d),
		YellowOffense: p1,
		YellowDefense: p2,
		BlackOffense:  p3,
		BlackDefense:  p4,
		YellowScore:   10,
		BlackScore:    5,
	}
}

func ids(l *Log) []uuid.UUID {
	games := l.Games()
	out := make([]uuid.UUID, 0, len(games))
	for _, g := range games {
		out = append(out, g.ID)
	}
	return out
}

func TestAppendOrdering(t *testing.T) {
	l := New(nil)

	a, idx, err := l.Append(game(2))
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	assert.Equal(t, 0, a.Seq)

	b, idx, err := l.Append(game(2))
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	assert.Equal(t, 1, b.Seq)

	// A backdated game goes before both and reports the insertion index.
	c, idx, err := l.Append(game(1))
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	assert.Equal(t, 0, c.Seq)

	assert.Equal(t, []uuid.UUID{c.ID, a.ID, b.ID}, ids(l))
}

func TestAppendTruncatesDay(t *testing.T) {
	l := New(nil)
	g := game(1)
	g.Day = time.Date(2024, 3, 1, 23, 59, 59, 0, time.UTC)
	stored, _, err := l.Append(g)
	require.NoError(t, err)
	assert.Equal(t, day(1), stored.Day)
}

func TestAppendValidation(t *testing.T) {
	l := New(nil)
	tests := []struct {
		name   string
		mutate func(g *domain.Game)
	}{
		{"duplicate player", func(g *domain.Game) { g.BlackOffense = g.YellowOffense }},
		{"missing player", func(g *domain.Game) { g.BlackDefense = uuid.Nil }},
		{"tie", func(g *domain.Game) { g.BlackScore = g.YellowScore }},
		{"no result", func(g *domain.Game) { g.YellowScore, g.BlackScore = 0, 0 }},
		{"negative score", func(g *domain.Game) { g.BlackScore = -1 }},
		{"no date", func(g *domain.Game) { g.Day = time.Time{} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := game(1)
			tt.mutate(&g)
			_, _, err := l.Append(g)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Equal(t, 0, l.Len())
		})
	}
}

func TestNewRestoresOrder(t *testing.T) {
	a, b, c := game(2), game(1), game(2)
	a.Seq = 1
	c.Seq = 0
	l := New([]domain.Game{a, b, c})
	assert.Equal(t, []uuid.UUID{b.ID, c.ID, a.ID}, ids(l))
}

func TestMove(t *testing.T) {
	l := New(nil)
	a, _, err := l.Append(game(1))
	require.NoError(t, err)
	b, _, err := l.Append(game(1))
	require.NoError(t, err)

	changed, idx, err := l.Move(b.ID, Up)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	require.Len(t, changed, 2)
	assert.Equal(t, b.ID, changed[0].ID)
	assert.Equal(t, 0, changed[0].Seq)
	assert.Equal(t, a.ID, changed[1].ID)
	assert.Equal(t, 1, changed[1].Seq)
	assert.Equal(t, []uuid.UUID{b.ID, a.ID}, ids(l))

	// And back.
	_, idx, err = l.Move(b.ID, Down)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	assert.Equal(t, []uuid.UUID{a.ID, b.ID}, ids(l))
}

func TestMoveInvalid(t *testing.T) {
	l := New(nil)
	a, _, err := l.Append(game(1))
	require.NoError(t, err)
	b, _, err := l.Append(game(2))
	require.NoError(t, err)

	_, _, err = l.Move(a.ID, Up)
	assert.ErrorIs(t, err, domain.ErrInvalidMove)
	_, _, err = l.Move(b.ID, Down)
	assert.ErrorIs(t, err, domain.ErrInvalidMove)
	// Day boundary in between.
	_, _, err = l.Move(a.ID, Down)
	assert.ErrorIs(t, err, domain.ErrInvalidMove)
	_, _, err = l.Move(uuid.New(), Up)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, []uuid.UUID{a.ID, b.ID}, ids(l))
}

func TestEditSameDayKeepsPosition(t *testing.T) {
	l := New(nil)
	a, _, err := l.Append(game(1))
	require.NoError(t, err)
	b, _, err := l.Append(game(1))
	require.NoError(t, err)

	edited := a
	edited.YellowScore = 7
	stored, idx, err := l.Edit(edited)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	assert.Equal(t, a.Seq, stored.Seq)
	assert.Equal(t, []uuid.UUID{a.ID, b.ID}, ids(l))
	got, _, err := l.Get(a.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, got.YellowScore)
}

func TestEditDayChangeReinserts(t *testing.T) {
	l := New(nil)
	a, _, err := l.Append(game(1))
	require.NoError(t, err)
	b, _, err := l.Append(game(2))
	require.NoError(t, err)

	edited := a
	edited.Day = day(3)
	stored, idx, err := l.Edit(edited)
	require.NoError(t, err)
	// Dirty from the game's former position.
	assert.Equal(t, 0, idx)
	assert.Equal(t, 0, stored.Seq)
	assert.Equal(t, []uuid.UUID{b.ID, a.ID}, ids(l))
}

func TestEditNotFound(t *testing.T) {
	l := New(nil)
	_, _, err := l.Edit(game(1))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRemove(t *testing.T) {
	l := New(nil)
	a, _, err := l.Append(game(1))
	require.NoError(t, err)
	b, _, err := l.Append(game(1))
	require.NoError(t, err)

	idx, err := l.Remove(a.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	assert.Equal(t, []uuid.UUID{b.ID}, ids(l))

	_, err = l.Remove(a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
