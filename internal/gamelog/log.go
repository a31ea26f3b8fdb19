// Package gamelog maintains the authoritative ordered sequence of games for
// one season. The order is total: by calendar day, then by an explicit
// per-day sequence number that the move operation rearranges. Every mutation
// reports the earliest log position whose downstream ratings became stale.
package gamelog

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/goserg/foosrating/internal/domain"
)

type Direction int

const (
	// Up moves a game towards the start of the log.
	Up Direction = iota
	// Down moves a game towards the end of the log.
	Down
)

type Log struct {
	games []domain.Game
}

// New builds a log from stored games, restoring (day, seq) order.
func New(games []domain.Game) *Log {
	gs := make([]domain.Game, len(games))
	copy(gs, games)
	sort.SliceStable(gs, func(i, j int) bool {
		if !gs[i].Day.Equal(gs[j].Day) {
			return gs[i].Day.Before(gs[j].Day)
		}
		return gs[i].Seq < gs[j].Seq
	})
	return &Log{games: gs}
}

func (l *Log) Len() int {
	return len(l.games)
}

// Games returns a copy of the log in order.
func (l *Log) Games() []domain.Game {
	gs := make([]domain.Game, len(l.games))
	copy(gs, l.games)
	return gs
}

// Get returns the game and its current position.
func (l *Log) Get(id uuid.UUID) (domain.Game, int, error) {
	for i := range l.games {
		if l.games[i].ID == id {
			return l.games[i], i, nil
		}
	}
	return domain.Game{}, 0, fmt.Errorf("game %s: %w", id, domain.ErrNotFound)
}

// Append validates the game and inserts it after the last existing game with
// the same or an earlier day. Returns the stored game (with its assigned
// seq) and the insertion index, which is the earliest stale position.
func (l *Log) Append(g domain.Game) (domain.Game, int, error) {
	g.Day = domain.TruncateDay(g.Day)
	if err := g.Validate(); err != nil {
		return domain.Game{}, 0, err
	}
	idx, seq := l.insertionPoint(g.Day)
	g.Seq = seq
	l.games = append(l.games, domain.Game{})
	copy(l.games[idx+1:], l.games[idx:])
	l.games[idx] = g
	return g, idx, nil
}

// insertionPoint finds the index right after the last game with day <= day,
// and the next free seq within that day.
func (l *Log) insertionPoint(day time.Time) (int, int) {
	idx := sort.Search(len(l.games), func(i int) bool {
		return l.games[i].Day.After(day)
	})
	seq := 0
	if idx > 0 && l.games[idx-1].Day.Equal(day) {
		seq = l.games[idx-1].Seq + 1
	}
	return idx, seq
}

// Edit replaces an existing game. A day change removes the game and
// re-inserts it per the append rule, losing its same-day position.
func (l *Log) Edit(g domain.Game) (domain.Game, int, error) {
	old, oldIdx, err := l.Get(g.ID)
	if err != nil {
		return domain.Game{}, 0, err
	}
	g.Day = domain.TruncateDay(g.Day)
	if err := g.Validate(); err != nil {
		return domain.Game{}, 0, err
	}
	if g.Day.Equal(old.Day) {
		g.Seq = old.Seq
		l.games[oldIdx] = g
		return g, oldIdx, nil
	}
	l.games = append(l.games[:oldIdx], l.games[oldIdx+1:]...)
	stored, newIdx, err := l.Append(g)
	if err != nil {
		// Validate passed above, so re-insertion cannot fail; restore anyway.
		l.games = append(l.games, old)
		sort.SliceStable(l.games, func(i, j int) bool {
			if !l.games[i].Day.Equal(l.games[j].Day) {
				return l.games[i].Day.Before(l.games[j].Day)
			}
			return l.games[i].Seq < l.games[j].Seq
		})
		return domain.Game{}, 0, err
	}
	if oldIdx < newIdx {
		return stored, oldIdx, nil
	}
	return stored, newIdx, nil
}

// Remove deletes the game and reports its former position.
func (l *Log) Remove(id uuid.UUID) (int, error) {
	_, idx, err := l.Get(id)
	if err != nil {
		return 0, err
	}
	l.games = append(l.games[:idx], l.games[idx+1:]...)
	return idx, nil
}

// Move swaps the game with its neighbor in the given direction. Both games
// must share a calendar day; moving the first game up or the last game down
// is out of bounds. Returns the swapped games and the earlier position.
func (l *Log) Move(id uuid.UUID, dir Direction) ([]domain.Game, int, error) {
	_, idx, err := l.Get(id)
	if err != nil {
		return nil, 0, err
	}
	other := idx - 1
	if dir == Down {
		other = idx + 1
	}
	if other < 0 || other >= len(l.games) {
		return nil, 0, fmt.Errorf("%w: game is at the edge of the log", domain.ErrInvalidMove)
	}
	if !l.games[idx].Day.Equal(l.games[other].Day) {
		return nil, 0, fmt.Errorf("%w: adjacent game is on a different day", domain.ErrInvalidMove)
	}
	l.games[idx].Seq, l.games[other].Seq = l.games[other].Seq, l.games[idx].Seq
	l.games[idx], l.games[other] = l.games[other], l.games[idx]
	first := idx
	if other < idx {
		first = other
	}
	return []domain.Game{l.games[first], l.games[first+1]}, first, nil
}
