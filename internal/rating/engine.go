// Package rating computes post-game ratings for 2v2 matches. The engine is a
// pure function of its inputs: no storage, no clock, no hidden state, so
// replaying the same games from the same baseline always yields the same
// history.
package rating

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/goserg/foosrating/internal/domain"
)

// State is everything the engine needs to know about a player: the current
// rating and how many games produced it.
type State struct {
	Rating float64
	Games  int
}

type Config struct {
	Method         string
	BaseRating     float64
	ProbationGames int
}

func DefaultConfig() Config {
	return Config{
		Method:         MethodSigmoid,
		BaseRating:     500,
		ProbationGames: 10,
	}
}

type Engine struct {
	cfg   Config
	delta DeltaFunc
}

func New(cfg Config) (*Engine, error) {
	e := Engine{cfg: cfg}
	switch cfg.Method {
	case MethodSigmoid:
		e.delta = Sigmoid
	case MethodSquare:
		e.delta = Square
	case MethodFlat:
		e.delta = Flat
	default:
		return nil, fmt.Errorf("unknown rating method %q", cfg.Method)
	}
	if cfg.BaseRating <= 0 {
		return nil, fmt.Errorf("base rating must be positive, got %v", cfg.BaseRating)
	}
	if cfg.ProbationGames < 0 {
		return nil, fmt.Errorf("probation games must be non-negative, got %d", cfg.ProbationGames)
	}
	return &e, nil
}

// Base is the state of a player before their first game.
func (e *Engine) Base() State {
	return State{Rating: e.cfg.BaseRating}
}

func (e *Engine) state(before map[uuid.UUID]State, id uuid.UUID) State {
	if s, ok := before[id]; ok {
		return s
	}
	return e.Base()
}

// Apply computes the four rating records for one game. Records come back in
// slot order (yellow offense, yellow defense, black offense, black defense)
// along with the participants' updated states. The input map is not
// modified.
func (e *Engine) Apply(g domain.Game, before map[uuid.UUID]State) ([]domain.RatingRecord, map[uuid.UUID]State, error) {
	if err := g.Validate(); err != nil {
		return nil, nil, err
	}

	win, lose := g.Winner()
	winRating := (e.state(before, win.Offense).Rating + e.state(before, win.Defense).Rating) / 2
	loseRating := (e.state(before, lose.Offense).Rating + e.state(before, lose.Defense).Rating) / 2
	d := e.delta(float64(win.Score-lose.Score), winRating-loseRating, win.Score)

	winners := map[uuid.UUID]bool{win.Offense: true, win.Defense: true}

	records := make([]domain.RatingRecord, 0, 4)
	after := make(map[uuid.UUID]State, 4)
	for _, id := range g.Players() {
		b := e.state(before, id)
		change := -d
		if winners[id] {
			change = d
		}
		a := State{Rating: b.Rating + change, Games: b.Games + 1}
		after[id] = a
		records = append(records, domain.RatingRecord{
			GameID:       g.ID,
			PlayerID:     id,
			RatingBefore: b.Rating,
			RatingAfter:  a.Rating,
			Delta:        change,
			Win:          winners[id],
			Probationary: a.Games < e.cfg.ProbationGames,
		})
	}
	return records, after, nil
}
