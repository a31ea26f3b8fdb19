package storage

import (
	"context"

	"github.com/google/uuid"

	"github.com/goserg/foosrating/internal/domain"
)

type PlayerStorage interface {
	ListPlayers(ctx context.Context) ([]domain.Player, error)
	GetPlayer(ctx context.Context, id uuid.UUID) (domain.Player, error)
	// GetPlayerByName looks a player up by normalized name.
	GetPlayerByName(ctx context.Context, name string) (domain.Player, error)
	AddPlayer(ctx context.Context, player domain.Player) error

	ImportPlayers(ctx context.Context, players []domain.Player) error
}

// Mutation is one game-log change together with the season's replacement
// rating history. Implementations apply all of it in a single transaction or
// not at all.
type Mutation struct {
	SeasonID uuid.UUID
	Upsert   []domain.Game
	Delete   []uuid.UUID
	History  []domain.RatingRecord
}

type MatchStorage interface {
	// ListGames returns the season's games in log order (day, seq).
	ListGames(ctx context.Context, seasonID uuid.UUID) ([]domain.Game, error)
	// ListRatingHistory returns the season's records in log order, four per
	// game in slot order.
	ListRatingHistory(ctx context.Context, seasonID uuid.UUID) ([]domain.RatingRecord, error)
	CommitMutation(ctx context.Context, m Mutation) error
}

type SeasonStorage interface {
	ActiveSeason(ctx context.Context) (domain.Season, error)
	GetSeason(ctx context.Context, id uuid.UUID) (domain.Season, error)
	ListSeasons(ctx context.Context) ([]domain.Season, error)
	CreateSeason(ctx context.Context, season domain.Season) error
}
