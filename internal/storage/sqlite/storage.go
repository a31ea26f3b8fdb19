package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-jet/jet/v2/qrm"
	"github.com/go-jet/jet/v2/sqlite"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/goserg/foosrating/gen/model"
	"github.com/goserg/foosrating/gen/table"
	"github.com/goserg/foosrating/internal/config"
	"github.com/goserg/foosrating/internal/domain"
	sqlite3 "github.com/goserg/foosrating/internal/migrate"
	"github.com/goserg/foosrating/internal/normalize"
	"github.com/goserg/foosrating/internal/storage"
)

type Storage struct {
	db  *sql.DB
	log *logrus.Entry
}

var _ storage.PlayerStorage = (*Storage)(nil)
var _ storage.MatchStorage = (*Storage)(nil)
var _ storage.SeasonStorage = (*Storage)(nil)

func New(l *logrus.Logger, cfg config.Server) (*Storage, error) {
	log := l.WithFields(map[string]interface{}{
		"from": "storage",
	})
	db, err := sql.Open("sqlite3", buildSource(cfg.SqliteFile))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	err = sqlite3.UpServerDB(db)
	if err != nil {
		return nil, err
	}

	err = db.Ping()
	if err != nil {
		return nil, err
	}
	log.Info("storage connected")
	return &Storage{
		db:  db,
		log: log,
	}, nil
}

func buildSource(fileName string) string {
	return "file:" + fileName + "?cache=shared"
}

func storageErr(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
}

func (s *Storage) ListPlayers(ctx context.Context) ([]domain.Player, error) {
	var players []model.Players
	err := table.Players.
		SELECT(table.Players.AllColumns).
		FROM(table.Players).
		ORDER_BY(table.Players.Name.ASC()).
		QueryContext(ctx, s.db, &players)
	if err != nil {
		return nil, storageErr(err)
	}
	return convertPlayersToDomain(players)
}

func (s *Storage) GetPlayer(ctx context.Context, id uuid.UUID) (domain.Player, error) {
	var player model.Players
	err := table.Players.
		SELECT(table.Players.AllColumns).
		FROM(table.Players).
		WHERE(table.Players.ID.EQ(sqlite.UUID(id))).
		QueryContext(ctx, s.db, &player)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return domain.Player{}, fmt.Errorf("player %s: %w", id, domain.ErrNotFound)
		}
		return domain.Player{}, storageErr(err)
	}
	return convertPlayerToDomain(player)
}

func (s *Storage) GetPlayerByName(ctx context.Context, name string) (domain.Player, error) {
	var player model.Players
	err := table.Players.
		SELECT(table.Players.AllColumns).
		FROM(table.Players).
		WHERE(table.Players.NameNorm.EQ(sqlite.String(normalize.Name(name)))).
		QueryContext(ctx, s.db, &player)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return domain.Player{}, fmt.Errorf("player %q: %w", name, domain.ErrNotFound)
		}
		return domain.Player{}, storageErr(err)
	}
	return convertPlayerToDomain(player)
}

func (s *Storage) AddPlayer(ctx context.Context, player domain.Player) error {
	_, err := table.Players.
		INSERT(table.Players.AllColumns).
		MODEL(convertPlayerFromDomain(player)).
		ExecContext(ctx, s.db)
	if err != nil {
		return storageErr(err)
	}
	return nil
}

func (s *Storage) ImportPlayers(ctx context.Context, players []domain.Player) error {
	if len(players) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr(err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	models := make([]model.Players, 0, len(players))
	ids := make([]sqlite.Expression, 0, len(players))
	for _, p := range players {
		models = append(models, convertPlayerFromDomain(p))
		ids = append(ids, sqlite.UUID(p.ID))
	}
	_, err = table.Players.
		DELETE().
		WHERE(table.Players.ID.IN(ids...)).
		ExecContext(ctx, tx)
	if err != nil {
		return storageErr(err)
	}
	_, err = table.Players.
		INSERT(table.Players.AllColumns).
		MODELS(models).
		ExecContext(ctx, tx)
	if err != nil {
		return storageErr(err)
	}
	if err := tx.Commit(); err != nil {
		return storageErr(err)
	}
	return nil
}

func (s *Storage) ListGames(ctx context.Context, seasonID uuid.UUID) ([]domain.Game, error) {
	var games []model.Games
	err := table.Games.
		SELECT(table.Games.AllColumns).
		FROM(table.Games).
		WHERE(table.Games.SeasonID.EQ(sqlite.UUID(seasonID))).
		ORDER_BY(table.Games.Day.ASC(), table.Games.Seq.ASC()).
		QueryContext(ctx, s.db, &games)
	if err != nil {
		return nil, storageErr(err)
	}
	return convertGamesToDomain(games)
}

func (s *Storage) ListRatingHistory(ctx context.Context, seasonID uuid.UUID) ([]domain.RatingRecord, error) {
	var records []model.RatingHistory
	err := table.RatingHistory.
		SELECT(table.RatingHistory.AllColumns).
		FROM(table.RatingHistory.
			INNER_JOIN(table.Games, table.RatingHistory.GameID.EQ(table.Games.ID))).
		WHERE(table.RatingHistory.SeasonID.EQ(sqlite.UUID(seasonID))).
		ORDER_BY(table.Games.Day.ASC(), table.Games.Seq.ASC(), table.RatingHistory.Slot.ASC()).
		QueryContext(ctx, s.db, &records)
	if err != nil {
		return nil, storageErr(err)
	}
	return convertRecordsToDomain(records)
}

// CommitMutation applies one game-log change and the season's replacement
// history in a single transaction, so a reader can never observe records
// computed from a partially updated log.
func (s *Storage) CommitMutation(ctx context.Context, m storage.Mutation) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr(err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	touched := make([]sqlite.Expression, 0, len(m.Upsert)+len(m.Delete))
	for _, g := range m.Upsert {
		touched = append(touched, sqlite.UUID(g.ID))
	}
	for _, id := range m.Delete {
		touched = append(touched, sqlite.UUID(id))
	}
	if len(touched) > 0 {
		_, err = table.Games.
			DELETE().
			WHERE(table.Games.ID.IN(touched...)).
			ExecContext(ctx, tx)
		if err != nil {
			return storageErr(err)
		}
	}
	if len(m.Upsert) > 0 {
		models := make([]model.Games, 0, len(m.Upsert))
		for _, g := range m.Upsert {
			models = append(models, convertGameFromDomain(g))
		}
		_, err = table.Games.
			INSERT(table.Games.AllColumns).
			MODELS(models).
			ExecContext(ctx, tx)
		if err != nil {
			return storageErr(err)
		}
	}

	_, err = table.RatingHistory.
		DELETE().
		WHERE(table.RatingHistory.SeasonID.EQ(sqlite.UUID(m.SeasonID))).
		ExecContext(ctx, tx)
	if err != nil {
		return storageErr(err)
	}
	if len(m.History) > 0 {
		models := make([]model.RatingHistory, 0, len(m.History))
		for i, rec := range m.History {
			models = append(models, convertRecordFromDomain(rec, m.SeasonID, i%4))
		}
		_, err = table.RatingHistory.
			INSERT(table.RatingHistory.MutableColumns).
			MODELS(models).
			ExecContext(ctx, tx)
		if err != nil {
			return storageErr(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return storageErr(err)
	}
	return nil
}

func (s *Storage) ActiveSeason(ctx context.Context) (domain.Season, error) {
	var season model.Seasons
	err := table.Seasons.
		SELECT(table.Seasons.AllColumns).
		FROM(table.Seasons).
		WHERE(table.Seasons.Active.IS_TRUE()).
		QueryContext(ctx, s.db, &season)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return domain.Season{}, fmt.Errorf("active season: %w", domain.ErrNotFound)
		}
		return domain.Season{}, storageErr(err)
	}
	return convertSeasonToDomain(season)
}

func (s *Storage) GetSeason(ctx context.Context, id uuid.UUID) (domain.Season, error) {
	var season model.Seasons
	err := table.Seasons.
		SELECT(table.Seasons.AllColumns).
		FROM(table.Seasons).
		WHERE(table.Seasons.ID.EQ(sqlite.UUID(id))).
		QueryContext(ctx, s.db, &season)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return domain.Season{}, fmt.Errorf("season %s: %w", id, domain.ErrNotFound)
		}
		return domain.Season{}, storageErr(err)
	}
	return convertSeasonToDomain(season)
}

func (s *Storage) ListSeasons(ctx context.Context) ([]domain.Season, error) {
	var seasons []model.Seasons
	err := table.Seasons.
		SELECT(table.Seasons.AllColumns).
		FROM(table.Seasons).
		ORDER_BY(table.Seasons.StartedAt.ASC()).
		QueryContext(ctx, s.db, &seasons)
	if err != nil {
		return nil, storageErr(err)
	}
	converted := make([]domain.Season, 0, len(seasons))
	for _, season := range seasons {
		d, err := convertSeasonToDomain(season)
		if err != nil {
			return nil, err
		}
		converted = append(converted, d)
	}
	return converted, nil
}

func (s *Storage) CreateSeason(ctx context.Context, season domain.Season) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr(err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if season.Active {
		_, err = table.Seasons.
			UPDATE(table.Seasons.Active).
			SET(sqlite.Bool(false)).
			WHERE(table.Seasons.Active.IS_TRUE()).
			ExecContext(ctx, tx)
		if err != nil {
			return storageErr(err)
		}
	}
	_, err = table.Seasons.
		INSERT(table.Seasons.AllColumns).
		MODEL(convertSeasonFromDomain(season)).
		ExecContext(ctx, tx)
	if err != nil {
		return storageErr(err)
	}
	if err := tx.Commit(); err != nil {
		return storageErr(err)
	}
	return nil
}
