// Package service is the write and read facade of the rating system. Every
// game-log mutation and the replay it triggers run under the season's mutex
// and commit in one storage transaction, so readers always see a history
// consistent with the log.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/goserg/foosrating/internal/color"
	"github.com/goserg/foosrating/internal/config"
	"github.com/goserg/foosrating/internal/domain"
	"github.com/goserg/foosrating/internal/gamelog"
	"github.com/goserg/foosrating/internal/normalize"
	"github.com/goserg/foosrating/internal/projection"
	"github.com/goserg/foosrating/internal/rating"
	"github.com/goserg/foosrating/internal/replay"
	"github.com/goserg/foosrating/internal/storage"
)

type Service struct {
	players   storage.PlayerStorage
	matches   storage.MatchStorage
	seasons   storage.SeasonStorage
	ratingCfg config.Rating
	log       *logrus.Entry

	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func New(l *logrus.Logger, players storage.PlayerStorage, matches storage.MatchStorage, seasons storage.SeasonStorage, ratingCfg config.Rating) *Service {
	return &Service{
		players:   players,
		matches:   matches,
		seasons:   seasons,
		ratingCfg: ratingCfg,
		log:       l.WithFields(map[string]interface{}{"from": "service"}),
		locks:     make(map[uuid.UUID]*sync.Mutex),
	}
}

// seasonLock serializes mutations and reads per season. Different seasons
// are independent rating namespaces and proceed concurrently.
func (s *Service) seasonLock(seasonID uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[seasonID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[seasonID] = lock
	}
	return lock
}

func (s *Service) engineFor(ctx context.Context, seasonID uuid.UUID) (*rating.Engine, error) {
	season, err := s.seasons.GetSeason(ctx, seasonID)
	if err != nil {
		return nil, err
	}
	return rating.New(s.ratingCfg.EngineConfig(season.RatingMethod))
}

// EnsureActiveSeason returns the active season, creating the first one on a
// fresh database.
func (s *Service) EnsureActiveSeason(ctx context.Context) (domain.Season, error) {
	season, err := s.seasons.ActiveSeason(ctx)
	if err == nil {
		return season, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.Season{}, err
	}
	season = domain.Season{
		ID:           uuid.New(),
		Name:         "Season 1",
		RatingMethod: s.ratingCfg.DefaultMethod,
		Active:       true,
		StartedAt:    time.Now(),
	}
	if err := s.seasons.CreateSeason(ctx, season); err != nil {
		return domain.Season{}, err
	}
	s.log.WithField("season", season.Name).Info("created initial season")
	return season, nil
}

func (s *Service) ActiveSeason(ctx context.Context) (domain.Season, error) {
	return s.seasons.ActiveSeason(ctx)
}

func (s *Service) Seasons(ctx context.Context) ([]domain.Season, error) {
	return s.seasons.ListSeasons(ctx)
}

// StartSeason opens a new active season; the previous one keeps its log and
// history but stops accepting games.
func (s *Service) StartSeason(ctx context.Context, name string, method string) (domain.Season, error) {
	if name == "" {
		return domain.Season{}, fmt.Errorf("%w: season name must not be empty", domain.ErrValidation)
	}
	if method == "" {
		method = s.ratingCfg.DefaultMethod
	}
	if _, err := rating.New(s.ratingCfg.EngineConfig(method)); err != nil {
		return domain.Season{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	season := domain.Season{
		ID:           uuid.New(),
		Name:         name,
		RatingMethod: method,
		Active:       true,
		StartedAt:    time.Now(),
	}
	if err := s.seasons.CreateSeason(ctx, season); err != nil {
		return domain.Season{}, err
	}
	return season, nil
}

func (s *Service) ListPlayers(ctx context.Context) ([]domain.Player, error) {
	return s.players.ListPlayers(ctx)
}

func (s *Service) GetPlayer(ctx context.Context, id uuid.UUID) (domain.Player, error) {
	return s.players.GetPlayer(ctx, id)
}

func (s *Service) GetPlayerByName(ctx context.Context, name string) (domain.Player, error) {
	return s.players.GetPlayerByName(ctx, name)
}

func (s *Service) CreatePlayer(ctx context.Context, name string) (domain.Player, error) {
	if normalize.Name(name) == "" {
		return domain.Player{}, fmt.Errorf("%w: player name must not be empty", domain.ErrValidation)
	}
	_, err := s.players.GetPlayerByName(ctx, name)
	if err == nil {
		return domain.Player{}, fmt.Errorf("%w: player %q already exists", domain.ErrValidation, name)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.Player{}, err
	}
	player := domain.Player{
		ID:           uuid.New(),
		Name:         normalize.Display(name),
		Color:        color.RandomDark(),
		RegisteredAt: time.Now(),
	}
	if err := s.players.AddPlayer(ctx, player); err != nil {
		return domain.Player{}, err
	}
	s.log.WithField("player", player.Name).Info("player created")
	return player, nil
}

// checkParticipants verifies the four referenced players exist before the
// game touches the log.
func (s *Service) checkParticipants(ctx context.Context, g domain.Game) error {
	for _, id := range g.Players() {
		if id == uuid.Nil {
			return fmt.Errorf("%w: all four player slots must be set", domain.ErrValidation)
		}
		if _, err := s.players.GetPlayer(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// AddGame validates and appends a game to the season's log, then rebuilds
// the rating history from the insertion point.
func (s *Service) AddGame(ctx context.Context, seasonID uuid.UUID, g domain.Game) (domain.Game, error) {
	lock := s.seasonLock(seasonID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.checkParticipants(ctx, g); err != nil {
		return domain.Game{}, err
	}
	l, history, err := s.loadLog(ctx, seasonID)
	if err != nil {
		return domain.Game{}, err
	}
	g.ID = uuid.New()
	g.SeasonID = seasonID
	g.CreatedAt = time.Now()
	stored, idx, err := l.Append(g)
	if err != nil {
		return domain.Game{}, err
	}
	if err := s.commit(ctx, seasonID, l, history, idx, []domain.Game{stored}, nil); err != nil {
		return domain.Game{}, err
	}
	return stored, nil
}

// EditGame applies changed fields (participants, scores, day) to an
// existing game. A day change re-inserts the game at the position its new
// day implies.
func (s *Service) EditGame(ctx context.Context, seasonID uuid.UUID, g domain.Game) (domain.Game, error) {
	lock := s.seasonLock(seasonID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.checkParticipants(ctx, g); err != nil {
		return domain.Game{}, err
	}
	l, history, err := s.loadLog(ctx, seasonID)
	if err != nil {
		return domain.Game{}, err
	}
	old, _, err := l.Get(g.ID)
	if err != nil {
		return domain.Game{}, err
	}
	g.SeasonID = seasonID
	g.CreatedAt = old.CreatedAt
	stored, idx, err := l.Edit(g)
	if err != nil {
		return domain.Game{}, err
	}
	if err := s.commit(ctx, seasonID, l, history, idx, []domain.Game{stored}, nil); err != nil {
		return domain.Game{}, err
	}
	return stored, nil
}

func (s *Service) DeleteGame(ctx context.Context, seasonID uuid.UUID, id uuid.UUID) error {
	lock := s.seasonLock(seasonID)
	lock.Lock()
	defer lock.Unlock()

	l, history, err := s.loadLog(ctx, seasonID)
	if err != nil {
		return err
	}
	idx, err := l.Remove(id)
	if err != nil {
		return err
	}
	return s.commit(ctx, seasonID, l, history, idx, nil, []uuid.UUID{id})
}

// MoveGame swaps a game with its same-day neighbor and replays the affected
// suffix, so the two games exchange their rating baselines.
func (s *Service) MoveGame(ctx context.Context, seasonID uuid.UUID, id uuid.UUID, dir gamelog.Direction) error {
	lock := s.seasonLock(seasonID)
	lock.Lock()
	defer lock.Unlock()

	l, history, err := s.loadLog(ctx, seasonID)
	if err != nil {
		return err
	}
	changed, idx, err := l.Move(id, dir)
	if err != nil {
		return err
	}
	return s.commit(ctx, seasonID, l, history, idx, changed, nil)
}

func (s *Service) GetGame(ctx context.Context, seasonID uuid.UUID, id uuid.UUID) (domain.Game, error) {
	lock := s.seasonLock(seasonID)
	lock.Lock()
	defer lock.Unlock()

	games, err := s.matches.ListGames(ctx, seasonID)
	if err != nil {
		return domain.Game{}, err
	}
	g, _, err := gamelog.New(games).Get(id)
	return g, err
}

func (s *Service) loadLog(ctx context.Context, seasonID uuid.UUID) (*gamelog.Log, []domain.RatingRecord, error) {
	games, err := s.matches.ListGames(ctx, seasonID)
	if err != nil {
		return nil, nil, err
	}
	history, err := s.matches.ListRatingHistory(ctx, seasonID)
	if err != nil {
		return nil, nil, err
	}
	return gamelog.New(games), history, nil
}

func (s *Service) commit(ctx context.Context, seasonID uuid.UUID, l *gamelog.Log, history []domain.RatingRecord, from int, upsert []domain.Game, del []uuid.UUID) error {
	eng, err := s.engineFor(ctx, seasonID)
	if err != nil {
		return err
	}
	newHistory, err := replay.Rebuild(l.Games(), history, from, eng)
	if err != nil {
		return err
	}
	err = s.matches.CommitMutation(ctx, storage.Mutation{
		SeasonID: seasonID,
		Upsert:   upsert,
		Delete:   del,
		History:  newHistory,
	})
	if err != nil {
		return err
	}
	s.log.WithFields(map[string]interface{}{
		"season":   seasonID,
		"games":    l.Len(),
		"replayed": l.Len() - from,
	}).Debug("history rebuilt")
	return nil
}

func (s *Service) Leaderboard(ctx context.Context, seasonID uuid.UUID) ([]domain.PlayerRating, error) {
	lock := s.seasonLock(seasonID)
	lock.Lock()
	defer lock.Unlock()

	players, err := s.players.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	history, err := s.matches.ListRatingHistory(ctx, seasonID)
	if err != nil {
		return nil, err
	}
	return projection.Leaderboard(players, history, s.ratingCfg.BaseRating), nil
}

func (s *Service) TimeSeries(ctx context.Context, seasonID uuid.UUID) ([]domain.TimeSeriesPoint, error) {
	lock := s.seasonLock(seasonID)
	lock.Lock()
	defer lock.Unlock()

	l, history, err := s.loadLog(ctx, seasonID)
	if err != nil {
		return nil, err
	}
	return projection.TimeSeries(l.Games(), history), nil
}

func (s *Service) MatchHistory(ctx context.Context, seasonID uuid.UUID) ([]domain.AnnotatedGame, error) {
	lock := s.seasonLock(seasonID)
	lock.Lock()
	defer lock.Unlock()

	players, err := s.players.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	l, history, err := s.loadLog(ctx, seasonID)
	if err != nil {
		return nil, err
	}
	return projection.MatchHistory(l.Games(), history, players), nil
}

// PlayerData is everything the player card shows.
type PlayerData struct {
	Rating domain.PlayerRating
	Games  []domain.AnnotatedGame
}

func (s *Service) PlayerData(ctx context.Context, seasonID uuid.UUID, playerID uuid.UUID) (PlayerData, error) {
	player, err := s.players.GetPlayer(ctx, playerID)
	if err != nil {
		return PlayerData{}, err
	}

	lock := s.seasonLock(seasonID)
	lock.Lock()
	defer lock.Unlock()

	players, err := s.players.ListPlayers(ctx)
	if err != nil {
		return PlayerData{}, err
	}
	l, history, err := s.loadLog(ctx, seasonID)
	if err != nil {
		return PlayerData{}, err
	}
	data := PlayerData{}
	for _, row := range projection.Leaderboard(players, history, s.ratingCfg.BaseRating) {
		if row.Player.ID == player.ID {
			data.Rating = row
			break
		}
	}
	for _, ag := range projection.MatchHistory(l.Games(), history, players) {
		for _, id := range ag.Game.Players() {
			if id == playerID {
				data.Games = append(data.Games, ag)
				break
			}
		}
	}
	return data, nil
}

const exportVersion = 1

type export struct {
	Version int
	Players []domain.Player
	Games   []domain.Game
}

// Export serializes a season's players and games. Ratings are derived data
// and are rebuilt on import.
func (s *Service) Export(ctx context.Context, seasonID uuid.UUID) ([]byte, error) {
	lock := s.seasonLock(seasonID)
	lock.Lock()
	defer lock.Unlock()

	players, err := s.players.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	games, err := s.matches.ListGames(ctx, seasonID)
	if err != nil {
		return nil, err
	}
	return json.Marshal(export{
		Version: exportVersion,
		Players: players,
		Games:   games,
	})
}

// Import replaces a season's log with the exported one and performs a full
// recompute, the bulk-load fallback where no cheaper dirty index exists.
func (s *Service) Import(ctx context.Context, seasonID uuid.UUID, data []byte) error {
	var importData export
	if err := json.Unmarshal(data, &importData); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if importData.Version != exportVersion {
		return fmt.Errorf("%w: unsupported export version %d", domain.ErrValidation, importData.Version)
	}

	lock := s.seasonLock(seasonID)
	lock.Lock()
	defer lock.Unlock()

	l := gamelog.New(nil)
	for _, g := range importData.Games {
		g.SeasonID = seasonID
		if _, _, err := l.Append(g); err != nil {
			return err
		}
	}
	eng, err := s.engineFor(ctx, seasonID)
	if err != nil {
		return err
	}
	newHistory, err := replay.Rebuild(l.Games(), nil, 0, eng)
	if err != nil {
		return err
	}
	if err := s.players.ImportPlayers(ctx, importData.Players); err != nil {
		return err
	}
	old, err := s.matches.ListGames(ctx, seasonID)
	if err != nil {
		return err
	}
	var del []uuid.UUID
	imported := make(map[uuid.UUID]bool, len(importData.Games))
	for _, g := range importData.Games {
		imported[g.ID] = true
	}
	for _, g := range old {
		if !imported[g.ID] {
			del = append(del, g.ID)
		}
	}
	return s.matches.CommitMutation(ctx, storage.Mutation{
		SeasonID: seasonID,
		Upsert:   l.Games(),
		Delete:   del,
		History:  newHistory,
	})
}
