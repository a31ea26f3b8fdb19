package tgbot

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goserg/foosrating/internal/config"
	"github.com/goserg/foosrating/internal/domain"
	"github.com/goserg/foosrating/internal/rating"
	"github.com/goserg/foosrating/internal/service"
	"github.com/goserg/foosrating/internal/storage"
)

type fakeStore struct {
	players map[uuid.UUID]domain.Player
	games   map[uuid.UUID]domain.Game
	history map[uuid.UUID][]domain.RatingRecord
	seasons []domain.Season
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		players: make(map[uuid.UUID]domain.Player),
		games:   make(map[uuid.UUID]domain.Game),
		history: make(map[uuid.UUID][]domain.RatingRecord),
	}
}

func (f *fakeStore) ListPlayers(_ context.Context) ([]domain.Player, error) {
	players := make([]domain.Player, 0, len(f.players))
	for _, p := range f.players {
		players = append(players, p)
	}
	sort.Slice(players, func(i, j int) bool { return players[i].Name < players[j].Name })
	return players, nil
}

func (f *fakeStore) GetPlayer(_ context.Context, id uuid.UUID) (domain.Player, error) {
	p, ok := f.players[id]
	if !ok {
		return domain.Player{}, fmt.Errorf("player %s: %w", id, domain.ErrNotFound)
	}
	return p, nil
}

func (f *fakeStore) GetPlayerByName(_ context.Context, name string) (domain.Player, error) {
	for _, p := range f.players {
		if p.Name == name {
			return p, nil
		}
	}
	return domain.Player{}, fmt.Errorf("player %q: %w", name, domain.ErrNotFound)
}

func (f *fakeStore) AddPlayer(_ context.Context, player domain.Player) error {
	f.players[player.ID] = player
	return nil
}

func (f *fakeStore) ImportPlayers(_ context.Context, players []domain.Player) error {
	for _, p := range players {
		f.players[p.ID] = p
	}
	return nil
}

func (f *fakeStore) ListGames(_ context.Context, seasonID uuid.UUID) ([]domain.Game, error) {
	games := make([]domain.Game, 0)
	for _, g := range f.games {
		if g.SeasonID == seasonID {
			games = append(games, g)
		}
	}
	sort.Slice(games, func(i, j int) bool {
		if !games[i].Day.Equal(games[j].Day) {
			return games[i].Day.Before(games[j].Day)
		}
		return games[i].Seq < games[j].Seq
	})
	return games, nil
}

func (f *fakeStore) ListRatingHistory(_ context.Context, seasonID uuid.UUID) ([]domain.RatingRecord, error) {
	return f.history[seasonID], nil
}

func (f *fakeStore) CommitMutation(_ context.Context, m storage.Mutation) error {
	for _, id := range m.Delete {
		delete(f.games, id)
	}
	for _, g := range m.Upsert {
		f.games[g.ID] = g
	}
	f.history[m.SeasonID] = m.History
	return nil
}

func (f *fakeStore) ActiveSeason(_ context.Context) (domain.Season, error) {
	for _, s := range f.seasons {
		if s.Active {
			return s, nil
		}
	}
	return domain.Season{}, fmt.Errorf("active season: %w", domain.ErrNotFound)
}

func (f *fakeStore) GetSeason(_ context.Context, id uuid.UUID) (domain.Season, error) {
	for _, s := range f.seasons {
		if s.ID == id {
			return s, nil
		}
	}
	return domain.Season{}, fmt.Errorf("season %s: %w", id, domain.ErrNotFound)
}

func (f *fakeStore) ListSeasons(_ context.Context) ([]domain.Season, error) {
	return f.seasons, nil
}

func (f *fakeStore) CreateSeason(_ context.Context, season domain.Season) error {
	if season.Active {
		for i := range f.seasons {
			f.seasons[i].Active = false
		}
	}
	f.seasons = append(f.seasons, season)
	return nil
}

func newTestBot(t *testing.T) (*Bot, []domain.Player, domain.Season) {
	t.Helper()
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	fake := newFakeStore()
	svc := service.New(l, fake, fake, fake, config.Rating{
		DefaultMethod:  rating.MethodSigmoid,
		BaseRating:     500,
		ProbationGames: 10,
	})
	season, err := svc.EnsureActiveSeason(context.Background())
	require.NoError(t, err)

	players := make([]domain.Player, 0, 4)
	for _, name := range []string{"Вася", "Петя", "Коля", "Дима"} {
		p, err := svc.CreatePlayer(context.Background(), name)
		require.NoError(t, err)
		players = append(players, p)
	}
	b := &Bot{
		matches: svc,
		log:     l.WithFields(map[string]interface{}{"from": "tgbot"}),
	}
	return b, players, season
}

func addGame(t *testing.T, b *Bot, seasonID uuid.UUID, players []domain.Player, day time.Time, yellow, black int) {
	t.Helper()
	_, err := b.matches.AddGame(context.Background(), seasonID, domain.Game{
		Day:           day,
		YellowOffense: players[0].ID,
		YellowDefense: players[1].ID,
		BlackOffense:  players[2].ID,
		BlackDefense:  players[3].ID,
		YellowScore:   yellow,
		BlackScore:    black,
	})
	require.NoError(t, err)
}

func TestHelpListsGames(t *testing.T) {
	assert.Contains(t, helpText, "/games")
}

func TestProcessGamesEmpty(t *testing.T) {
	b, _, _ := newTestBot(t)
	assert.Equal(t, "Пока никто не играл", b.processGames(context.Background()))
}

func TestProcessGames(t *testing.T) {
	b, players, season := newTestBot(t)
	addGame(t, b, season.ID, players, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 10, 5)
	addGame(t, b, season.ID, players, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), 8, 10)

	out := b.processGames(context.Background())
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "02.03 Вася/Петя 8:10 Коля/Дима", lines[0])
	assert.Equal(t, "01.03 Вася/Петя 10:5 Коля/Дима", lines[1])
}

func TestProcessTop(t *testing.T) {
	b, players, season := newTestBot(t)
	addGame(t, b, season.ID, players, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 10, 5)

	out := b.processTop(context.Background())
	assert.Contains(t, out, "🥇")
	assert.Contains(t, out, "Вася")
	assert.Contains(t, out, "*калибровка*")
}
