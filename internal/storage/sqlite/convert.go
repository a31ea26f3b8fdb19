package sqlite

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/goserg/foosrating/gen/model"
	"github.com/goserg/foosrating/internal/domain"
	"github.com/goserg/foosrating/internal/normalize"
)

const dayFormat = "2006-01-02"

func convertPlayerToDomain(player model.Players) (domain.Player, error) {
	id, err := uuid.Parse(player.ID)
	if err != nil {
		return domain.Player{}, fmt.Errorf("player id %q: %w", player.ID, err)
	}
	return domain.Player{
		ID:           id,
		Name:         player.Name,
		Color:        player.Color,
		RegisteredAt: player.CreatedAt,
	}, nil
}

func convertPlayersToDomain(players []model.Players) ([]domain.Player, error) {
	converted := make([]domain.Player, 0, len(players))
	for _, player := range players {
		p, err := convertPlayerToDomain(player)
		if err != nil {
			return nil, err
		}
		converted = append(converted, p)
	}
	return converted, nil
}

func convertPlayerFromDomain(player domain.Player) model.Players {
	return model.Players{
		ID:        player.ID.String(),
		Name:      player.Name,
		NameNorm:  normalize.Name(player.Name),
		Color:     player.Color,
		CreatedAt: player.RegisteredAt,
	}
}

func convertGameToDomain(game model.Games) (domain.Game, error) {
	id, err := uuid.Parse(game.ID)
	if err != nil {
		return domain.Game{}, fmt.Errorf("game id %q: %w", game.ID, err)
	}
	seasonID, err := uuid.Parse(game.SeasonID)
	if err != nil {
		return domain.Game{}, fmt.Errorf("season id %q: %w", game.SeasonID, err)
	}
	day, err := time.ParseInLocation(dayFormat, game.Day, time.UTC)
	if err != nil {
		return domain.Game{}, fmt.Errorf("game day %q: %w", game.Day, err)
	}
	yo, err := uuid.Parse(game.YellowOffense)
	if err != nil {
		return domain.Game{}, fmt.Errorf("yellow offense %q: %w", game.YellowOffense, err)
	}
	yd, err := uuid.Parse(game.YellowDefense)
	if err != nil {
		return domain.Game{}, fmt.Errorf("yellow defense %q: %w", game.YellowDefense, err)
	}
	bo, err := uuid.Parse(game.BlackOffense)
	if err != nil {
		return domain.Game{}, fmt.Errorf("black offense %q: %w", game.BlackOffense, err)
	}
	bd, err := uuid.Parse(game.BlackDefense)
	if err != nil {
		return domain.Game{}, fmt.Errorf("black defense %q: %w", game.BlackDefense, err)
	}
	return domain.Game{
		ID:            id,
		SeasonID:      seasonID,
		Day:           day,
		Seq:           int(game.Seq),
		YellowOffense: yo,
		YellowDefense: yd,
		BlackOffense:  bo,
		BlackDefense:  bd,
		YellowScore:   int(game.YellowScore),
		BlackScore:    int(game.BlackScore),
		CreatedAt:     game.CreatedAt,
	}, nil
}

func convertGamesToDomain(games []model.Games) ([]domain.Game, error) {
	converted := make([]domain.Game, 0, len(games))
	for _, game := range games {
		g, err := convertGameToDomain(game)
		if err != nil {
			return nil, err
		}
		converted = append(converted, g)
	}
	return converted, nil
}

func convertGameFromDomain(game domain.Game) model.Games {
	return model.Games{
		ID:            game.ID.String(),
		SeasonID:      game.SeasonID.String(),
		Day:           game.Day.Format(dayFormat),
		Seq:           int32(game.Seq),
		YellowOffense: game.YellowOffense.String(),
		YellowDefense: game.YellowDefense.String(),
		BlackOffense:  game.BlackOffense.String(),
		BlackDefense:  game.BlackDefense.String(),
		YellowScore:   int32(game.YellowScore),
		BlackScore:    int32(game.BlackScore),
		CreatedAt:     game.CreatedAt,
	}
}

func convertRecordsToDomain(records []model.RatingHistory) ([]domain.RatingRecord, error) {
	converted := make([]domain.RatingRecord, 0, len(records))
	for _, rec := range records {
		gameID, err := uuid.Parse(rec.GameID)
		if err != nil {
			return nil, fmt.Errorf("record game id %q: %w", rec.GameID, err)
		}
		playerID, err := uuid.Parse(rec.PlayerID)
		if err != nil {
			return nil, fmt.Errorf("record player id %q: %w", rec.PlayerID, err)
		}
		converted = append(converted, domain.RatingRecord{
			GameID:       gameID,
			PlayerID:     playerID,
			RatingBefore: rec.RatingBefore,
			RatingAfter:  rec.RatingAfter,
			Delta:        rec.Delta,
			Win:          rec.Win,
			Probationary: rec.Probationary,
		})
	}
	return converted, nil
}

func convertRecordFromDomain(rec domain.RatingRecord, seasonID uuid.UUID, slot int) model.RatingHistory {
	return model.RatingHistory{
		SeasonID:     seasonID.String(),
		GameID:       rec.GameID.String(),
		PlayerID:     rec.PlayerID.String(),
		Slot:         int32(slot),
		RatingBefore: rec.RatingBefore,
		RatingAfter:  rec.RatingAfter,
		Delta:        rec.Delta,
		Win:          rec.Win,
		Probationary: rec.Probationary,
	}
}

func convertSeasonToDomain(season model.Seasons) (domain.Season, error) {
	id, err := uuid.Parse(season.ID)
	if err != nil {
		return domain.Season{}, fmt.Errorf("season id %q: %w", season.ID, err)
	}
	return domain.Season{
		ID:           id,
		Name:         season.Name,
		RatingMethod: season.RatingMethod,
		Active:       season.Active,
		StartedAt:    season.StartedAt,
	}, nil
}

func convertSeasonFromDomain(season domain.Season) model.Seasons {
	return model.Seasons{
		ID:           season.ID.String(),
		Name:         season.Name,
		RatingMethod: season.RatingMethod,
		Active:       season.Active,
		StartedAt:    season.StartedAt,
	}
}
