package sqlite

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goserg/foosrating/gen/model"
	"github.com/goserg/foosrating/internal/domain"
)

func TestConvertPlayerRoundTrip(t *testing.T) {
	p := domain.Player{
		ID:           uuid.New(),
		Name:         "Alice Smith",
		Color:        "#336699",
		RegisteredAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	m := convertPlayerFromDomain(p)
	assert.Equal(t, "alice smith", m.NameNorm)

	got, err := convertPlayerToDomain(m)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestConvertPlayerBadID(t *testing.T) {
	_, err := convertPlayerToDomain(model.Players{ID: "not-a-uuid"})
	assert.Error(t, err)
}

func TestConvertGameRoundTrip(t *testing.T) {
	g := domain.Game{
		ID:            uuid.New(),
		SeasonID:      uuid.New(),
		Day:           time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
		Seq:           3,
		YellowOffense: uuid.New(),
		YellowDefense: uuid.New(),
		BlackOffense:  uuid.New(),
		BlackDefense:  uuid.New(),
		YellowScore:   10,
		BlackScore:    4,
		CreatedAt:     time.Date(2024, 3, 2, 18, 30, 0, 0, time.UTC),
	}
	m := convertGameFromDomain(g)
	assert.Equal(t, "2024-03-02", m.Day)

	got, err := convertGameToDomain(m)
	require.NoError(t, err)
	assert.Equal(t, g, got)
}

func TestConvertRecordSlots(t *testing.T) {
	seasonID := uuid.New()
	rec := domain.RatingRecord{
		GameID:       uuid.New(),
		PlayerID:     uuid.New(),
		RatingBefore: 500,
		RatingAfter:  512.5,
		Delta:        12.5,
		Win:          true,
		Probationary: true,
	}
	m := convertRecordFromDomain(rec, seasonID, 2)
	assert.Equal(t, int32(2), m.Slot)
	assert.Equal(t, seasonID.String(), m.SeasonID)

	got, err := convertRecordsToDomain([]model.RatingHistory{m})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, rec, got[0])
}
