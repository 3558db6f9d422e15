package refdata_test

import (
	"testing"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/refdata"
	"shipping/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustRateCard(
	t *testing.T,
	routeID, serviceID kernel.UUID,
	rate int64,
	effective time.Time,
	deletion *time.Time,
) refdata.RateCard {
	t.Helper()
	card, err := refdata.NewRateCard(
		kernel.NewUUID(), routeID, serviceID,
		decimal.NewFromInt(rate), effective, deletion,
	)
	require.NoError(t, err)
	return card
}

func TestNewRateCard(t *testing.T) {
	routeID := kernel.NewUUID()
	serviceID := kernel.NewUUID()

	t.Run("should create open-ended card", func(t *testing.T) {
		card, err := refdata.NewRateCard(
			kernel.NewUUID(), routeID, serviceID,
			decimal.NewFromInt(25000), date(2024, time.January, 1), nil,
		)

		require.NoError(t, err)
		assert.True(t, card.BaseRatePerKg().Equal(decimal.NewFromInt(25000)))
		assert.Nil(t, card.DeletionDate())
	})

	t.Run("should reject non-positive rate", func(t *testing.T) {
		_, err := refdata.NewRateCard(
			kernel.NewUUID(), routeID, serviceID,
			decimal.Zero, date(2024, time.January, 1), nil,
		)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject missing effective date", func(t *testing.T) {
		_, err := refdata.NewRateCard(
			kernel.NewUUID(), routeID, serviceID,
			decimal.NewFromInt(100), time.Time{}, nil,
		)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject deletion date before effective date", func(t *testing.T) {
		deletion := date(2023, time.December, 31)
		_, err := refdata.NewRateCard(
			kernel.NewUUID(), routeID, serviceID,
			decimal.NewFromInt(100), date(2024, time.January, 1), &deletion,
		)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject invalid route id", func(t *testing.T) {
		_, err := refdata.NewRateCard(
			kernel.NewUUID(), kernel.UUID{}, serviceID,
			decimal.NewFromInt(100), date(2024, time.January, 1), nil,
		)

		require.Error(t, err)
	})
}

func TestRateCard_ActiveAt(t *testing.T) {
	routeID := kernel.NewUUID()
	serviceID := kernel.NewUUID()
	deletion := date(2024, time.July, 1)
	card := mustRateCard(t, routeID, serviceID, 25000, date(2024, time.January, 1), &deletion)

	t.Run("inactive before effective date", func(t *testing.T) {
		assert.False(t, card.ActiveAt(date(2023, time.December, 31)))
	})

	t.Run("active on effective date", func(t *testing.T) {
		assert.True(t, card.ActiveAt(date(2024, time.January, 1)))
	})

	t.Run("active inside window", func(t *testing.T) {
		assert.True(t, card.ActiveAt(date(2024, time.March, 15)))
	})

	t.Run("inactive on deletion date", func(t *testing.T) {
		// Half-open window: the deletion date itself is excluded.
		assert.False(t, card.ActiveAt(date(2024, time.July, 1)))
	})

	t.Run("open-ended card stays active", func(t *testing.T) {
		open := mustRateCard(t, routeID, serviceID, 25000, date(2024, time.January, 1), nil)
		assert.True(t, open.ActiveAt(date(2030, time.January, 1)))
	})
}

func TestRateCard_Overlaps(t *testing.T) {
	routeID := kernel.NewUUID()
	serviceID := kernel.NewUUID()

	t.Run("adjacent windows do not overlap", func(t *testing.T) {
		cut := date(2024, time.July, 1)
		a := mustRateCard(t, routeID, serviceID, 100, date(2024, time.January, 1), &cut)
		b := mustRateCard(t, routeID, serviceID, 120, cut, nil)

		assert.False(t, a.Overlaps(b))
		assert.False(t, b.Overlaps(a))
	})

	t.Run("intersecting windows overlap", func(t *testing.T) {
		cut := date(2024, time.July, 1)
		a := mustRateCard(t, routeID, serviceID, 100, date(2024, time.January, 1), &cut)
		b := mustRateCard(t, routeID, serviceID, 120, date(2024, time.June, 1), nil)

		assert.True(t, a.Overlaps(b))
		assert.True(t, b.Overlaps(a))
	})

	t.Run("different pairs never overlap", func(t *testing.T) {
		a := mustRateCard(t, routeID, serviceID, 100, date(2024, time.January, 1), nil)
		b := mustRateCard(t, kernel.NewUUID(), serviceID, 120, date(2024, time.January, 1), nil)

		assert.False(t, a.Overlaps(b))
	})
}

func TestRateCard_Validate(t *testing.T) {
	t.Run("zero value fails validation", func(t *testing.T) {
		var card refdata.RateCard

		err := card.Validate()

		require.Error(t, err)
		assert.Equal(t, refdata.ErrRateCardIsNotConstructed, err)
	})
}
