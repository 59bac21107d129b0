package memory

import (
	"context"
	"testing"
	"time"

	"github.com/andresuchdata/kopik/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jan20 = time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)

func TestFoodWasteRepositoryKeepsInsertOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewFoodWasteRepository()

	first := &domain.FoodWaste{ItemID: "milk", WasteDate: jan20, Reason: domain.WasteExpired}
	second := &domain.FoodWaste{ItemID: "flour", WasteDate: jan20.AddDate(0, 0, -3), Reason: domain.WasteDamaged}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
	assert.False(t, first.CreatedAt.IsZero())

	rows, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "milk", rows[0].ItemID)

	rows[0].ItemID = "mutated"
	again, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "milk", again[0].ItemID, "list returns a copy")
}

func TestWeatherReadingRepositoryListsNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewWeatherReadingRepository()

	for _, offset := range []int{-2, 0, -1} {
		require.NoError(t, repo.Create(ctx, &domain.WeatherReading{
			Date: jan20.AddDate(0, 0, offset), Condition: domain.ConditionCloudy,
		}))
	}
	// same date as the newest, recorded later
	require.NoError(t, repo.Create(ctx, &domain.WeatherReading{Date: jan20, Condition: domain.ConditionRainy}))

	readings, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, readings, 4)
	assert.Equal(t, domain.ConditionRainy, readings[0].Condition)
	assert.Equal(t, int64(4), readings[0].ID)
	assert.Equal(t, int64(2), readings[1].ID)
	assert.Equal(t, jan20.AddDate(0, 0, -2), readings[3].Date)
}

func TestEventAndSaleRepositories(t *testing.T) {
	ctx := context.Background()

	events := NewEventRepository()
	require.NoError(t, events.Create(ctx, &domain.Event{Name: "Marathon", StartDate: jan20.AddDate(0, 0, 9)}))
	require.NoError(t, events.Create(ctx, &domain.Event{Name: "Festival", StartDate: jan20.AddDate(0, 0, 2)}))
	listed, err := events.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "Marathon", listed[0].Name)
	assert.Equal(t, int64(2), listed[1].ID)

	sales := NewSaleRepository()
	require.NoError(t, sales.Create(ctx, &domain.Sale{ItemID: "coffee", SaleDate: jan20.Add(-48 * time.Hour)}))
	require.NoError(t, sales.Create(ctx, &domain.Sale{ItemID: "milk", SaleDate: jan20.Add(9 * time.Hour)}))
	got, err := sales.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "milk", got[0].ItemID)
	assert.Equal(t, "coffee", got[1].ItemID)
}
