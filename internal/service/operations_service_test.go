package service

import (
	"context"
	"testing"
	"time"

	"github.com/andresuchdata/kopik/backend-go/internal/domain"
	"github.com/andresuchdata/kopik/backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFoodWasteRecentWindow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	recent, err := f.foodWaste.Recent(ctx, DefaultRecentDays)
	require.NoError(t, err)
	assert.Len(t, recent, 3)

	all, err := f.foodWaste.Recent(ctx, 30)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	today, err := f.foodWaste.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, today)

	_, err = f.foodWaste.Recent(ctx, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFoodWasteCreateDefaults(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.foodWaste.Create(ctx, &domain.FoodWaste{
		ItemID: "sugar_granulated", QuantityWasted: 1, Reason: " Expired ", CostImpact: 1.8,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.WasteExpired, created.Reason)
	assert.Equal(t, time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), created.WasteDate)

	today, err := f.foodWaste.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, today, 1)

	_, err = f.foodWaste.Create(ctx, &domain.FoodWaste{ItemID: "sugar_granulated", Reason: "expired", CostImpact: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestWeatherReadingCurrentAndRecent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	current, err := f.readings.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ConditionSunny, current.Condition)
	assert.Equal(t, 85.0, current.TemperatureHigh)

	recent, err := f.readings.Recent(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, recent, 2)

	created, err := f.readings.Create(ctx, &domain.WeatherReading{
		Date: testToday.AddDate(0, 0, 1), Condition: "RAINY", TemperatureHigh: 58, PrecipitationChance: 90,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ConditionRainy, created.Condition)

	current, err = f.readings.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, created.ID, current.ID)

	_, err = f.readings.Create(ctx, &domain.WeatherReading{Date: testToday, Condition: "sunny", Humidity: 140})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestWeatherReadingCurrentEmpty(t *testing.T) {
	svc := NewWeatherReadingService(memory.NewWeatherReadingRepository())

	_, err := svc.Current(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEventUpcoming(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	events, err := f.events.Upcoming(ctx, DefaultUpcomingDays)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "Downtown Food Festival", events[0].Name)
	assert.Equal(t, "City Marathon", events[1].Name)

	soon, err := f.events.Upcoming(ctx, 2)
	require.NoError(t, err)
	require.Len(t, soon, 1)
	assert.Equal(t, "Downtown Food Festival", soon[0].Name)

	_, err = f.events.Upcoming(ctx, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEventCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// earlier today still counts as upcoming
	created, err := f.events.Create(ctx, &domain.Event{
		Name: "Farmers Market", EventType: " Festival ", StartDate: testToday.Add(-6 * time.Hour),
		ExpectedAttendance: 400,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.EventFestival, created.EventType)
	assert.Equal(t, 1.0, created.ImpactMultiplier)

	events, err := f.events.Upcoming(ctx, DefaultUpcomingDays)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "Farmers Market", events[0].Name)

	end := testToday.AddDate(0, 0, -1)
	_, err = f.events.Create(ctx, &domain.Event{Name: "Backwards", StartDate: testToday, EndDate: &end})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSaleWindows(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	recent, err := f.sales.Recent(ctx, DefaultRecentDays)
	require.NoError(t, err)
	assert.Len(t, recent, 4)

	coffee, err := f.sales.ByItem(ctx, "coffee_beans_premium", DefaultItemSaleDays)
	require.NoError(t, err)
	require.Len(t, coffee, 2)
	assert.True(t, coffee[0].SaleDate.After(coffee[1].SaleDate), "newest first")

	coffee, err = f.sales.ByItem(ctx, "coffee_beans_premium", 60)
	require.NoError(t, err)
	assert.Len(t, coffee, 3)

	none, err := f.sales.ByItem(ctx, "unknown_item", DefaultItemSaleDays)
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = f.sales.ByItem(ctx, "coffee_beans_premium", -3)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSaleCreateDefaultsDate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.sales.Create(ctx, &domain.Sale{
		ItemID: "milk_whole", QuantitySold: 2, UnitPrice: 2, TotalAmount: 4, TimeOfDay: "Evening",
	})
	require.NoError(t, err)
	assert.Equal(t, testToday, created.SaleDate)
	assert.Equal(t, "evening", created.TimeOfDay)

	sales, err := f.sales.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, created.ID, sales[0].ID)
}
