package seed

import (
	"context"
	"testing"
	"time"

	"github.com/andresuchdata/kopik/backend-go/internal/domain"
	"github.com/andresuchdata/kopik/backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoDatasetIsValid(t *testing.T) {
	data := Demo(time.Date(2024, 1, 20, 15, 0, 0, 0, time.UTC))

	seen := map[string]bool{}
	for _, item := range data.Inventory {
		require.NoError(t, item.Validate(), item.ItemID)
		assert.False(t, seen[item.ItemID], "duplicate %s", item.ItemID)
		seen[item.ItemID] = true
	}
	for _, o := range data.Orders {
		require.NoError(t, o.Validate())
		assert.True(t, seen[o.ItemID], "order references unknown item %s", o.ItemID)
	}
	for _, s := range data.Signals {
		require.NoError(t, s.Validate())
	}
	for _, r := range data.Recommendations {
		require.NoError(t, r.Validate())
	}
	for _, w := range data.FoodWaste {
		require.NoError(t, w.Validate())
		assert.True(t, seen[w.ItemID], "waste references unknown item %s", w.ItemID)
	}
	for _, w := range data.WeatherReadings {
		require.NoError(t, w.Validate())
	}
	for _, e := range data.Events {
		require.NoError(t, e.Validate())
	}
	for _, s := range data.Sales {
		require.NoError(t, s.Validate())
		assert.True(t, seen[s.ItemID], "sale references unknown item %s", s.ItemID)
	}

	assert.Equal(t, time.Date(2024, 1, 18, 0, 0, 0, 0, time.UTC), data.Orders[0].OrderDate)
	assert.Equal(t, time.Date(2024, 1, 22, 10, 0, 0, 0, time.UTC), data.Events[0].StartDate)
	assert.Equal(t, time.Date(2024, 1, 20, 9, 30, 0, 0, time.UTC), data.Sales[0].SaleDate)
}

func TestLoadIntoMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	data := Demo(time.Now())

	require.NoError(t, Load(ctx, store, data))

	items, err := store.Inventory.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, len(data.Inventory))
	assert.Equal(t, "flour_all_purpose", items[0].ItemID)

	recs, err := store.Recommendations.List(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "inventory", recs[0].Category)

	sales, err := store.Sales.List(ctx)
	require.NoError(t, err)
	require.Len(t, sales, len(data.Sales))
	assert.Equal(t, "coffee_beans_premium", sales[0].ItemID, "newest sale first")
	assert.Equal(t, int64(1), sales[0].ID)

	readings, err := store.WeatherReadings.List(ctx)
	require.NoError(t, err)
	require.Len(t, readings, len(data.WeatherReadings))
	assert.Equal(t, domain.ConditionSunny, readings[0].Condition)

	// reloading skips existing inventory rather than failing
	require.NoError(t, Load(ctx, store, Dataset{Inventory: data.Inventory}))
	items, err = store.Inventory.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, len(data.Inventory))

	got, err := store.Inventory.Get(ctx, "ice_cream_base")
	require.NoError(t, err)
	assert.Equal(t, 2.0, got.Sensitivity("sunny"))
	assert.Equal(t, domain.StringList{"Milkshakes", "Sundaes", "Floats"}, got.UsedIn)
}
