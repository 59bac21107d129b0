package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/andresuchdata/kopik/backend-go/internal/domain"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var inventoryCols = []string{
	"id", "item_id", "sku", "name", "category", "current_stock", "unit", "daily_usage",
	"cost_per_unit", "reorder_point", "par_level", "threshold_pct", "supplier", "weather_sensitivity",
	"used_in", "last_order_date", "created_at", "updated_at",
}

var stamp = time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC)

func TestInventoryListDecodesJSONColumns(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`FROM inventory_items ORDER BY id`).WillReturnRows(
		sqlmock.NewRows(inventoryCols).
			AddRow(1, "milk_whole", "MILK-001", "Whole Milk", "Dairy", 5.0, "gallons", 2.0,
				4.2, 8.0, 40.0, nil, "Fresh Dairy Farms", []byte(`{"sunny":1.2,"hot":1.4}`),
				[]byte(`["Lattes","Baking"]`), stamp, stamp, stamp).
			AddRow(2, "sugar", "", "Sugar", "Baking", 12.0, "lbs", 2.0,
				1.8, nil, nil, nil, "", nil, nil, nil, stamp, stamp),
	)

	items, err := NewInventoryRepository(db).List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)

	milk := items[0]
	assert.Equal(t, "Whole Milk", milk.Name)
	require.NotNil(t, milk.ReorderPoint)
	assert.Equal(t, 8.0, *milk.ReorderPoint)
	assert.Nil(t, milk.ThresholdPct)
	assert.Equal(t, 1.4, milk.Sensitivity("hot"))
	assert.Equal(t, domain.StringList{"Lattes", "Baking"}, milk.UsedIn)
	require.NotNil(t, milk.LastOrderDate)

	assert.Nil(t, items[1].WeatherSensitivity)
	assert.Nil(t, items[1].LastOrderDate)
}

func TestInventoryCreateBindsJSONColumns(t *testing.T) {
	db, mock := newMockDB(t)
	item := &domain.InventoryItem{
		ItemID: "ice_cream_base", Name: "Ice Cream Base", Category: "Frozen", CurrentStock: 2,
		Unit: "gallons", DailyUsage: 1.5, CostPerUnit: 8.75, ReorderPoint: ptr(4),
		WeatherSensitivity: domain.WeatherSensitivity{"sunny": 2},
		UsedIn:             domain.StringList{"Sundaes"},
	}

	mock.ExpectQuery(`INSERT INTO inventory_items`).
		WithArgs("ice_cream_base", "", "Ice Cream Base", "Frozen", 2.0, "gallons", 1.5, 8.75,
			4.0, nil, nil, "", []byte(`{"sunny":2}`), []byte(`["Sundaes"]`), nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(7, stamp, stamp))

	require.NoError(t, NewInventoryRepository(db).Create(context.Background(), item))
	assert.Equal(t, int64(7), item.ID)
	assert.Equal(t, stamp, item.CreatedAt)
}

func TestInventoryCreateConflict(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`INSERT INTO inventory_items`).WillReturnError(&pq.Error{Code: uniqueViolation})

	err := NewInventoryRepository(db).Create(context.Background(), &domain.InventoryItem{ItemID: "milk_whole"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestInventoryReplaceAndGetMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInventoryRepository(db)

	mock.ExpectQuery(`UPDATE inventory_items SET`).
		WithArgs("ghost", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}))
	err := repo.Replace(context.Background(), &domain.InventoryItem{ItemID: "ghost"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	mock.ExpectQuery(`FROM inventory_items WHERE item_id = \$1`).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(inventoryCols))
	_, err = repo.Get(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInventoryDeleteExpectsARow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInventoryRepository(db)

	mock.ExpectExec(`DELETE FROM inventory_items WHERE item_id = \$1`).
		WithArgs("milk_whole").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), "milk_whole"))

	mock.ExpectExec(`DELETE FROM inventory_items WHERE item_id = \$1`).
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), "ghost"), domain.ErrNotFound)
}

func ptr(v float64) *float64 { return &v }
