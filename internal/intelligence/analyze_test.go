package intelligence

import (
	"testing"
	"time"

	"github.com/andresuchdata/kopik/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2024, 1, 20, 15, 0, 0, 0, time.UTC)

func date(offset int) time.Time {
	return time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func only(name string) Pass {
	for _, p := range DefaultPasses() {
		if p.Name == name {
			return p
		}
	}
	panic("no pass " + name)
}

func TestEmptySnapshotFindsNothing(t *testing.T) {
	f := Analyze(Snapshot{Today: today})
	assert.Empty(t, f.Alerts)
	assert.Empty(t, f.Solutions)
	assert.Equal(t, 0, f.HighPriorityCount())
}

func TestInventoryPass(t *testing.T) {
	f := Analyze(Snapshot{Today: today, LowStock: []domain.InventoryItem{
		{Name: "Whole Milk", CurrentStock: 5, DailyUsage: 2, CostPerUnit: 4.2},
		{Name: "Ice Cream Base", CurrentStock: 0, DailyUsage: 1.5, CostPerUnit: 8},
		{Name: "Oat Milk", CurrentStock: 2.5, DailyUsage: 1, CostPerUnit: 3},
	}}, only("inventory"))

	require.Len(t, f.Alerts, 3)
	assert.Equal(t, "Low stock: Whole Milk (5 units remaining)", f.Alerts[0].Message)
	assert.Equal(t, domain.PriorityMedium, f.Alerts[0].Priority)
	assert.Equal(t, domain.PriorityHigh, f.Alerts[1].Priority)
	assert.Equal(t, "Low stock: Oat Milk (2.5 units remaining)", f.Alerts[2].Message)

	require.Len(t, f.Solutions, 3)
	assert.InDelta(t, 58.8, f.Solutions[0].ProfitImpact, 1e-9)
	assert.Equal(t, 87.0, f.Solutions[0].Confidence)
	assert.Equal(t, CategoryInventory, f.Solutions[0].Category)
	assert.Equal(t, "low_stock", f.Solutions[0].Source)
}

func TestFoodWastePass(t *testing.T) {
	f := Analyze(Snapshot{Today: today, Waste: []domain.FoodWaste{
		{ItemID: "croissants", Reason: domain.WasteOverproduction, CostImpact: 30},
		{ItemID: "milk", Reason: domain.WasteExpired, CostImpact: 20},
		{ItemID: "croissants", Reason: domain.WasteExpired, CostImpact: 25},
	}}, only("food_waste"))

	require.Len(t, f.Alerts, 2)
	assert.Equal(t, "high_waste", f.Alerts[0].Type)
	assert.Equal(t, "High waste detected for croissants: $55.00 in the last week", f.Alerts[0].Message)
	assert.Equal(t, domain.PriorityHigh, f.Alerts[0].Priority)
	assert.Equal(t, "expiration_waste", f.Alerts[1].Type)
	assert.Equal(t, "High expiration waste: $45.00 in expired products", f.Alerts[1].Message)

	require.Len(t, f.Solutions, 2)
	assert.InDelta(t, 38.5, f.Solutions[0].ProfitImpact, 1e-9)
	assert.InDelta(t, 36.0, f.Solutions[1].ProfitImpact, 1e-9)
}

func TestFoodWasteBelowThresholds(t *testing.T) {
	f := Analyze(Snapshot{Today: today, Waste: []domain.FoodWaste{
		{ItemID: "milk", Reason: domain.WasteExpired, CostImpact: 30},
		{ItemID: "flour", Reason: domain.WasteDamaged, CostImpact: 50},
	}}, only("food_waste"))
	assert.Empty(t, f.Alerts)
}

func TestWeatherPass(t *testing.T) {
	cases := []struct {
		name    string
		reading domain.WeatherReading
		message string
		profit  float64
	}{
		{
			name:    "rainy condition",
			reading: domain.WeatherReading{Condition: domain.ConditionRainy, TemperatureHigh: 90, PrecipitationChance: 40},
			message: "Rainy weather expected: 40% precipitation chance",
			profit:  200,
		},
		{
			name:    "high precipitation",
			reading: domain.WeatherReading{Condition: domain.ConditionCloudy, TemperatureHigh: 60, PrecipitationChance: 75},
			message: "Rainy weather expected: 75% precipitation chance",
			profit:  200,
		},
		{
			name:    "hot",
			reading: domain.WeatherReading{Condition: domain.ConditionSunny, TemperatureHigh: 86},
			message: "Hot weather expected: 86°F high temperature",
			profit:  300,
		},
		{
			name:    "cold",
			reading: domain.WeatherReading{Condition: domain.ConditionCloudy, TemperatureHigh: 35},
			message: "Cold weather expected: 35°F high temperature",
			profit:  250,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			older := domain.WeatherReading{Condition: domain.ConditionRainy, PrecipitationChance: 100}
			f := Analyze(Snapshot{Today: today, Weather: []domain.WeatherReading{tc.reading, older}}, only("weather"))
			require.Len(t, f.Alerts, 1)
			assert.Equal(t, tc.message, f.Alerts[0].Message)
			require.Len(t, f.Solutions, 1)
			assert.Equal(t, tc.profit, f.Solutions[0].ProfitImpact)
		})
	}

	mild := Analyze(Snapshot{Today: today, Weather: []domain.WeatherReading{
		{Condition: domain.ConditionSunny, TemperatureHigh: 72, PrecipitationChance: 10},
	}}, only("weather"))
	assert.Empty(t, mild.Alerts)
}

func TestEventsPass(t *testing.T) {
	f := Analyze(Snapshot{Today: today, Events: []domain.Event{
		{Name: "Food Festival", EventType: domain.EventFestival, StartDate: date(2).Add(10 * time.Hour),
			ExpectedAttendance: 5000, ImpactMultiplier: 1.5},
		{Name: "Derby", EventType: domain.EventSports, StartDate: date(5), ExpectedAttendance: 400},
		{Name: "Book Club", StartDate: date(1), ExpectedAttendance: 20},
		{Name: "Marathon", EventType: domain.EventSports, StartDate: date(9), ExpectedAttendance: 3000},
	}}, only("events"))

	require.Len(t, f.Alerts, 2)
	assert.Equal(t, "Major event in 2 days: Food Festival (5000 expected)", f.Alerts[0].Message)
	assert.Equal(t, domain.PriorityHigh, f.Alerts[0].Priority)
	assert.Equal(t, domain.PriorityMedium, f.Alerts[1].Priority)

	require.Len(t, f.Solutions, 4)
	assert.Equal(t, "Increase inventory by 100% for Food Festival", f.Solutions[0].Description)
	assert.InDelta(t, 37500, f.Solutions[0].ProfitImpact, 1e-9)
	assert.Equal(t, "Prepare special menu items and increase beverage stock", f.Solutions[1].Description)
	assert.InDelta(t, 15000, f.Solutions[1].ProfitImpact, 1e-9)
	assert.Equal(t, "Increase inventory by 40% for Derby", f.Solutions[2].Description)
	assert.InDelta(t, 2000, f.Solutions[2].ProfitImpact, 1e-9, "unset multiplier is neutral")
	assert.Equal(t, "Stock up on quick snacks, beverages, and finger foods", f.Solutions[3].Description)
	assert.Equal(t, CategoryDemand, f.Solutions[3].Category)
}

func TestSalesTrendsPass(t *testing.T) {
	sales := []domain.Sale{
		{ItemID: "latte", TotalAmount: 500},
		{ItemID: "muffin", TotalAmount: 200},
		{ItemID: "bagel", TotalAmount: 150},
		{ItemID: "tea", TotalAmount: 140},
		{ItemID: "scone", TotalAmount: 5},
		{ItemID: "latte", TotalAmount: 5},
	}
	f := Analyze(Snapshot{Today: today, SalesTrend: sales}, only("sales_trends"))

	require.Len(t, f.Alerts, 2)
	assert.Equal(t, "high_performer", f.Alerts[0].Type)
	assert.Equal(t, "Top seller latte generates $505.00 (high dependency)", f.Alerts[0].Message)
	assert.InDelta(t, 50.5, f.Solutions[0].ProfitImpact, 1e-9)
	assert.Equal(t, "Low sales for scone: only $5.00", f.Alerts[1].Message)
	assert.Equal(t, domain.PriorityLow, f.Alerts[1].Priority)

	// three items or fewer never flag underperformers
	small := Analyze(Snapshot{Today: today, SalesTrend: sales[:3]}, only("sales_trends"))
	for _, a := range small.Alerts {
		assert.NotEqual(t, "underperformer", a.Type)
	}
}

func TestOrdersPass(t *testing.T) {
	f := Analyze(Snapshot{Today: today, Orders: []domain.Order{
		{ItemID: "ice", Status: domain.OrderDelayed, TotalCost: 87.5, ExpectedDelivery: ptr(date(-1))},
		{ItemID: "milk", Status: domain.OrderPending, TotalCost: 63, ExpectedDelivery: ptr(date(-3))},
		{ItemID: "coffee", Status: domain.OrderPending, TotalCost: 300, ExpectedDelivery: ptr(date(2))},
		{ItemID: "sugar", Status: domain.OrderPending, TotalCost: 10, ExpectedDelivery: ptr(date(0))},
	}}, only("orders"))

	require.Len(t, f.Alerts, 2)
	assert.Equal(t, "1 delayed orders worth $87.50", f.Alerts[0].Message)
	assert.Equal(t, "1 overdue orders worth $63.00", f.Alerts[1].Message)
	assert.Equal(t, 2, f.HighPriorityCount())
	assert.InDelta(t, 8.75, f.Solutions[0].ProfitImpact, 1e-9)
	assert.InDelta(t, 12.6, f.Solutions[1].ProfitImpact, 1e-9)
	assert.Equal(t, 2, f.CountCategory(CategoryOrders))
}

func TestAnalyzeRunsPassesInOrder(t *testing.T) {
	f := Analyze(Snapshot{
		Today:    today,
		LowStock: []domain.InventoryItem{{Name: "Milk", CurrentStock: 1}},
		Orders:   []domain.Order{{Status: domain.OrderDelayed, TotalCost: 10}},
		Weather:  []domain.WeatherReading{{Condition: domain.ConditionRainy}},
	})

	require.Len(t, f.Alerts, 3)
	assert.Equal(t, CategoryInventory, f.Alerts[0].Category)
	assert.Equal(t, CategoryWeather, f.Alerts[1].Category)
	assert.Equal(t, CategoryOrders, f.Alerts[2].Category)
}

func ptr(t time.Time) *time.Time { return &t }
