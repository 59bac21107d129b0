// Package seed provides the demo café dataset and loads it into a store.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/andresuchdata/kopik/backend-go/internal/domain"
	"github.com/andresuchdata/kopik/backend-go/internal/repository"
	"github.com/rs/zerolog/log"
)

// Dataset is a full set of records to load
type Dataset struct {
	Inventory       []domain.InventoryItem
	Orders          []domain.Order
	Signals         []domain.IntelligenceSignal
	Recommendations []domain.Recommendation
	FoodWaste       []domain.FoodWaste
	WeatherReadings []domain.WeatherReading
	Events          []domain.Event
	Sales           []domain.Sale
}

func f(v float64) *float64 { return &v }

func day(t time.Time, offset int) *time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
	return &d
}

// clock returns the given time of day offset days from today.
func clock(today time.Time, offset, hour, minute int) time.Time {
	return day(today, offset).Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func at(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return &t
}

// Demo returns the demo dataset. Orders, waste, weather, events and sales are dated
// relative to today.
func Demo(today time.Time) Dataset {
	return Dataset{
		Inventory: []domain.InventoryItem{
			{
				ItemID: "flour_all_purpose", SKU: "FLOUR-001", Name: "All-Purpose Flour",
				Category: "Baking Ingredients", CurrentStock: 15, Unit: "lbs", DailyUsage: 3,
				CostPerUnit: 2.50, ReorderPoint: f(10), ParLevel: f(40), Supplier: "Local Mill Co",
				WeatherSensitivity: domain.WeatherSensitivity{"sunny": 1.0, "rainy": 1.2, "hot": 0.9, "cloudy": 1.1},
				UsedIn:             domain.StringList{"Pastries", "Bread", "Cookies"},
				LastOrderDate:      at("2024-01-15T00:00:00Z"),
			},
			{
				ItemID: "coffee_beans_premium", SKU: "COFFEE-001", Name: "Premium Coffee Beans",
				Category: "Beverages", CurrentStock: 8, Unit: "lbs", DailyUsage: 4,
				CostPerUnit: 15.00, ReorderPoint: f(12), ParLevel: f(20), Supplier: "Mountain Coffee Roasters",
				WeatherSensitivity: domain.WeatherSensitivity{"sunny": 0.8, "rainy": 1.3, "hot": 0.7, "cloudy": 1.2},
				UsedIn:             domain.StringList{"Espresso", "Latte", "Americano"},
				LastOrderDate:      at("2024-01-10T00:00:00Z"),
			},
			{
				ItemID: "milk_whole", SKU: "MILK-001", Name: "Whole Milk",
				Category: "Dairy", CurrentStock: 5, Unit: "gallons", DailyUsage: 2,
				CostPerUnit: 4.20, ReorderPoint: f(8), ParLevel: f(40), Supplier: "Fresh Dairy Farms",
				WeatherSensitivity: domain.WeatherSensitivity{"sunny": 1.2, "rainy": 0.9, "hot": 1.4, "cloudy": 1.0},
				UsedIn:             domain.StringList{"Lattes", "Cappuccinos", "Baking"},
				LastOrderDate:      at("2024-01-12T00:00:00Z"),
			},
			{
				ItemID: "ice_cream_base", SKU: "ICE-001", Name: "Ice Cream Base",
				Category: "Frozen", CurrentStock: 2, Unit: "gallons", DailyUsage: 1.5,
				CostPerUnit: 8.75, ReorderPoint: f(4), ParLevel: f(10), Supplier: "Creamy Delights",
				WeatherSensitivity: domain.WeatherSensitivity{"sunny": 2.0, "rainy": 0.3, "hot": 2.5, "cloudy": 0.8},
				UsedIn:             domain.StringList{"Milkshakes", "Sundaes", "Floats"},
				LastOrderDate:      at("2024-01-08T00:00:00Z"),
			},
			{
				ItemID: "sugar_granulated", SKU: "SUGAR-001", Name: "Sugar",
				Category: "Baking Ingredients", CurrentStock: 12, Unit: "lbs", DailyUsage: 2,
				CostPerUnit: 1.80, ReorderPoint: f(8), ParLevel: f(30), Supplier: "Sweet Supply Co",
				WeatherSensitivity: domain.WeatherSensitivity{"sunny": 1.0, "rainy": 1.0, "hot": 1.0, "cloudy": 1.0},
				UsedIn:             domain.StringList{"Pastries", "Coffee", "Desserts"},
				LastOrderDate:      at("2024-01-14T00:00:00Z"),
			},
		},
		Orders: []domain.Order{
			{
				ItemID: "coffee_beans_premium", Supplier: "Mountain Coffee Roasters",
				QuantityOrdered: 20, UnitCost: 15.00, TotalCost: 300.00,
				OrderDate: *day(today, -2), ExpectedDelivery: day(today, 2), Status: domain.OrderPending,
			},
			{
				ItemID: "ice_cream_base", Supplier: "Creamy Delights",
				QuantityOrdered: 10, UnitCost: 8.75, TotalCost: 87.50,
				OrderDate: *day(today, -5), ExpectedDelivery: day(today, -1), Status: domain.OrderDelayed,
				Notes: "Supplier having delivery issues",
			},
			{
				ItemID: "flour_all_purpose", Supplier: "Local Mill Co",
				QuantityOrdered: 100, UnitCost: 2.50, TotalCost: 250.00,
				OrderDate: *day(today, -7), ExpectedDelivery: day(today, -5), ActualDelivery: day(today, -5),
				Status: domain.OrderDelivered,
			},
			{
				ItemID: "milk_whole", Supplier: "Fresh Dairy Farms",
				QuantityOrdered: 15, UnitCost: 4.20, TotalCost: 63.00,
				OrderDate: *day(today, -8), ExpectedDelivery: day(today, -3), Status: domain.OrderPending,
				Notes: "Order overdue - need to follow up",
			},
		},
		Signals: []domain.IntelligenceSignal{
			{
				Name: "Taylor Swift Concert", Category: "Event",
				ImpactDescription: "Major concert expected to drive 300% foot traffic increase",
				ImpactValue:       f(300), ActiveDate: at("2024-02-15T19:00:00Z"),
				Details: domain.JSONMap{
					"venue": "Downtown Arena", "expected_attendance": 50000,
					"date": "2024-02-15", "proximity": "0.5 miles",
				},
			},
			{
				Name: "Payday Cycle", Category: "Economic",
				ImpactDescription: "Mid-month payday increases premium product sales by 40%",
				ImpactValue:       f(40), ActiveDate: at("2024-01-15T00:00:00Z"),
				Details: domain.JSONMap{
					"cycle_day": 15, "affected_categories": []interface{}{"Premium Coffee", "Desserts"},
					"duration_days": 3,
				},
			},
			{
				Name: "Local Marathon", Category: "Event",
				ImpactDescription: "Running event increases healthy option and hydration sales",
				ImpactValue:       f(120), ActiveDate: at("2024-01-20T07:00:00Z"),
				Details: domain.JSONMap{
					"route_proximity": "Main Street", "participants": 5000, "start_time": "07:00",
				},
			},
			{
				Name: "New Year Resolutions", Category: "Health",
				ImpactDescription: "January health trends boost low-cal and organic sales",
				ImpactValue:       f(65), ActiveDate: at("2024-01-01T00:00:00Z"),
				Details: domain.JSONMap{
					"trend_duration": "January-February",
					"affected_items": []interface{}{"Salads", "Smoothies", "Herbal Teas"},
				},
			},
		},
		Recommendations: []domain.Recommendation{
			{
				Priority: domain.PriorityHigh, Title: "Reorder Coffee Beans Immediately",
				Description:  "Current stock (8 lbs) is below reorder point (12 lbs). With daily usage of 4 lbs, you'll run out in 2 days.",
				ProfitImpact: 200, Confidence: 96, ActionRequired: true, Category: "inventory",
				TriggerSources: domain.StringList{"Low Stock Alert", "Usage Pattern Analysis"},
			},
			{
				Priority: domain.PriorityMedium, Title: "Increase Ice Cream Base for Weekend",
				Description:  "Weather forecast shows sunny weekend ahead. Historical data shows 150% increase in cold dessert sales.",
				ProfitImpact: 320, Confidence: 89, ActionRequired: true, Category: "weather",
				TriggerSources: domain.StringList{"Weather Forecast", "Historical Sales Data"},
			},
			{
				Priority: domain.PriorityLow, Title: "Optimize Milk Order Timing",
				Description:  "Consider ordering milk on Mondays instead of Fridays to ensure freshness during peak mid-week sales.",
				ProfitImpact: 45, Confidence: 74, ActionRequired: false, Category: "inventory",
				TriggerSources: domain.StringList{"Sales Pattern Analysis", "Freshness Tracking"},
			},
		},
		FoodWaste: []domain.FoodWaste{
			{
				ItemID: "milk_whole", WasteDate: *day(today, -2), QuantityWasted: 4, Unit: "gallons",
				Reason: domain.WasteExpired, CostImpact: 16.80,
				PreventionNotes: "Order smaller batches mid-week",
			},
			{
				ItemID: "ice_cream_base", WasteDate: *day(today, -1), QuantityWasted: 2, Unit: "gallons",
				Reason: domain.WasteExpired, CostImpact: 17.50,
			},
			{
				ItemID: "flour_all_purpose", WasteDate: *day(today, -3), QuantityWasted: 5, Unit: "lbs",
				Reason: domain.WasteOverproduction, CostImpact: 12.50,
				PreventionNotes: "Bake to the weekday forecast",
			},
			{
				ItemID: "coffee_beans_premium", WasteDate: *day(today, -10), QuantityWasted: 1, Unit: "lbs",
				Reason: domain.WasteDamaged, CostImpact: 15.00,
			},
		},
		WeatherReadings: []domain.WeatherReading{
			{
				Date: *day(today, -2), TemperatureHigh: 65, TemperatureLow: 55, Condition: domain.ConditionRainy,
				PrecipitationChance: 80, Humidity: 85, WindSpeed: 15, Description: "Steady rain",
			},
			{
				Date: *day(today, -1), TemperatureHigh: 72, TemperatureLow: 60, Condition: domain.ConditionCloudy,
				PrecipitationChance: 30, Humidity: 60, WindSpeed: 12, Description: "Overcast",
			},
			{
				Date: *day(today, 0), TemperatureHigh: 85, TemperatureLow: 68, Condition: domain.ConditionSunny,
				PrecipitationChance: 10, Humidity: 45, WindSpeed: 8, Description: "Clear and hot",
			},
		},
		Events: []domain.Event{
			{
				Name: "Downtown Food Festival", EventType: domain.EventFestival,
				StartDate: clock(today, 2, 10, 0), EndDate: day(today, 3), ExpectedAttendance: 5000,
				LocationProximity: "0.3 miles", ImpactMultiplier: 1.5,
				Description: "Street food festival on Main Street",
			},
			{
				Name: "City Marathon", EventType: domain.EventSports,
				StartDate: clock(today, 10, 7, 0), ExpectedAttendance: 3000,
				LocationProximity: "Main Street", ImpactMultiplier: 1.3,
			},
			{
				Name: "Regional Tech Conference", EventType: domain.EventConference,
				StartDate: clock(today, -5, 9, 0), ExpectedAttendance: 800,
				LocationProximity: "1.2 miles", ImpactMultiplier: 1.1,
			},
		},
		Sales: []domain.Sale{
			{
				SaleDate: clock(today, 0, 9, 30), ItemID: "coffee_beans_premium", QuantitySold: 12,
				UnitPrice: 4.50, TotalAmount: 54.00, CustomerType: "regular", TimeOfDay: "morning",
			},
			{
				SaleDate: clock(today, -1, 14, 0), ItemID: "ice_cream_base", QuantitySold: 6,
				UnitPrice: 5.25, TotalAmount: 31.50, CustomerType: "walk_in", TimeOfDay: "afternoon",
			},
			{
				SaleDate: clock(today, -2, 8, 15), ItemID: "coffee_beans_premium", QuantitySold: 10,
				UnitPrice: 4.50, TotalAmount: 45.00, CustomerType: "regular", TimeOfDay: "morning",
			},
			{
				SaleDate: clock(today, -3, 11, 0), ItemID: "flour_all_purpose", QuantitySold: 8,
				UnitPrice: 3.00, TotalAmount: 24.00, CustomerType: "walk_in", TimeOfDay: "morning",
			},
			{
				SaleDate: clock(today, -20, 16, 0), ItemID: "milk_whole", QuantitySold: 5,
				UnitPrice: 2.00, TotalAmount: 10.00, CustomerType: "walk_in", TimeOfDay: "afternoon",
			},
			{
				SaleDate: clock(today, -40, 9, 0), ItemID: "coffee_beans_premium", QuantitySold: 20,
				UnitPrice: 4.50, TotalAmount: 90.00, CustomerType: "catering", TimeOfDay: "morning",
			},
		},
	}
}

// Load inserts every record of the dataset. Inventory items that already exist are skipped.
func Load(ctx context.Context, store *repository.Store, data Dataset) error {
	for i := range data.Inventory {
		item := data.Inventory[i]
		if err := store.Inventory.Create(ctx, &item); err != nil {
			if isConflict(err) {
				log.Debug().Str("item_id", item.ItemID).Msg("seed: inventory item exists, skipping")
				continue
			}
			return fmt.Errorf("seed inventory %s: %w", item.ItemID, err)
		}
	}
	for i := range data.Orders {
		order := data.Orders[i]
		if err := store.Orders.Create(ctx, &order); err != nil {
			return fmt.Errorf("seed order %s: %w", order.ItemID, err)
		}
	}
	for i := range data.Signals {
		signal := data.Signals[i]
		if err := store.Signals.Create(ctx, &signal); err != nil {
			return fmt.Errorf("seed signal %s: %w", signal.Name, err)
		}
	}
	if len(data.Recommendations) > 0 {
		if _, err := store.Recommendations.ReplaceAll(ctx, data.Recommendations); err != nil {
			return fmt.Errorf("seed recommendations: %w", err)
		}
	}

	for i := range data.FoodWaste {
		waste := data.FoodWaste[i]
		if err := store.FoodWaste.Create(ctx, &waste); err != nil {
			return fmt.Errorf("seed food waste %s: %w", waste.ItemID, err)
		}
	}
	for i := range data.WeatherReadings {
		reading := data.WeatherReadings[i]
		if err := store.WeatherReadings.Create(ctx, &reading); err != nil {
			return fmt.Errorf("seed weather reading %s: %w", reading.Date.Format(time.DateOnly), err)
		}
	}
	for i := range data.Events {
		event := data.Events[i]
		if err := store.Events.Create(ctx, &event); err != nil {
			return fmt.Errorf("seed event %s: %w", event.Name, err)
		}
	}
	for i := range data.Sales {
		sale := data.Sales[i]
		if err := store.Sales.Create(ctx, &sale); err != nil {
			return fmt.Errorf("seed sale %s: %w", sale.ItemID, err)
		}
	}

	log.Info().
		Int("inventory", len(data.Inventory)).
		Int("orders", len(data.Orders)).
		Int("signals", len(data.Signals)).
		Int("recommendations", len(data.Recommendations)).
		Int("food_waste", len(data.FoodWaste)).
		Int("weather_readings", len(data.WeatherReadings)).
		Int("events", len(data.Events)).
		Int("sales", len(data.Sales)).
		Msg("seed: demo data loaded")
	return nil
}

func isConflict(err error) bool {
	return errors.Is(err, domain.ErrConflict)
}
