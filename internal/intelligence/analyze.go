// Package intelligence runs deterministic analysis passes over the operational
// records (low stock, food waste, observed weather, events, sales and open orders)
// and turns their findings into alerts and suggested actions.
package intelligence

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/andresuchdata/kopik/backend-go/internal/domain"
)

// Alert categories, one per analysis pass
const (
	CategoryInventory = "inventory"
	CategoryFoodWaste = "food_waste"
	CategoryWeather   = "weather"
	CategoryDemand    = "demand"
	CategorySales     = "sales"
	CategoryOrders    = "orders"
)

// Thresholds used by the passes
const (
	highWasteCost        = 50.0
	expiredWasteCost     = 30.0
	rainyPrecipitation   = 70.0
	hotHighF             = 80.0
	coldHighF            = 40.0
	majorEventAttendance = 100
	eventHorizonDays     = 7
	urgentEventDays      = 3
	topSellerShare       = 0.3
	underperformerShare  = 0.02
	restockConfidence    = 87.0
)

// Snapshot is the state one analysis looks at. Each collection is already
// narrowed to its window by the caller.
type Snapshot struct {
	Today      time.Time
	TotalItems int
	// LowStock holds items at or below their reorder point.
	LowStock []domain.InventoryItem
	// Waste covers the last week.
	Waste []domain.FoodWaste
	// Weather covers the last week, newest first.
	Weather []domain.WeatherReading
	// Events start within the next two weeks.
	Events []domain.Event
	// Sales cover the last week; SalesTrend the last thirty days.
	Sales      []domain.Sale
	SalesTrend []domain.Sale
	// Orders are pending or delayed.
	Orders []domain.Order
}

// Alert is one condition that needs attention
type Alert struct {
	Type     string          `json:"type"`
	Message  string          `json:"message"`
	Priority domain.Priority `json:"priority"`
	Category string          `json:"category"`
}

// Solution is a suggested action for an alert
type Solution struct {
	Description  string          `json:"description"`
	Confidence   float64         `json:"confidence"`
	ProfitImpact float64         `json:"profit_impact"`
	Priority     domain.Priority `json:"priority"`
	Category     string          `json:"category"`
	Source       string          `json:"source"`
}

// Findings is what one or more passes produced, in pass order
type Findings struct {
	Alerts    []Alert
	Solutions []Solution
}

func (f *Findings) add(alert Alert, solutions ...Solution) {
	f.Alerts = append(f.Alerts, alert)
	for _, s := range solutions {
		s.Priority = alert.Priority
		s.Category = alert.Category
		s.Source = alert.Type
		f.Solutions = append(f.Solutions, s)
	}
}

// HighPriorityCount counts the high-priority alerts.
func (f Findings) HighPriorityCount() int {
	n := 0
	for _, a := range f.Alerts {
		if a.Priority == domain.PriorityHigh {
			n++
		}
	}
	return n
}

// CountCategory counts the alerts of one category.
func (f Findings) CountCategory(category string) int {
	n := 0
	for _, a := range f.Alerts {
		if a.Category == category {
			n++
		}
	}
	return n
}

// Pass is one independent analysis over a snapshot
type Pass struct {
	Name string
	Run  func(s Snapshot, f *Findings)
}

// DefaultPasses returns the passes in reporting order.
func DefaultPasses() []Pass {
	return []Pass{
		{Name: "inventory", Run: analyzeInventory},
		{Name: "food_waste", Run: analyzeFoodWaste},
		{Name: "weather", Run: analyzeWeather},
		{Name: "events", Run: analyzeEvents},
		{Name: "sales_trends", Run: analyzeSalesTrends},
		{Name: "orders", Run: analyzeOrders},
	}
}

// Analyze runs passes (DefaultPasses when none are given) over the snapshot.
func Analyze(s Snapshot, passes ...Pass) Findings {
	if len(passes) == 0 {
		passes = DefaultPasses()
	}
	var f Findings
	for _, p := range passes {
		p.Run(s, &f)
	}
	return f
}

func analyzeInventory(s Snapshot, f *Findings) {
	for _, item := range s.LowStock {
		priority := domain.PriorityMedium
		if item.CurrentStock == 0 {
			priority = domain.PriorityHigh
		}
		f.add(Alert{
			Type:     "low_stock",
			Message:  fmt.Sprintf("Low stock: %s (%s units remaining)", item.Name, formatQuantity(item.CurrentStock)),
			Priority: priority,
			Category: CategoryInventory,
		}, Solution{
			Description:  fmt.Sprintf("Reorder %s immediately or source from alternative supplier", item.Name),
			Confidence:   restockConfidence,
			ProfitImpact: item.CostPerUnit * item.DailyUsage * 7,
		})
	}
}

func analyzeFoodWaste(s Snapshot, f *Findings) {
	if len(s.Waste) == 0 {
		return
	}

	var items []string
	byItem := map[string]float64{}
	expired := 0.0
	for _, w := range s.Waste {
		if _, seen := byItem[w.ItemID]; !seen {
			items = append(items, w.ItemID)
		}
		byItem[w.ItemID] += w.CostImpact
		if w.Reason == domain.WasteExpired {
			expired += w.CostImpact
		}
	}

	for _, id := range items {
		cost := byItem[id]
		if cost <= highWasteCost {
			continue
		}
		f.add(Alert{
			Type:     "high_waste",
			Message:  fmt.Sprintf("High waste detected for %s: $%.2f in the last week", id, cost),
			Priority: domain.PriorityHigh,
			Category: CategoryFoodWaste,
		}, Solution{
			Description:  fmt.Sprintf("Implement portion control and demand forecasting for %s", id),
			Confidence:   80,
			ProfitImpact: cost * 0.7,
		})
	}

	if expired > expiredWasteCost {
		f.add(Alert{
			Type:     "expiration_waste",
			Message:  fmt.Sprintf("High expiration waste: $%.2f in expired products", expired),
			Priority: domain.PriorityMedium,
			Category: CategoryFoodWaste,
		}, Solution{
			Description:  "Implement FIFO rotation and better inventory tracking",
			Confidence:   85,
			ProfitImpact: expired * 0.8,
		})
	}
}

func analyzeWeather(s Snapshot, f *Findings) {
	if len(s.Weather) == 0 {
		return
	}
	current := s.Weather[0]

	alert := Alert{Type: "weather_opportunity", Priority: domain.PriorityMedium, Category: CategoryWeather}
	switch {
	case current.Condition == domain.ConditionRainy || current.PrecipitationChance > rainyPrecipitation:
		alert.Message = fmt.Sprintf("Rainy weather expected: %.0f%% precipitation chance", current.PrecipitationChance)
		f.add(alert, Solution{
			Description:  "Increase hot beverage inventory and comfort food options",
			Confidence:   75,
			ProfitImpact: 200,
		})
	case current.TemperatureHigh > hotHighF:
		alert.Message = fmt.Sprintf("Hot weather expected: %.0f°F high temperature", current.TemperatureHigh)
		f.add(alert, Solution{
			Description:  "Increase cold beverage and ice cream inventory",
			Confidence:   80,
			ProfitImpact: 300,
		})
	case current.TemperatureHigh < coldHighF:
		alert.Message = fmt.Sprintf("Cold weather expected: %.0f°F high temperature", current.TemperatureHigh)
		f.add(alert, Solution{
			Description:  "Increase hot food and warm beverage inventory",
			Confidence:   75,
			ProfitImpact: 250,
		})
	}
}

func analyzeEvents(s Snapshot, f *Findings) {
	today := dayStart(s.Today)
	for _, e := range s.Events {
		daysUntil := int(dayStart(e.StartDate).Sub(today).Hours() / 24)
		if e.ExpectedAttendance <= majorEventAttendance || daysUntil > eventHorizonDays {
			continue
		}

		priority := domain.PriorityMedium
		if daysUntil <= urgentEventDays {
			priority = domain.PriorityHigh
		}
		increase := math.Min(float64(e.ExpectedAttendance)*0.1, 100)
		profit := float64(e.ExpectedAttendance) * 5.0 * e.EffectiveMultiplier()

		solutions := []Solution{{
			Description:  fmt.Sprintf("Increase inventory by %.0f%% for %s", increase, e.Name),
			Confidence:   85,
			ProfitImpact: profit,
		}}
		switch e.EventType {
		case domain.EventSports:
			solutions = append(solutions, Solution{
				Description:  "Stock up on quick snacks, beverages, and finger foods",
				Confidence:   90,
				ProfitImpact: profit * 0.3,
			})
		case domain.EventFestival:
			solutions = append(solutions, Solution{
				Description:  "Prepare special menu items and increase beverage stock",
				Confidence:   85,
				ProfitImpact: profit * 0.4,
			})
		}

		f.add(Alert{
			Type:     "upcoming_event",
			Message:  fmt.Sprintf("Major event in %d days: %s (%d expected)", daysUntil, e.Name, e.ExpectedAttendance),
			Priority: priority,
			Category: CategoryDemand,
		}, solutions...)
	}
}

type itemRevenue struct {
	itemID  string
	revenue float64
}

func analyzeSalesTrends(s Snapshot, f *Findings) {
	if len(s.SalesTrend) == 0 {
		return
	}

	var ranked []itemRevenue
	index := map[string]int{}
	total := 0.0
	for _, sale := range s.SalesTrend {
		i, ok := index[sale.ItemID]
		if !ok {
			i = len(ranked)
			index[sale.ItemID] = i
			ranked = append(ranked, itemRevenue{itemID: sale.ItemID})
		}
		ranked[i].revenue += sale.TotalAmount
		total += sale.TotalAmount
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].revenue > ranked[j].revenue })

	top := ranked[0]
	if top.revenue > total*topSellerShare {
		f.add(Alert{
			Type:     "high_performer",
			Message:  fmt.Sprintf("Top seller %s generates $%.2f (high dependency)", top.itemID, top.revenue),
			Priority: domain.PriorityMedium,
			Category: CategorySales,
		}, Solution{
			Description:  fmt.Sprintf("Ensure adequate stock of top performer %s", top.itemID),
			Confidence:   95,
			ProfitImpact: top.revenue * 0.1,
		})
	}

	if len(ranked) <= 3 {
		return
	}
	for _, item := range ranked[len(ranked)-3:] {
		if item.revenue >= total*underperformerShare {
			continue
		}
		f.add(Alert{
			Type:     "underperformer",
			Message:  fmt.Sprintf("Low sales for %s: only $%.2f", item.itemID, item.revenue),
			Priority: domain.PriorityLow,
			Category: CategorySales,
		}, Solution{
			Description:  fmt.Sprintf("Consider promoting or discontinuing %s", item.itemID),
			Confidence:   70,
			ProfitImpact: 50,
		})
	}
}

func analyzeOrders(s Snapshot, f *Findings) {
	today := dayStart(s.Today)

	var delayed, overdue []domain.Order
	for _, o := range s.Orders {
		switch {
		case o.Status == domain.OrderDelayed:
			delayed = append(delayed, o)
		case o.ExpectedDelivery != nil && dayStart(*o.ExpectedDelivery).Before(today):
			overdue = append(overdue, o)
		}
	}

	if len(delayed) > 0 {
		value := orderValue(delayed)
		f.add(Alert{
			Type:     "delayed_orders",
			Message:  fmt.Sprintf("%d delayed orders worth $%.2f", len(delayed), value),
			Priority: domain.PriorityHigh,
			Category: CategoryOrders,
		}, Solution{
			Description:  "Contact suppliers for delayed orders and find alternative sources",
			Confidence:   85,
			ProfitImpact: value * 0.1,
		})
	}
	if len(overdue) > 0 {
		value := orderValue(overdue)
		f.add(Alert{
			Type:     "overdue_orders",
			Message:  fmt.Sprintf("%d overdue orders worth $%.2f", len(overdue), value),
			Priority: domain.PriorityHigh,
			Category: CategoryOrders,
		}, Solution{
			Description:  "Immediate follow-up on overdue deliveries and emergency sourcing",
			Confidence:   90,
			ProfitImpact: value * 0.2,
		})
	}
}

func orderValue(orders []domain.Order) float64 {
	total := 0.0
	for _, o := range orders {
		total += o.TotalCost
	}
	return total
}

func dayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// formatQuantity drops a trailing ".0" from whole quantities.
func formatQuantity(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%g", v)
}
