package intelligence

import (
	"fmt"
	"time"

	"github.com/andresuchdata/kopik/backend-go/internal/domain"
	"github.com/shopspring/decimal"
)

// RecommendationCategory is the category analysis results are stored under.
const RecommendationCategory = "intelligence"

const (
	maxDashboardEntries = 10
	maxTitleLength      = 50
	estimatedTurnaround = "1-3 days"
	generatedTag        = "generated"
)

// Summary totals the findings
type Summary struct {
	TotalAlerts          int     `json:"total_alerts"`
	HighPriorityAlerts   int     `json:"high_priority_alerts"`
	TotalRecommendations int     `json:"total_recommendations"`
	TotalProfitImpact    float64 `json:"total_profit_impact"`
}

// DashboardAlert is an alert as listed on the dashboard
type DashboardAlert struct {
	ID         int             `json:"id"`
	Type       string          `json:"type"`
	Title      string          `json:"title"`
	Message    string          `json:"message"`
	Priority   domain.Priority `json:"priority"`
	Category   string          `json:"category"`
	Timestamp  time.Time       `json:"timestamp"`
	Actionable bool            `json:"actionable"`
}

// DashboardRecommendation is a solution as listed on the dashboard
type DashboardRecommendation struct {
	ID                      int             `json:"id"`
	Title                   string          `json:"title"`
	Description             string          `json:"description"`
	Confidence              float64         `json:"confidence"`
	ProfitImpact            float64         `json:"profit_impact"`
	Priority                domain.Priority `json:"priority"`
	EstimatedImplementation string          `json:"estimated_implementation"`
	Tags                    []string        `json:"tags"`
	TriggerSources          []string        `json:"trigger_sources"`
}

type InventoryStats struct {
	AlertsCount   int `json:"alerts_count"`
	LowStockItems int `json:"low_stock_items"`
	TotalItems    int `json:"total_items"`
}

type FoodWasteStats struct {
	AlertsCount     int     `json:"alerts_count"`
	TotalCostImpact float64 `json:"total_cost_impact"`
	WasteRecords    int     `json:"waste_records"`
}

type WeatherStats struct {
	AlertsCount      int      `json:"alerts_count"`
	CurrentCondition string   `json:"current_condition,omitempty"`
	Temperature      *float64 `json:"temperature,omitempty"`
}

type EventStats struct {
	AlertsCount             int `json:"alerts_count"`
	UpcomingEvents          int `json:"upcoming_events"`
	TotalExpectedAttendance int `json:"total_expected_attendance"`
}

type SalesStats struct {
	AlertsCount  int     `json:"alerts_count"`
	RecentSales  int     `json:"recent_sales"`
	TotalRevenue float64 `json:"total_revenue"`
}

type OrderStats struct {
	AlertsCount     int     `json:"alerts_count"`
	PendingOrders   int     `json:"pending_orders"`
	TotalOrderValue float64 `json:"total_order_value"`
}

// Categories breaks the findings down per data source
type Categories struct {
	Inventory InventoryStats `json:"inventory"`
	FoodWaste FoodWasteStats `json:"food_waste"`
	Weather   WeatherStats   `json:"weather"`
	Events    EventStats     `json:"events"`
	Sales     SalesStats     `json:"sales"`
	Orders    OrderStats     `json:"orders"`
}

// DataOverview counts the records each window held
type DataOverview struct {
	LowStockItems      int       `json:"low_stock_items"`
	RecentWasteRecords int       `json:"recent_waste_records"`
	UpcomingEvents     int       `json:"upcoming_events"`
	PendingOrders      int       `json:"pending_orders"`
	LastUpdated        time.Time `json:"last_updated"`
}

// Dashboard is the intelligence view over the latest snapshot
type Dashboard struct {
	Success         bool                      `json:"success"`
	Timestamp       time.Time                 `json:"timestamp"`
	Summary         Summary                   `json:"summary"`
	Alerts          []DashboardAlert          `json:"alerts"`
	Recommendations []DashboardRecommendation `json:"recommendations"`
	Categories      Categories                `json:"categories"`
	Insights        []string                  `json:"insights"`
	DataOverview    DataOverview              `json:"data_overview"`
}

// BuildDashboard lays the findings out for display. Alerts and recommendations are
// capped at the first ten of each, in pass order.
func BuildDashboard(s Snapshot, f Findings, now time.Time) *Dashboard {
	d := &Dashboard{
		Success:   true,
		Timestamp: now,
		Summary: Summary{
			TotalAlerts:          len(f.Alerts),
			HighPriorityAlerts:   f.HighPriorityCount(),
			TotalRecommendations: len(f.Solutions),
			TotalProfitImpact:    TotalProfitImpact(f),
		},
		Alerts:          make([]DashboardAlert, 0, min(len(f.Alerts), maxDashboardEntries)),
		Recommendations: make([]DashboardRecommendation, 0, min(len(f.Solutions), maxDashboardEntries)),
	}

	for i, a := range f.Alerts {
		if i == maxDashboardEntries {
			break
		}
		d.Alerts = append(d.Alerts, DashboardAlert{
			ID:         i + 1,
			Type:       a.Type,
			Title:      domain.Humanize(a.Type),
			Message:    a.Message,
			Priority:   a.Priority,
			Category:   a.Category,
			Timestamp:  now,
			Actionable: true,
		})
	}
	for i, sol := range f.Solutions {
		if i == maxDashboardEntries {
			break
		}
		d.Recommendations = append(d.Recommendations, DashboardRecommendation{
			ID:                      i + 1,
			Title:                   Title(sol.Description),
			Description:             sol.Description,
			Confidence:              round(sol.Confidence, 1),
			ProfitImpact:            round(sol.ProfitImpact, 2),
			Priority:                sol.Priority,
			EstimatedImplementation: estimatedTurnaround,
			Tags:                    []string{generatedTag, sol.Category},
			TriggerSources:          []string{domain.Humanize(sol.Source)},
		})
	}

	d.Categories = categories(s, f)
	d.Insights = insights(s, f)
	d.DataOverview = DataOverview{
		LowStockItems:      len(s.LowStock),
		RecentWasteRecords: len(s.Waste),
		UpcomingEvents:     len(s.Events),
		PendingOrders:      len(s.Orders),
		LastUpdated:        now,
	}
	return d
}

func categories(s Snapshot, f Findings) Categories {
	c := Categories{
		Inventory: InventoryStats{
			AlertsCount:   f.CountCategory(CategoryInventory),
			LowStockItems: len(s.LowStock),
			TotalItems:    s.TotalItems,
		},
		FoodWaste: FoodWasteStats{
			AlertsCount:     f.CountCategory(CategoryFoodWaste),
			TotalCostImpact: wasteCost(s.Waste),
			WasteRecords:    len(s.Waste),
		},
		Weather: WeatherStats{AlertsCount: f.CountCategory(CategoryWeather)},
		Events: EventStats{
			AlertsCount:             f.CountCategory(CategoryDemand),
			UpcomingEvents:          len(s.Events),
			TotalExpectedAttendance: attendance(s.Events),
		},
		Sales: SalesStats{
			AlertsCount: f.CountCategory(CategorySales),
			RecentSales: len(s.Sales),
		},
		Orders: OrderStats{
			AlertsCount:   f.CountCategory(CategoryOrders),
			PendingOrders: len(s.Orders),
		},
	}
	if len(s.Weather) > 0 {
		temp := s.Weather[0].TemperatureHigh
		c.Weather.CurrentCondition = s.Weather[0].Condition
		c.Weather.Temperature = &temp
	}

	revenue := decimal.Zero
	for _, sale := range s.Sales {
		revenue = revenue.Add(decimal.NewFromFloat(sale.TotalAmount))
	}
	c.Sales.TotalRevenue, _ = revenue.Round(2).Float64()
	c.Orders.TotalOrderValue = round(orderValue(s.Orders), 2)
	return c
}

func insights(s Snapshot, f Findings) []string {
	out := make([]string, 0, 5)

	if high := f.HighPriorityCount(); high > 0 {
		out = append(out, fmt.Sprintf("%d critical issues require immediate attention", high))
	} else {
		out = append(out, "No critical issues detected")
	}
	out = append(out, fmt.Sprintf("$%.0f in potential profit improvements identified", TotalProfitImpact(f)))

	if len(s.Waste) > 0 {
		out = append(out, fmt.Sprintf("$%.0f in food waste this week - prevention opportunities available", wasteCost(s.Waste)))
	} else {
		out = append(out, "No food waste recorded this week")
	}

	if len(s.Events) > 0 {
		out = append(out, fmt.Sprintf("%d upcoming events with %d expected attendees", len(s.Events), attendance(s.Events)))
	} else {
		out = append(out, "No upcoming events scheduled")
	}

	delayed := false
	for _, o := range s.Orders {
		if o.Status == domain.OrderDelayed {
			delayed = true
			break
		}
	}
	if delayed {
		out = append(out, "Supply chain delays detected - alternative sourcing recommended")
	} else {
		out = append(out, "Supply chain operating normally")
	}
	return out
}

// SummaryText is the one-line business summary of an analysis run.
func SummaryText(f Findings) string {
	impact := TotalProfitImpact(f)
	switch high := f.HighPriorityCount(); {
	case high > 0:
		return fmt.Sprintf("URGENT: %d critical issues detected. Analysis identified $%.0f in potential profit optimization across %d recommendations.",
			high, impact, len(f.Solutions))
	case len(f.Alerts) > 0:
		return fmt.Sprintf("ATTENTION: %d items need attention. $%.0f in optimization opportunities identified.", len(f.Alerts), impact)
	default:
		return fmt.Sprintf("GOOD: Operations running smoothly. $%.0f in potential optimizations available.", impact)
	}
}

// Recommendations converts the solutions into stored recommendations.
func Recommendations(f Findings) []domain.Recommendation {
	out := make([]domain.Recommendation, len(f.Solutions))
	for i, sol := range f.Solutions {
		out[i] = domain.Recommendation{
			Priority:       sol.Priority,
			Title:          Title(sol.Description),
			Description:    sol.Description,
			ProfitImpact:   round(sol.ProfitImpact, 2),
			Confidence:     round(sol.Confidence, 1),
			ActionRequired: true,
			Category:       RecommendationCategory,
			TriggerSources: domain.StringList{domain.Humanize(sol.Source)},
		}
	}
	return out
}

// TotalProfitImpact sums the solutions' profit impact, rounded to cents.
func TotalProfitImpact(f Findings) float64 {
	total := decimal.Zero
	for _, sol := range f.Solutions {
		total = total.Add(decimal.NewFromFloat(sol.ProfitImpact))
	}
	v, _ := total.Round(2).Float64()
	return v
}

// Title shortens a description to at most 50 runes plus an ellipsis.
func Title(description string) string {
	r := []rune(description)
	if len(r) <= maxTitleLength {
		return description
	}
	return string(r[:maxTitleLength]) + "..."
}

func wasteCost(waste []domain.FoodWaste) float64 {
	total := 0.0
	for _, w := range waste {
		total += w.CostImpact
	}
	return round(total, 2)
}

func attendance(events []domain.Event) int {
	total := 0
	for _, e := range events {
		total += e.ExpectedAttendance
	}
	return total
}

func round(v float64, places int32) float64 {
	out, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return out
}
