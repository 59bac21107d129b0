// backend-go/internal/domain/models.go
package domain

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
	"unicode"
)

// DefaultDailyUsage is used whenever an item carries no usable daily usage rate.
const DefaultDailyUsage = 1.0

// InventoryItem represents a stocked ingredient or product
type InventoryItem struct {
	ID                 int64              `json:"id" db:"id"`
	ItemID             string             `json:"item_id" db:"item_id"`
	SKU                string             `json:"sku,omitempty" db:"sku"`
	Name               string             `json:"name" db:"name"`
	Category           string             `json:"category" db:"category"`
	CurrentStock       float64            `json:"current_stock" db:"current_stock"`
	Unit               string             `json:"unit" db:"unit"`
	DailyUsage         float64            `json:"daily_usage" db:"daily_usage"`
	CostPerUnit        float64            `json:"cost_per_unit" db:"cost_per_unit"`
	ReorderPoint       *float64           `json:"reorder_point,omitempty" db:"reorder_point"`
	ParLevel           *float64           `json:"par_level,omitempty" db:"par_level"`
	ThresholdPct       *float64           `json:"threshold_pct,omitempty" db:"threshold_pct"`
	Supplier           string             `json:"supplier,omitempty" db:"supplier"`
	WeatherSensitivity WeatherSensitivity `json:"weather_sensitivity,omitempty" db:"weather_sensitivity"`
	UsedIn             StringList         `json:"used_in,omitempty" db:"used_in"`
	LastOrderDate      *time.Time         `json:"last_order_date,omitempty" db:"last_order_date"`
	CreatedAt          time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at" db:"updated_at"`
}

// EffectiveDailyUsage returns the usage rate used for days-left math.
// Zero or missing usage falls back to DefaultDailyUsage.
func (i InventoryItem) EffectiveDailyUsage() float64 {
	if i.DailyUsage <= 0 {
		return DefaultDailyUsage
	}
	return i.DailyUsage
}

// Sensitivity returns the demand multiplier for a weather scenario, 1.0 when unset.
func (i InventoryItem) Sensitivity(scenarioID string) float64 {
	if v, ok := i.WeatherSensitivity[scenarioID]; ok {
		return v
	}
	return 1.0
}

// Validate rejects records that would produce nonsensical derived values.
func (i InventoryItem) Validate() error {
	switch {
	case strings.TrimSpace(i.ItemID) == "":
		return fmt.Errorf("%w: item_id is required", ErrInvalidInput)
	case strings.TrimSpace(i.Name) == "":
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if err := checkAmounts(
		amount{"current_stock", i.CurrentStock},
		amount{"daily_usage", i.DailyUsage},
		amount{"cost_per_unit", i.CostPerUnit},
	); err != nil {
		return err
	}
	if err := checkOptionalAmounts(
		optionalAmount{"reorder_point", i.ReorderPoint},
		optionalAmount{"par_level", i.ParLevel},
		optionalAmount{"threshold_pct", i.ThresholdPct},
	); err != nil {
		return err
	}
	scenarios := make([]string, 0, len(i.WeatherSensitivity))
	for scenario := range i.WeatherSensitivity {
		scenarios = append(scenarios, scenario)
	}
	sort.Strings(scenarios)
	for _, scenario := range scenarios {
		field := fmt.Sprintf("weather_sensitivity[%s]", scenario)
		if err := checkAmounts(amount{field, i.WeatherSensitivity[scenario]}); err != nil {
			return err
		}
	}
	return nil
}

// Finite reports whether v is neither NaN nor an infinity.
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

type amount struct {
	field string
	value float64
}

type optionalAmount struct {
	field string
	value *float64
}

// checkAmounts requires every value to be finite and non-negative.
func checkAmounts(amounts ...amount) error {
	for _, a := range amounts {
		if !Finite(a.value) {
			return fmt.Errorf("%w: %s must be a finite number", ErrInvalidInput, a.field)
		}
		if a.value < 0 {
			return fmt.Errorf("%w: %s must not be negative", ErrInvalidInput, a.field)
		}
	}
	return nil
}

func checkOptionalAmounts(amounts ...optionalAmount) error {
	for _, a := range amounts {
		if a.value == nil {
			continue
		}
		if err := checkAmounts(amount{a.field, *a.value}); err != nil {
			return err
		}
	}
	return nil
}

// ClassifiedItem is an inventory item with its derived stock fields
type ClassifiedItem struct {
	InventoryItem
	DaysLeft   float64     `json:"days_left"`
	Status     StockStatus `json:"status"`
	StockRatio float64     `json:"stock_ratio"`
	LowStock   bool        `json:"low_stock"`
}

// Order represents a purchase order placed with a supplier
type Order struct {
	ID               int64      `json:"id" db:"id"`
	ItemID           string     `json:"item_id" db:"item_id"`
	Supplier         string     `json:"supplier,omitempty" db:"supplier"`
	QuantityOrdered  float64    `json:"quantity_ordered" db:"quantity_ordered"`
	UnitCost         float64    `json:"unit_cost" db:"unit_cost"`
	TotalCost        float64    `json:"total_cost" db:"total_cost"`
	OrderDate        time.Time  `json:"order_date" db:"order_date"`
	ExpectedDelivery *time.Time `json:"expected_delivery,omitempty" db:"expected_delivery"`
	ActualDelivery   *time.Time `json:"actual_delivery,omitempty" db:"actual_delivery"`
	Status           string     `json:"status" db:"status"`
	Notes            string     `json:"notes,omitempty" db:"notes"`
}

// Title is the display name of an order: its item id, humanized.
func (o Order) Title() string {
	if strings.TrimSpace(o.ItemID) == "" {
		return fmt.Sprintf("Order #%d", o.ID)
	}
	return Humanize(o.ItemID)
}

// Validate checks an order before it is stored.
func (o Order) Validate() error {
	if strings.TrimSpace(o.ItemID) == "" {
		return fmt.Errorf("%w: item_id is required", ErrInvalidInput)
	}
	return checkAmounts(
		amount{"quantity_ordered", o.QuantityOrdered},
		amount{"unit_cost", o.UnitCost},
		amount{"total_cost", o.TotalCost},
	)
}

// IntelligenceSignal is an external event that may shift demand
type IntelligenceSignal struct {
	ID                int64      `json:"id" db:"id"`
	Name              string     `json:"name" db:"name"`
	Category          string     `json:"category" db:"category"`
	ImpactDescription string     `json:"impact_description,omitempty" db:"impact_description"`
	ImpactValue       *float64   `json:"impact_value,omitempty" db:"impact_value"`
	Trend             string     `json:"trend,omitempty" db:"trend"`
	ActiveDate        *time.Time `json:"active_date,omitempty" db:"active_date"`
	Details           JSONMap    `json:"details,omitempty" db:"details"`
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
}

// DerivedTrend returns the explicit trend or derives one from the impact value.
func (s IntelligenceSignal) DerivedTrend() string {
	if s.Trend != "" {
		return s.Trend
	}
	if s.ImpactValue != nil && *s.ImpactValue < 0 {
		return TrendDown
	}
	return TrendUp
}

// Validate checks a signal before it is stored.
func (s IntelligenceSignal) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(s.Category) == "" {
		return fmt.Errorf("%w: category is required", ErrInvalidInput)
	}
	if s.ImpactValue != nil && !Finite(*s.ImpactValue) {
		return fmt.Errorf("%w: impact_value must be a finite number", ErrInvalidInput)
	}
	return nil
}

// Recommendation is an actionable suggestion shown on the dashboard
type Recommendation struct {
	ID             int64      `json:"id,omitempty" db:"id"`
	Priority       Priority   `json:"priority" db:"priority"`
	Title          string     `json:"title" db:"title"`
	Description    string     `json:"description" db:"description"`
	ProfitImpact   float64    `json:"profit_impact" db:"profit_impact"`
	Confidence     float64    `json:"confidence" db:"confidence"`
	ActionRequired bool       `json:"action_required" db:"action_required"`
	Category       string     `json:"category" db:"category"`
	TriggerSources StringList `json:"trigger_sources" db:"trigger_sources"`
}

// Validate checks a recommendation before it is stored.
func (r Recommendation) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if _, ok := ParsePriority(string(r.Priority)); !ok {
		return fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, r.Priority)
	}
	if !Finite(r.ProfitImpact) {
		return fmt.Errorf("%w: profit_impact must be a finite number", ErrInvalidInput)
	}
	if !Finite(r.Confidence) || r.Confidence < 0 || r.Confidence > 100 {
		return fmt.Errorf("%w: confidence must be within 0-100", ErrInvalidInput)
	}
	return nil
}

// WeatherImpact is a signed percentage demand change for one affected label
type WeatherImpact struct {
	Label   string  `json:"label" yaml:"label"`
	Percent float64 `json:"percent" yaml:"percent"`
}

// WeatherScenario is static reference data describing a selectable weather state
type WeatherScenario struct {
	ID          string          `json:"id" yaml:"id"`
	Label       string          `json:"label" yaml:"label"`
	Temperature string          `json:"temperature" yaml:"temperature"`
	Description string          `json:"description" yaml:"description"`
	Impacts     []WeatherImpact `json:"impacts" yaml:"impacts"`
}

// InventoryFilter represents filters for inventory list queries
type InventoryFilter struct {
	Category      string `json:"category"`
	Query         string `json:"q"`
	SortField     string `json:"sort_field"`
	SortDirection string `json:"sort_direction"`
}

// OrderFilter represents filters for order list queries
type OrderFilter struct {
	Status        string `json:"status"`
	Query         string `json:"q"`
	SortField     string `json:"sort_field"`
	SortDirection string `json:"sort_direction"`
}

// RecommendationFilter represents filters for recommendation list queries
type RecommendationFilter struct {
	Priority string `json:"priority"`
	Category string `json:"category"`
	Ranked   bool   `json:"ranked"`
}

// Humanize turns identifiers like "whole_milk" into "Whole Milk".
func Humanize(s string) string {
	words := strings.Fields(strings.ReplaceAll(s, "_", " "))
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
