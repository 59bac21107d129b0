package domain

import (
	"fmt"
	"strings"
	"time"
)

// Waste reasons recorded against food waste entries
const (
	WasteExpired        = "expired"
	WasteOverproduction = "overproduction"
	WasteDamaged        = "damaged"
)

// Observed weather conditions
const (
	ConditionSunny  = "sunny"
	ConditionCloudy = "cloudy"
	ConditionRainy  = "rainy"
)

// Event types with a dedicated follow-up suggestion
const (
	EventFestival   = "festival"
	EventSports     = "sports"
	EventConference = "conference"
)

// FoodWaste is one discarded quantity of an inventory item
type FoodWaste struct {
	ID              int64     `json:"id" db:"id"`
	ItemID          string    `json:"item_id" db:"item_id"`
	WasteDate       time.Time `json:"waste_date" db:"waste_date"`
	QuantityWasted  float64   `json:"quantity_wasted" db:"quantity_wasted"`
	Unit            string    `json:"unit,omitempty" db:"unit"`
	Reason          string    `json:"reason" db:"reason"`
	CostImpact      float64   `json:"cost_impact" db:"cost_impact"`
	PreventionNotes string    `json:"prevention_notes,omitempty" db:"prevention_notes"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

func (w FoodWaste) Validate() error {
	switch {
	case strings.TrimSpace(w.ItemID) == "":
		return fmt.Errorf("%w: item_id is required", ErrInvalidInput)
	case strings.TrimSpace(w.Reason) == "":
		return fmt.Errorf("%w: reason is required", ErrInvalidInput)
	}
	return checkAmounts(
		amount{"quantity_wasted", w.QuantityWasted},
		amount{"cost_impact", w.CostImpact},
	)
}

// WeatherReading is an observed or forecast day of weather, in Fahrenheit
type WeatherReading struct {
	ID                  int64     `json:"id" db:"id"`
	Date                time.Time `json:"date" db:"date"`
	TemperatureHigh     float64   `json:"temperature_high" db:"temperature_high"`
	TemperatureLow      float64   `json:"temperature_low" db:"temperature_low"`
	Condition           string    `json:"condition" db:"condition"`
	PrecipitationChance float64   `json:"precipitation_chance" db:"precipitation_chance"`
	Humidity            float64   `json:"humidity" db:"humidity"`
	WindSpeed           float64   `json:"wind_speed" db:"wind_speed"`
	Description         string    `json:"weather_description,omitempty" db:"weather_description"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
}

func (w WeatherReading) Validate() error {
	if w.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if strings.TrimSpace(w.Condition) == "" {
		return fmt.Errorf("%w: condition is required", ErrInvalidInput)
	}
	if !Finite(w.TemperatureHigh) || !Finite(w.TemperatureLow) {
		return fmt.Errorf("%w: temperatures must be finite numbers", ErrInvalidInput)
	}
	if err := checkAmounts(
		amount{"precipitation_chance", w.PrecipitationChance},
		amount{"humidity", w.Humidity},
		amount{"wind_speed", w.WindSpeed},
	); err != nil {
		return err
	}
	if w.PrecipitationChance > 100 || w.Humidity > 100 {
		return fmt.Errorf("%w: percentages must be within 0-100", ErrInvalidInput)
	}
	return nil
}

// Event is a local happening expected to move foot traffic
type Event struct {
	ID                 int64      `json:"id" db:"id"`
	Name               string     `json:"name" db:"name"`
	EventType          string     `json:"event_type" db:"event_type"`
	StartDate          time.Time  `json:"start_date" db:"start_date"`
	EndDate            *time.Time `json:"end_date,omitempty" db:"end_date"`
	ExpectedAttendance int        `json:"expected_attendance" db:"expected_attendance"`
	LocationProximity  string     `json:"location_proximity,omitempty" db:"location_proximity"`
	ImpactMultiplier   float64    `json:"impact_multiplier" db:"impact_multiplier"`
	Description        string     `json:"description,omitempty" db:"description"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
}

// EffectiveMultiplier treats an unset multiplier as neutral.
func (e Event) EffectiveMultiplier() float64 {
	if e.ImpactMultiplier <= 0 {
		return 1.0
	}
	return e.ImpactMultiplier
}

func (e Event) Validate() error {
	switch {
	case strings.TrimSpace(e.Name) == "":
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	case e.StartDate.IsZero():
		return fmt.Errorf("%w: start_date is required", ErrInvalidInput)
	case e.EndDate != nil && e.EndDate.Before(e.StartDate):
		return fmt.Errorf("%w: end_date is before start_date", ErrInvalidInput)
	case e.ExpectedAttendance < 0:
		return fmt.Errorf("%w: expected_attendance must not be negative", ErrInvalidInput)
	}
	return checkAmounts(amount{"impact_multiplier", e.ImpactMultiplier})
}

// Sale is one recorded sale of an item
type Sale struct {
	ID           int64     `json:"id" db:"id"`
	SaleDate     time.Time `json:"sale_date" db:"sale_date"`
	ItemID       string    `json:"item_id" db:"item_id"`
	QuantitySold float64   `json:"quantity_sold" db:"quantity_sold"`
	UnitPrice    float64   `json:"unit_price" db:"unit_price"`
	TotalAmount  float64   `json:"total_amount" db:"total_amount"`
	CustomerType string    `json:"customer_type,omitempty" db:"customer_type"`
	TimeOfDay    string    `json:"time_of_day,omitempty" db:"time_of_day"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

func (s Sale) Validate() error {
	if strings.TrimSpace(s.ItemID) == "" {
		return fmt.Errorf("%w: item_id is required", ErrInvalidInput)
	}
	if s.SaleDate.IsZero() {
		return fmt.Errorf("%w: sale_date is required", ErrInvalidInput)
	}
	return checkAmounts(
		amount{"quantity_sold", s.QuantitySold},
		amount{"unit_price", s.UnitPrice},
		amount{"total_amount", s.TotalAmount},
	)
}
