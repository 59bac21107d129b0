package weather

import "github.com/andresuchdata/kopik/backend-go/internal/domain"

// Scenario ids referenced by the built-in rules
const (
	Sunny  = "sunny"
	Rainy  = "rainy"
	Cloudy = "cloudy"
	Hot    = "hot"
	Snow   = "snow"
)

// DefaultScenarios is the dashboard simulator table.
// The planning page ships a different table (configs/weather_scenarios.yaml).
func DefaultScenarios() []domain.WeatherScenario {
	return []domain.WeatherScenario{
		{
			ID:          Sunny,
			Label:       "Sunny",
			Temperature: "75°F",
			Description: "Clear skies",
			Impacts: []domain.WeatherImpact{
				{Label: "Hot Drinks", Percent: -30},
				{Label: "Cold Drinks", Percent: 80},
				{Label: "Ice Cream", Percent: 120},
				{Label: "Outdoor Seating", Percent: 60},
			},
		},
		{
			ID:          Rainy,
			Label:       "Rainy",
			Temperature: "45°F",
			Description: "Light rain",
			Impacts: []domain.WeatherImpact{
				{Label: "Hot Drinks", Percent: 40},
				{Label: "Pastries", Percent: 15},
				{Label: "Soup", Percent: 85},
				{Label: "Comfort Food", Percent: 25},
			},
		},
		{
			ID:          Cloudy,
			Label:       "Cloudy",
			Temperature: "65°F",
			Description: "Overcast",
			Impacts: []domain.WeatherImpact{
				{Label: "All Items", Percent: 0},
			},
		},
		{
			ID:          Hot,
			Label:       "Hot",
			Temperature: "90°F",
			Description: "Heat wave",
			Impacts: []domain.WeatherImpact{
				{Label: "Cold Drinks", Percent: 120},
				{Label: "Hot Food", Percent: -50},
				{Label: "Ice Cream", Percent: 200},
				{Label: "Frozen Items", Percent: 90},
			},
		},
	}
}

// DefaultTable returns a table of DefaultScenarios.
func DefaultTable() *Table {
	t, err := NewTable(DefaultScenarios())
	if err != nil {
		panic(err)
	}
	return t
}
