package recommendation

import (
	"fmt"
	"strings"

	"github.com/andresuchdata/kopik/backend-go/internal/domain"
)

// Dynamic recommendation categories
const (
	CategoryDemand    = "demand"
	CategoryPromotion = "promotion"
	CategoryWeather   = "weather"
)

// Rule names, also used as metric labels
const (
	RuleConcertSunnyPayday   = "concert_sunny_payday"
	RuleRainyFlourPromotion  = "rainy_flour_promotion"
	RuleHotBeveragePrep      = "hot_beverage_prep"
	RuleColdDrinkStock       = "cold_drink_stock"
	RuleHeatFrozenStock      = "heat_frozen_stock"
	RuleCriticalWeatherSurge = "critical_weather_surge"
)

// DefaultRules returns the built-in rule list in evaluation order.
func DefaultRules() []Rule {
	return []Rule{
		{Name: RuleConcertSunnyPayday, Category: CategoryDemand, Eval: concertSunnyPayday},
		{Name: RuleCriticalWeatherSurge, Category: CategoryDemand, Eval: criticalWeatherSurge},
		{Name: RuleRainyFlourPromotion, Category: CategoryPromotion, Eval: rainyFlourPromotion},
		{Name: RuleHotBeveragePrep, Category: CategoryWeather, Eval: hotBeveragePrep},
		{Name: RuleColdDrinkStock, Category: CategoryWeather, Eval: coldDrinkStock},
		{Name: RuleHeatFrozenStock, Category: CategoryWeather, Eval: heatFrozenStock},
	}
}

func concertSunnyPayday(in Input) *domain.Recommendation {
	if !weatherIs(in.Weather, "sunny") {
		return nil
	}
	concert, ok := findSignal(in.Signals, "concert")
	if !ok {
		return nil
	}
	payday, ok := findSignal(in.Signals, "payday")
	if !ok {
		return nil
	}
	return &domain.Recommendation{
		Priority: domain.PriorityHigh,
		Title:    "Prepare for Concert Crowd on a Sunny Payday",
		Description: fmt.Sprintf(
			"%s lands on a sunny day right after payday. Expect a surge in foot traffic and premium orders: staff up and stock cold drinks and grab-and-go items.",
			concert.Name,
		),
		ProfitImpact:   450,
		Confidence:     92,
		ActionRequired: true,
		TriggerSources: domain.StringList{concert.Name, "Weather: Sunny", payday.Name},
	}
}

func criticalWeatherSurge(in Input) *domain.Recommendation {
	weather := normalizeWeather(in.Weather)
	if weather == "" {
		return nil
	}
	var names []string
	for _, item := range in.Inventory {
		if item.Status == domain.StatusCritical && item.Sensitivity(weather) > 1.0 {
			names = append(names, item.Name)
		}
	}
	if len(names) == 0 {
		return nil
	}
	return &domain.Recommendation{
		Priority: domain.PriorityHigh,
		Title:    "Reorder Weather-Driven Items Now",
		Description: fmt.Sprintf(
			"%s %s critically low while %s weather pushes demand up.",
			strings.Join(names, ", "), pluralVerb(len(names)), weather,
		),
		ProfitImpact:   float64(len(names)) * 120,
		Confidence:     90,
		ActionRequired: true,
		TriggerSources: domain.StringList{"Critical Stock Alert", "Weather: " + domain.Humanize(weather)},
	}
}

func rainyFlourPromotion(in Input) *domain.Recommendation {
	if !weatherIs(in.Weather, "rainy") {
		return nil
	}
	var flour []string
	for _, item := range in.Inventory {
		if item.Status == domain.StatusLow && strings.Contains(strings.ToLower(item.Name), "flour") {
			flour = append(flour, item.Name)
		}
	}
	if len(flour) == 0 {
		return nil
	}
	return &domain.Recommendation{
		Priority: domain.PriorityMedium,
		Title:    "Run a Rainy-Day Pastry Promotion",
		Description: fmt.Sprintf(
			"Rain lifts pastry demand but %s %s running low. Promote ready baked goods and reorder before the next bake.",
			strings.Join(flour, ", "), pluralVerb(len(flour)),
		),
		ProfitImpact:   180,
		Confidence:     78,
		ActionRequired: true,
		TriggerSources: domain.StringList{"Weather: Rainy", "Low Stock: " + strings.Join(flour, ", ")},
	}
}

func hotBeveragePrep(in Input) *domain.Recommendation {
	if !weatherIs(in.Weather, "cloudy", "rainy") {
		return nil
	}
	return &domain.Recommendation{
		Priority:       domain.PriorityLow,
		Title:          "Prep Extra Hot Beverages",
		Description:    "Grey skies drive hot drink sales. Pre-grind coffee and keep milk stocked for lattes and cappuccinos.",
		ProfitImpact:   90,
		Confidence:     80,
		ActionRequired: false,
		TriggerSources: domain.StringList{"Weather: " + domain.Humanize(normalizeWeather(in.Weather))},
	}
}

func coldDrinkStock(in Input) *domain.Recommendation {
	if !weatherIs(in.Weather, "sunny") {
		return nil
	}
	return &domain.Recommendation{
		Priority:       domain.PriorityLow,
		Title:          "Stock Up on Cold Drinks",
		Description:    "Sunny weather lifts cold drink sales. Fill the fridges and prepare extra ice before the afternoon peak.",
		ProfitImpact:   120,
		Confidence:     85,
		ActionRequired: false,
		TriggerSources: domain.StringList{"Weather: Sunny"},
	}
}

func heatFrozenStock(in Input) *domain.Recommendation {
	if !weatherIs(in.Weather, "hot") {
		return nil
	}
	var frozen []string
	for _, item := range in.Inventory {
		if strings.EqualFold(strings.TrimSpace(item.Category), "frozen") {
			frozen = append(frozen, item.Name)
		}
	}
	if len(frozen) == 0 {
		return nil
	}
	return &domain.Recommendation{
		Priority: domain.PriorityMedium,
		Title:    "Boost Frozen Stock for the Heat Wave",
		Description: fmt.Sprintf(
			"Frozen treat demand can double in a heat wave. Raise par on %s for the next few days.",
			strings.Join(frozen, ", "),
		),
		ProfitImpact:   260,
		Confidence:     84,
		ActionRequired: true,
		TriggerSources: domain.StringList{"Weather: Hot", "Frozen Inventory"},
	}
}

func normalizeWeather(w string) string {
	return strings.ToLower(strings.TrimSpace(w))
}

func weatherIs(w string, ids ...string) bool {
	w = normalizeWeather(w)
	for _, id := range ids {
		if w == id {
			return true
		}
	}
	return false
}

// findSignal returns the first signal whose name or category mentions the keyword.
func findSignal(signals []domain.IntelligenceSignal, keyword string) (domain.IntelligenceSignal, bool) {
	for _, s := range signals {
		if strings.Contains(strings.ToLower(s.Name), keyword) ||
			strings.Contains(strings.ToLower(s.Category), keyword) {
			return s, true
		}
	}
	return domain.IntelligenceSignal{}, false
}

func pluralVerb(n int) string {
	if n == 1 {
		return "is"
	}
	return "are"
}
