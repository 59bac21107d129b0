package recommendation

import (
	"testing"

	"github.com/andresuchdata/kopik/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signals(names ...string) []domain.IntelligenceSignal {
	out := make([]domain.IntelligenceSignal, len(names))
	for i, n := range names {
		out[i] = domain.IntelligenceSignal{Name: n, Category: "Event"}
	}
	return out
}

func item(name, category string, status domain.StockStatus, sens domain.WeatherSensitivity) domain.ClassifiedItem {
	return domain.ClassifiedItem{
		InventoryItem: domain.InventoryItem{Name: name, Category: category, WeatherSensitivity: sens},
		Status:        status,
	}
}

func categories(recs []domain.Recommendation) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Category
	}
	return out
}

func TestMergeReplacesDynamicCategories(t *testing.T) {
	previous := []domain.Recommendation{
		{Title: "Reorder Coffee", Category: "inventory", Priority: domain.PriorityHigh},
		{Title: "Old weather note", Category: CategoryWeather, Priority: domain.PriorityMedium},
	}
	fresh := []domain.Recommendation{
		{Title: "New weather note", Category: CategoryWeather, Priority: domain.PriorityLow},
	}

	got := Merge(previous, fresh, []string{CategoryDemand, CategoryPromotion, CategoryWeather})
	require.Len(t, got, 2)
	assert.Equal(t, "New weather note", got[0].Title)
	assert.Equal(t, "Reorder Coffee", got[1].Title)
	assert.Len(t, previous, 2, "previous set must not be modified")
}

func TestMergeMatchesCategoriesCaseInsensitively(t *testing.T) {
	previous := []domain.Recommendation{
		{Title: "Old weather note", Category: "Weather", Priority: domain.PriorityMedium},
		{Title: "Old promo", Category: " PROMOTION ", Priority: domain.PriorityLow},
		{Title: "Reorder Coffee", Category: "Inventory", Priority: domain.PriorityHigh},
	}
	fresh := []domain.Recommendation{
		{Title: "New weather note", Category: CategoryWeather, Priority: domain.PriorityLow},
	}

	got := Merge(previous, fresh, []string{CategoryDemand, CategoryPromotion, CategoryWeather})
	require.Len(t, got, 2)
	assert.Equal(t, "New weather note", got[0].Title)
	assert.Equal(t, "Reorder Coffee", got[1].Title)

	e := NewDefaultEngine()
	assert.True(t, e.IsDynamic("WEATHER"))
	assert.False(t, e.IsDynamic("Inventory"))
}

func TestEvaluateCloudyKeepsStaticEntries(t *testing.T) {
	e := NewDefaultEngine()
	previous := []domain.Recommendation{
		{Title: "Reorder Coffee", Category: "inventory", Priority: domain.PriorityHigh},
		{Title: "Old weather note", Category: CategoryWeather},
		{Title: "Old promo", Category: CategoryPromotion},
	}

	got := e.Evaluate(Input{Weather: "cloudy"}, previous)
	require.Len(t, got, 2)
	assert.Equal(t, "Prep Extra Hot Beverages", got[0].Title)
	assert.Equal(t, CategoryWeather, got[0].Category)
	assert.Equal(t, "Reorder Coffee", got[1].Title)
}

func TestEvaluateNoMatchesLeavesOnlyStatic(t *testing.T) {
	e := NewDefaultEngine()
	previous := []domain.Recommendation{
		{Title: "Reorder Coffee", Category: "inventory"},
		{Title: "Old demand", Category: CategoryDemand},
	}

	got := e.Evaluate(Input{Weather: "snow"}, previous)
	assert.Equal(t, []string{"inventory"}, categories(got))
	assert.NotNil(t, e.Evaluate(Input{}, nil))
}

func TestEvaluateIsIdempotent(t *testing.T) {
	e := NewDefaultEngine()
	in := Input{
		Weather: "sunny",
		Inventory: []domain.ClassifiedItem{
			item("Ice Cream Base", "Frozen", domain.StatusCritical, domain.WeatherSensitivity{"sunny": 2.0}),
		},
		Signals: signals("Taylor Swift Concert", "Payday Cycle"),
	}
	previous := []domain.Recommendation{{Title: "Static", Category: "inventory"}}

	first := e.Evaluate(in, previous)
	second := e.Evaluate(in, previous)
	assert.Equal(t, first, second)

	again := e.Evaluate(in, first)
	assert.Equal(t, first, again, "re-evaluating over its own output is stable")
}

func TestConcertSunnyPaydayRule(t *testing.T) {
	e := NewDefaultEngine()
	in := Input{Weather: "Sunny", Signals: signals("Taylor Swift Concert", "Payday Cycle")}

	fired := e.Fire(in)
	require.NotEmpty(t, fired)
	assert.Equal(t, RuleConcertSunnyPayday, fired[0].Rule)
	rec := fired[0].Recommendation
	assert.Equal(t, domain.PriorityHigh, rec.Priority)
	assert.Equal(t, CategoryDemand, rec.Category)
	assert.Equal(t, domain.StringList{"Taylor Swift Concert", "Weather: Sunny", "Payday Cycle"}, rec.TriggerSources)

	for _, missing := range []Input{
		{Weather: "sunny", Signals: signals("Taylor Swift Concert")},
		{Weather: "sunny", Signals: signals("Payday Cycle")},
		{Weather: "rainy", Signals: signals("Taylor Swift Concert", "Payday Cycle")},
	} {
		for _, f := range e.Fire(missing) {
			assert.NotEqual(t, RuleConcertSunnyPayday, f.Rule)
		}
	}
}

func TestSignalMatchUsesCategory(t *testing.T) {
	s := []domain.IntelligenceSignal{
		{Name: "Arena Night", Category: "Concert"},
		{Name: "Mid-month", Category: "Payday"},
	}
	_, ok := findSignal(s, "concert")
	assert.True(t, ok)
	_, ok = findSignal(s, "payday")
	assert.True(t, ok)
	_, ok = findSignal(s, "marathon")
	assert.False(t, ok)
}

func TestRainyFlourPromotionRule(t *testing.T) {
	e := NewDefaultEngine()

	low := Input{Weather: "rainy", Inventory: []domain.ClassifiedItem{
		item("All-Purpose Flour", "Baking", domain.StatusLow, nil),
	}}
	got := e.Evaluate(low, nil)
	require.Len(t, got, 2)
	assert.Equal(t, CategoryPromotion, got[0].Category)
	assert.Equal(t, domain.PriorityMedium, got[0].Priority)
	assert.Equal(t, CategoryWeather, got[1].Category)

	critical := Input{Weather: "rainy", Inventory: []domain.ClassifiedItem{
		item("All-Purpose Flour", "Baking", domain.StatusCritical, nil),
	}}
	assert.Equal(t, []string{CategoryWeather}, categories(e.Evaluate(critical, nil)))
}

func TestSunnyColdDrinkRule(t *testing.T) {
	got := NewDefaultEngine().Evaluate(Input{Weather: "sunny"}, nil)
	require.Len(t, got, 1)
	assert.Equal(t, "Stock Up on Cold Drinks", got[0].Title)
	assert.Equal(t, domain.PriorityLow, got[0].Priority)
}

func TestHeatAndCriticalRules(t *testing.T) {
	in := Input{Weather: "hot", Inventory: []domain.ClassifiedItem{
		item("Ice Cream Base", "Frozen", domain.StatusCritical, domain.WeatherSensitivity{"hot": 2.5}),
		item("Sugar", "Baking", domain.StatusCritical, domain.WeatherSensitivity{"hot": 1.0}),
	}}

	fired := NewDefaultEngine().Fire(in)
	require.Len(t, fired, 2)
	assert.Equal(t, RuleCriticalWeatherSurge, fired[0].Rule)
	assert.Contains(t, fired[0].Recommendation.Description, "Ice Cream Base is critically low")
	assert.NotContains(t, fired[0].Recommendation.Description, "Sugar")
	assert.Equal(t, RuleHeatFrozenStock, fired[1].Rule)
}

func TestEngineNeverEmitsStaticCategories(t *testing.T) {
	e := NewDefaultEngine()
	assert.Equal(t, []string{CategoryDemand, CategoryPromotion, CategoryWeather}, e.DynamicCategories())
	assert.False(t, e.IsDynamic("inventory"))
}

func TestFireForcesRuleCategory(t *testing.T) {
	e := NewEngine(Rule{
		Name:     "always",
		Category: "custom",
		Eval: func(Input) *domain.Recommendation {
			return &domain.Recommendation{Title: "x", Category: "inventory"}
		},
	})
	fired := e.Fire(Input{})
	require.Len(t, fired, 1)
	assert.Equal(t, "custom", fired[0].Recommendation.Category)
	assert.Equal(t, []string{"always"}, e.Rules())
}

func TestRanked(t *testing.T) {
	recs := []domain.Recommendation{
		{Title: "b", Priority: domain.PriorityLow, ProfitImpact: 500},
		{Title: "a", Priority: domain.PriorityHigh, ProfitImpact: 100},
		{Title: "c", Priority: domain.PriorityHigh, ProfitImpact: 300},
		{Title: "d", Priority: domain.PriorityMedium, ProfitImpact: 50},
	}
	got := Ranked(recs)
	titles := make([]string, len(got))
	for i, r := range got {
		titles[i] = r.Title
	}
	assert.Equal(t, []string{"c", "a", "d", "b"}, titles)
	assert.Equal(t, "b", recs[0].Title)
}

func TestFilter(t *testing.T) {
	recs := []domain.Recommendation{
		{Title: "a", Priority: domain.PriorityHigh, Category: "inventory"},
		{Title: "b", Priority: domain.PriorityLow, Category: "weather"},
		{Title: "c", Priority: domain.PriorityHigh, Category: "weather"},
	}
	assert.Len(t, Filter(recs, "", ""), 3)
	assert.Len(t, Filter(recs, "HIGH", ""), 2)
	assert.Len(t, Filter(recs, "", "All"), 3)
	got := Filter(recs, "high", "weather")
	require.Len(t, got, 1)
	assert.Equal(t, "c", got[0].Title)
}
