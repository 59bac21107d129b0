package weather

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/andresuchdata/kopik/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImpactsForSunny(t *testing.T) {
	table := DefaultTable()

	impacts := table.ImpactsFor("sunny")
	require.Len(t, impacts, 4)
	assert.Equal(t, domain.WeatherImpact{Label: "Hot Drinks", Percent: -30}, impacts[0])
	assert.Equal(t, domain.WeatherImpact{Label: "Cold Drinks", Percent: 80}, impacts[1])
	assert.Equal(t, domain.WeatherImpact{Label: "Ice Cream", Percent: 120}, impacts[2])
	assert.Equal(t, domain.WeatherImpact{Label: "Outdoor Seating", Percent: 60}, impacts[3])
}

func TestImpactsForUnknownScenario(t *testing.T) {
	table := DefaultTable()
	assert.Nil(t, table.ImpactsFor("tornado"))
	assert.False(t, table.Has("tornado"))

	_, err := table.Report("tornado", nil)
	assert.ErrorIs(t, err, domain.ErrUnknownScenario)
}

func TestScenarioLookupIsCaseInsensitive(t *testing.T) {
	table := DefaultTable()
	s, ok := table.Scenario(" Rainy ")
	require.True(t, ok)
	assert.Equal(t, "rainy", s.ID)
	assert.Equal(t, "sunny", table.Default())
}

func TestScenariosReturnsCopies(t *testing.T) {
	table := DefaultTable()
	scenarios := table.Scenarios()
	scenarios[0].Impacts[0].Percent = 999

	assert.Equal(t, -30.0, table.ImpactsFor("sunny")[0].Percent)
}

func TestNewTableRejectsDuplicates(t *testing.T) {
	_, err := NewTable([]domain.WeatherScenario{{ID: "sunny"}, {ID: "SUNNY"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = NewTable([]domain.WeatherScenario{{ID: " "}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestItemsAffectedBy(t *testing.T) {
	items := []domain.InventoryItem{
		{ItemID: "iced_tea", WeatherSensitivity: domain.WeatherSensitivity{"hot": 1.8}},
		{ItemID: "soup_base", WeatherSensitivity: domain.WeatherSensitivity{"hot": 0.6, "rainy": 1.5}},
		{ItemID: "flour"},
		{ItemID: "ice_cream", WeatherSensitivity: domain.WeatherSensitivity{"hot": 2.0}},
		{ItemID: "neutral", WeatherSensitivity: domain.WeatherSensitivity{"hot": 1.0}},
	}

	got := ItemsAffectedBy("hot", items)
	require.Len(t, got, 2)
	assert.Equal(t, "iced_tea", got[0].ItemID)
	assert.Equal(t, "ice_cream", got[1].ItemID)

	assert.Empty(t, ItemsAffectedBy("snow", items))
	assert.NotNil(t, ItemsAffectedBy("snow", items))
}

func TestProjectedDailyUsage(t *testing.T) {
	item := domain.InventoryItem{DailyUsage: 10, WeatherSensitivity: domain.WeatherSensitivity{"hot": 1.5}}
	assert.Equal(t, 15.0, ProjectedDailyUsage(item, "hot"))
	assert.Equal(t, 10.0, ProjectedDailyUsage(item, "rainy"))
	assert.Equal(t, 1.0, ProjectedDailyUsage(domain.InventoryItem{}, "hot"))
}

func TestReport(t *testing.T) {
	table := DefaultTable()
	items := []domain.InventoryItem{
		{ItemID: "soup_base", Name: "Soup Base", CurrentStock: 30, DailyUsage: 4,
			WeatherSensitivity: domain.WeatherSensitivity{"rainy": 1.5}},
		{ItemID: "lemonade", CurrentStock: 30, DailyUsage: 4},
	}

	report, err := table.Report("rainy", items)
	require.NoError(t, err)
	assert.Equal(t, "Rainy", report.Scenario.Label)
	assert.Len(t, report.Impacts, 4)
	require.Len(t, report.AffectedItems, 1)
	assert.Equal(t, "soup_base", report.AffectedItems[0].ItemID)
	assert.Equal(t, []domain.DemandProjection{{
		ItemID: "soup_base", Name: "Soup Base", DailyUsage: 4, ProjectedDailyUsage: 6, ProjectedDaysLeft: 5,
	}}, report.Projections)

	_, err = table.Report("fog", items)
	assert.ErrorIs(t, err, domain.ErrUnknownScenario)
}

func TestLoadTable(t *testing.T) {
	table, err := LoadTable(filepath.Join("..", "..", "configs", "weather_scenarios.yaml"))
	require.NoError(t, err)

	assert.True(t, table.Has("snow"))
	assert.False(t, table.Has("cloudy"))
	assert.Equal(t, []domain.WeatherImpact{
		{Label: "Hot Drinks", Percent: 90},
		{Label: "Cold Drinks", Percent: -80},
		{Label: "Comfort Food", Percent: 120},
		{Label: "Deliveries", Percent: 60},
		{Label: "Foot Traffic", Percent: -50},
	}, table.ImpactsFor("snow"))
}

func TestLoadTableErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadTable(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("scenarios: []\n"), 0o644))
	_, err = LoadTable(empty)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("scenarios: [\n"), 0o644))
	_, err = LoadTable(broken)
	assert.Error(t, err)
}
