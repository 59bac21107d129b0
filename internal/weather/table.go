package weather

import (
	"fmt"
	"os"
	"strings"

	"github.com/andresuchdata/kopik/backend-go/internal/domain"
	"gopkg.in/yaml.v3"
)

// Table is an immutable, ordered set of weather scenarios
type Table struct {
	scenarios []domain.WeatherScenario
	byID      map[string]int
}

// NewTable builds a table, rejecting empty or duplicate scenario ids.
func NewTable(scenarios []domain.WeatherScenario) (*Table, error) {
	t := &Table{
		scenarios: make([]domain.WeatherScenario, 0, len(scenarios)),
		byID:      make(map[string]int, len(scenarios)),
	}
	for _, s := range scenarios {
		id := strings.ToLower(strings.TrimSpace(s.ID))
		if id == "" {
			return nil, fmt.Errorf("%w: weather scenario without id", domain.ErrInvalidInput)
		}
		if _, exists := t.byID[id]; exists {
			return nil, fmt.Errorf("%w: duplicate weather scenario %q", domain.ErrInvalidInput, id)
		}
		s.ID = id
		s.Impacts = append([]domain.WeatherImpact(nil), s.Impacts...)
		t.byID[id] = len(t.scenarios)
		t.scenarios = append(t.scenarios, s)
	}
	return t, nil
}

type tableFile struct {
	Scenarios []domain.WeatherScenario `yaml:"scenarios"`
}

// LoadTable reads a YAML scenario table from disk.
func LoadTable(path string) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read weather table %s: %w", path, err)
	}
	var file tableFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode weather table %s: %w", path, err)
	}
	if len(file.Scenarios) == 0 {
		return nil, fmt.Errorf("%w: weather table %s has no scenarios", domain.ErrInvalidInput, path)
	}
	return NewTable(file.Scenarios)
}

// Scenarios returns a copy of all scenarios in table order.
func (t *Table) Scenarios() []domain.WeatherScenario {
	out := make([]domain.WeatherScenario, len(t.scenarios))
	for i, s := range t.scenarios {
		s.Impacts = append([]domain.WeatherImpact(nil), s.Impacts...)
		out[i] = s
	}
	return out
}

// Scenario looks up one scenario by id (case-insensitive).
func (t *Table) Scenario(id string) (domain.WeatherScenario, bool) {
	idx, ok := t.byID[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return domain.WeatherScenario{}, false
	}
	s := t.scenarios[idx]
	s.Impacts = append([]domain.WeatherImpact(nil), s.Impacts...)
	return s, true
}

// Has reports whether the id names a scenario in the table.
func (t *Table) Has(id string) bool {
	_, ok := t.byID[strings.ToLower(strings.TrimSpace(id))]
	return ok
}

// Default returns the first scenario id, used when no selection is made.
func (t *Table) Default() string {
	if len(t.scenarios) == 0 {
		return ""
	}
	return t.scenarios[0].ID
}

// ImpactsFor returns the signed percentage impacts of a scenario in table order.
// Unknown ids yield nil.
func (t *Table) ImpactsFor(id string) []domain.WeatherImpact {
	s, ok := t.Scenario(id)
	if !ok {
		return nil
	}
	return s.Impacts
}

// ItemsAffectedBy returns the items whose sensitivity to the scenario exceeds 1.0,
// preserving inventory order.
func ItemsAffectedBy(scenarioID string, items []domain.InventoryItem) []domain.InventoryItem {
	id := strings.ToLower(strings.TrimSpace(scenarioID))
	result := make([]domain.InventoryItem, 0)
	for _, item := range items {
		if item.Sensitivity(id) > 1.0 {
			result = append(result, item)
		}
	}
	return result
}

// ProjectedDailyUsage scales an item's effective usage by its sensitivity to the scenario.
func ProjectedDailyUsage(item domain.InventoryItem, scenarioID string) float64 {
	return item.EffectiveDailyUsage() * item.Sensitivity(strings.ToLower(strings.TrimSpace(scenarioID)))
}

// Report assembles the impact table and affected items for one scenario.
func (t *Table) Report(id string, items []domain.InventoryItem) (domain.WeatherImpactReport, error) {
	s, ok := t.Scenario(id)
	if !ok {
		return domain.WeatherImpactReport{}, fmt.Errorf("%w: %q", domain.ErrUnknownScenario, id)
	}
	affected := ItemsAffectedBy(s.ID, items)
	projections := make([]domain.DemandProjection, len(affected))
	for i, item := range affected {
		projected := ProjectedDailyUsage(item, s.ID)
		projections[i] = domain.DemandProjection{
			ItemID:              item.ItemID,
			Name:                item.Name,
			DailyUsage:          item.EffectiveDailyUsage(),
			ProjectedDailyUsage: projected,
			ProjectedDaysLeft:   item.CurrentStock / projected,
		}
	}
	return domain.WeatherImpactReport{
		Scenario:      s,
		Impacts:       s.Impacts,
		AffectedItems: affected,
		Projections:   projections,
	}, nil
}
