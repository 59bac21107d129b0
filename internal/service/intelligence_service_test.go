package service

import (
	"context"
	"strings"
	"testing"

	"github.com/andresuchdata/kopik/backend-go/internal/domain"
	"github.com/andresuchdata/kopik/backend-go/internal/intelligence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntelligenceDashboardOverDemoData(t *testing.T) {
	f := newFixture(t)

	d, err := f.intelligence.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 9, d.Summary.TotalAlerts)
	assert.Equal(t, 3, d.Summary.HighPriorityAlerts)
	assert.Equal(t, 10, d.Summary.TotalRecommendations)
	assert.InDelta(t, 53429.37, d.Summary.TotalProfitImpact, 0.01)

	assert.Equal(t, 3, d.Categories.Inventory.AlertsCount)
	assert.Equal(t, 5, d.Categories.Inventory.TotalItems)
	assert.Equal(t, 3, d.Categories.FoodWaste.WasteRecords)
	assert.Equal(t, 46.8, d.Categories.FoodWaste.TotalCostImpact)
	assert.Equal(t, domain.ConditionSunny, d.Categories.Weather.CurrentCondition)
	assert.Equal(t, 2, d.Categories.Events.UpcomingEvents)
	assert.Equal(t, 8000, d.Categories.Events.TotalExpectedAttendance)
	assert.Equal(t, 154.5, d.Categories.Sales.TotalRevenue)
	assert.Equal(t, 2, d.Categories.Orders.AlertsCount)
	assert.Equal(t, 3, d.DataOverview.PendingOrders)

	assert.Equal(t, "3 critical issues require immediate attention", d.Insights[0])
	assert.Equal(t, "Supply chain delays detected - alternative sourcing recommended", d.Insights[4])

	// the dashboard stores nothing
	recs, err := f.recommendations.List(context.Background(), domain.RecommendationFilter{Category: intelligence.RecommendationCategory})
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestIntelligenceAnalyzeReplacesPreviousRun(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.intelligence.Analyze(ctx)
	require.NoError(t, err)
	assert.True(t, first.Success)
	assert.Equal(t, int64(1), first.AnalysisCount)
	assert.Equal(t, 9, first.Alerts)
	assert.Equal(t, 10, first.Recommendations)
	assert.True(t, strings.HasPrefix(first.Summary, "URGENT: 3 critical issues detected."), first.Summary)

	stored, err := f.recommendations.List(ctx, domain.RecommendationFilter{Category: intelligence.RecommendationCategory})
	require.NoError(t, err)
	require.Len(t, stored, 10)
	assert.Equal(t, "Reorder Premium Coffee Beans immediately or source...", stored[0].Title)
	assert.True(t, stored[0].ActionRequired)
	assert.Equal(t, domain.StringList{"Low Stock"}, stored[0].TriggerSources)

	second, err := f.intelligence.Analyze(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.AnalysisCount)

	all, err := f.recommendations.List(ctx, domain.RecommendationFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 13, "demo entries kept, intelligence entries replaced")
}
