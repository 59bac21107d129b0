package domain

// StatusCount is the number of items in one stock status
type StatusCount struct {
	Status StockStatus `json:"status"`
	Count  int         `json:"count"`
}

// DemandProjection is an affected item's usage under a weather scenario
type DemandProjection struct {
	ItemID              string  `json:"item_id"`
	Name                string  `json:"name"`
	DailyUsage          float64 `json:"daily_usage"`
	ProjectedDailyUsage float64 `json:"projected_daily_usage"`
	ProjectedDaysLeft   float64 `json:"projected_days_left"`
}

// WeatherImpactReport is the impact table and affected items for one scenario
type WeatherImpactReport struct {
	Scenario      WeatherScenario    `json:"scenario"`
	Impacts       []WeatherImpact    `json:"impacts"`
	AffectedItems []InventoryItem    `json:"affected_items"`
	Projections   []DemandProjection `json:"projections"`
}

// DashboardOverview holds the headline numbers of the dashboard
type DashboardOverview struct {
	TotalItems           int     `json:"total_items"`
	LowStockItems        int     `json:"low_stock_items"`
	PendingOrders        int     `json:"pending_orders"`
	PendingOrderValue    float64 `json:"pending_order_value"`
	TotalRecommendations int     `json:"total_recommendations"`
	HighPriorityCount    int     `json:"high_priority_count"`
	TotalProfitImpact    float64 `json:"total_profit_impact"`
}

// Dashboard aggregates everything the single-page dashboard renders
type Dashboard struct {
	Weather         string               `json:"weather"`
	Overview        DashboardOverview    `json:"overview"`
	StatusCounts    []StatusCount        `json:"status_counts"`
	Inventory       []ClassifiedItem     `json:"inventory"`
	WeatherImpact   WeatherImpactReport  `json:"weather_impact"`
	Recommendations []Recommendation     `json:"recommendations"`
	Signals         []IntelligenceSignal `json:"signals"`
	Insights        []string             `json:"insights"`
}
