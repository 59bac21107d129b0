package listing

import (
	"time"

	"github.com/andresuchdata/kopik/backend-go/internal/domain"
)

func unix(t *time.Time) float64 {
	if t == nil {
		return 0
	}
	return float64(t.Unix())
}

func optional(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// InventorySchema sorts classified inventory rows.
var InventorySchema = Schema[domain.ClassifiedItem]{
	Name: func(i domain.ClassifiedItem) string { return i.Name },
	Fields: map[string]Field[domain.ClassifiedItem]{
		"name":          TextField(func(i domain.ClassifiedItem) string { return i.Name }),
		"category":      TextField(func(i domain.ClassifiedItem) string { return i.Category }),
		"sku":           TextField(func(i domain.ClassifiedItem) string { return i.SKU }),
		"supplier":      TextField(func(i domain.ClassifiedItem) string { return i.Supplier }),
		"unit":          TextField(func(i domain.ClassifiedItem) string { return i.Unit }),
		"current_stock": NumericField(func(i domain.ClassifiedItem) float64 { return i.CurrentStock }),
		"daily_usage":   NumericField(func(i domain.ClassifiedItem) float64 { return i.DailyUsage }),
		"cost_per_unit": NumericField(func(i domain.ClassifiedItem) float64 { return i.CostPerUnit }),
		"reorder_point": NumericField(func(i domain.ClassifiedItem) float64 { return optional(i.ReorderPoint) }),
		"par_level":     NumericField(func(i domain.ClassifiedItem) float64 { return optional(i.ParLevel) }),
		"days_left":     NumericField(func(i domain.ClassifiedItem) float64 { return i.DaysLeft }),
		"stock_ratio":   NumericField(func(i domain.ClassifiedItem) float64 { return i.StockRatio }),
		"status":        NumericField(func(i domain.ClassifiedItem) float64 { return float64(i.Status.Rank()) }),
		"stock_value":   NumericField(func(i domain.ClassifiedItem) float64 { return i.CurrentStock * i.CostPerUnit }),
	},
}

// OrderSchema sorts orders. Orders are named by their humanized item id.
var OrderSchema = Schema[domain.Order]{
	Name: func(o domain.Order) string { return o.Title() },
	Fields: map[string]Field[domain.Order]{
		"name":              TextField(func(o domain.Order) string { return o.Title() }),
		"item_id":           TextField(func(o domain.Order) string { return o.ItemID }),
		"supplier":          TextField(func(o domain.Order) string { return o.Supplier }),
		"status":            TextField(func(o domain.Order) string { return o.Status }),
		"id":                NumericField(func(o domain.Order) float64 { return float64(o.ID) }),
		"quantity_ordered":  NumericField(func(o domain.Order) float64 { return o.QuantityOrdered }),
		"unit_cost":         NumericField(func(o domain.Order) float64 { return o.UnitCost }),
		"total_cost":        NumericField(func(o domain.Order) float64 { return o.TotalCost }),
		"order_date":        NumericField(func(o domain.Order) float64 { return unix(&o.OrderDate) }),
		"expected_delivery": NumericField(func(o domain.Order) float64 { return unix(o.ExpectedDelivery) }),
		"actual_delivery":   NumericField(func(o domain.Order) float64 { return unix(o.ActualDelivery) }),
	},
}

// SignalSchema sorts intelligence signals.
var SignalSchema = Schema[domain.IntelligenceSignal]{
	Name: func(s domain.IntelligenceSignal) string { return s.Name },
	Fields: map[string]Field[domain.IntelligenceSignal]{
		"name":         TextField(func(s domain.IntelligenceSignal) string { return s.Name }),
		"category":     TextField(func(s domain.IntelligenceSignal) string { return s.Category }),
		"impact_value": NumericField(func(s domain.IntelligenceSignal) float64 { return optional(s.ImpactValue) }),
		"active_date":  NumericField(func(s domain.IntelligenceSignal) float64 { return unix(s.ActiveDate) }),
	},
}

// InventoryView filters then sorts classified inventory the way the inventory list does.
func InventoryView(items []domain.ClassifiedItem, f domain.InventoryFilter) []domain.ClassifiedItem {
	filtered := FilterBy(items,
		CategoryEquals(f.Category, func(i domain.ClassifiedItem) string { return i.Category }),
		TextContains(f.Query,
			func(i domain.ClassifiedItem) string { return i.Name },
			func(i domain.ClassifiedItem) string { return i.Category },
			func(i domain.ClassifiedItem) string { return i.SKU },
		),
	)
	if f.SortField == "" {
		return filtered
	}
	return SortBy(filtered, InventorySchema, f.SortField, ParseDirection(f.SortDirection))
}

// OrderView filters by status and free text, then sorts.
func OrderView(orders []domain.Order, f domain.OrderFilter) []domain.Order {
	filtered := FilterBy(orders,
		CategoryEquals(f.Status, func(o domain.Order) string { return o.Status }),
		TextContains(f.Query,
			func(o domain.Order) string { return o.Title() },
			func(o domain.Order) string { return o.Status },
			func(o domain.Order) string { return o.Notes },
		),
	)
	if f.SortField == "" {
		return filtered
	}
	return SortBy(filtered, OrderSchema, f.SortField, ParseDirection(f.SortDirection))
}
