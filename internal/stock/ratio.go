package stock

import (
	"math"

	"github.com/andresuchdata/kopik/backend-go/internal/domain"
)

// DefaultLowStockPct is the ratio at or below which an item counts as low stock
const DefaultLowStockPct = 0.25

// Ratio returns current stock over par level. Par levels below 1, including a
// missing or zero par, are floored to 1.
func Ratio(item domain.InventoryItem) float64 {
	par := 0.0
	if item.ParLevel != nil {
		par = *item.ParLevel
	}
	return item.CurrentStock / math.Max(1, par)
}

// LowStockEvaluator flags items whose stock ratio is at or below a threshold
type LowStockEvaluator struct {
	defaultPct float64
}

// NewLowStockEvaluator creates an evaluator. A non-positive pct uses DefaultLowStockPct.
func NewLowStockEvaluator(defaultPct float64) *LowStockEvaluator {
	if defaultPct <= 0 {
		defaultPct = DefaultLowStockPct
	}
	return &LowStockEvaluator{defaultPct: defaultPct}
}

// ThresholdFor returns the item's own threshold when set, the evaluator default otherwise.
func (e *LowStockEvaluator) ThresholdFor(item domain.InventoryItem) float64 {
	if item.ThresholdPct != nil {
		return *item.ThresholdPct
	}
	return e.defaultPct
}

// IsLowStock reports whether the item's ratio is at or below its threshold.
func (e *LowStockEvaluator) IsLowStock(item domain.InventoryItem) bool {
	return Ratio(item) <= e.ThresholdFor(item)
}

// LowStock returns the low-stock items in input order.
func (e *LowStockEvaluator) LowStock(items []domain.InventoryItem) []domain.InventoryItem {
	result := make([]domain.InventoryItem, 0)
	for _, item := range items {
		if e.IsLowStock(item) {
			result = append(result, item)
		}
	}
	return result
}

// AtOrBelowReorderPoint reports whether stock has reached the item's reorder point.
// Items without a reorder point never have.
func AtOrBelowReorderPoint(item domain.InventoryItem) bool {
	return item.ReorderPoint != nil && item.CurrentStock <= *item.ReorderPoint
}

// BelowReorderPoint returns items whose stock is at or below their reorder point.
func BelowReorderPoint(items []domain.InventoryItem) []domain.InventoryItem {
	result := make([]domain.InventoryItem, 0)
	for _, item := range items {
		if AtOrBelowReorderPoint(item) {
			result = append(result, item)
		}
	}
	return result
}
