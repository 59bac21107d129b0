package stock

import (
	"fmt"
	"math"

	"github.com/andresuchdata/kopik/backend-go/internal/domain"
)

// Thresholds is the days-left pair that separates critical, low and good stock.
type Thresholds struct {
	Critical float64
	Low      float64
}

var (
	// DefaultThresholds is the canonical days-left pair used by the dashboard grid.
	DefaultThresholds = Thresholds{Critical: 2, Low: 5}
	// WideThresholds is the alternate pair used by the weekly planning views.
	WideThresholds = Thresholds{Critical: 3, Low: 7}
)

// Validate checks that the pair is non-negative and ordered.
func (t Thresholds) Validate() error {
	if t.Critical < 0 || t.Low < 0 {
		return fmt.Errorf("%w: thresholds must not be negative", domain.ErrInvalidInput)
	}
	if t.Critical > t.Low {
		return fmt.Errorf("%w: critical threshold %.2f exceeds low threshold %.2f",
			domain.ErrInvalidInput, t.Critical, t.Low)
	}
	return nil
}

// Options configures a Classifier
type Options struct {
	Thresholds Thresholds
	// FloorDays truncates days left to whole days before classification
	FloorDays bool
	// LowStockPct is the default ratio threshold for low-stock detection
	LowStockPct float64
}

// Classification holds the derived stock fields of one item
type Classification struct {
	DaysLeft float64            `json:"days_left"`
	Status   domain.StockStatus `json:"status"`
}

// Classifier derives days left and stock status from stock and usage rate.
// It holds only configuration and is safe for concurrent use.
type Classifier struct {
	thresholds Thresholds
	floorDays  bool
	lowStock   *LowStockEvaluator
}

// NewClassifier creates a classifier. Zero thresholds fall back to DefaultThresholds.
func NewClassifier(opts Options) *Classifier {
	thresholds := opts.Thresholds
	if thresholds == (Thresholds{}) {
		thresholds = DefaultThresholds
	}
	return &Classifier{
		thresholds: thresholds,
		floorDays:  opts.FloorDays,
		lowStock:   NewLowStockEvaluator(opts.LowStockPct),
	}
}

// Thresholds returns the configured pair.
func (c *Classifier) Thresholds() Thresholds {
	return c.thresholds
}

// DaysLeft returns current stock divided by the effective daily usage.
func (c *Classifier) DaysLeft(item domain.InventoryItem) float64 {
	days := item.CurrentStock / item.EffectiveDailyUsage()
	if c.floorDays {
		days = math.Floor(days)
	}
	return days
}

// StatusFor maps a days-left value onto a stock status.
func (c *Classifier) StatusFor(daysLeft float64) domain.StockStatus {
	switch {
	case daysLeft <= c.thresholds.Critical:
		return domain.StatusCritical
	case daysLeft <= c.thresholds.Low:
		return domain.StatusLow
	default:
		return domain.StatusGood
	}
}

// Classify computes days left and status for one item.
func (c *Classifier) Classify(item domain.InventoryItem) Classification {
	days := c.DaysLeft(item)
	return Classification{
		DaysLeft: days,
		Status:   c.StatusFor(days),
	}
}

// ClassifyAll returns a new slice with derived fields filled in, in input order.
func (c *Classifier) ClassifyAll(items []domain.InventoryItem) []domain.ClassifiedItem {
	result := make([]domain.ClassifiedItem, 0, len(items))
	for _, item := range items {
		cls := c.Classify(item)
		result = append(result, domain.ClassifiedItem{
			InventoryItem: item,
			DaysLeft:      cls.DaysLeft,
			Status:        cls.Status,
			StockRatio:    Ratio(item),
			LowStock:      c.lowStock.IsLowStock(item),
		})
	}
	return result
}

// LowStock exposes the ratio evaluator configured for this classifier.
func (c *Classifier) LowStock() *LowStockEvaluator {
	return c.lowStock
}

// CountByStatus tallies classified items per status, always listing all three.
func CountByStatus(items []domain.ClassifiedItem) []domain.StatusCount {
	counts := map[domain.StockStatus]int{}
	for _, item := range items {
		counts[item.Status]++
	}
	return []domain.StatusCount{
		{Status: domain.StatusCritical, Count: counts[domain.StatusCritical]},
		{Status: domain.StatusLow, Count: counts[domain.StatusLow]},
		{Status: domain.StatusGood, Count: counts[domain.StatusGood]},
	}
}
