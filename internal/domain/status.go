package domain

import "strings"

// StockStatus is the days-left classification of an inventory item
type StockStatus string

const (
	StatusCritical StockStatus = "critical"
	StatusLow      StockStatus = "low"
	StatusGood     StockStatus = "good"
)

var stockStatusRanks = map[StockStatus]int{
	StatusCritical: 0,
	StatusLow:      1,
	StatusGood:     2,
}

// Rank orders statuses from most to least urgent. Unknown statuses sort last.
func (s StockStatus) Rank() int {
	if rank, ok := stockStatusRanks[s]; ok {
		return rank
	}
	return len(stockStatusRanks)
}

// Priority of a recommendation
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

var priorityRanks = map[Priority]int{
	PriorityHigh:   1,
	PriorityMedium: 2,
	PriorityLow:    3,
}

// Rank returns 1 for high, 2 for medium, 3 for low and 4 for anything else.
func (p Priority) Rank() int {
	if rank, ok := priorityRanks[Priority(strings.ToLower(string(p)))]; ok {
		return rank
	}
	return 4
}

// ParsePriority returns the priority for a given label (case-insensitive).
func ParsePriority(label string) (Priority, bool) {
	p := Priority(strings.ToLower(strings.TrimSpace(label)))
	_, ok := priorityRanks[p]
	return p, ok
}

// Signal trends
const (
	TrendUp   = "up"
	TrendDown = "down"
)

// Order statuses. The set is open: anything else is stored as given.
const (
	OrderPending   = "pending"
	OrderDelayed   = "delayed"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
)

var openOrderStatuses = map[string]bool{
	OrderPending: true,
	OrderDelayed: true,
}

// IsOpenOrderStatus reports whether an order in this status is still awaiting delivery.
func IsOpenOrderStatus(status string) bool {
	return openOrderStatuses[strings.ToLower(strings.TrimSpace(status))]
}

// NormalizeOrderStatus lowercases a status label, defaulting to pending.
func NormalizeOrderStatus(status string) string {
	s := strings.ToLower(strings.TrimSpace(status))
	if s == "" {
		return OrderPending
	}
	return s
}
