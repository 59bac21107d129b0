package service

import (
	"fmt"
	"time"

	"github.com/andresuchdata/kopik/backend-go/internal/domain"
)

// Default look-back and look-ahead windows, in days
const (
	DefaultRecentDays   = 7
	DefaultUpcomingDays = 14
	DefaultItemSaleDays = 30
)

// dayStart truncates t to midnight UTC.
func dayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// sinceDays returns midnight of the day days before now.
func sinceDays(now time.Time, days int) (time.Time, error) {
	if days < 0 {
		return time.Time{}, fmt.Errorf("%w: days must not be negative", domain.ErrInvalidInput)
	}
	return dayStart(now).AddDate(0, 0, -days), nil
}
