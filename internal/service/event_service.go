package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/andresuchdata/kopik/backend-go/internal/domain"
	"github.com/andresuchdata/kopik/backend-go/internal/listing"
	"github.com/andresuchdata/kopik/backend-go/internal/repository"
)

type EventService struct {
	repo repository.EventRepository
	now  func() time.Time
}

func NewEventService(repo repository.EventRepository) *EventService {
	return &EventService{repo: repo, now: time.Now}
}

func (s *EventService) List(ctx context.Context) ([]domain.Event, error) {
	return s.repo.List(ctx)
}

func (s *EventService) Create(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	event.EventType = strings.ToLower(strings.TrimSpace(event.EventType))
	if event.ImpactMultiplier == 0 {
		event.ImpactMultiplier = 1.0
	}
	if err := event.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// Upcoming returns the events starting between today and days days from now,
// inclusive, earliest first.
func (s *EventService) Upcoming(ctx context.Context, days int) ([]domain.Event, error) {
	if days < 0 {
		return nil, fmt.Errorf("%w: days must not be negative", domain.ErrInvalidInput)
	}
	from := dayStart(s.now())
	until := from.AddDate(0, 0, days+1)

	events, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	events = listing.FilterBy(events, func(e domain.Event) bool {
		return !e.StartDate.Before(from) && e.StartDate.Before(until)
	})
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].StartDate.Before(events[j].StartDate)
	})
	return events, nil
}
