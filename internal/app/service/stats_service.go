package service

import (
	"context"
	"time"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
)

// StatsService produces read-only per-user rollups straight from the store.
// Nothing is cached: every call reflects store state at call time.
type StatsService struct {
	tasks    ports.TaskStore
	location *time.Location
	clock    Clock
}

var _ ports.StatsService = (*StatsService)(nil)

func NewStatsService(tasks ports.TaskStore, location *time.Location, clock Clock) *StatsService {
	if location == nil {
		location = time.UTC
	}
	if clock == nil {
		clock = RealClock{}
	}
	return &StatsService{tasks: tasks, location: location, clock: clock}
}

func (s *StatsService) Snapshot(ctx context.Context, userID uint64) (domain.StatsSnapshot, error) {
	counts, err := s.tasks.StatusCounts(ctx, userID)
	if err != nil {
		return domain.StatsSnapshot{}, err
	}

	total := 0
	for _, c := range counts {
		total += c
	}

	// "Today" is the calendar day in the deployment's configured zone.
	now := s.clock.Now().In(s.location)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.location)
	dayEnd := dayStart.AddDate(0, 0, 1)

	completedToday, err := s.tasks.CountCompletedBetween(ctx, userID, dayStart, dayEnd)
	if err != nil {
		return domain.StatsSnapshot{}, err
	}

	return domain.StatsSnapshot{
		UserID:         userID,
		Total:          total,
		ByStatus:       counts,
		CompletedToday: completedToday,
	}, nil
}
