package service

import (
	"context"
	"fmt"
	"time"

	"stillpoint/internal/modules/analytics/domain"
	sessionin "stillpoint/internal/modules/session/port/in"
	streakin "stillpoint/internal/modules/streak/port/in"
	"stillpoint/internal/platform/clock"
	apperrors "stillpoint/internal/platform/errors"
)

type AnalyticsService struct {
	sessions sessionin.Usecase
	streaks  streakin.Usecase
	clock    clock.Clock
}

type Summary struct {
	SessionCount    int
	TotalDuration   int
	WeeklyDuration  int
	MonthlyDuration int
	AverageDuration int
	LongestSession  int
	CurrentStreak   int
	LongestStreak   int
	Daily           []domain.Bucket
	Weekly          []domain.Bucket
}

const week = 7 * 24 * time.Hour

func checkSpan(name string, n, limit int) error {
	if n <= 0 || n > limit {
		return fmt.Errorf("%w: %s must be between 1 and %d, got %d", apperrors.ErrValidation, name, limit, n)
	}
	return nil
}

func NewAnalyticsService(sessions sessionin.Usecase, streaks streakin.Usecase, clock clock.Clock) *AnalyticsService {
	return &AnalyticsService{sessions: sessions, streaks: streaks, clock: clock}
}

func (s *AnalyticsService) entries(ctx context.Context) []domain.Entry {
	all := s.sessions.GetAll(ctx)
	out := make([]domain.Entry, 0, len(all))
	for _, sess := range all {
		out = append(out, domain.Entry{
			Duration: sess.Duration,
			At:       sess.CompletedAt,
			HasTime:  !sess.CompletedAt.IsZero(),
		})
	}
	return out
}

func (s *AnalyticsService) Total(ctx context.Context) int {
	return domain.Total(s.entries(ctx))
}

func (s *AnalyticsService) Weekly(ctx context.Context) int {
	now := s.clock.Now()
	return domain.Between(s.entries(ctx), now.Add(-week), now)
}

func (s *AnalyticsService) Monthly(ctx context.Context) int {
	now := s.clock.Now()
	return domain.Between(s.entries(ctx), now.AddDate(0, -1, 0), now)
}

func (s *AnalyticsService) Average(ctx context.Context) int {
	return domain.Average(s.entries(ctx))
}

func (s *AnalyticsService) Longest(ctx context.Context) int {
	return domain.Longest(s.entries(ctx))
}

func (s *AnalyticsService) Count(ctx context.Context) int {
	return s.sessions.Count(ctx)
}

func (s *AnalyticsService) LongestStreak(ctx context.Context) int {
	return domain.LongestStreak(s.entries(ctx), s.clock.Now().Location())
}

func (s *AnalyticsService) Daily(ctx context.Context, days int) ([]domain.Bucket, error) {
	if err := checkSpan("days", days, domain.MaxDays); err != nil {
		return nil, err
	}
	return domain.Daily(s.entries(ctx), s.clock.Now(), days), nil
}

func (s *AnalyticsService) WeeklySeries(ctx context.Context, weeks int) ([]domain.Bucket, error) {
	if err := checkSpan("weeks", weeks, domain.MaxWeeks); err != nil {
		return nil, err
	}
	return domain.Weekly(s.entries(ctx), s.clock.Now(), weeks), nil
}

// Summary reads the log once so every figure describes the same snapshot.
func (s *AnalyticsService) Summary(ctx context.Context, days, weeks int) (Summary, error) {
	if err := checkSpan("days", days, domain.MaxDays); err != nil {
		return Summary{}, err
	}
	if err := checkSpan("weeks", weeks, domain.MaxWeeks); err != nil {
		return Summary{}, err
	}
	now := s.clock.Now()
	entries := s.entries(ctx)
	return Summary{
		SessionCount:    len(entries),
		TotalDuration:   domain.Total(entries),
		WeeklyDuration:  domain.Between(entries, now.Add(-week), now),
		MonthlyDuration: domain.Between(entries, now.AddDate(0, -1, 0), now),
		AverageDuration: domain.Average(entries),
		LongestSession:  domain.Longest(entries),
		CurrentStreak:   s.streaks.Get(ctx).CurrentStreak,
		LongestStreak:   domain.LongestStreak(entries, now.Location()),
		Daily:           domain.Daily(entries, now, days),
		Weekly:          domain.Weekly(entries, now, weeks),
	}, nil
}
