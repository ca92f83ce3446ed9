package in

import (
	"context"

	"stillpoint/internal/modules/analytics/dto"
)

// Usecase exposes read-only figures derived from the session log. Durations
// are in seconds.
type Usecase interface {
	TotalDuration(ctx context.Context) int
	WeeklyDuration(ctx context.Context) int
	MonthlyDuration(ctx context.Context) int
	AverageDuration(ctx context.Context) int
	LongestSession(ctx context.Context) int
	SessionCount(ctx context.Context) int
	LongestStreak(ctx context.Context) int
	DailySeries(ctx context.Context, days int) ([]dto.BucketOutput, error)
	WeeklySeries(ctx context.Context, weeks int) ([]dto.BucketOutput, error)
	Summary(ctx context.Context, days, weeks int) (dto.SummaryOutput, error)
}
