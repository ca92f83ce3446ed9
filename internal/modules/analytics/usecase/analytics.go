package usecase

import (
	"context"

	"stillpoint/internal/modules/analytics/domain"
	analyticsdto "stillpoint/internal/modules/analytics/dto"
	analyticsin "stillpoint/internal/modules/analytics/port/in"
	"stillpoint/internal/modules/analytics/service"
)

type Interactor struct {
	svc *service.AnalyticsService
}

func NewInteractor(svc *service.AnalyticsService) analyticsin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) TotalDuration(ctx context.Context) int   { return i.svc.Total(ctx) }
func (i *Interactor) WeeklyDuration(ctx context.Context) int  { return i.svc.Weekly(ctx) }
func (i *Interactor) MonthlyDuration(ctx context.Context) int { return i.svc.Monthly(ctx) }
func (i *Interactor) AverageDuration(ctx context.Context) int { return i.svc.Average(ctx) }
func (i *Interactor) LongestSession(ctx context.Context) int  { return i.svc.Longest(ctx) }
func (i *Interactor) SessionCount(ctx context.Context) int    { return i.svc.Count(ctx) }
func (i *Interactor) LongestStreak(ctx context.Context) int   { return i.svc.LongestStreak(ctx) }

func (i *Interactor) DailySeries(ctx context.Context, days int) ([]analyticsdto.BucketOutput, error) {
	buckets, err := i.svc.Daily(ctx, days)
	if err != nil {
		return nil, err
	}
	return toBuckets(buckets), nil
}

func (i *Interactor) WeeklySeries(ctx context.Context, weeks int) ([]analyticsdto.BucketOutput, error) {
	buckets, err := i.svc.WeeklySeries(ctx, weeks)
	if err != nil {
		return nil, err
	}
	return toBuckets(buckets), nil
}

func (i *Interactor) Summary(ctx context.Context, days, weeks int) (analyticsdto.SummaryOutput, error) {
	s, err := i.svc.Summary(ctx, days, weeks)
	if err != nil {
		return analyticsdto.SummaryOutput{}, err
	}
	return analyticsdto.SummaryOutput{
		SessionCount:    s.SessionCount,
		TotalDuration:   s.TotalDuration,
		WeeklyDuration:  s.WeeklyDuration,
		MonthlyDuration: s.MonthlyDuration,
		AverageDuration: s.AverageDuration,
		LongestSession:  s.LongestSession,
		CurrentStreak:   s.CurrentStreak,
		LongestStreak:   s.LongestStreak,
		Daily:           toBuckets(s.Daily),
		Weekly:          toBuckets(s.Weekly),
	}, nil
}

func toBuckets(in []domain.Bucket) []analyticsdto.BucketOutput {
	out := make([]analyticsdto.BucketOutput, 0, len(in))
	for _, b := range in {
		out = append(out, analyticsdto.BucketOutput{Label: b.Label, Seconds: b.Seconds, Minutes: b.Minutes})
	}
	return out
}
