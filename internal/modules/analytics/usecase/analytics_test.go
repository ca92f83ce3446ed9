package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	analyticsin "stillpoint/internal/modules/analytics/adapter/in"
	analyticsport "stillpoint/internal/modules/analytics/port/in"
	"stillpoint/internal/modules/analytics/service"
	"stillpoint/internal/modules/analytics/usecase"
	sessionout "stillpoint/internal/modules/session/adapter/out"
	sessiondto "stillpoint/internal/modules/session/dto"
	sessionservice "stillpoint/internal/modules/session/service"
	sessionusecase "stillpoint/internal/modules/session/usecase"
	streakout "stillpoint/internal/modules/streak/adapter/out"
	streakservice "stillpoint/internal/modules/streak/service"
	streakusecase "stillpoint/internal/modules/streak/usecase"
	"stillpoint/internal/platform/clock"
	apperrors "stillpoint/internal/platform/errors"
	"stillpoint/internal/platform/kv"
	"stillpoint/internal/platform/logging"
)

var now = time.Date(2026, 7, 14, 20, 0, 0, 0, time.Local)

type fixture struct {
	store kv.Store
	saved func(duration int, at time.Time)
}

func newFixture(t *testing.T) (fixture, analyticsport.Usecase) {
	t.Helper()
	store := kv.NewMemory()
	clk := clock.Fixed{At: now}
	logger := logging.Discard()
	sessions := sessionusecase.NewInteractor(sessionservice.NewSessionService(sessionout.NewKVSessionRepository(store), logger, 0))
	streaks := streakusecase.NewInteractor(streakservice.NewStreakService(clk, streakout.NewKVStreakRepository(store), logger))
	uc := usecase.NewInteractor(service.NewAnalyticsService(sessions, streaks, clk))
	f := fixture{store: store}
	f.saved = func(duration int, at time.Time) {
		t.Helper()
		if err := sessions.Save(context.Background(), sessiondto.SaveInput{Duration: duration, CompletedAt: at}); err != nil {
			t.Fatalf("save session: %v", err)
		}
	}
	return f, uc
}

func TestEmptyHistoryIsAllZero(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	_, uc := newFixture(t)
	if uc.TotalDuration(ctx) != 0 || uc.AverageDuration(ctx) != 0 || uc.LongestSession(ctx) != 0 || uc.SessionCount(ctx) != 0 {
		t.Fatalf("expected zero figures for empty history")
	}
	daily, err := uc.DailySeries(ctx, 7)
	if err != nil {
		t.Fatalf("daily: %v", err)
	}
	if len(daily) != 7 {
		t.Fatalf("expected 7 buckets, got %d", len(daily))
	}
	for _, b := range daily {
		if b.Minutes != 0 {
			t.Fatalf("expected empty bucket, got %+v", b)
		}
	}
}

func TestAggregatesOverTwoSessions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f, uc := newFixture(t)
	f.saved(600, now.Add(-2*time.Hour))
	f.saved(300, now.Add(-time.Hour))

	if got := uc.TotalDuration(ctx); got != 900 {
		t.Fatalf("total = %d", got)
	}
	if got := uc.AverageDuration(ctx); got != 450 {
		t.Fatalf("average = %d", got)
	}
	if got := uc.LongestSession(ctx); got != 600 {
		t.Fatalf("longest = %d", got)
	}
	if got := uc.SessionCount(ctx); got != 2 {
		t.Fatalf("count = %d", got)
	}
}

func TestWindowedTotals(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f, uc := newFixture(t)
	f.saved(600, now.AddDate(0, 0, -40))
	f.saved(300, now.AddDate(0, 0, -20))
	f.saved(120, now.AddDate(0, 0, -8))
	f.saved(60, now.AddDate(0, 0, -1))

	if got := uc.WeeklyDuration(ctx); got != 60 {
		t.Fatalf("weekly = %d, want 60", got)
	}
	if got := uc.MonthlyDuration(ctx); got != 480 {
		t.Fatalf("monthly = %d, want 480", got)
	}
	if got := uc.TotalDuration(ctx); got != 1080 {
		t.Fatalf("total = %d, want 1080", got)
	}
}

func TestSeriesRejectNonPositiveArguments(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	_, uc := newFixture(t)
	if _, err := uc.DailySeries(ctx, 0); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected validation error for days=0, got %v", err)
	}
	if _, err := uc.WeeklySeries(ctx, -1); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected validation error for weeks=-1, got %v", err)
	}
	if _, err := uc.Summary(ctx, 7, 0); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected validation error for summary, got %v", err)
	}
}

func TestSeriesRejectOversizedArguments(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	_, uc := newFixture(t)
	if _, err := uc.DailySeries(ctx, 1<<40); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected validation error for huge days, got %v", err)
	}
	if _, err := uc.WeeklySeries(ctx, 105); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected validation error for weeks=105, got %v", err)
	}
	if _, err := uc.Summary(ctx, 367, 4); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected validation error for summary days=367, got %v", err)
	}
	if daily, err := uc.DailySeries(ctx, 366); err != nil || len(daily) != 366 {
		t.Fatalf("a year of days should be allowed, got %d buckets (%v)", len(daily), err)
	}
}

func TestWindowedTotalsIgnoreFutureSessions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f, uc := newFixture(t)
	f.saved(60, now.Add(-time.Hour))
	f.saved(900, now.Add(2*time.Hour))

	if got := uc.WeeklyDuration(ctx); got != 60 {
		t.Fatalf("weekly = %d, want 60", got)
	}
	if got := uc.MonthlyDuration(ctx); got != 60 {
		t.Fatalf("monthly = %d, want 60", got)
	}
	if got := uc.TotalDuration(ctx); got != 960 {
		t.Fatalf("total = %d, want 960", got)
	}
}

func TestMalformedSessionsAreIgnored(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f, uc := newFixture(t)
	doc := `[{"duration":600,"timestamp":"someday"},{"duration":300,"timestamp":"` + now.UTC().Format("2006-01-02T15:04:05.000Z07:00") + `"}]`
	if err := f.store.Set(ctx, sessionout.Key, doc); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if got := uc.TotalDuration(ctx); got != 300 {
		t.Fatalf("total = %d, want 300", got)
	}
	if got := uc.SessionCount(ctx); got != 1 {
		t.Fatalf("count = %d, want 1", got)
	}
	daily, err := uc.DailySeries(ctx, 1)
	if err != nil {
		t.Fatalf("daily: %v", err)
	}
	if daily[0].Seconds != 300 || daily[0].Minutes != 5 {
		t.Fatalf("unexpected bucket %+v", daily[0])
	}
}

func TestSummaryAndReport(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f, uc := newFixture(t)
	f.saved(3900, now.AddDate(0, 0, -2))
	f.saved(600, now.AddDate(0, 0, -1))
	f.saved(600, now)
	if err := f.store.Set(ctx, streakout.Key, `{"currentStreak":2,"lastSessionDate":"`+now.Format(time.RFC3339)+`"}`); err != nil {
		t.Fatalf("seed streak: %v", err)
	}

	summary, err := uc.Summary(ctx, 3, 1)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.SessionCount != 3 || summary.TotalDuration != 5100 || summary.LongestStreak != 3 || summary.CurrentStreak != 2 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if len(summary.Daily) != 3 || summary.Daily[0].Minutes != 65 || summary.Daily[2].Minutes != 10 {
		t.Fatalf("unexpected daily series %+v", summary.Daily)
	}
	if len(summary.Weekly) != 1 || summary.Weekly[0].Minutes != 85 {
		t.Fatalf("unexpected weekly series %+v", summary.Weekly)
	}

	var out bytes.Buffer
	if err := analyticsin.NewCLIHandler(uc).Report(ctx, &out, "en", 3, 1); err != nil {
		t.Fatalf("report: %v", err)
	}
	text := out.String()
	for _, want := range []string{"sessions        3", "total           1h 25m", "streak          2 (best 3)", "daily minutes", "weekly minutes"} {
		if !strings.Contains(text, want) {
			t.Fatalf("report missing %q:\n%s", want, text)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	t.Parallel()
	cases := map[int]string{0: "0s", 45: "45s", 60: "1m", 754: "12m", 3600: "1h 00m", 3900: "1h 05m"}
	for in, want := range cases {
		if got := analyticsin.FormatDuration(in); got != want {
			t.Fatalf("FormatDuration(%d) = %q, want %q", in, got, want)
		}
	}
}
