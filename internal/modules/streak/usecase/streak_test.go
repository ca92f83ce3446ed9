package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	streakout "stillpoint/internal/modules/streak/adapter/out"
	streakdto "stillpoint/internal/modules/streak/dto"
	"stillpoint/internal/modules/streak/service"
	"stillpoint/internal/modules/streak/usecase"
	apperrors "stillpoint/internal/platform/errors"
	"stillpoint/internal/platform/kv"
	"stillpoint/internal/platform/logging"
)

type fakeClock struct {
	values []time.Time
	idx    int
}

func (f *fakeClock) Now() time.Time {
	if f.idx >= len(f.values) {
		return f.values[len(f.values)-1]
	}
	v := f.values[f.idx]
	f.idx++
	return v
}

type readOnlyStore struct{ kv.Store }

func (readOnlyStore) Set(context.Context, string, string) error { return errors.New("read-only") }
func (readOnlyStore) Remove(context.Context, string) error      { return errors.New("read-only") }

func day(d int) time.Time {
	return time.Date(2026, 4, d, 8, 30, 0, 0, time.Local)
}

func TestStreakLawsThroughStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clk := &fakeClock{values: []time.Time{day(1), day(2), day(2), day(3), day(5)}}
	uc := usecase.NewInteractor(service.NewStreakService(clk, streakout.NewKVStreakRepository(kv.NewMemory()), logging.Discard()))

	if got := uc.Get(ctx); got.CurrentStreak != 0 || got.LastSessionDate != "" {
		t.Fatalf("expected empty default, got %+v", got)
	}
	want := []int{1, 2, 2, 3, 1}
	for i, w := range want {
		out, err := uc.Update(ctx)
		if err != nil {
			t.Fatalf("update %d: %v", i, err)
		}
		if out.CurrentStreak != w {
			t.Fatalf("update %d: expected streak %d, got %d", i, w, out.CurrentStreak)
		}
		if stored := uc.Get(ctx); stored.CurrentStreak != w {
			t.Fatalf("update %d: persisted streak %d, want %d", i, stored.CurrentStreak, w)
		}
	}

	if err := uc.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if got := uc.Get(ctx); got.CurrentStreak != 0 || got.LastSessionDate != "" {
		t.Fatalf("expected reset streak, got %+v", got)
	}
}

func TestStreakReadsLegacyDocument(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kv.NewMemory()
	if err := store.Set(ctx, streakout.Key, `{"currentStreak":6,"lastSessionDate":"2026-04-01T00:00:00.000Z"}`); err != nil {
		t.Fatalf("seed: %v", err)
	}
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	uc := usecase.NewInteractor(service.NewStreakService(&fakeClock{values: []time.Time{now}}, streakout.NewKVStreakRepository(store), logging.Discard()))
	status := uc.Status(ctx)
	if status.CurrentStreak != 6 || !status.ActiveToday {
		t.Fatalf("unexpected status %+v", status)
	}
}

func TestCorruptStreakReadsAsEmpty(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kv.NewMemory()
	if err := store.Set(ctx, streakout.Key, "[1,2"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	uc := usecase.NewInteractor(service.NewStreakService(&fakeClock{values: []time.Time{day(1)}}, streakout.NewKVStreakRepository(store), logging.Discard()))
	if got := uc.Get(ctx); got.CurrentStreak != 0 {
		t.Fatalf("expected empty streak, got %+v", got)
	}
	out, err := uc.Update(ctx)
	if err != nil || out.CurrentStreak != 1 {
		t.Fatalf("expected fresh streak, got %+v %v", out, err)
	}
}

func TestUpdateReportsStorageErrorButReturnsStreak(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := usecase.NewInteractor(service.NewStreakService(&fakeClock{values: []time.Time{day(1)}}, streakout.NewKVStreakRepository(readOnlyStore{kv.NewMemory()}), logging.Discard()))
	out, err := uc.Update(ctx)
	if !errors.Is(err, apperrors.ErrStorage) {
		t.Fatalf("expected storage error, got %v", err)
	}
	if out.CurrentStreak != 1 {
		t.Fatalf("expected computed streak despite failure, got %d", out.CurrentStreak)
	}
	if err := uc.Reset(ctx); !errors.Is(err, apperrors.ErrStorage) {
		t.Fatalf("expected storage error on reset, got %v", err)
	}
}

func TestRestoreValidates(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := usecase.NewInteractor(service.NewStreakService(&fakeClock{values: []time.Time{day(2)}}, streakout.NewKVStreakRepository(kv.NewMemory()), logging.Discard()))
	if err := uc.Restore(ctx, streakdto.Record{CurrentStreak: -1}); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := uc.Restore(ctx, streakdto.Record{CurrentStreak: 2, LastSessionDate: "whenever"}); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := uc.Restore(ctx, streakdto.Record{CurrentStreak: 4, LastSessionDate: day(1).Format(time.RFC3339)}); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if st := uc.Status(ctx); st.CurrentStreak != 4 || !st.AtRisk {
		t.Fatalf("unexpected status %+v", st)
	}
}
