package usecase_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	sessionout "stillpoint/internal/modules/session/adapter/out"
	sessiondto "stillpoint/internal/modules/session/dto"
	sessionin "stillpoint/internal/modules/session/port/in"
	"stillpoint/internal/modules/session/service"
	"stillpoint/internal/modules/session/usecase"
	apperrors "stillpoint/internal/platform/errors"
	"stillpoint/internal/platform/kv"
	"stillpoint/internal/platform/logging"
)

type failingStore struct {
	kv.Store
	failSet    bool
	failGet    bool
	failRemove bool
}

func (f failingStore) Get(ctx context.Context, key string) (string, bool, error) {
	if f.failGet {
		return "", false, errors.New("disk unavailable")
	}
	return f.Store.Get(ctx, key)
}

func (f failingStore) Set(ctx context.Context, key, value string) error {
	if f.failSet {
		return errors.New("quota exceeded")
	}
	return f.Store.Set(ctx, key, value)
}

func (f failingStore) Remove(ctx context.Context, key string) error {
	if f.failRemove {
		return errors.New("read-only filesystem")
	}
	return f.Store.Remove(ctx, key)
}

func newUsecase(store kv.Store, max int) sessionin.Usecase {
	return usecase.NewInteractor(service.NewSessionService(sessionout.NewKVSessionRepository(store), logging.Discard(), max))
}

func TestSaveThenGetAllRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := newUsecase(kv.NewMemory(), 0)

	first := time.Date(2026, 2, 25, 7, 0, 0, 0, time.UTC)
	second := first.Add(24 * time.Hour)
	if err := uc.Save(ctx, sessiondto.SaveInput{Duration: 600, CompletedAt: first}); err != nil {
		t.Fatalf("save first: %v", err)
	}
	if err := uc.Save(ctx, sessiondto.SaveInput{Duration: 300, CompletedAt: second}); err != nil {
		t.Fatalf("save second: %v", err)
	}

	if got := uc.Count(ctx); got != 2 {
		t.Fatalf("expected count 2, got %d", got)
	}
	all := uc.GetAll(ctx)
	if len(all) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(all))
	}
	if all[0].Duration != 300 || all[0].Timestamp != "2026-02-26T07:00:00.000Z" {
		t.Fatalf("newest session must come first, got %+v", all[0])
	}
	if !all[0].CompletedAt.Equal(second) {
		t.Fatalf("expected parsed completion %v, got %v", second, all[0].CompletedAt)
	}

	recent, err := uc.GetRecent(ctx, 1)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 1 || recent[0].Duration != 300 {
		t.Fatalf("unexpected recent %+v", recent)
	}
	if recent, _ := uc.GetRecent(ctx, 50); len(recent) != 2 {
		t.Fatalf("limit beyond size must return all, got %d", len(recent))
	}
	if _, err := uc.GetRecent(ctx, 0); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected validation error for zero limit, got %v", err)
	}

	if err := uc.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if got := uc.GetAll(ctx); len(got) != 0 || uc.Count(ctx) != 0 {
		t.Fatalf("expected empty log after clear, got %d", len(got))
	}
}

func TestSaveRejectsInvalidSessions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := newUsecase(kv.NewMemory(), 0)
	if err := uc.Save(ctx, sessiondto.SaveInput{Duration: 0, CompletedAt: time.Now()}); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected validation error for zero duration, got %v", err)
	}
	if err := uc.Save(ctx, sessiondto.SaveInput{Duration: 60}); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected validation error for missing timestamp, got %v", err)
	}
	if got := uc.GetAll(ctx); len(got) != 0 {
		t.Fatalf("invalid sessions must not be stored")
	}
}

func TestDuplicateTimestampsAreKept(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := newUsecase(kv.NewMemory(), 0)
	at := time.Date(2026, 2, 25, 7, 0, 0, 0, time.UTC)
	for i := 0; i < 2; i++ {
		if err := uc.Save(ctx, sessiondto.SaveInput{Duration: 60, CompletedAt: at}); err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	if got := uc.GetAll(ctx); len(got) != 2 {
		t.Fatalf("expected duplicates to be stored, got %d", len(got))
	}
}

func TestMaxSessionsDropsOldest(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := newUsecase(kv.NewMemory(), 2)
	base := time.Date(2026, 2, 25, 7, 0, 0, 0, time.UTC)
	for i := 1; i <= 3; i++ {
		if err := uc.Save(ctx, sessiondto.SaveInput{Duration: i * 60, CompletedAt: base.Add(time.Duration(i) * time.Hour)}); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}
	all := uc.GetAll(ctx)
	if len(all) != 2 || all[0].Duration != 180 || all[1].Duration != 120 {
		t.Fatalf("unexpected capped log %+v", all)
	}
}

func TestCorruptHistoryDegradesToEmpty(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kv.NewMemory()
	if err := store.Set(ctx, sessionout.Key, "{not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	uc := newUsecase(store, 0)
	if got := uc.GetAll(ctx); len(got) != 0 {
		t.Fatalf("corrupt data must read as empty, got %d", len(got))
	}
	if err := uc.Save(ctx, sessiondto.SaveInput{Duration: 60, CompletedAt: time.Now()}); err != nil {
		t.Fatalf("save over corrupt data: %v", err)
	}
	if got := uc.GetAll(ctx); len(got) != 1 {
		t.Fatalf("expected the new session to replace corrupt data, got %d", len(got))
	}
}

func TestMalformedEntriesAreSkipped(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kv.NewMemory()
	seed := `[{"duration":300,"timestamp":"2026-02-25T07:00:00.000Z"},{"duration":0,"timestamp":"x"}]`
	if err := store.Set(ctx, sessionout.Key, seed); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if got := newUsecase(store, 0).GetAll(ctx); len(got) != 1 || got[0].Duration != 300 {
		t.Fatalf("unexpected sessions %+v", got)
	}
}

func TestStorageFailuresSurfaceAsStorageError(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	writeFail := newUsecase(failingStore{Store: kv.NewMemory(), failSet: true, failRemove: true}, 0)
	if err := writeFail.Save(ctx, sessiondto.SaveInput{Duration: 60, CompletedAt: time.Now()}); !errors.Is(err, apperrors.ErrStorage) {
		t.Fatalf("expected storage error on save, got %v", err)
	}
	if err := writeFail.Clear(ctx); !errors.Is(err, apperrors.ErrStorage) {
		t.Fatalf("expected storage error on clear, got %v", err)
	}

	readFail := newUsecase(failingStore{Store: kv.NewMemory(), failGet: true}, 0)
	if got := readFail.GetAll(ctx); len(got) != 0 {
		t.Fatalf("read failure must degrade to empty")
	}
	if err := readFail.Save(ctx, sessiondto.SaveInput{Duration: 60, CompletedAt: time.Now()}); !errors.Is(err, apperrors.ErrStorage) {
		t.Fatalf("unreadable history must not be overwritten, got %v", err)
	}
}

func TestReplaceValidatesEveryRecord(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := newUsecase(kv.NewMemory(), 0)
	err := uc.Replace(ctx, []sessiondto.Record{
		{Duration: 60, Timestamp: "2026-02-25T07:00:00.000Z"},
		{Duration: -1, Timestamp: "2026-02-25T07:00:00.000Z"},
	})
	if !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := uc.Replace(ctx, []sessiondto.Record{{Duration: 60, Timestamp: "2026-02-25T07:00:00.000Z"}}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if got := uc.GetAll(ctx); len(got) != 1 {
		t.Fatalf("expected replaced log, got %d", len(got))
	}
}

func TestFileBackedHistorySurvivesReopen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "store")
	if err := newUsecase(kv.NewFileStore(dir), 0).Save(ctx, sessiondto.SaveInput{Duration: 900, CompletedAt: time.Now()}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := newUsecase(kv.NewFileStore(dir), 0).GetAll(ctx); len(got) != 1 || got[0].Duration != 900 {
		t.Fatalf("unexpected reopened log %+v", got)
	}
}
