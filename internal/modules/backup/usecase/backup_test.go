package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	achievementout "stillpoint/internal/modules/achievement/adapter/out"
	achievementdomain "stillpoint/internal/modules/achievement/domain"
	achievementdto "stillpoint/internal/modules/achievement/dto"
	achievementin "stillpoint/internal/modules/achievement/port/in"
	achievementservice "stillpoint/internal/modules/achievement/service"
	achievementusecase "stillpoint/internal/modules/achievement/usecase"
	backupout "stillpoint/internal/modules/backup/adapter/out"
	backupin "stillpoint/internal/modules/backup/port/in"
	"stillpoint/internal/modules/backup/service"
	"stillpoint/internal/modules/backup/usecase"
	sessionout "stillpoint/internal/modules/session/adapter/out"
	sessiondto "stillpoint/internal/modules/session/dto"
	sessionin "stillpoint/internal/modules/session/port/in"
	sessionservice "stillpoint/internal/modules/session/service"
	sessionusecase "stillpoint/internal/modules/session/usecase"
	streakout "stillpoint/internal/modules/streak/adapter/out"
	streakin "stillpoint/internal/modules/streak/port/in"
	streakservice "stillpoint/internal/modules/streak/service"
	streakusecase "stillpoint/internal/modules/streak/usecase"
	"stillpoint/internal/platform/clock"
	apperrors "stillpoint/internal/platform/errors"
	"stillpoint/internal/platform/kv"
	"stillpoint/internal/platform/logging"
	"stillpoint/internal/platform/tx"
)

var fixedNow = time.Date(2026, 5, 3, 7, 0, 0, 0, time.UTC)

type fixedIDs struct{ value string }

func (f fixedIDs) New() string { return f.value }

type env struct {
	backup       backupin.Usecase
	sessions     sessionin.Usecase
	streaks      streakin.Usecase
	achievements achievementin.Usecase
}

func newEnv(t *testing.T, store kv.Store, txm tx.Manager) env {
	t.Helper()
	logger := logging.Discard()
	clk := clock.Fixed{At: fixedNow}
	sessions := sessionusecase.NewInteractor(sessionservice.NewSessionService(sessionout.NewKVSessionRepository(store), logger, 0))
	streaks := streakusecase.NewInteractor(streakservice.NewStreakService(clk, streakout.NewKVStreakRepository(store), logger))
	achievements := achievementusecase.NewInteractor(achievementservice.NewAchievementService(
		achievementdomain.DefaultCatalog(),
		achievementout.NewKVProgressRepository(store),
		sessions,
		streaks,
		clk,
		logger,
	))
	backup := usecase.NewInteractor(service.NewBackupService(
		sessions,
		streaks,
		achievements,
		backupout.NewFileJournalStore(),
		txm,
		clk,
		fixedIDs{value: "export-1"},
		logger,
	))
	return env{backup: backup, sessions: sessions, streaks: streaks, achievements: achievements}
}

func (e env) seed(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	for _, d := range []int{1800, 600} {
		if err := e.sessions.Save(ctx, sessiondto.SaveInput{Duration: d, CompletedAt: fixedNow.Add(-time.Hour)}); err != nil {
			t.Fatalf("seed session: %v", err)
		}
	}
	if _, err := e.streaks.Update(ctx); err != nil {
		t.Fatalf("seed streak: %v", err)
	}
	if _, err := e.achievements.CheckAndUnlock(ctx, achievementdto.CheckInput{}); err != nil {
		t.Fatalf("seed achievements: %v", err)
	}
}

func openSQLite(t *testing.T) *kv.SQLiteStore {
	t.Helper()
	store, err := kv.OpenSQLite(filepath.Join(t.TempDir(), "stillpoint.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestExportImportRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	src := newEnv(t, kv.NewMemory(), tx.NoopManager{})
	src.seed(t)

	var buf bytes.Buffer
	out, err := src.backup.ExportJSON(ctx, &buf)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if out.ID != "export-1" || out.Sessions != 2 || out.ExportedAt != "2026-05-03T07:00:00.000Z" {
		t.Fatalf("unexpected export summary %+v", out)
	}

	dst := newEnv(t, kv.NewMemory(), tx.NoopManager{})
	imported, err := dst.backup.ImportJSON(ctx, bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if imported.Sessions != 2 || imported.CurrentStreak != 1 || imported.Unlocked != 2 {
		t.Fatalf("unexpected import summary %+v", imported)
	}
	got, want := dst.sessions.GetAll(ctx), src.sessions.GetAll(ctx)
	if len(got) != len(want) {
		t.Fatalf("sessions differ: %+v vs %+v", got, want)
	}
	for i := range got {
		if got[i].Timestamp != want[i].Timestamp || got[i].Duration != want[i].Duration {
			t.Fatalf("session %d differs: %+v vs %+v", i, got[i], want[i])
		}
	}
	if s := dst.achievements.Stats(ctx); s.Unlocked != 2 {
		t.Fatalf("expected 2 unlocked after import, got %+v", s)
	}
	if again, _ := dst.achievements.CheckAndUnlock(ctx, achievementdto.CheckInput{}); len(again) != 0 {
		t.Fatalf("imported unlocks must not fire again, got %+v", again)
	}
}

func TestInvalidImportWritesNothing(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	e := newEnv(t, kv.NewMemory(), tx.NoopManager{})
	e.seed(t)

	payload := `{"version":1,"sessions":[{"duration":600,"timestamp":"2026-05-01T06:00:00.000Z"},{"duration":-1,"timestamp":"2026-05-02T06:00:00.000Z"}]}`
	if _, err := e.backup.ImportJSON(ctx, strings.NewReader(payload)); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if got := len(e.sessions.GetAll(ctx)); got != 2 {
		t.Fatalf("existing sessions must survive a rejected import, got %d", got)
	}
}

func TestImportRollsBackInsideTransaction(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := openSQLite(t)
	e := newEnv(t, store, store.TxManager())
	e.seed(t)

	// The streak date only fails once the streak store parses it, after the
	// session log was already replaced inside the transaction.
	payload := `{"version":1,"sessions":[{"duration":60,"timestamp":"2026-05-01T06:00:00.000Z"}],"streak":{"currentStreak":4,"lastSessionDate":"someday"}}`
	if _, err := e.backup.ImportJSON(ctx, strings.NewReader(payload)); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	all := e.sessions.GetAll(ctx)
	if len(all) != 2 || all[0].Duration != 600 {
		t.Fatalf("session log must be rolled back, got %+v", all)
	}
	if got := e.streaks.Get(ctx).CurrentStreak; got != 1 {
		t.Fatalf("streak must be unchanged, got %d", got)
	}
}

func TestWipeClearsEverything(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := openSQLite(t)
	e := newEnv(t, store, store.TxManager())
	e.seed(t)

	if err := e.backup.Wipe(ctx); err != nil {
		t.Fatalf("wipe: %v", err)
	}
	if got := e.sessions.GetAll(ctx); len(got) != 0 {
		t.Fatalf("sessions left after wipe: %+v", got)
	}
	if got := e.streaks.Get(ctx); got.CurrentStreak != 0 || got.LastSessionDate != "" {
		t.Fatalf("streak left after wipe: %+v", got)
	}
	if got := e.achievements.Stats(ctx); got.Unlocked != 0 || got.Percentage != 0 {
		t.Fatalf("achievements left after wipe: %+v", got)
	}
}

func TestExportJournal(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	e := newEnv(t, kv.NewMemory(), tx.NoopManager{})
	e.seed(t)

	path := filepath.Join(t.TempDir(), "notes", "journal.md")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("# Practice\n\nSitting by the window.\n"), 0o644); err != nil {
		t.Fatalf("seed journal: %v", err)
	}
	out, err := e.backup.ExportJournal(ctx, path)
	if err != nil {
		t.Fatalf("export journal: %v", err)
	}
	if out.Path != path || out.Sessions != 2 {
		t.Fatalf("unexpected summary %+v", out)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read journal: %v", err)
	}
	text := string(raw)
	for _, want := range []string{"export_id: export-1", "total_minutes: 40", "Sitting by the window.", "| 2026-05-03 | 06:00 | 30 min |"} {
		if !strings.Contains(text, want) {
			t.Fatalf("journal missing %q:\n%s", want, text)
		}
	}
}
