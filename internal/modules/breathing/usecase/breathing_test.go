package usecase_test

import (
	"context"
	"errors"
	"testing"

	breathingin "stillpoint/internal/modules/breathing/adapter/in"
	"stillpoint/internal/modules/breathing/domain"
	breathingdto "stillpoint/internal/modules/breathing/dto"
	breathingport "stillpoint/internal/modules/breathing/port/in"
	"stillpoint/internal/modules/breathing/service"
	"stillpoint/internal/modules/breathing/usecase"
	apperrors "stillpoint/internal/platform/errors"
	"stillpoint/internal/platform/logging"
)

func newUsecase(t *testing.T) breathingport.Usecase {
	t.Helper()
	catalog, err := domain.NewCatalog(domain.DefaultPatterns())
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return usecase.NewInteractor(service.NewBreathingService(catalog, logging.Discard()))
}

func TestPatternsKeepCatalogOrder(t *testing.T) {
	t.Parallel()
	uc := newUsecase(t)
	all := uc.Patterns(context.Background())
	if len(all) != 5 || all[0].ID != "478" || all[1].ID != "box" {
		t.Fatalf("unexpected patterns %+v", all)
	}
	if all[0].TotalSeconds != 76 || all[1].Rest != 4 {
		t.Fatalf("unexpected pattern figures %+v %+v", all[0], all[1])
	}
}

func TestCueFollowsElapsedTime(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := newUsecase(t)

	cue, err := uc.Cue(ctx, "478", 5)
	if err != nil {
		t.Fatalf("cue: %v", err)
	}
	want := breathingdto.CueOutput{PatternID: "478", Phase: breathingdto.PhaseHold, Remaining: 6, Cycle: 1, TotalCycles: 4}
	if cue != want {
		t.Fatalf("cue = %+v, want %+v", cue, want)
	}

	cue, err = uc.Cue(ctx, "478", 76+19)
	if err != nil || cue.Phase != breathingdto.PhaseInhale || cue.Cycle != 2 {
		t.Fatalf("long sitting should repeat the pattern, got %+v (%v)", cue, err)
	}
}

func TestUnknownPattern(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := newUsecase(t)
	if _, err := uc.Cue(ctx, "hum", 0); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("cue: expected not found, got %v", err)
	}
	if _, err := uc.Pattern(ctx, "hum"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("pattern: expected not found, got %v", err)
	}
	if _, err := uc.Script(ctx, "hum"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("script: expected not found, got %v", err)
	}
}

func TestCLIHandler(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := breathingin.NewCLIHandler(newUsecase(t))

	p, steps, err := h.Show(ctx, "calming")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if got := breathingin.Rhythm(p); got != "4-6" {
		t.Fatalf("rhythm = %q", got)
	}
	if len(steps) != 12 || steps[1].Phase != breathingdto.PhaseExhale || steps[11].Cycle != 6 {
		t.Fatalf("unexpected script %+v", steps)
	}

	cue, err := h.Cue(ctx, "box", 13)
	if err != nil || cue != "rest 3" {
		t.Fatalf("cue = %q (%v)", cue, err)
	}
	if cue, err := h.Cue(ctx, "", 13); err != nil || cue != "" {
		t.Fatalf("no pattern should give no cue, got %q (%v)", cue, err)
	}
}
