package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"stillpoint/internal/modules/achievement/domain"
	achievementout "stillpoint/internal/modules/achievement/port/out"
	sessionin "stillpoint/internal/modules/session/port/in"
	streakin "stillpoint/internal/modules/streak/port/in"
	"stillpoint/internal/platform/clock"
	apperrors "stillpoint/internal/platform/errors"
)

// Entry pairs a definition with its stored progress and live measurement.
type Entry struct {
	Definition domain.Definition
	Progress   domain.Progress
	Current    int
	Percent    int
}

type Stats struct {
	Total      int
	Unlocked   int
	Percentage int
}

type AchievementService struct {
	catalog  domain.Catalog
	repo     achievementout.ProgressRepository
	sessions sessionin.Usecase
	streaks  streakin.Usecase
	clock    clock.Clock
	logger   *log.Logger
}

func NewAchievementService(
	catalog domain.Catalog,
	repo achievementout.ProgressRepository,
	sessions sessionin.Usecase,
	streaks streakin.Usecase,
	clock clock.Clock,
	logger *log.Logger,
) *AchievementService {
	return &AchievementService{
		catalog:  catalog,
		repo:     repo,
		sessions: sessions,
		streaks:  streaks,
		clock:    clock,
		logger:   logger.WithPrefix("achievements"),
	}
}

// snapshot reads the session log and the streak exactly once.
func (s *AchievementService) snapshot(ctx context.Context, pending []int) domain.Snapshot {
	all := s.sessions.GetAll(ctx)
	durations := make([]int, 0, len(all)+len(pending))
	for _, p := range pending {
		if p > 0 {
			durations = append(durations, p)
		}
	}
	for _, session := range all {
		durations = append(durations, session.Duration)
	}
	return domain.Snapshot{Durations: durations, CurrentStreak: s.streaks.Get(ctx).CurrentStreak}
}

func (s *AchievementService) progress(ctx context.Context) domain.ProgressMap {
	progress, err := s.repo.Load(ctx)
	if err != nil {
		s.logger.Warn("achievement progress unreadable, treating as none unlocked", "err", err)
		return domain.ProgressMap{}
	}
	return progress
}

// CheckAndUnlock persists newly met achievements in one write and returns
// them. A failed write still returns the unlocked set with ErrStorage.
func (s *AchievementService) CheckAndUnlock(ctx context.Context, pending []int) ([]domain.Definition, error) {
	progress, err := s.repo.Load(ctx)
	if err != nil {
		if !errors.Is(err, apperrors.ErrCorruptData) {
			s.logger.Error("load achievement progress failed", "err", err)
			return nil, fmt.Errorf("%w: check achievements: %w", apperrors.ErrStorage, err)
		}
		s.logger.Warn("replacing unreadable achievement progress", "err", err)
		progress = domain.ProgressMap{}
	}
	newly, next := domain.Unlock(s.catalog, progress, s.snapshot(ctx, pending), s.clock.Now())
	if len(newly) == 0 {
		return nil, nil
	}
	if err := s.repo.Store(ctx, next); err != nil {
		s.logger.Error("persist achievement progress failed", "err", err)
		return newly, fmt.Errorf("%w: check achievements: %w", apperrors.ErrStorage, err)
	}
	for _, d := range newly {
		s.logger.Info("achievement unlocked", "id", d.ID, "title", d.Title)
	}
	return newly, nil
}

func (s *AchievementService) entry(d domain.Definition, progress domain.ProgressMap, snap domain.Snapshot) Entry {
	return Entry{
		Definition: d,
		Progress:   progress[d.ID],
		Current:    d.Condition.Measure(snap),
		Percent:    d.Condition.Percent(snap),
	}
}

// ListWithProgress merges the catalog with stored progress in catalog order.
func (s *AchievementService) ListWithProgress(ctx context.Context) []Entry {
	progress := s.progress(ctx)
	snap := s.snapshot(ctx, nil)
	defs := s.catalog.Definitions()
	out := make([]Entry, 0, len(defs))
	for _, d := range defs {
		out = append(out, s.entry(d, progress, snap))
	}
	return out
}

func (s *AchievementService) Get(ctx context.Context, id string) (Entry, error) {
	d, ok := s.catalog.Lookup(id)
	if !ok {
		return Entry{}, fmt.Errorf("achievement %q: %w", id, apperrors.ErrNotFound)
	}
	return s.entry(d, s.progress(ctx), s.snapshot(ctx, nil)), nil
}

func (s *AchievementService) Stats(ctx context.Context) Stats {
	total := s.catalog.Len()
	unlocked := domain.CountUnlocked(s.catalog, s.progress(ctx))
	pct := 0
	if total > 0 {
		pct = int(math.Round(float64(unlocked) / float64(total) * 100))
	}
	return Stats{Total: total, Unlocked: unlocked, Percentage: pct}
}

// Reset removes all progress. Only the full data wipe calls this.
func (s *AchievementService) Reset(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrStorage, err)
	}
	return nil
}

func (s *AchievementService) Export(ctx context.Context) (domain.ProgressMap, error) {
	progress, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: export achievements: %w", apperrors.ErrStorage, err)
	}
	return progress, nil
}

func (s *AchievementService) Restore(ctx context.Context, progress domain.ProgressMap) error {
	clean := make(domain.ProgressMap, len(progress))
	for id, p := range progress {
		if !p.Unlocked {
			continue
		}
		if p.UnlockedAt != "" {
			if _, err := time.Parse(time.RFC3339Nano, p.UnlockedAt); err != nil {
				return fmt.Errorf("%w: %s unlockedAt %q", apperrors.ErrValidation, id, p.UnlockedAt)
			}
		}
		clean[id] = p
	}
	if err := s.repo.Store(ctx, clean); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrStorage, err)
	}
	return nil
}
