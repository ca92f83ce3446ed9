package service

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"stillpoint/internal/modules/streak/domain"
	streakout "stillpoint/internal/modules/streak/port/out"
	"stillpoint/internal/platform/clock"
	apperrors "stillpoint/internal/platform/errors"
)

type StreakService struct {
	clock  clock.Clock
	repo   streakout.StreakRepository
	logger *log.Logger
}

func NewStreakService(clock clock.Clock, repo streakout.StreakRepository, logger *log.Logger) *StreakService {
	return &StreakService{clock: clock, repo: repo, logger: logger.WithPrefix("streak")}
}

func (s *StreakService) Get(ctx context.Context) domain.StreakData {
	data, err := s.repo.Load(ctx)
	if err != nil {
		s.logger.Warn("streak unreadable, treating as empty", "err", err)
		return domain.StreakData{}
	}
	return data.Normalize()
}

func (s *StreakService) Update(ctx context.Context) (domain.StreakData, error) {
	next := domain.Advance(s.Get(ctx), s.clock.Now())
	if err := s.repo.Store(ctx, next); err != nil {
		s.logger.Error("persist streak failed", "err", err)
		return next, fmt.Errorf("%w: update streak: %w", apperrors.ErrStorage, err)
	}
	s.logger.Debug("streak advanced", "current", next.CurrentStreak)
	return next, nil
}

func (s *StreakService) Reset(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		s.logger.Error("reset streak failed", "err", err)
		return fmt.Errorf("%w: %w", apperrors.ErrStorage, err)
	}
	return nil
}

func (s *StreakService) Status(ctx context.Context) domain.Status {
	return domain.Describe(s.Get(ctx), s.clock.Now())
}

func (s *StreakService) Restore(ctx context.Context, data domain.StreakData) error {
	if data.CurrentStreak < 0 {
		return fmt.Errorf("%w: streak must be non-negative", apperrors.ErrValidation)
	}
	if data.CurrentStreak > 0 {
		if _, ok := data.LastDay(s.clock.Now().Location()); !ok {
			return fmt.Errorf("%w: unreadable lastSessionDate %q", apperrors.ErrValidation, data.LastSessionDate)
		}
	}
	if err := s.repo.Store(ctx, data.Normalize()); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrStorage, err)
	}
	return nil
}
