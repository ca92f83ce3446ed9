package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"stillpoint/internal/modules/session/domain"
	sessionout "stillpoint/internal/modules/session/port/out"
	apperrors "stillpoint/internal/platform/errors"
)

type SessionService struct {
	repo        sessionout.SessionRepository
	logger      *log.Logger
	maxSessions int
}

// NewSessionService keeps at most maxSessions entries; 0 keeps everything.
func NewSessionService(repo sessionout.SessionRepository, logger *log.Logger, maxSessions int) *SessionService {
	return &SessionService{repo: repo, logger: logger.WithPrefix("sessions"), maxSessions: maxSessions}
}

func (s *SessionService) Save(ctx context.Context, session domain.Session) error {
	if err := session.Validate(); err != nil {
		return err
	}
	existing, err := s.repo.Load(ctx)
	if err != nil {
		if !errors.Is(err, apperrors.ErrCorruptData) {
			s.logger.Error("load before save failed", "err", err)
			return fmt.Errorf("%w: save session: %w", apperrors.ErrStorage, err)
		}
		s.logger.Warn("discarding unreadable session history", "err", err)
		existing = nil
	}
	if err := s.repo.Store(ctx, domain.Prepend(existing, session, s.maxSessions)); err != nil {
		s.logger.Error("persist session failed", "err", err)
		return fmt.Errorf("%w: save session: %w", apperrors.ErrStorage, err)
	}
	s.logger.Debug("session saved", "duration", session.Duration, "timestamp", session.Timestamp)
	return nil
}

// All returns the log newest first. Read failures degrade to an empty log.
func (s *SessionService) All(ctx context.Context) []domain.Session {
	sessions, err := s.repo.Load(ctx)
	if err != nil {
		s.logger.Warn("session history unreadable, treating as empty", "err", err)
		return nil
	}
	valid := make([]domain.Session, 0, len(sessions))
	for _, session := range sessions {
		if err := session.Validate(); err != nil {
			s.logger.Warn("skipping malformed session", "duration", session.Duration, "timestamp", session.Timestamp)
			continue
		}
		valid = append(valid, session)
	}
	return valid
}

func (s *SessionService) Recent(ctx context.Context, limit int) ([]domain.Session, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive, got %d", apperrors.ErrValidation, limit)
	}
	all := s.All(ctx)
	if limit > len(all) {
		limit = len(all)
	}
	return all[:limit], nil
}

func (s *SessionService) Clear(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		s.logger.Error("clear sessions failed", "err", err)
		return fmt.Errorf("%w: %w", apperrors.ErrStorage, err)
	}
	return nil
}

// Replace validates every record before overwriting the log.
func (s *SessionService) Replace(ctx context.Context, sessions []domain.Session) error {
	for i, session := range sessions {
		if err := session.Validate(); err != nil {
			return fmt.Errorf("session %d: %w", i, err)
		}
	}
	if err := s.repo.Store(ctx, sessions); err != nil {
		s.logger.Error("replace sessions failed", "err", err)
		return fmt.Errorf("%w: %w", apperrors.ErrStorage, err)
	}
	return nil
}
