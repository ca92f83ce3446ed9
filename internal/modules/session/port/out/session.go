package out

import (
	"context"

	"stillpoint/internal/modules/session/domain"
)

// SessionRepository persists the whole log, newest first. Load returns
// apperrors.ErrCorruptData when the stored document cannot be decoded.
type SessionRepository interface {
	Load(ctx context.Context) ([]domain.Session, error)
	Store(ctx context.Context, sessions []domain.Session) error
	Clear(ctx context.Context) error
}
