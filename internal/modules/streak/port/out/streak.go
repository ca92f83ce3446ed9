package out

import (
	"context"

	"stillpoint/internal/modules/streak/domain"
)

type StreakRepository interface {
	// Load returns the zero value when nothing is stored and
	// apperrors.ErrCorruptData when the document cannot be decoded.
	Load(ctx context.Context) (domain.StreakData, error)
	Store(ctx context.Context, data domain.StreakData) error
	Clear(ctx context.Context) error
}
