package out

import (
	"context"

	"stillpoint/internal/modules/achievement/domain"
)

type ProgressRepository interface {
	// Load returns an empty map when nothing is stored and
	// apperrors.ErrCorruptData when the document cannot be decoded.
	Load(ctx context.Context) (domain.ProgressMap, error)
	Store(ctx context.Context, progress domain.ProgressMap) error
	Clear(ctx context.Context) error
}
