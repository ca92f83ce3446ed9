package in

import (
	"context"

	"stillpoint/internal/modules/streak/dto"
)

type Usecase interface {
	// Get never fails; missing or unreadable data reads as {0, ""}.
	Get(ctx context.Context) dto.StreakOutput
	// Update records one completed session today. The advanced streak is
	// returned even when persisting it fails.
	Update(ctx context.Context) (dto.StreakOutput, error)
	Reset(ctx context.Context) error
	Status(ctx context.Context) dto.StatusOutput
	Restore(ctx context.Context, record dto.Record) error
}
