package in

import (
	"context"

	"stillpoint/internal/modules/session/dto"
)

type Usecase interface {
	Save(ctx context.Context, input dto.SaveInput) error
	// GetAll never fails; unreadable history is reported as empty.
	GetAll(ctx context.Context) []dto.SessionOutput
	GetRecent(ctx context.Context, limit int) ([]dto.SessionOutput, error)
	Count(ctx context.Context) int
	Clear(ctx context.Context) error
	Replace(ctx context.Context, records []dto.Record) error
}
