package in

import (
	"context"

	"stillpoint/internal/modules/achievement/dto"
)

type Usecase interface {
	CheckAndUnlock(ctx context.Context, input dto.CheckInput) ([]dto.AchievementOutput, error)
	ListWithProgress(ctx context.Context) []dto.AchievementOutput
	Stats(ctx context.Context) dto.StatsOutput
	Get(ctx context.Context, id string) (dto.AchievementOutput, error)
	Reset(ctx context.Context) error
	ExportProgress(ctx context.Context) (map[string]dto.ProgressRecord, error)
	RestoreProgress(ctx context.Context, progress map[string]dto.ProgressRecord) error
}
