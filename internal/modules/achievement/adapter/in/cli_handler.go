package in

import (
	"context"

	achievementdto "stillpoint/internal/modules/achievement/dto"
	achievementin "stillpoint/internal/modules/achievement/port/in"
)

type CLIHandler struct {
	usecase achievementin.Usecase
}

func NewCLIHandler(usecase achievementin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) []achievementdto.AchievementOutput {
	return h.usecase.ListWithProgress(ctx)
}

func (h CLIHandler) Show(ctx context.Context, id string) (achievementdto.AchievementOutput, error) {
	return h.usecase.Get(ctx, id)
}

func (h CLIHandler) Stats(ctx context.Context) achievementdto.StatsOutput {
	return h.usecase.Stats(ctx)
}

func (h CLIHandler) Check(ctx context.Context) ([]achievementdto.AchievementOutput, error) {
	return h.usecase.CheckAndUnlock(ctx, achievementdto.CheckInput{})
}
