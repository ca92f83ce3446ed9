package in

import (
	"context"
	"sync"

	achievementdto "stillpoint/internal/modules/achievement/dto"
	timerdto "stillpoint/internal/modules/timer/dto"
	timerin "stillpoint/internal/modules/timer/port/in"
)

type CLIHandler struct {
	usecase timerin.Usecase
}

func NewCLIHandler(usecase timerin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Presets(ctx context.Context) []int {
	return h.usecase.Presets(ctx)
}

// Run counts down in the foreground and blocks until the session completes
// or ctx is cancelled. Cancellation resets the timer and records nothing.
// minutes <= 0 keeps the current length.
func (h CLIHandler) Run(ctx context.Context, minutes int, onTick func(timerdto.TimerOutput)) (timerdto.RunResult, error) {
	if minutes > 0 {
		if _, err := h.usecase.SelectPreset(ctx, minutes); err != nil {
			return timerdto.RunResult{}, err
		}
	}

	done := make(chan struct{})
	var once sync.Once
	var unlocked []achievementdto.AchievementOutput
	h.usecase.SetHooks(timerdto.Hooks{
		OnTick:            onTick,
		OnNewAchievements: func(list []achievementdto.AchievementOutput) { unlocked = list },
		OnSessionComplete: func() { once.Do(func() { close(done) }) },
	})
	defer h.usecase.SetHooks(timerdto.Hooks{})

	state, err := h.usecase.Start(ctx)
	if err != nil {
		return timerdto.RunResult{}, err
	}
	select {
	case <-done:
		return timerdto.RunResult{Completed: true, Duration: state.TotalSeconds, Unlocked: unlocked}, nil
	case <-ctx.Done():
		h.usecase.Reset(context.WithoutCancel(ctx))
		return timerdto.RunResult{Duration: state.TotalSeconds}, ctx.Err()
	}
}
