package in

import (
	"context"

	"stillpoint/internal/modules/timer/dto"
)

type Usecase interface {
	SelectPreset(ctx context.Context, minutes int) (dto.TimerOutput, error)
	// Start begins or resumes the countdown. The context's values are kept
	// for the completion sequence; its cancellation is not.
	Start(ctx context.Context) (dto.TimerOutput, error)
	Pause(ctx context.Context) (dto.TimerOutput, error)
	Reset(ctx context.Context) dto.TimerOutput
	State(ctx context.Context) dto.TimerOutput
	Presets(ctx context.Context) []int
	SetHooks(hooks dto.Hooks)
	Close()
}
