package in

import (
	"context"

	timerdto "stillpoint/internal/modules/timer/dto"
	timerin "stillpoint/internal/modules/timer/port/in"
)

type TUIHandler struct {
	usecase timerin.Usecase
}

func NewTUIHandler(usecase timerin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) State(ctx context.Context) timerdto.TimerOutput {
	return h.usecase.State(ctx)
}

func (h TUIHandler) Presets(ctx context.Context) []int {
	return h.usecase.Presets(ctx)
}

func (h TUIHandler) SelectPreset(ctx context.Context, minutes int) (timerdto.TimerOutput, error) {
	return h.usecase.SelectPreset(ctx, minutes)
}

// Toggle pauses a running countdown and starts or resumes any other.
func (h TUIHandler) Toggle(ctx context.Context) (timerdto.TimerOutput, error) {
	if h.usecase.State(ctx).Phase == timerdto.PhaseRunning {
		return h.usecase.Pause(ctx)
	}
	return h.usecase.Start(ctx)
}

func (h TUIHandler) Reset(ctx context.Context) timerdto.TimerOutput {
	return h.usecase.Reset(ctx)
}

func (h TUIHandler) Watch(hooks timerdto.Hooks) {
	h.usecase.SetHooks(hooks)
}

func (h TUIHandler) Close() {
	h.usecase.Close()
}
