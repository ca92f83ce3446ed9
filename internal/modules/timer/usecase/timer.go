package usecase

import (
	"context"

	timerdto "stillpoint/internal/modules/timer/dto"
	timerin "stillpoint/internal/modules/timer/port/in"
	"stillpoint/internal/modules/timer/service"
)

type Interactor struct {
	engine *service.Engine
}

func NewInteractor(engine *service.Engine) timerin.Usecase {
	return &Interactor{engine: engine}
}

func (i *Interactor) SelectPreset(_ context.Context, minutes int) (timerdto.TimerOutput, error) {
	_, err := i.engine.SelectPreset(minutes)
	return i.snapshot(), err
}

func (i *Interactor) Start(ctx context.Context) (timerdto.TimerOutput, error) {
	_, err := i.engine.Start(ctx)
	return i.snapshot(), err
}

func (i *Interactor) Pause(_ context.Context) (timerdto.TimerOutput, error) {
	_, err := i.engine.Pause()
	return i.snapshot(), err
}

func (i *Interactor) Reset(_ context.Context) timerdto.TimerOutput {
	i.engine.Reset()
	return i.snapshot()
}

func (i *Interactor) State(_ context.Context) timerdto.TimerOutput {
	return i.snapshot()
}

func (i *Interactor) Presets(_ context.Context) []int {
	return i.engine.Presets()
}

func (i *Interactor) SetHooks(hooks timerdto.Hooks) {
	i.engine.SetHooks(hooks)
}

func (i *Interactor) Close() {
	i.engine.Close()
}

func (i *Interactor) snapshot() timerdto.TimerOutput {
	state, runID := i.engine.Snapshot()
	return service.Output(state, runID)
}
