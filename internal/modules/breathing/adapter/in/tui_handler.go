package in

import (
	"context"

	breathingdto "stillpoint/internal/modules/breathing/dto"
	breathingin "stillpoint/internal/modules/breathing/port/in"
)

type TUIHandler struct {
	usecase breathingin.Usecase
}

func NewTUIHandler(usecase breathingin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) Patterns(ctx context.Context) []breathingdto.PatternOutput {
	return h.usecase.Patterns(ctx)
}

func (h TUIHandler) Cue(ctx context.Context, id string, elapsedSeconds int) (breathingdto.CueOutput, error) {
	return h.usecase.Cue(ctx, id, elapsedSeconds)
}
