package in

import (
	"context"

	"stillpoint/internal/modules/breathing/dto"
)

type Usecase interface {
	Patterns(ctx context.Context) []dto.PatternOutput
	Pattern(ctx context.Context, id string) (dto.PatternOutput, error)
	// Cue is the guide position elapsedSeconds into a sitting. Patterns
	// repeat for sittings longer than one run.
	Cue(ctx context.Context, id string, elapsedSeconds int) (dto.CueOutput, error)
	Script(ctx context.Context, id string) ([]dto.StepOutput, error)
}
