package in

import (
	"context"
	"fmt"
	"strings"

	breathingdto "stillpoint/internal/modules/breathing/dto"
	breathingin "stillpoint/internal/modules/breathing/port/in"
)

type CLIHandler struct {
	usecase breathingin.Usecase
}

func NewCLIHandler(usecase breathingin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) []breathingdto.PatternOutput {
	return h.usecase.Patterns(ctx)
}

func (h CLIHandler) Show(ctx context.Context, id string) (breathingdto.PatternOutput, []breathingdto.StepOutput, error) {
	p, err := h.usecase.Pattern(ctx, id)
	if err != nil {
		return breathingdto.PatternOutput{}, nil, err
	}
	steps, err := h.usecase.Script(ctx, id)
	return p, steps, err
}

// Cue is the prompt for elapsedSeconds into a sitting; empty when id is empty.
func (h CLIHandler) Cue(ctx context.Context, id string, elapsedSeconds int) (string, error) {
	if id == "" {
		return "", nil
	}
	cue, err := h.usecase.Cue(ctx, id, elapsedSeconds)
	if err != nil {
		return "", err
	}
	return FormatCue(cue), nil
}

// Rhythm renders a pattern as "4-7-8" style seconds per phase.
func Rhythm(p breathingdto.PatternOutput) string {
	parts := []string{fmt.Sprint(p.Inhale)}
	for _, n := range []int{p.Hold, p.Exhale, p.Rest} {
		if n > 0 {
			parts = append(parts, fmt.Sprint(n))
		}
	}
	return strings.Join(parts, "-")
}

func FormatCue(c breathingdto.CueOutput) string {
	return fmt.Sprintf("%s %d", c.Phase, c.Remaining)
}
