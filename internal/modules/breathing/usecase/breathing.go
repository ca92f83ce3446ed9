package usecase

import (
	"context"

	"stillpoint/internal/modules/breathing/domain"
	breathingdto "stillpoint/internal/modules/breathing/dto"
	breathingin "stillpoint/internal/modules/breathing/port/in"
	"stillpoint/internal/modules/breathing/service"
)

type Interactor struct {
	svc *service.BreathingService
}

func NewInteractor(svc *service.BreathingService) breathingin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Patterns(_ context.Context) []breathingdto.PatternOutput {
	all := i.svc.Patterns()
	out := make([]breathingdto.PatternOutput, 0, len(all))
	for _, p := range all {
		out = append(out, toPatternOutput(p))
	}
	return out
}

func (i *Interactor) Pattern(_ context.Context, id string) (breathingdto.PatternOutput, error) {
	p, err := i.svc.Pattern(id)
	if err != nil {
		return breathingdto.PatternOutput{}, err
	}
	return toPatternOutput(p), nil
}

func (i *Interactor) Cue(_ context.Context, id string, elapsedSeconds int) (breathingdto.CueOutput, error) {
	p, s, err := i.svc.Cue(id, elapsedSeconds)
	if err != nil {
		return breathingdto.CueOutput{}, err
	}
	return breathingdto.CueOutput{
		PatternID:   p.ID,
		Phase:       string(s.Phase),
		Remaining:   s.Remaining,
		Cycle:       s.Cycle,
		TotalCycles: s.TotalCycles,
	}, nil
}

func (i *Interactor) Script(_ context.Context, id string) ([]breathingdto.StepOutput, error) {
	steps, err := i.svc.Script(id)
	if err != nil {
		return nil, err
	}
	out := make([]breathingdto.StepOutput, 0, len(steps))
	for _, st := range steps {
		out = append(out, breathingdto.StepOutput{Phase: string(st.Phase), Seconds: st.Seconds, Cycle: st.Cycle})
	}
	return out, nil
}

func toPatternOutput(p domain.Pattern) breathingdto.PatternOutput {
	return breathingdto.PatternOutput{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Inhale:       p.Inhale,
		Hold:         p.Hold,
		Exhale:       p.Exhale,
		Rest:         p.Rest,
		Cycles:       p.Cycles,
		TotalSeconds: p.TotalSeconds(),
	}
}
