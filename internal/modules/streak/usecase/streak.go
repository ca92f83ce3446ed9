package usecase

import (
	"context"

	"stillpoint/internal/modules/streak/domain"
	streakdto "stillpoint/internal/modules/streak/dto"
	streakin "stillpoint/internal/modules/streak/port/in"
	"stillpoint/internal/modules/streak/service"
)

type Interactor struct {
	svc *service.StreakService
}

func NewInteractor(svc *service.StreakService) streakin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Get(ctx context.Context) streakdto.StreakOutput {
	return toOutput(i.svc.Get(ctx))
}

func (i *Interactor) Update(ctx context.Context) (streakdto.StreakOutput, error) {
	data, err := i.svc.Update(ctx)
	return toOutput(data), err
}

func (i *Interactor) Reset(ctx context.Context) error {
	return i.svc.Reset(ctx)
}

func (i *Interactor) Status(ctx context.Context) streakdto.StatusOutput {
	st := i.svc.Status(ctx)
	return streakdto.StatusOutput{
		CurrentStreak:   st.CurrentStreak,
		LastSessionDate: st.LastSessionDate,
		ActiveToday:     st.ActiveToday,
		AtRisk:          st.AtRisk,
		Lapsed:          st.Lapsed,
	}
}

func (i *Interactor) Restore(ctx context.Context, record streakdto.Record) error {
	return i.svc.Restore(ctx, domain.StreakData{CurrentStreak: record.CurrentStreak, LastSessionDate: record.LastSessionDate})
}

func toOutput(d domain.StreakData) streakdto.StreakOutput {
	return streakdto.StreakOutput{CurrentStreak: d.CurrentStreak, LastSessionDate: d.LastSessionDate}
}
