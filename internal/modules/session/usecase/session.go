package usecase

import (
	"context"

	"stillpoint/internal/modules/session/domain"
	sessiondto "stillpoint/internal/modules/session/dto"
	sessionin "stillpoint/internal/modules/session/port/in"
	"stillpoint/internal/modules/session/service"
)

type Interactor struct {
	svc *service.SessionService
}

func NewInteractor(svc *service.SessionService) sessionin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Save(ctx context.Context, input sessiondto.SaveInput) error {
	session := domain.Session{Duration: input.Duration}
	if !input.CompletedAt.IsZero() {
		session.Timestamp = domain.FormatTimestamp(input.CompletedAt)
	}
	return i.svc.Save(ctx, session)
}

func (i *Interactor) GetAll(ctx context.Context) []sessiondto.SessionOutput {
	return toOutputs(i.svc.All(ctx))
}

func (i *Interactor) GetRecent(ctx context.Context, limit int) ([]sessiondto.SessionOutput, error) {
	sessions, err := i.svc.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}
	return toOutputs(sessions), nil
}

func (i *Interactor) Count(ctx context.Context) int {
	return len(i.svc.All(ctx))
}

func (i *Interactor) Clear(ctx context.Context) error {
	return i.svc.Clear(ctx)
}

func (i *Interactor) Replace(ctx context.Context, records []sessiondto.Record) error {
	sessions := make([]domain.Session, 0, len(records))
	for _, r := range records {
		sessions = append(sessions, domain.Session{Duration: r.Duration, Timestamp: r.Timestamp})
	}
	return i.svc.Replace(ctx, sessions)
}

func toOutputs(sessions []domain.Session) []sessiondto.SessionOutput {
	out := make([]sessiondto.SessionOutput, 0, len(sessions))
	for _, s := range sessions {
		at, _ := s.CompletedAt()
		out = append(out, sessiondto.SessionOutput{Duration: s.Duration, Timestamp: s.Timestamp, CompletedAt: at})
	}
	return out
}
