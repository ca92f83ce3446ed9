package usecase

import (
	"context"

	"stillpoint/internal/modules/achievement/domain"
	achievementdto "stillpoint/internal/modules/achievement/dto"
	achievementin "stillpoint/internal/modules/achievement/port/in"
	"stillpoint/internal/modules/achievement/service"
)

type Interactor struct {
	svc *service.AchievementService
}

func NewInteractor(svc *service.AchievementService) achievementin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) CheckAndUnlock(ctx context.Context, input achievementdto.CheckInput) ([]achievementdto.AchievementOutput, error) {
	newly, err := i.svc.CheckAndUnlock(ctx, input.PendingDurations)
	out := make([]achievementdto.AchievementOutput, 0, len(newly))
	for _, d := range newly {
		item := definitionOutput(d)
		item.Unlocked = true
		item.Percent = 100
		out = append(out, item)
	}
	return out, err
}

func (i *Interactor) ListWithProgress(ctx context.Context) []achievementdto.AchievementOutput {
	entries := i.svc.ListWithProgress(ctx)
	out := make([]achievementdto.AchievementOutput, 0, len(entries))
	for _, e := range entries {
		out = append(out, entryOutput(e))
	}
	return out
}

func (i *Interactor) Stats(ctx context.Context) achievementdto.StatsOutput {
	st := i.svc.Stats(ctx)
	return achievementdto.StatsOutput{Total: st.Total, Unlocked: st.Unlocked, Percentage: st.Percentage}
}

func (i *Interactor) Get(ctx context.Context, id string) (achievementdto.AchievementOutput, error) {
	e, err := i.svc.Get(ctx, id)
	if err != nil {
		return achievementdto.AchievementOutput{}, err
	}
	return entryOutput(e), nil
}

func (i *Interactor) Reset(ctx context.Context) error {
	return i.svc.Reset(ctx)
}

func (i *Interactor) ExportProgress(ctx context.Context) (map[string]achievementdto.ProgressRecord, error) {
	progress, err := i.svc.Export(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]achievementdto.ProgressRecord, len(progress))
	for id, p := range progress {
		out[id] = achievementdto.ProgressRecord{Unlocked: p.Unlocked, UnlockedAt: p.UnlockedAt}
	}
	return out, nil
}

func (i *Interactor) RestoreProgress(ctx context.Context, progress map[string]achievementdto.ProgressRecord) error {
	in := make(domain.ProgressMap, len(progress))
	for id, p := range progress {
		in[id] = domain.Progress{Unlocked: p.Unlocked, UnlockedAt: p.UnlockedAt}
	}
	return i.svc.Restore(ctx, in)
}

func definitionOutput(d domain.Definition) achievementdto.AchievementOutput {
	return achievementdto.AchievementOutput{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Icon:        d.Icon,
		Kind:        string(d.Condition.Kind),
		Target:      d.Condition.Threshold,
	}
}

func entryOutput(e service.Entry) achievementdto.AchievementOutput {
	out := definitionOutput(e.Definition)
	out.Unlocked = e.Progress.Unlocked
	out.UnlockedAt = e.Progress.UnlockedAt
	out.Current = e.Current
	out.Percent = e.Percent
	if out.Unlocked {
		out.Percent = 100
	}
	return out
}
