package usecase

import (
	"context"
	"io"

	"stillpoint/internal/modules/backup/domain"
	backupdto "stillpoint/internal/modules/backup/dto"
	backupin "stillpoint/internal/modules/backup/port/in"
	"stillpoint/internal/modules/backup/service"
)

type Interactor struct {
	svc *service.BackupService
}

func NewInteractor(svc *service.BackupService) backupin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) ExportJSON(ctx context.Context, w io.Writer) (backupdto.ExportOutput, error) {
	doc, err := i.svc.Snapshot(ctx)
	if err != nil {
		return backupdto.ExportOutput{}, err
	}
	if err := domain.Encode(w, doc); err != nil {
		return backupdto.ExportOutput{}, err
	}
	return toExport(doc, ""), nil
}

func (i *Interactor) ExportJournal(ctx context.Context, path string) (backupdto.ExportOutput, error) {
	doc, err := i.svc.Snapshot(ctx)
	if err != nil {
		return backupdto.ExportOutput{}, err
	}
	if err := i.svc.WriteJournal(ctx, path, doc); err != nil {
		return backupdto.ExportOutput{}, err
	}
	return toExport(doc, path), nil
}

func (i *Interactor) ImportJSON(ctx context.Context, r io.Reader) (backupdto.ImportOutput, error) {
	doc, err := domain.Decode(r)
	if err != nil {
		return backupdto.ImportOutput{}, err
	}
	if err := i.svc.Restore(ctx, doc); err != nil {
		return backupdto.ImportOutput{}, err
	}
	return backupdto.ImportOutput{
		ID:            doc.ID,
		Sessions:      len(doc.Sessions),
		CurrentStreak: doc.Streak.CurrentStreak,
		Unlocked:      doc.UnlockedCount(),
	}, nil
}

func (i *Interactor) Wipe(ctx context.Context) error {
	return i.svc.Wipe(ctx)
}

func toExport(doc domain.Document, path string) backupdto.ExportOutput {
	return backupdto.ExportOutput{ID: doc.ID, ExportedAt: doc.ExportedAt, Sessions: len(doc.Sessions), Path: path}
}
