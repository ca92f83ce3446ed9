package in

import (
	"context"
	"io"

	backupdto "stillpoint/internal/modules/backup/dto"
	backupin "stillpoint/internal/modules/backup/port/in"
)

type CLIHandler struct {
	usecase backupin.Usecase
}

func NewCLIHandler(usecase backupin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) ExportJSON(ctx context.Context, w io.Writer) (backupdto.ExportOutput, error) {
	return h.usecase.ExportJSON(ctx, w)
}

func (h CLIHandler) ExportJournal(ctx context.Context, path string) (backupdto.ExportOutput, error) {
	return h.usecase.ExportJournal(ctx, path)
}

func (h CLIHandler) Import(ctx context.Context, r io.Reader) (backupdto.ImportOutput, error) {
	return h.usecase.ImportJSON(ctx, r)
}

func (h CLIHandler) Wipe(ctx context.Context) error {
	return h.usecase.Wipe(ctx)
}
