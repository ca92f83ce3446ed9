package in

import (
	"context"
	"io"

	"stillpoint/internal/modules/backup/dto"
)

type Usecase interface {
	ExportJSON(ctx context.Context, w io.Writer) (dto.ExportOutput, error)
	// ExportJournal writes a markdown journal to path, keeping any text the
	// user added outside the generated table.
	ExportJournal(ctx context.Context, path string) (dto.ExportOutput, error)
	// ImportJSON replaces all stored data with the backup read from r. Nothing
	// is written unless every record is valid.
	ImportJSON(ctx context.Context, r io.Reader) (dto.ImportOutput, error)
	Wipe(ctx context.Context) error
}
