package in

import (
	"context"

	sessiondto "stillpoint/internal/modules/session/dto"
	sessionin "stillpoint/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context, limit int) ([]sessiondto.SessionOutput, error) {
	if limit <= 0 {
		return h.usecase.GetAll(ctx), nil
	}
	return h.usecase.GetRecent(ctx, limit)
}

func (h CLIHandler) Clear(ctx context.Context) error {
	return h.usecase.Clear(ctx)
}
