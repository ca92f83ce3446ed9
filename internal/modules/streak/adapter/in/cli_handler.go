package in

import (
	"context"

	streakdto "stillpoint/internal/modules/streak/dto"
	streakin "stillpoint/internal/modules/streak/port/in"
)

type CLIHandler struct {
	usecase streakin.Usecase
}

func NewCLIHandler(usecase streakin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Show(ctx context.Context) streakdto.StatusOutput {
	return h.usecase.Status(ctx)
}

func (h CLIHandler) Reset(ctx context.Context) error {
	return h.usecase.Reset(ctx)
}
