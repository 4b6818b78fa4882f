package save_slots

import (
	"context"

	manageSlots "github.com/m04kA/SMC-TurfService/internal/usecase/manage_slots"
)

type ManageSlotsUseCase interface {
	SaveDay(ctx context.Context, req *manageSlots.SaveRequest) (*manageSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
