package return_reservation

import (
	"context"

	returnReservation "github.com/m04kA/SMC-RentalService/internal/usecase/return_reservation"
)

type ReturnReservationUseCase interface {
	Execute(ctx context.Context, req *returnReservation.Request) (*returnReservation.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
