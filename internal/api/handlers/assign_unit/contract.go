package assign_unit

import (
	"context"

	assignUnit "github.com/m04kA/SMC-RentalService/internal/usecase/assign_unit"
)

type AssignUnitUseCase interface {
	Execute(ctx context.Context, req *assignUnit.Request) (*assignUnit.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
