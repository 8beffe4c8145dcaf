package delete_addon

import (
	"context"
)

type FleetService interface {
	DeleteAddon(ctx context.Context, id int64, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
