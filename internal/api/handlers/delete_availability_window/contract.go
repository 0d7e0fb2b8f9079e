package delete_availability_window

import "context"

type AvailabilityService interface {
	DeleteWindow(ctx context.Context, id, counselorID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
