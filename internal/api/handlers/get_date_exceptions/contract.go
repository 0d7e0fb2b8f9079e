package get_date_exceptions

import (
	"context"
	"time"

	availabilityModels "github.com/mindigo/appointment-service/internal/service/availability/models"
)

type AvailabilityService interface {
	GetExceptions(ctx context.Context, counselorID int64, date *time.Time) (*availabilityModels.ExceptionListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
