package update_date_exception

import (
	"context"

	availabilityModels "github.com/mindigo/appointment-service/internal/service/availability/models"
)

type AvailabilityService interface {
	UpdateException(ctx context.Context, id, counselorID int64, req *availabilityModels.UpdateExceptionRequest) (*availabilityModels.ExceptionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
