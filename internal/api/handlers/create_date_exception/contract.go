package create_date_exception

import (
	"context"

	availabilityModels "github.com/mindigo/appointment-service/internal/service/availability/models"
)

type AvailabilityService interface {
	CreateException(ctx context.Context, counselorID int64, counselorEmail string, req *availabilityModels.CreateExceptionRequest) (*availabilityModels.ExceptionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
