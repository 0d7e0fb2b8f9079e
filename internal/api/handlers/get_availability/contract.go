package get_availability

import (
	"context"

	availabilityModels "github.com/mindigo/appointment-service/internal/service/availability/models"
)

type AvailabilityService interface {
	GetAvailability(ctx context.Context, counselorID int64) (*availabilityModels.AvailabilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
