package get_available_dates

import (
	"context"

	availabilityModels "github.com/mindigo/appointment-service/internal/service/availability/models"
)

type AvailabilityService interface {
	GetAvailableDates(ctx context.Context, counselorID int64) (*availabilityModels.AvailableDatesResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
