package update_availability_window

import (
	"context"

	availabilityModels "github.com/mindigo/appointment-service/internal/service/availability/models"
)

type AvailabilityService interface {
	UpdateWindow(ctx context.Context, id, counselorID int64, req *availabilityModels.UpdateWindowRequest) (*availabilityModels.WindowResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
