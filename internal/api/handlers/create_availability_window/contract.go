package create_availability_window

import (
	"context"

	availabilityModels "github.com/mindigo/appointment-service/internal/service/availability/models"
)

type AvailabilityService interface {
	CreateWindow(ctx context.Context, counselorID int64, counselorEmail string, req *availabilityModels.CreateWindowRequest) (*availabilityModels.WindowResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
