package update_appointment_status

import (
	"context"

	"github.com/mindigo/appointment-service/internal/domain"
	appointmentModels "github.com/mindigo/appointment-service/internal/service/appointments/models"
)

type AppointmentsService interface {
	UpdateStatus(ctx context.Context, userID int64, role domain.Role, req *appointmentModels.UpdateStatusRequest) (*appointmentModels.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
