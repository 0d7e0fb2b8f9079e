package get_my_appointments

import (
	"context"

	appointmentModels "github.com/mindigo/appointment-service/internal/service/appointments/models"
)

type AppointmentsService interface {
	GetMyAppointments(ctx context.Context, req *appointmentModels.GetMyAppointmentsRequest) (*appointmentModels.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
