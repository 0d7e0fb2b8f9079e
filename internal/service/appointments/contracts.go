package appointments

import (
	"context"

	"github.com/mindigo/appointment-service/internal/domain"
	"github.com/mindigo/appointment-service/internal/integrations/mailservice"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByClientID(ctx context.Context, clientID int64) ([]*domain.Appointment, error)
	GetByCounselorID(ctx context.Context, counselorID int64) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus, counselorNotes, rejectionReason *string) error
}

// AuthServiceClient интерфейс клиента AuthService
type AuthServiceClient interface {
	GetCounselorName(ctx context.Context, counselorID int64) string
}

// MailServiceClient интерфейс клиента MailService
type MailServiceClient interface {
	SendAsync(notification *mailservice.NotificationRequest)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
