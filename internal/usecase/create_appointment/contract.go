package create_appointment

import (
	"context"
	"time"

	"github.com/mindigo/appointment-service/internal/domain"
	"github.com/mindigo/appointment-service/internal/integrations/authservice"
	"github.com/mindigo/appointment-service/internal/integrations/mailservice"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
	GetWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
}

// WindowRepository интерфейс репозитория еженедельных окон доступности
type WindowRepository interface {
	GetActiveByCounselorAndDay(ctx context.Context, counselorID int64, day domain.DayOfWeek) ([]*domain.WeeklyWindow, error)
}

// ExceptionRepository интерфейс репозитория исключений на конкретные даты
type ExceptionRepository interface {
	GetActiveByCounselor(ctx context.Context, counselorID int64, date *time.Time) ([]*domain.DateException, error)
}

// PolicyResolver интерфейс для получения политики бронирования консультанта
type PolicyResolver interface {
	Resolve(ctx context.Context, counselorID int64) (domain.ResolvedPolicy, error)
}

// AuthServiceClient интерфейс клиента AuthService
type AuthServiceClient interface {
	GetProfile(ctx context.Context, userID int64) (*authservice.Profile, error)
	GetCounselorName(ctx context.Context, counselorID int64) string
}

// MailServiceClient интерфейс клиента MailService
type MailServiceClient interface {
	SendAsync(notification *mailservice.NotificationRequest)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
