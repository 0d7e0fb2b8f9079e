package get_available_slots

import (
	"context"
	"time"

	"github.com/mindigo/appointment-service/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
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
