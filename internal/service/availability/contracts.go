package availability

import (
	"context"
	"time"

	"github.com/mindigo/appointment-service/internal/domain"
)

// WindowRepository интерфейс репозитория еженедельных окон доступности
type WindowRepository interface {
	Create(ctx context.Context, window *domain.WeeklyWindow) (*domain.WeeklyWindow, error)
	GetByIDAndCounselor(ctx context.Context, id, counselorID int64) (*domain.WeeklyWindow, error)
	GetActiveByCounselor(ctx context.Context, counselorID int64) ([]*domain.WeeklyWindow, error)
	GetActiveByCounselorAndDay(ctx context.Context, counselorID int64, day domain.DayOfWeek) ([]*domain.WeeklyWindow, error)
	Update(ctx context.Context, id int64, window *domain.WeeklyWindow) (*domain.WeeklyWindow, error)
	Deactivate(ctx context.Context, id, counselorID int64) error
}

// ExceptionRepository интерфейс репозитория исключений на конкретные даты
type ExceptionRepository interface {
	Create(ctx context.Context, exc *domain.DateException) (*domain.DateException, error)
	GetByIDAndCounselor(ctx context.Context, id, counselorID int64) (*domain.DateException, error)
	GetActiveByCounselor(ctx context.Context, counselorID int64, date *time.Time) ([]*domain.DateException, error)
	Update(ctx context.Context, id int64, exc *domain.DateException) (*domain.DateException, error)
	Deactivate(ctx context.Context, id, counselorID int64) error
}

// PolicyResolver интерфейс для получения политики бронирования консультанта
type PolicyResolver interface {
	Resolve(ctx context.Context, counselorID int64) (domain.ResolvedPolicy, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
