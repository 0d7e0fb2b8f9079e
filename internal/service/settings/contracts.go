package settings

import (
	"context"

	"github.com/mindigo/appointment-service/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек консультантов
type SettingsRepository interface {
	GetByCounselorID(ctx context.Context, counselorID int64) (*domain.CounselorPolicy, error)
	Upsert(ctx context.Context, policy *domain.CounselorPolicy) (*domain.CounselorPolicy, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
