package get_counselor_settings

import (
	"context"

	settingsModels "github.com/mindigo/appointment-service/internal/service/settings/models"
)

type SettingsService interface {
	GetSettings(ctx context.Context, counselorID int64) (*settingsModels.SettingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
