package update_counselor_settings

import (
	"context"

	settingsModels "github.com/mindigo/appointment-service/internal/service/settings/models"
)

type SettingsService interface {
	UpdateSettings(ctx context.Context, counselorID int64, counselorEmail string, req *settingsModels.UpdateSettingsRequest) (*settingsModels.SettingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
