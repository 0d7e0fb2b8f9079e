package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/mindigo/appointment-service/internal/domain"
	settingsRepo "github.com/mindigo/appointment-service/internal/infra/storage/settings"
	"github.com/mindigo/appointment-service/internal/service/settings/models"
)

// Service сервис настроек бронирования консультантов
type Service struct {
	settingsRepo SettingsRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(settingsRepo SettingsRepository, logger Logger) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// Resolve возвращает полностью заполненную политику бронирования консультанта.
// При отсутствии сохраненных настроек действуют значения по умолчанию.
func (s *Service) Resolve(ctx context.Context, counselorID int64) (domain.ResolvedPolicy, error) {
	policy, err := s.settingsRepo.GetByCounselorID(ctx, counselorID)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			return domain.DefaultPolicy(counselorID), nil
		}
		s.logger.Error("Resolve: repository error for counselor=%d: %v", counselorID, err)
		return domain.ResolvedPolicy{}, fmt.Errorf("%w: Resolve - repository error: %v", ErrInternal, err)
	}

	return policy.Resolve(), nil
}

// GetSettings получает настройки бронирования консультанта
func (s *Service) GetSettings(ctx context.Context, counselorID int64) (*models.SettingsResponse, error) {
	s.logger.Info("GetSettings: fetching settings for counselor=%d", counselorID)

	resolved, err := s.Resolve(ctx, counselorID)
	if err != nil {
		return nil, err
	}

	return models.FromResolvedPolicy(resolved), nil
}

// UpdateSettings обновляет настройки бронирования консультанта.
// Незаполненные поля запроса сохраняют текущие (или дефолтные) значения.
func (s *Service) UpdateSettings(ctx context.Context, counselorID int64, counselorEmail string, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("UpdateSettings: updating settings for counselor=%d", counselorID)

	current, err := s.Resolve(ctx, counselorID)
	if err != nil {
		return nil, err
	}

	// Применяем только переданные поля
	if req.MaxBookingDays != nil {
		if *req.MaxBookingDays < domain.MinMaxBookingDays || *req.MaxBookingDays > domain.MaxMaxBookingDays {
			s.logger.Warn("UpdateSettings: invalid maxBookingDays=%d for counselor=%d", *req.MaxBookingDays, counselorID)
			return nil, fmt.Errorf("%w: maxBookingDays must be between %d and %d",
				ErrInvalidInput, domain.MinMaxBookingDays, domain.MaxMaxBookingDays)
		}
		current.MaxBookingDays = *req.MaxBookingDays
	}

	if req.DefaultSlotDurationMinutes != nil {
		if *req.DefaultSlotDurationMinutes < domain.MinSlotDurationMinutes || *req.DefaultSlotDurationMinutes > domain.MaxSlotDurationMinutes {
			s.logger.Warn("UpdateSettings: invalid defaultSlotDurationMinutes=%d for counselor=%d", *req.DefaultSlotDurationMinutes, counselorID)
			return nil, fmt.Errorf("%w: defaultSlotDurationMinutes must be between %d and %d",
				ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
		}
		current.DefaultSlotDurationMinutes = *req.DefaultSlotDurationMinutes
	}

	if req.AutoAcceptAppointments != nil {
		current.AutoAcceptAppointments = *req.AutoAcceptAppointments
	}

	saved, err := s.settingsRepo.Upsert(ctx, &domain.CounselorPolicy{
		CounselorID:                counselorID,
		CounselorEmail:             counselorEmail,
		MaxBookingDays:             current.MaxBookingDays,
		DefaultSlotDurationMinutes: current.DefaultSlotDurationMinutes,
		AutoAcceptAppointments:     current.AutoAcceptAppointments,
	})
	if err != nil {
		s.logger.Error("UpdateSettings: repository error for counselor=%d: %v", counselorID, err)
		return nil, fmt.Errorf("%w: UpdateSettings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateSettings: successfully updated settings for counselor=%d", counselorID)
	return models.FromResolvedPolicy(saved.Resolve()), nil
}
