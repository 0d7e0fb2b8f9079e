package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mindigo/appointment-service/internal/domain"
	availabilityRepo "github.com/mindigo/appointment-service/internal/infra/storage/availability"
	exceptionRepo "github.com/mindigo/appointment-service/internal/infra/storage/exception"
	"github.com/mindigo/appointment-service/internal/service/availability/models"
	"github.com/mindigo/appointment-service/pkg/interval"
	"github.com/mindigo/appointment-service/pkg/types"
)

// Service сервис управления расписанием консультанта:
// еженедельные окна доступности и исключения на конкретные даты
type Service struct {
	windowRepo    WindowRepository
	exceptionRepo ExceptionRepository
	policies      PolicyResolver
	logger        Logger

	now func() time.Time
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	windowRepo WindowRepository,
	exceptionRepo ExceptionRepository,
	policies PolicyResolver,
	logger Logger,
) *Service {
	return &Service{
		windowRepo:    windowRepo,
		exceptionRepo: exceptionRepo,
		policies:      policies,
		logger:        logger,
		now:           time.Now,
	}
}

// CreateWindow создает еженедельное окно доступности.
// Окно не может пересекаться с другими активными окнами того же дня недели.
func (s *Service) CreateWindow(ctx context.Context, counselorID int64, counselorEmail string, req *models.CreateWindowRequest) (*models.WindowResponse, error) {
	s.logger.Info("CreateWindow: counselor=%d, day=%s, range=%s-%s", counselorID, req.DayOfWeek, req.StartTime, req.EndTime)

	day := domain.DayOfWeek(req.DayOfWeek)
	if !day.IsValid() {
		s.logger.Warn("CreateWindow: invalid dayOfWeek=%s for counselor=%d", req.DayOfWeek, counselorID)
		return nil, fmt.Errorf("%w: unknown dayOfWeek %q", ErrInvalidInput, req.DayOfWeek)
	}

	startTime, endTime, err := s.parseTimeRange(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	slotDuration, err := s.resolveSlotDuration(ctx, counselorID, req.SlotDurationMinutes)
	if err != nil {
		return nil, err
	}

	if err := s.checkWindowOverlap(ctx, counselorID, day, startTime, endTime, 0); err != nil {
		return nil, err
	}

	window, err := s.windowRepo.Create(ctx, &domain.WeeklyWindow{
		CounselorID:         counselorID,
		CounselorEmail:      counselorEmail,
		DayOfWeek:           day,
		StartTime:           startTime,
		EndTime:             endTime,
		SlotDurationMinutes: slotDuration,
	})
	if err != nil {
		s.logger.Error("CreateWindow: repository error for counselor=%d: %v", counselorID, err)
		return nil, fmt.Errorf("%w: CreateWindow - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateWindow: created window id=%d for counselor=%d", window.ID, counselorID)
	return models.FromDomainWindow(window), nil
}

// UpdateWindow обновляет еженедельное окно доступности
func (s *Service) UpdateWindow(ctx context.Context, id, counselorID int64, req *models.UpdateWindowRequest) (*models.WindowResponse, error) {
	s.logger.Info("UpdateWindow: window=%d, counselor=%d", id, counselorID)

	existing, err := s.windowRepo.GetByIDAndCounselor(ctx, id, counselorID)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrWindowNotFound) {
			s.logger.Warn("UpdateWindow: window=%d not found for counselor=%d", id, counselorID)
			return nil, ErrWindowNotFound
		}
		s.logger.Error("UpdateWindow: repository error for window=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateWindow - repository error: %v", ErrInternal, err)
	}

	day := domain.DayOfWeek(req.DayOfWeek)
	if !day.IsValid() {
		return nil, fmt.Errorf("%w: unknown dayOfWeek %q", ErrInvalidInput, req.DayOfWeek)
	}

	startTime, endTime, err := s.parseTimeRange(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	slotDuration := existing.SlotDurationMinutes
	if req.SlotDurationMinutes != nil {
		slotDuration, err = s.resolveSlotDuration(ctx, counselorID, req.SlotDurationMinutes)
		if err != nil {
			return nil, err
		}
	}

	// Собственное окно не считается пересечением
	if err := s.checkWindowOverlap(ctx, counselorID, day, startTime, endTime, id); err != nil {
		return nil, err
	}

	updated, err := s.windowRepo.Update(ctx, id, &domain.WeeklyWindow{
		CounselorID:         counselorID,
		CounselorEmail:      existing.CounselorEmail,
		DayOfWeek:           day,
		StartTime:           startTime,
		EndTime:             endTime,
		SlotDurationMinutes: slotDuration,
	})
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrWindowNotFound) {
			return nil, ErrWindowNotFound
		}
		s.logger.Error("UpdateWindow: repository error for window=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateWindow - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateWindow: successfully updated window=%d for counselor=%d", id, counselorID)
	return models.FromDomainWindow(updated), nil
}

// DeleteWindow деактивирует еженедельное окно
func (s *Service) DeleteWindow(ctx context.Context, id, counselorID int64) error {
	s.logger.Info("DeleteWindow: window=%d, counselor=%d", id, counselorID)

	if err := s.windowRepo.Deactivate(ctx, id, counselorID); err != nil {
		if errors.Is(err, availabilityRepo.ErrWindowNotFound) {
			s.logger.Warn("DeleteWindow: window=%d not found for counselor=%d", id, counselorID)
			return ErrWindowNotFound
		}
		s.logger.Error("DeleteWindow: repository error for window=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteWindow - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteWindow: successfully deactivated window=%d", id)
	return nil
}

// GetAvailability возвращает полное активное расписание консультанта:
// еженедельные окна и исключения на конкретные даты
func (s *Service) GetAvailability(ctx context.Context, counselorID int64) (*models.AvailabilityResponse, error) {
	s.logger.Info("GetAvailability: fetching schedule for counselor=%d", counselorID)

	windows, err := s.windowRepo.GetActiveByCounselor(ctx, counselorID)
	if err != nil {
		s.logger.Error("GetAvailability: windows repository error for counselor=%d: %v", counselorID, err)
		return nil, fmt.Errorf("%w: GetAvailability - repository error: %v", ErrInternal, err)
	}

	exceptions, err := s.exceptionRepo.GetActiveByCounselor(ctx, counselorID, nil)
	if err != nil {
		s.logger.Error("GetAvailability: exceptions repository error for counselor=%d: %v", counselorID, err)
		return nil, fmt.Errorf("%w: GetAvailability - repository error: %v", ErrInternal, err)
	}

	return &models.AvailabilityResponse{
		Windows:    models.FromDomainWindowList(windows),
		Exceptions: models.FromDomainExceptionList(exceptions),
	}, nil
}

// GetExceptions возвращает активные исключения консультанта,
// опционально отфильтрованные по конкретной дате
func (s *Service) GetExceptions(ctx context.Context, counselorID int64, date *time.Time) (*models.ExceptionListResponse, error) {
	s.logger.Info("GetExceptions: counselor=%d, date=%v", counselorID, date)

	exceptions, err := s.exceptionRepo.GetActiveByCounselor(ctx, counselorID, date)
	if err != nil {
		s.logger.Error("GetExceptions: repository error for counselor=%d: %v", counselorID, err)
		return nil, fmt.Errorf("%w: GetExceptions - repository error: %v", ErrInternal, err)
	}

	return &models.ExceptionListResponse{
		Exceptions: models.FromDomainExceptionList(exceptions),
	}, nil
}

// CreateException создает исключение из расписания на конкретную дату
func (s *Service) CreateException(ctx context.Context, counselorID int64, counselorEmail string, req *models.CreateExceptionRequest) (*models.ExceptionResponse, error) {
	s.logger.Info("CreateException: counselor=%d, date=%s, kind=%s", counselorID, req.SpecificDate, req.Kind)

	kind := domain.ExceptionKind(req.Kind)
	if !kind.IsValid() {
		s.logger.Warn("CreateException: invalid kind=%s for counselor=%d", req.Kind, counselorID)
		return nil, fmt.Errorf("%w: unknown exception kind %q", ErrInvalidInput, req.Kind)
	}

	specificDate, startTime, endTime, err := s.parseExceptionRange(ctx, counselorID, kind, req.SpecificDate, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	slotDuration, err := s.resolveSlotDuration(ctx, counselorID, req.SlotDurationMinutes)
	if err != nil {
		return nil, err
	}

	if req.Reason != nil && len(*req.Reason) > domain.MaxReasonLength {
		return nil, fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	if err := s.checkExceptionOverlap(ctx, counselorID, specificDate, startTime, endTime, 0); err != nil {
		return nil, err
	}

	exc, err := s.exceptionRepo.Create(ctx, &domain.DateException{
		CounselorID:         counselorID,
		CounselorEmail:      counselorEmail,
		SpecificDate:        specificDate,
		StartTime:           startTime,
		EndTime:             endTime,
		Kind:                kind,
		SlotDurationMinutes: slotDuration,
		Reason:              req.Reason,
	})
	if err != nil {
		s.logger.Error("CreateException: repository error for counselor=%d: %v", counselorID, err)
		return nil, fmt.Errorf("%w: CreateException - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateException: created exception id=%d for counselor=%d", exc.ID, counselorID)
	return models.FromDomainException(exc), nil
}

// UpdateException обновляет исключение на конкретную дату
func (s *Service) UpdateException(ctx context.Context, id, counselorID int64, req *models.UpdateExceptionRequest) (*models.ExceptionResponse, error) {
	s.logger.Info("UpdateException: exception=%d, counselor=%d", id, counselorID)

	existing, err := s.exceptionRepo.GetByIDAndCounselor(ctx, id, counselorID)
	if err != nil {
		if errors.Is(err, exceptionRepo.ErrExceptionNotFound) {
			s.logger.Warn("UpdateException: exception=%d not found for counselor=%d", id, counselorID)
			return nil, ErrExceptionNotFound
		}
		s.logger.Error("UpdateException: repository error for exception=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateException - repository error: %v", ErrInternal, err)
	}

	kind := domain.ExceptionKind(req.Kind)
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown exception kind %q", ErrInvalidInput, req.Kind)
	}

	specificDate, startTime, endTime, err := s.parseExceptionRange(ctx, counselorID, kind, req.SpecificDate, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	slotDuration := existing.SlotDurationMinutes
	if req.SlotDurationMinutes != nil {
		slotDuration, err = s.resolveSlotDuration(ctx, counselorID, req.SlotDurationMinutes)
		if err != nil {
			return nil, err
		}
	}

	if req.Reason != nil && len(*req.Reason) > domain.MaxReasonLength {
		return nil, fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	if err := s.checkExceptionOverlap(ctx, counselorID, specificDate, startTime, endTime, id); err != nil {
		return nil, err
	}

	updated, err := s.exceptionRepo.Update(ctx, id, &domain.DateException{
		CounselorID:         counselorID,
		CounselorEmail:      existing.CounselorEmail,
		SpecificDate:        specificDate,
		StartTime:           startTime,
		EndTime:             endTime,
		Kind:                kind,
		SlotDurationMinutes: slotDuration,
		Reason:              req.Reason,
	})
	if err != nil {
		if errors.Is(err, exceptionRepo.ErrExceptionNotFound) {
			return nil, ErrExceptionNotFound
		}
		s.logger.Error("UpdateException: repository error for exception=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateException - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateException: successfully updated exception=%d for counselor=%d", id, counselorID)
	return models.FromDomainException(updated), nil
}

// DeleteException деактивирует исключение
func (s *Service) DeleteException(ctx context.Context, id, counselorID int64) error {
	s.logger.Info("DeleteException: exception=%d, counselor=%d", id, counselorID)

	if err := s.exceptionRepo.Deactivate(ctx, id, counselorID); err != nil {
		if errors.Is(err, exceptionRepo.ErrExceptionNotFound) {
			s.logger.Warn("DeleteException: exception=%d not found for counselor=%d", id, counselorID)
			return ErrExceptionNotFound
		}
		s.logger.Error("DeleteException: repository error for exception=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteException - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteException: successfully deactivated exception=%d", id)
	return nil
}

// GetAvailableDates возвращает даты в пределах горизонта бронирования,
// на которые у консультанта есть хотя бы одно еженедельное окно.
// Разовые EXTRA_OPENING в расчет не входят - клиент увидит их слоты,
// выбрав дату напрямую.
func (s *Service) GetAvailableDates(ctx context.Context, counselorID int64) (*models.AvailableDatesResponse, error) {
	s.logger.Info("GetAvailableDates: counselor=%d", counselorID)

	policy, err := s.policies.Resolve(ctx, counselorID)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAvailableDates - resolve policy: %v", ErrInternal, err)
	}

	windows, err := s.windowRepo.GetActiveByCounselor(ctx, counselorID)
	if err != nil {
		s.logger.Error("GetAvailableDates: repository error for counselor=%d: %v", counselorID, err)
		return nil, fmt.Errorf("%w: GetAvailableDates - repository error: %v", ErrInternal, err)
	}

	weekdays := make(map[domain.DayOfWeek]bool, len(windows))
	for _, w := range windows {
		weekdays[w.DayOfWeek] = true
	}

	today := domain.DateOnly(s.now())
	dates := make([]string, 0, policy.MaxBookingDays)
	for i := 0; i <= policy.MaxBookingDays; i++ {
		date := today.AddDate(0, 0, i)
		if weekdays[domain.DayOfWeekFromTime(date.Weekday())] {
			dates = append(dates, date.Format(domain.DateFormat))
		}
	}

	s.logger.Info("GetAvailableDates: found %d dates for counselor=%d", len(dates), counselorID)
	return &models.AvailableDatesResponse{
		CounselorID: counselorID,
		Dates:       dates,
	}, nil
}

// parseTimeRange валидирует пару "HH:MM" и порядок границ
func (s *Service) parseTimeRange(startStr, endStr string) (types.TimeString, types.TimeString, error) {
	startTime, err := types.NewTimeStringFromString(startStr)
	if err != nil {
		return "", "", fmt.Errorf("%w: invalid startTime %q: %v", ErrInvalidInput, startStr, err)
	}

	endTime, err := types.NewTimeStringFromString(endStr)
	if err != nil {
		return "", "", fmt.Errorf("%w: invalid endTime %q: %v", ErrInvalidInput, endStr, err)
	}

	if !startTime.IsBefore(endTime) {
		return "", "", fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	return startTime, endTime, nil
}

// parseExceptionRange валидирует дату и границы исключения.
// Прошедшие даты запрещены; EXTRA_OPENING дополнительно ограничено
// горизонтом бронирования (за горизонтом окно всё равно недоступно клиентам).
func (s *Service) parseExceptionRange(ctx context.Context, counselorID int64, kind domain.ExceptionKind, dateStr, startStr, endStr string) (time.Time, types.TimeString, types.TimeString, error) {
	specificDate, err := time.ParseInLocation(domain.DateFormat, dateStr, time.Local)
	if err != nil {
		return time.Time{}, "", "", fmt.Errorf("%w: invalid specificDate %q", ErrInvalidDate, dateStr)
	}

	today := domain.DateOnly(s.now())
	if specificDate.Before(today) {
		return time.Time{}, "", "", fmt.Errorf("%w: specificDate %s is in the past", ErrInvalidDate, dateStr)
	}

	if kind == domain.KindExtraOpening {
		policy, err := s.policies.Resolve(ctx, counselorID)
		if err != nil {
			return time.Time{}, "", "", fmt.Errorf("%w: parseExceptionRange - resolve policy: %v", ErrInternal, err)
		}
		if specificDate.After(policy.MaxBookingDate(s.now())) {
			return time.Time{}, "", "", fmt.Errorf("%w: specificDate %s is beyond %d days", ErrHorizonExceeded, dateStr, policy.MaxBookingDays)
		}
	}

	startTime, endTime, err := s.parseTimeRange(startStr, endStr)
	if err != nil {
		return time.Time{}, "", "", err
	}

	return specificDate, startTime, endTime, nil
}

// resolveSlotDuration возвращает длительность слота: из запроса либо из политики
func (s *Service) resolveSlotDuration(ctx context.Context, counselorID int64, requested *int) (int, error) {
	if requested == nil {
		policy, err := s.policies.Resolve(ctx, counselorID)
		if err != nil {
			return 0, fmt.Errorf("%w: resolveSlotDuration - resolve policy: %v", ErrInternal, err)
		}
		return policy.DefaultSlotDurationMinutes, nil
	}

	if *requested < domain.MinSlotDurationMinutes || *requested > domain.MaxSlotDurationMinutes {
		return 0, fmt.Errorf("%w: slotDurationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}

	return *requested, nil
}

// checkWindowOverlap проверяет пересечение с активными окнами того же дня недели.
// excludeID исключает из проверки само обновляемое окно.
func (s *Service) checkWindowOverlap(ctx context.Context, counselorID int64, day domain.DayOfWeek, startTime, endTime types.TimeString, excludeID int64) error {
	existing, err := s.windowRepo.GetActiveByCounselorAndDay(ctx, counselorID, day)
	if err != nil {
		s.logger.Error("checkWindowOverlap: repository error for counselor=%d: %v", counselorID, err)
		return fmt.Errorf("%w: checkWindowOverlap - repository error: %v", ErrInternal, err)
	}

	newStart, newEnd, err := anchorRange(startTime, endTime)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	for _, w := range existing {
		if w.ID == excludeID {
			continue
		}

		curStart, curEnd, err := anchorRange(w.StartTime, w.EndTime)
		if err != nil {
			return fmt.Errorf("%w: checkWindowOverlap - corrupt window id=%d: %v", ErrInternal, w.ID, err)
		}

		if interval.Overlaps(newStart, newEnd, curStart, curEnd) {
			s.logger.Warn("checkWindowOverlap: range %s-%s overlaps window id=%d for counselor=%d",
				startTime, endTime, w.ID, counselorID)
			return fmt.Errorf("%w: overlaps window %s-%s on %s", ErrOverlapConflict, w.StartTime, w.EndTime, day)
		}
	}

	return nil
}

// checkExceptionOverlap проверяет пересечение с активными исключениями
// на ту же дату независимо от типа: два активных исключения одного
// консультанта на одну дату пересекаться не могут.
func (s *Service) checkExceptionOverlap(ctx context.Context, counselorID int64, date time.Time, startTime, endTime types.TimeString, excludeID int64) error {
	existing, err := s.exceptionRepo.GetActiveByCounselor(ctx, counselorID, &date)
	if err != nil {
		s.logger.Error("checkExceptionOverlap: repository error for counselor=%d: %v", counselorID, err)
		return fmt.Errorf("%w: checkExceptionOverlap - repository error: %v", ErrInternal, err)
	}

	newStart, newEnd, err := anchorRange(startTime, endTime)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	for _, e := range existing {
		if e.ID == excludeID {
			continue
		}

		curStart, curEnd, err := anchorRange(e.StartTime, e.EndTime)
		if err != nil {
			return fmt.Errorf("%w: checkExceptionOverlap - corrupt exception id=%d: %v", ErrInternal, e.ID, err)
		}

		if interval.Overlaps(newStart, newEnd, curStart, curEnd) {
			s.logger.Warn("checkExceptionOverlap: range %s-%s overlaps exception id=%d for counselor=%d",
				startTime, endTime, e.ID, counselorID)
			return fmt.Errorf("%w: overlaps exception %s-%s on %s", ErrOverlapConflict, e.StartTime, e.EndTime, date.Format(domain.DateFormat))
		}
	}

	return nil
}

// anchorRange привязывает пару "HH:MM" к общей опорной дате,
// чтобы сравнивать диапазоны как абсолютные интервалы
func anchorRange(startTime, endTime types.TimeString) (time.Time, time.Time, error) {
	ref := time.Date(2000, time.January, 3, 0, 0, 0, 0, time.UTC)

	start, err := startTime.AtDate(ref)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := endTime.AtDate(ref)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}
