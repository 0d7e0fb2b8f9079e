package get_available_slots

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/mindigo/appointment-service/internal/domain"
	"github.com/mindigo/appointment-service/pkg/ptr"
)

// UseCase use case для получения доступных слотов консультанта на дату
type UseCase struct {
	appointmentRepo AppointmentRepository
	windowRepo      WindowRepository
	exceptionRepo   ExceptionRepository
	policies        PolicyResolver
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	windowRepo WindowRepository,
	exceptionRepo ExceptionRepository,
	policies PolicyResolver,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		windowRepo:      windowRepo,
		exceptionRepo:   exceptionRepo,
		policies:        policies,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов.
// Слоты собираются из еженедельных окон на день недели даты и разовых
// EXTRA_OPENING, затем из результата вычитаются BLOCKED интервалы,
// а пересечения с активными записями помечаются как занятые.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: counselor=%d, date=%s", req.CounselorID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	date := domain.DateOnly(req.Date)

	// 2. Прошедшая дата или дата за горизонтом бронирования - пустой список,
	// не ошибка: клиент просто не может туда записаться
	policy, err := uc.policies.Resolve(ctx, req.CounselorID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to resolve policy for counselor=%d: %v", req.CounselorID, err)
		return nil, fmt.Errorf("%w: failed to resolve policy: %v", ErrInternal, err)
	}

	if date.Before(domain.DateOnly(now)) || date.After(policy.MaxBookingDate(now)) {
		uc.logger.Info("GetAvailableSlots: date %s outside booking horizon for counselor=%d",
			date.Format(domain.DateFormat), req.CounselorID)
		return uc.emptyResponse(req, date), nil
	}

	// 3. Еженедельные окна на день недели запрошенной даты
	windows, err := uc.windowRepo.GetActiveByCounselorAndDay(ctx, req.CounselorID, domain.DayOfWeekFromTime(date.Weekday()))
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get windows for counselor=%d: %v", req.CounselorID, err)
		return nil, fmt.Errorf("%w: failed to get windows: %v", ErrInternal, err)
	}

	// 4. Разовые исключения на эту дату
	exceptions, err := uc.exceptionRepo.GetActiveByCounselor(ctx, req.CounselorID, &date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get exceptions for counselor=%d: %v", req.CounselorID, err)
		return nil, fmt.Errorf("%w: failed to get exceptions: %v", ErrInternal, err)
	}

	// 5. Генерируем слоты по каждому окну и дополнительному открытию
	slots := make([]Slot, 0)
	for _, w := range windows {
		start, end, err := w.AnchorToDate(date)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: corrupt window id=%d: %v", w.ID, err)
			return nil, fmt.Errorf("%w: corrupt window id=%d: %v", ErrInternal, w.ID, err)
		}
		slots = append(slots, generateWindowSlots(start, end, w.SlotDurationMinutes, now)...)
	}

	blocked := make([]timeRange, 0)
	for _, e := range exceptions {
		start, end, err := e.AnchorToDate(date)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: corrupt exception id=%d: %v", e.ID, err)
			return nil, fmt.Errorf("%w: corrupt exception id=%d: %v", ErrInternal, e.ID, err)
		}

		switch e.Kind {
		case domain.KindExtraOpening:
			slots = append(slots, generateWindowSlots(start, end, e.SlotDurationMinutes, now)...)
		case domain.KindBlocked:
			blocked = append(blocked, timeRange{Start: start, End: end})
		}
	}

	// 6. Вычитаем заблокированные интервалы
	slots = subtractBlocked(slots, blocked)

	// 7. Помечаем занятые слоты по активным записям на эту дату
	dayStart := date
	dayEnd := date.AddDate(0, 0, 1)
	appointments, err := uc.appointmentRepo.GetWithFilter(ctx, domain.AppointmentsFilter{
		CounselorID: req.CounselorID,
		StartTime:   ptr.Ptr(dayStart),
		EndTime:     ptr.Ptr(dayEnd),
		Statuses:    domain.ActiveStatuses,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments for counselor=%d: %v", req.CounselorID, err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	markBooked(slots, appointments)

	// 8. Единый порядок по времени начала; при равенстве сохраняется
	// порядок источников (окна перед исключениями)
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].StartTime.Before(slots[j].StartTime)
	})

	uc.logger.Info("GetAvailableSlots: generated %d slots for counselor=%d, date=%s",
		len(slots), req.CounselorID, date.Format(domain.DateFormat))

	return &Response{
		CounselorID: req.CounselorID,
		Date:        date,
		Slots:       slots,
	}, nil
}

func (uc *UseCase) emptyResponse(req *Request, date time.Time) *Response {
	return &Response{
		CounselorID: req.CounselorID,
		Date:        date,
		Slots:       []Slot{},
	}
}
