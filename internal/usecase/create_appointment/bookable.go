package create_appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/mindigo/appointment-service/internal/domain"
	"github.com/mindigo/appointment-service/pkg/interval"
	"github.com/mindigo/appointment-service/pkg/ptr"
)

// isBookable проверяет, что интервал [start, end) можно забронировать:
//  1. интервал целиком лежит внутри какого-то окна расписания
//     (еженедельного или разового EXTRA_OPENING);
//  2. интервал не пересекается ни с одним BLOCKED диапазоном;
//  3. интервал не пересекается ни с одной активной записью.
//
// Буфер бронирования здесь не учитывается: он влияет только на то,
// какие слоты показываются клиенту, а не на валидность самих границ.
func (uc *UseCase) isBookable(ctx context.Context, counselorID int64, start, end time.Time) error {
	date := domain.DateOnly(start)

	// 1. Ищем окно, целиком содержащее интервал
	withinWindow, err := uc.withinSomeWindow(ctx, counselorID, date, start, end)
	if err != nil {
		return err
	}
	if !withinWindow {
		uc.logger.Warn("CreateAppointment: interval %s-%s is outside counselor=%d schedule",
			start.Format(time.RFC3339), end.Format(time.RFC3339), counselorID)
		return ErrSlotUnavailable
	}

	// 2. Пересечение с BLOCKED диапазонами
	exceptions, err := uc.exceptionRepo.GetActiveByCounselor(ctx, counselorID, &date)
	if err != nil {
		return fmt.Errorf("%w: failed to get exceptions: %v", ErrInternal, err)
	}

	for _, e := range exceptions {
		if e.Kind != domain.KindBlocked {
			continue
		}
		bStart, bEnd, err := e.AnchorToDate(date)
		if err != nil {
			return fmt.Errorf("%w: corrupt exception id=%d: %v", ErrInternal, e.ID, err)
		}
		if interval.Overlaps(start, end, bStart, bEnd) {
			uc.logger.Warn("CreateAppointment: interval overlaps blocked range id=%d for counselor=%d", e.ID, counselorID)
			return ErrSlotUnavailable
		}
	}

	// 3. Пересечение с активными записями этого дня.
	// В сериализуемой транзакции выборка блокирует строки (FOR UPDATE),
	// что сериализует конкурирующие создания по одному консультанту.
	appointments, err := uc.appointmentRepo.GetWithFilter(ctx, domain.AppointmentsFilter{
		CounselorID: counselorID,
		StartTime:   ptr.Ptr(date),
		EndTime:     ptr.Ptr(date.AddDate(0, 0, 1)),
		Statuses:    domain.ActiveStatuses,
	})
	if err != nil {
		return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	if err := hasNoAppointmentConflict(start, end, appointments); err != nil {
		uc.logger.Warn("CreateAppointment: interval %s-%s conflicts with an active appointment for counselor=%d",
			start.Format(time.RFC3339), end.Format(time.RFC3339), counselorID)
		return err
	}

	return nil
}

// withinSomeWindow проверяет, что интервал целиком лежит внутри одного из окон
func (uc *UseCase) withinSomeWindow(ctx context.Context, counselorID int64, date time.Time, start, end time.Time) (bool, error) {
	windows, err := uc.windowRepo.GetActiveByCounselorAndDay(ctx, counselorID, domain.DayOfWeekFromTime(date.Weekday()))
	if err != nil {
		return false, fmt.Errorf("%w: failed to get windows: %v", ErrInternal, err)
	}

	for _, w := range windows {
		wStart, wEnd, err := w.AnchorToDate(date)
		if err != nil {
			return false, fmt.Errorf("%w: corrupt window id=%d: %v", ErrInternal, w.ID, err)
		}
		if interval.Within(start, end, wStart, wEnd) {
			return true, nil
		}
	}

	exceptions, err := uc.exceptionRepo.GetActiveByCounselor(ctx, counselorID, &date)
	if err != nil {
		return false, fmt.Errorf("%w: failed to get exceptions: %v", ErrInternal, err)
	}

	for _, e := range exceptions {
		if e.Kind != domain.KindExtraOpening {
			continue
		}
		eStart, eEnd, err := e.AnchorToDate(date)
		if err != nil {
			return false, fmt.Errorf("%w: corrupt exception id=%d: %v", ErrInternal, e.ID, err)
		}
		if interval.Within(start, end, eStart, eEnd) {
			return true, nil
		}
	}

	return false, nil
}

// hasNoAppointmentConflict проверяет отсутствие пересечений с активными записями.
// Граничащие интервалы конфликтом не считаются.
func hasNoAppointmentConflict(start, end time.Time, appointments []*domain.Appointment) error {
	for _, a := range appointments {
		if !a.IsActive() {
			continue
		}
		if interval.Overlaps(start, end, a.StartTime, a.EndTime) {
			return ErrSlotUnavailable
		}
	}
	return nil
}
