package domain

import (
	"strings"
	"time"

	"github.com/mindigo/appointment-service/pkg/types"
)

// DayOfWeek день недели в написании оригинального API (MONDAY..SUNDAY)
type DayOfWeek string

const (
	Monday    DayOfWeek = "MONDAY"
	Tuesday   DayOfWeek = "TUESDAY"
	Wednesday DayOfWeek = "WEDNESDAY"
	Thursday  DayOfWeek = "THURSDAY"
	Friday    DayOfWeek = "FRIDAY"
	Saturday  DayOfWeek = "SATURDAY"
	Sunday    DayOfWeek = "SUNDAY"
)

// IsValid проверяет, что день недели известен
func (d DayOfWeek) IsValid() bool {
	switch d {
	case Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday:
		return true
	}
	return false
}

// DayOfWeekFromTime конвертирует time.Weekday в DayOfWeek
func DayOfWeekFromTime(w time.Weekday) DayOfWeek {
	return DayOfWeek(strings.ToUpper(w.String()))
}

// WeeklyWindow еженедельное окно доступности консультанта.
// Деактивируется (is_active=false), а не удаляется.
type WeeklyWindow struct {
	ID                  int64
	CounselorID         int64
	CounselorEmail      string
	DayOfWeek           DayOfWeek
	StartTime           types.TimeString
	EndTime             types.TimeString
	SlotDurationMinutes int
	IsActive            bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// AnchorToDate привязывает окно к календарной дате,
// возвращая абсолютные границы [start, end)
func (w *WeeklyWindow) AnchorToDate(date time.Time) (time.Time, time.Time, error) {
	start, err := w.StartTime.AtDate(date)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := w.EndTime.AtDate(date)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

// ExceptionKind тип исключения из расписания
type ExceptionKind string

const (
	// KindExtraOpening дополнительное окно приема на конкретную дату
	KindExtraOpening ExceptionKind = "EXTRA_OPENING"
	// KindBlocked заблокированный диапазон (отпуск, перерыв и т.п.)
	KindBlocked ExceptionKind = "BLOCKED"
)

// IsValid проверяет, что тип исключения известен
func (k ExceptionKind) IsValid() bool {
	return k == KindExtraOpening || k == KindBlocked
}

// DateException разовое исключение из еженедельного расписания
// на конкретную календарную дату
type DateException struct {
	ID                  int64
	CounselorID         int64
	CounselorEmail      string
	SpecificDate        time.Time // только дата, время обнулено
	StartTime           types.TimeString
	EndTime             types.TimeString
	Kind                ExceptionKind
	SlotDurationMinutes int
	Reason              *string
	IsActive            bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// AnchorToDate привязывает исключение к его дате,
// возвращая абсолютные границы [start, end)
func (e *DateException) AnchorToDate(date time.Time) (time.Time, time.Time, error) {
	start, err := e.StartTime.AtDate(date)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := e.EndTime.AtDate(date)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

// DateOnly обнуляет компонент времени
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// IsSameDay проверяет, что два момента относятся к одному календарному дню
func IsSameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
