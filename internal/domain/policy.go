package domain

import "time"

// CounselorPolicy per-counselor настройки бронирования.
// Строка опциональна: при отсутствии действуют значения по умолчанию,
// см. ResolvedPolicy.
type CounselorPolicy struct {
	ID                         int64
	CounselorID                int64
	CounselorEmail             string
	MaxBookingDays             int
	DefaultSlotDurationMinutes int
	AutoAcceptAppointments     bool
	CreatedAt                  time.Time
	UpdatedAt                  time.Time
}

// ResolvedPolicy полностью заполненная политика бронирования.
// Любое место, где политика нужна, обязано работать с этим типом —
// частичное применение дефолтов запрещено.
type ResolvedPolicy struct {
	CounselorID                int64
	MaxBookingDays             int
	DefaultSlotDurationMinutes int
	AutoAcceptAppointments     bool
}

// DefaultPolicy политика по умолчанию для консультанта без настроек
func DefaultPolicy(counselorID int64) ResolvedPolicy {
	return ResolvedPolicy{
		CounselorID:                counselorID,
		MaxBookingDays:             DefaultMaxBookingDays,
		DefaultSlotDurationMinutes: DefaultSlotDurationMinutes,
		AutoAcceptAppointments:     DefaultAutoAcceptAppointments,
	}
}

// Resolve конвертирует сохраненную строку настроек в ResolvedPolicy
func (p *CounselorPolicy) Resolve() ResolvedPolicy {
	return ResolvedPolicy{
		CounselorID:                p.CounselorID,
		MaxBookingDays:             p.MaxBookingDays,
		DefaultSlotDurationMinutes: p.DefaultSlotDurationMinutes,
		AutoAcceptAppointments:     p.AutoAcceptAppointments,
	}
}

// MaxBookingDate последняя дата, на которую разрешено бронирование
func (p ResolvedPolicy) MaxBookingDate(now time.Time) time.Time {
	return DateOnly(now).AddDate(0, 0, p.MaxBookingDays)
}
