package models

import "github.com/mindigo/appointment-service/internal/domain"

// Request модели

// UpdateSettingsRequest запрос на обновление настроек бронирования.
// Все поля опциональны - незаполненные сохраняют текущее значение.
type UpdateSettingsRequest struct {
	MaxBookingDays             *int  `json:"maxBookingDays,omitempty"`
	DefaultSlotDurationMinutes *int  `json:"defaultSlotDurationMinutes,omitempty"`
	AutoAcceptAppointments     *bool `json:"autoAcceptAppointments,omitempty"`
}

// Response модели

// SettingsResponse ответ с настройками бронирования консультанта
type SettingsResponse struct {
	CounselorID                int64 `json:"counselorId"`
	MaxBookingDays             int   `json:"maxBookingDays"`
	DefaultSlotDurationMinutes int   `json:"defaultSlotDurationMinutes"`
	AutoAcceptAppointments     bool  `json:"autoAcceptAppointments"`
}

// FromResolvedPolicy конвертирует domain политику в DTO
func FromResolvedPolicy(p domain.ResolvedPolicy) *SettingsResponse {
	return &SettingsResponse{
		CounselorID:                p.CounselorID,
		MaxBookingDays:             p.MaxBookingDays,
		DefaultSlotDurationMinutes: p.DefaultSlotDurationMinutes,
		AutoAcceptAppointments:     p.AutoAcceptAppointments,
	}
}
