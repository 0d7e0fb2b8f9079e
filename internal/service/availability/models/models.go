package models

import (
	"time"

	"github.com/mindigo/appointment-service/internal/domain"
)

// Request модели

// CreateWindowRequest запрос на создание еженедельного окна доступности
type CreateWindowRequest struct {
	DayOfWeek           string `json:"dayOfWeek"`
	StartTime           string `json:"startTime"` // "09:00"
	EndTime             string `json:"endTime"`   // "17:00"
	SlotDurationMinutes *int   `json:"slotDurationMinutes,omitempty"`
}

// UpdateWindowRequest запрос на обновление еженедельного окна
type UpdateWindowRequest struct {
	DayOfWeek           string `json:"dayOfWeek"`
	StartTime           string `json:"startTime"`
	EndTime             string `json:"endTime"`
	SlotDurationMinutes *int   `json:"slotDurationMinutes,omitempty"`
}

// CreateExceptionRequest запрос на создание исключения на конкретную дату
type CreateExceptionRequest struct {
	SpecificDate        string  `json:"specificDate"` // "2025-10-15"
	StartTime           string  `json:"startTime"`
	EndTime             string  `json:"endTime"`
	Kind                string  `json:"kind"` // EXTRA_OPENING | BLOCKED
	SlotDurationMinutes *int    `json:"slotDurationMinutes,omitempty"`
	Reason              *string `json:"reason,omitempty"`
}

// UpdateExceptionRequest запрос на обновление исключения
type UpdateExceptionRequest struct {
	SpecificDate        string  `json:"specificDate"`
	StartTime           string  `json:"startTime"`
	EndTime             string  `json:"endTime"`
	Kind                string  `json:"kind"`
	SlotDurationMinutes *int    `json:"slotDurationMinutes,omitempty"`
	Reason              *string `json:"reason,omitempty"`
}

// Response модели

// WindowResponse ответ с данными еженедельного окна
type WindowResponse struct {
	ID                  int64     `json:"id"`
	CounselorID         int64     `json:"counselorId"`
	DayOfWeek           string    `json:"dayOfWeek"`
	StartTime           string    `json:"startTime"`
	EndTime             string    `json:"endTime"`
	SlotDurationMinutes int       `json:"slotDurationMinutes"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// ExceptionResponse ответ с данными исключения
type ExceptionResponse struct {
	ID                  int64     `json:"id"`
	CounselorID         int64     `json:"counselorId"`
	SpecificDate        string    `json:"specificDate"`
	StartTime           string    `json:"startTime"`
	EndTime             string    `json:"endTime"`
	Kind                string    `json:"kind"`
	SlotDurationMinutes int       `json:"slotDurationMinutes"`
	Reason              *string   `json:"reason,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// WindowListResponse ответ со списком еженедельных окон
type WindowListResponse struct {
	Windows []WindowResponse `json:"windows"`
}

// ExceptionListResponse ответ со списком исключений
type ExceptionListResponse struct {
	Exceptions []ExceptionResponse `json:"exceptions"`
}

// AvailabilityResponse совокупное расписание консультанта
type AvailabilityResponse struct {
	Windows    []WindowResponse    `json:"windows"`
	Exceptions []ExceptionResponse `json:"exceptions"`
}

// AvailableDatesResponse ответ со списком дат, доступных для бронирования
type AvailableDatesResponse struct {
	CounselorID int64    `json:"counselorId"`
	Dates       []string `json:"dates"` // "2025-10-15"
}

// Методы конвертации

// FromDomainWindow конвертирует domain модель окна в DTO
func FromDomainWindow(w *domain.WeeklyWindow) *WindowResponse {
	if w == nil {
		return nil
	}

	return &WindowResponse{
		ID:                  w.ID,
		CounselorID:         w.CounselorID,
		DayOfWeek:           string(w.DayOfWeek),
		StartTime:           w.StartTime.String(),
		EndTime:             w.EndTime.String(),
		SlotDurationMinutes: w.SlotDurationMinutes,
		CreatedAt:           w.CreatedAt,
		UpdatedAt:           w.UpdatedAt,
	}
}

// FromDomainWindowList конвертирует список окон в DTO
func FromDomainWindowList(windows []*domain.WeeklyWindow) []WindowResponse {
	result := make([]WindowResponse, 0, len(windows))
	for _, w := range windows {
		if resp := FromDomainWindow(w); resp != nil {
			result = append(result, *resp)
		}
	}
	return result
}

// FromDomainException конвертирует domain модель исключения в DTO
func FromDomainException(e *domain.DateException) *ExceptionResponse {
	if e == nil {
		return nil
	}

	return &ExceptionResponse{
		ID:                  e.ID,
		CounselorID:         e.CounselorID,
		SpecificDate:        e.SpecificDate.Format(domain.DateFormat),
		StartTime:           e.StartTime.String(),
		EndTime:             e.EndTime.String(),
		Kind:                string(e.Kind),
		SlotDurationMinutes: e.SlotDurationMinutes,
		Reason:              e.Reason,
		CreatedAt:           e.CreatedAt,
		UpdatedAt:           e.UpdatedAt,
	}
}

// FromDomainExceptionList конвертирует список исключений в DTO
func FromDomainExceptionList(exceptions []*domain.DateException) []ExceptionResponse {
	result := make([]ExceptionResponse, 0, len(exceptions))
	for _, e := range exceptions {
		if resp := FromDomainException(e); resp != nil {
			result = append(result, *resp)
		}
	}
	return result
}
