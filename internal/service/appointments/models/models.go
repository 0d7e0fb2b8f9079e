package models

import (
	"errors"
	"time"

	"github.com/mindigo/appointment-service/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// UpdateStatusRequest запрос на смену статуса записи
type UpdateStatusRequest struct {
	AppointmentID   int64   `json:"appointmentId"`
	Status          string  `json:"status"`
	CounselorNotes  *string `json:"counselorNotes,omitempty"`
	RejectionReason *string `json:"rejectionReason,omitempty"`
}

// GetMyAppointmentsRequest запрос на список записей пользователя
type GetMyAppointmentsRequest struct {
	UserID int64   `json:"userId"`
	Role   string  `json:"role"`
	Status *string `json:"status,omitempty"`
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	ClientID        int64   `json:"clientId"`
	CounselorID     int64   `json:"counselorId"`
	CounselorName   string  `json:"counselorName,omitempty"`
	StartTime       string  `json:"startTime"` // ISO 8601
	EndTime         string  `json:"endTime"`   // ISO 8601
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	ClientNotes     *string `json:"clientNotes,omitempty"`
	CounselorNotes  *string `json:"counselorNotes,omitempty"`
	RejectionReason *string `json:"rejectionReason,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	return &AppointmentResponse{
		ID:              a.ID,
		ClientID:        a.ClientID,
		CounselorID:     a.CounselorID,
		StartTime:       a.StartTime.Format(time.RFC3339),
		EndTime:         a.EndTime.Format(time.RFC3339),
		DurationMinutes: int(a.EndTime.Sub(a.StartTime).Minutes()),
		Status:          string(a.Status),
		ClientNotes:     a.ClientNotes,
		CounselorNotes:  a.CounselorNotes,
		RejectionReason: a.RejectionReason,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}

	for _, a := range appointments {
		if item := FromDomainAppointment(a); item != nil {
			resp.Appointments = append(resp.Appointments, *item)
		}
	}

	return resp
}

// ToDomainAppointmentStatus конвертирует строку в domain.AppointmentStatus с валидацией
func ToDomainAppointmentStatus(status string) (domain.AppointmentStatus, error) {
	s := domain.AppointmentStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
