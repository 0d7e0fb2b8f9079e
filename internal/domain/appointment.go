package domain

import "time"

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "PENDING"
	StatusConfirmed AppointmentStatus = "CONFIRMED"
	StatusRejected  AppointmentStatus = "REJECTED"
	StatusCancelled AppointmentStatus = "CANCELLED"
	StatusCompleted AppointmentStatus = "COMPLETED"
)

// IsValid проверяет, что статус известен системе
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusRejected, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// IsTerminal проверяет, что из статуса нет переходов
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusRejected || s == StatusCancelled || s == StatusCompleted
}

// Role роль участника записи
type Role string

const (
	RoleClient    Role = "CLIENT"
	RoleCounselor Role = "COUNSELOR"
)

// IsValid проверяет, что роль известна системе
func (r Role) IsValid() bool {
	return r == RoleClient || r == RoleCounselor
}

// Appointment запись клиента к консультанту на конкретный интервал времени.
// Времена абсолютные, в канонической зоне консультанта.
// Записи никогда не удаляются физически: CANCELLED хранится для аудита.
type Appointment struct {
	ID             int64
	ClientID       int64
	CounselorID    int64
	ClientEmail    string
	CounselorEmail string
	StartTime      time.Time
	EndTime        time.Time
	Status         AppointmentStatus

	ClientNotes     *string
	CounselorNotes  *string
	RejectionReason *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive true, если запись занимает время консультанта
func (a *Appointment) IsActive() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// IsParticipant проверяет, что пользователь является стороной записи
func (a *Appointment) IsParticipant(userID int64) bool {
	return a.ClientID == userID || a.CounselorID == userID
}

// CanTransition проверяет допустимость перехода статуса для роли.
// Таблица переходов:
//
//	PENDING   → CONFIRMED, REJECTED (консультант); CANCELLED (клиент)
//	CONFIRMED → CANCELLED, COMPLETED (консультант); CANCELLED (клиент)
//	REJECTED/CANCELLED/COMPLETED → переходов нет
func CanTransition(from, to AppointmentStatus, role Role) bool {
	switch from {
	case StatusPending:
		if role == RoleCounselor {
			return to == StatusConfirmed || to == StatusRejected
		}
		if role == RoleClient {
			return to == StatusCancelled
		}
	case StatusConfirmed:
		if role == RoleCounselor {
			return to == StatusCancelled || to == StatusCompleted
		}
		if role == RoleClient {
			return to == StatusCancelled
		}
	}
	return false
}

// AppointmentsFilter фильтр выборки записей консультанта
type AppointmentsFilter struct {
	CounselorID int64
	StartTime   *time.Time          // Начало периода (включительно)
	EndTime     *time.Time          // Конец периода (исключительно)
	Statuses    []AppointmentStatus // Пустой список = без фильтра по статусу
}
