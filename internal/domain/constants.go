package domain

// Default policy values (применяются при отсутствии настроек консультанта)
const (
	DefaultMaxBookingDays         = 10
	DefaultSlotDurationMinutes    = 60
	DefaultAutoAcceptAppointments = false
)

// Business validation constants
const (
	MinMaxBookingDays      = 1
	MaxMaxBookingDays      = 30 // горизонт бронирования не больше месяца
	MinSlotDurationMinutes = 15
	MaxSlotDurationMinutes = 240
	MaxNotesLength         = 1000
	MaxReasonLength        = 500

	// BookingBufferMinutes минимальный отступ от текущего момента:
	// слоты раньше now+buffer не предлагаются
	BookingBufferMinutes = 30
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы, при которых запись занимает время консультанта.
// Используется при подсчете конфликтов расписания.
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
}
