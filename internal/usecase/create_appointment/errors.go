package create_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInvalidDate возвращается при некорректной дате записи
	ErrInvalidDate = errors.New("create_appointment: invalid date")

	// ErrHorizonExceeded возвращается, когда дата превышает горизонт бронирования
	ErrHorizonExceeded = errors.New("create_appointment: date is beyond the booking horizon")

	// ErrSlotUnavailable возвращается, когда запрошенный интервал недоступен:
	// вне расписания, заблокирован, занят другой записью или уже начался
	ErrSlotUnavailable = errors.New("create_appointment: slot is not available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
