package availability

import "errors"

var (
	// ErrWindowNotFound возвращается, когда окно доступности не найдено
	ErrWindowNotFound = errors.New("availability window not found")

	// ErrExceptionNotFound возвращается, когда исключение не найдено
	ErrExceptionNotFound = errors.New("date exception not found")

	// ErrOverlapConflict возвращается при пересечении с существующим окном или исключением
	ErrOverlapConflict = errors.New("time range overlaps an existing entry")

	// ErrInvalidDate возвращается при некорректной или прошедшей дате
	ErrInvalidDate = errors.New("invalid date")

	// ErrHorizonExceeded возвращается, когда дата выходит за горизонт бронирования
	ErrHorizonExceeded = errors.New("date is beyond the booking horizon")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
