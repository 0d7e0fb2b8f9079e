// Package types общие типы-значения, разделяемые слоями сервиса
package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// Layout формат времени "HH:MM" (24-часовой)
const Layout = "15:04"

var (
	// ErrInvalidFormat возвращается при некорректной строке времени
	ErrInvalidFormat = errors.New("invalid time string format")

	// ErrOutOfRange возвращается, когда результат арифметики выходит за пределы суток
	ErrOutOfRange = errors.New("time string out of range")
)

// TimeString время дня без даты в формате "HH:MM" (например, "09:30").
// Строки с ведущими нулями сравниваются лексикографически корректно,
// поэтому IsBefore/IsAfter не требуют парсинга.
type TimeString string

// NewTimeString создает TimeString из time.Time (дата отбрасывается)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(Layout))
}

// NewTimeStringFromString создает TimeString из строки "HH:MM" с валидацией
func NewTimeStringFromString(s string) (TimeString, error) {
	t := TimeString(s)
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

// String возвращает строковое представление "HH:MM"
func (t TimeString) String() string {
	return string(t)
}

// IsZero проверяет, что значение не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет канонический формат "HH:MM". time.Parse принимает
// и "9:30", поэтому дополнительно сверяем строку с отформатированным
// результатом: без ведущих нулей ломается лексикографическое сравнение.
func (t TimeString) Validate() error {
	parsed, err := time.Parse(Layout, string(t))
	if err != nil || parsed.Format(Layout) != string(t) {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, string(t))
	}
	return nil
}

// IsBefore строгое "раньше"
func (t TimeString) IsBefore(other TimeString) bool {
	return string(t) < string(other)
}

// IsAfter строгое "позже"
func (t TimeString) IsAfter(other TimeString) bool {
	return string(t) > string(other)
}

// Minutes возвращает количество минут с полуночи
func (t TimeString) Minutes() (int, error) {
	parsed, err := time.Parse(Layout, string(t))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, string(t))
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// AddMinutes возвращает время, сдвинутое на m минут вперед.
// Переход через полночь считается ошибкой: рабочие окна сервиса
// не пересекают границу суток.
func (t TimeString) AddMinutes(m int) (TimeString, error) {
	base, err := t.Minutes()
	if err != nil {
		return "", err
	}
	total := base + m
	if total < 0 || total > 24*60 {
		return "", fmt.Errorf("%w: %q + %d minutes", ErrOutOfRange, string(t), m)
	}
	if total == 24*60 {
		// Ровно полночь непредставима в "HH:MM" текущих суток, поэтому
		// результат 24:00 тоже считается выходом за пределы
		return "", fmt.Errorf("%w: %q + %d minutes", ErrOutOfRange, string(t), m)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// AtDate привязывает время дня к конкретной календарной дате
func (t TimeString) AtDate(date time.Time) (time.Time, error) {
	parsed, err := time.Parse(Layout, string(t))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidFormat, string(t))
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, date.Location()), nil
}

// Value реализует driver.Valuer для сохранения в БД
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

// Scan реализует sql.Scanner для чтения из БД.
// Поддерживает string, []byte и time.Time (колонки типа TIME).
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		return t.scanString(v)
	case []byte:
		return t.scanString(string(v))
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: unsupported source type %T", ErrInvalidFormat, src)
	}
}

func (t *TimeString) scanString(s string) error {
	// Postgres TIME приходит как "HH:MM:SS" — отбрасываем секунды
	if len(s) >= 5 {
		s = s[:5]
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
