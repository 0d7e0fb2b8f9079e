package create_appointment

import "time"

// Request модель запроса на создание записи
type Request struct {
	ClientID    int64     // ID клиента
	ClientEmail string    // Email клиента (из auth контекста)
	CounselorID int64     // ID консультанта
	StartTime   time.Time // Абсолютное время начала слота
	ClientNotes *string   // Заметки клиента (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID              int64     // ID созданной записи
	ClientID        int64     // ID клиента
	CounselorID     int64     // ID консультанта
	CounselorName   string    // Отображаемое имя консультанта
	StartTime       time.Time // Время начала
	EndTime         time.Time // Время конца (исключительно)
	DurationMinutes int       // Длительность в минутах
	Status          string    // Начальный статус (PENDING или CONFIRMED)
	ClientNotes     *string   // Заметки клиента

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
