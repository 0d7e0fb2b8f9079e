package get_available_slots

import "time"

// Request модель запроса на получение доступных слотов
type Request struct {
	CounselorID int64     // ID консультанта
	Date        time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком слотов на дату
type Response struct {
	CounselorID int64     // ID консультанта
	Date        time.Time // Дата, на которую запрашивались слоты
	Slots       []Slot    // Слоты в порядке возрастания времени начала
}

// Slot модель временного слота
type Slot struct {
	StartTime       time.Time // Абсолютное время начала
	EndTime         time.Time // Абсолютное время конца (исключительно)
	DurationMinutes int       // Длительность слота в минутах
	Available       bool      // false, если слот занят активной записью
}
