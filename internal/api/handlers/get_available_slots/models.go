package get_available_slots

import (
	"time"

	"github.com/mindigo/appointment-service/internal/domain"
	getAvailableSlots "github.com/mindigo/appointment-service/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	CounselorID int64  `json:"counselorId"`
	Date        string `json:"date"`
	Slots       []Slot `json:"slots"`
}

// Slot модель слота в HTTP ответе
type Slot struct {
	StartTime       string `json:"startTime"` // RFC3339
	EndTime         string `json:"endTime"`   // RFC3339
	DurationMinutes int    `json:"durationMinutes"`
	Available       bool   `json:"available"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]Slot, len(resp.Slots))
	for i, s := range resp.Slots {
		slots[i] = Slot{
			StartTime:       s.StartTime.Format(time.RFC3339),
			EndTime:         s.EndTime.Format(time.RFC3339),
			DurationMinutes: s.DurationMinutes,
			Available:       s.Available,
		}
	}

	return &AvailableSlotsResponse{
		CounselorID: resp.CounselorID,
		Date:        resp.Date.Format(domain.DateFormat),
		Slots:       slots,
	}
}
