package get_available_slots

import (
	"time"

	"github.com/mindigo/appointment-service/internal/domain"
	"github.com/mindigo/appointment-service/pkg/interval"
)

// timeRange абсолютный полуоткрытый интервал [Start, End)
type timeRange struct {
	Start time.Time
	End   time.Time
}

// generateWindowSlots нарезает окно [windowStart, windowEnd) на слоты фиксированной
// длительности; неполный хвост отбрасывается. Уже начавшееся окно обрезается
// вперед до now+буфер, и сетка слотов перезапускается от обрезанного начала.
// Окно, которое еще не началось, не обрезается.
func generateWindowSlots(
	windowStart, windowEnd time.Time,
	slotDuration int,
	now time.Time,
) []Slot {
	slots := make([]Slot, 0)
	if slotDuration <= 0 {
		return slots
	}

	if windowStart.Before(now) {
		windowStart = now.Add(domain.BookingBufferMinutes * time.Minute)
	}
	if !windowStart.Before(windowEnd) {
		return slots
	}

	step := time.Duration(slotDuration) * time.Minute

	for cursor := windowStart; ; cursor = cursor.Add(step) {
		slotEnd := cursor.Add(step)
		if slotEnd.After(windowEnd) {
			break
		}

		slots = append(slots, Slot{
			StartTime:       cursor,
			EndTime:         slotEnd,
			DurationMinutes: slotDuration,
			Available:       true,
		})
	}

	return slots
}

// subtractBlocked убирает слоты, пересекающиеся хотя бы с одним
// заблокированным интервалом. Слот исключается целиком, даже при
// частичном пересечении.
func subtractBlocked(slots []Slot, blocked []timeRange) []Slot {
	if len(blocked) == 0 {
		return slots
	}

	result := make([]Slot, 0, len(slots))
	for _, slot := range slots {
		overlapsBlocked := false
		for _, b := range blocked {
			if interval.Overlaps(slot.StartTime, slot.EndTime, b.Start, b.End) {
				overlapsBlocked = true
				break
			}
		}
		if !overlapsBlocked {
			result = append(result, slot)
		}
	}

	return result
}

// markBooked помечает занятыми слоты, пересекающиеся с активными записями.
// Граничащие интервалы (конец одного = начало другого) пересечением не считаются.
func markBooked(slots []Slot, appointments []*domain.Appointment) {
	for i := range slots {
		for _, a := range appointments {
			if !a.IsActive() {
				continue
			}
			if interval.Overlaps(slots[i].StartTime, slots[i].EndTime, a.StartTime, a.EndTime) {
				slots[i].Available = false
				break
			}
		}
	}
}
