package domain

import "time"

// Slot дискретный интервал приема, предлагаемый клиенту
type Slot struct {
	StartTime time.Time
	EndTime   time.Time
	Available bool
}

// Duration длительность слота
func (s *Slot) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}
