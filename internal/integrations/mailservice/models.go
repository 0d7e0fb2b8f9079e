package mailservice

// NotificationRequest запрос на отправку уведомления о встрече.
// Письмо уходит обоим участникам.
type NotificationRequest struct {
	ClientEmail     string `json:"clientEmail"`
	CounselorEmail  string `json:"counselorEmail"`
	CounselorName   string `json:"counselorName"`
	Action          string `json:"action"`
	AppointmentID   int64  `json:"appointmentId"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`
	Reason          string `json:"reason,omitempty"`
}

// Действия, о которых рассылаются уведомления
const (
	ActionCreated       = "CREATED"
	ActionStatusChanged = "STATUS_CHANGED"
)
