package update_appointment_status

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status          string  `json:"status"`
	CounselorNotes  *string `json:"counselorNotes,omitempty"`
	RejectionReason *string `json:"rejectionReason,omitempty"`
}
