package create_appointment

import (
	"fmt"

	"github.com/mindigo/appointment-service/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if req.CounselorID <= 0 {
		return fmt.Errorf("%w: counselorID must be positive", ErrInvalidInput)
	}

	if req.ClientID == req.CounselorID {
		return fmt.Errorf("%w: client cannot book an appointment with themselves", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if req.ClientNotes != nil && len(*req.ClientNotes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: clientNotes exceeds %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}
