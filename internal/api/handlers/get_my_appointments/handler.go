package get_my_appointments

import (
	"errors"
	"net/http"

	"github.com/mindigo/appointment-service/internal/api/handlers"
	"github.com/mindigo/appointment-service/internal/api/middleware"
	appointmentsService "github.com/mindigo/appointment-service/internal/service/appointments"
	appointmentModels "github.com/mindigo/appointment-service/internal/service/appointments/models"
)

const msgInvalidStatus = "некорректный статус записи"

type Handler struct {
	service AppointmentsService
	logger  Logger
}

func NewHandler(service AppointmentsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments/my?status={status}
// Клиент получает свои записи, консультант - записи к себе.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "пользователь не аутентифицирован")
		return
	}
	role, _ := middleware.UserRole(r.Context())

	var status *string
	if raw := r.URL.Query().Get("status"); raw != "" {
		status = &raw
	}

	result, err := h.service.GetMyAppointments(r.Context(), &appointmentModels.GetMyAppointmentsRequest{
		UserID: userID,
		Role:   string(role),
		Status: status,
	})
	if err != nil {
		switch {
		case errors.Is(err, appointmentsService.ErrInvalidInput):
			h.logger.Warn("GET /appointments/my - Invalid input: user_id=%d: %v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /appointments/my - Failed: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments/my - Returned %d appointments: user_id=%d, role=%s",
		len(result.Appointments), userID, role)
	handlers.RespondJSON(w, http.StatusOK, result)
}
