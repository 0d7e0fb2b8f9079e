package create_availability_window

import (
	"errors"
	"net/http"

	"github.com/mindigo/appointment-service/internal/api/handlers"
	"github.com/mindigo/appointment-service/internal/api/middleware"
	"github.com/mindigo/appointment-service/internal/domain"
	availabilityService "github.com/mindigo/appointment-service/internal/service/availability"
	availabilityModels "github.com/mindigo/appointment-service/internal/service/availability/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgCounselorOnly      = "операция доступна только консультантам"
	msgOverlapConflict    = "окно пересекается с существующим расписанием"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	counselorID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "пользователь не аутентифицирован")
		return
	}

	if role, _ := middleware.UserRole(r.Context()); role != domain.RoleCounselor {
		h.logger.Warn("POST /availability - Forbidden for role=%s, user_id=%d", role, counselorID)
		handlers.RespondForbidden(w, msgCounselorOnly)
		return
	}

	var req availabilityModels.CreateWindowRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateWindow(r.Context(), counselorID, middleware.UserEmail(r.Context()), &req)
	if err != nil {
		switch {
		case errors.Is(err, availabilityService.ErrOverlapConflict):
			h.logger.Warn("POST /availability - Overlap conflict: counselor_id=%d: %v", counselorID, err)
			handlers.RespondConflict(w, msgOverlapConflict)

		case errors.Is(err, availabilityService.ErrInvalidInput):
			h.logger.Warn("POST /availability - Invalid input: counselor_id=%d: %v", counselorID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /availability - Failed: counselor_id=%d, error=%v", counselorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /availability - Window created: window_id=%d, counselor_id=%d", result.ID, counselorID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
