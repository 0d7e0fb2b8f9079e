package create_date_exception

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
	msgOverlapConflict    = "исключение пересекается с существующим"
	msgInvalidDate        = "некорректная или прошедшая дата"
	msgHorizonExceeded    = "дата выходит за горизонт бронирования"
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

// Handle POST /api/v1/appointments/availability/date-specific
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	counselorID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "пользователь не аутентифицирован")
		return
	}

	if role, _ := middleware.UserRole(r.Context()); role != domain.RoleCounselor {
		h.logger.Warn("POST /availability/date-specific - Forbidden for role=%s, user_id=%d", role, counselorID)
		handlers.RespondForbidden(w, msgCounselorOnly)
		return
	}

	var req availabilityModels.CreateExceptionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /availability/date-specific - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateException(r.Context(), counselorID, middleware.UserEmail(r.Context()), &req)
	if err != nil {
		switch {
		case errors.Is(err, availabilityService.ErrOverlapConflict):
			h.logger.Warn("POST /availability/date-specific - Overlap conflict: counselor_id=%d: %v", counselorID, err)
			handlers.RespondConflict(w, msgOverlapConflict)

		case errors.Is(err, availabilityService.ErrInvalidDate):
			h.logger.Warn("POST /availability/date-specific - Invalid date: counselor_id=%d: %v", counselorID, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, availabilityService.ErrHorizonExceeded):
			h.logger.Warn("POST /availability/date-specific - Horizon exceeded: counselor_id=%d: %v", counselorID, err)
			handlers.RespondBadRequest(w, msgHorizonExceeded)

		case errors.Is(err, availabilityService.ErrInvalidInput):
			h.logger.Warn("POST /availability/date-specific - Invalid input: counselor_id=%d: %v", counselorID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /availability/date-specific - Failed: counselor_id=%d, error=%v", counselorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /availability/date-specific - Exception created: exception_id=%d, counselor_id=%d", result.ID, counselorID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
