package update_date_exception

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mindigo/appointment-service/internal/api/handlers"
	"github.com/mindigo/appointment-service/internal/api/middleware"
	"github.com/mindigo/appointment-service/internal/domain"
	availabilityService "github.com/mindigo/appointment-service/internal/service/availability"
	availabilityModels "github.com/mindigo/appointment-service/internal/service/availability/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidExceptionID = "некорректный ID исключения"
	msgCounselorOnly      = "операция доступна только консультантам"
	msgExceptionNotFound  = "исключение не найдено"
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

// Handle PUT /api/v1/appointments/availability/date-specific/{exceptionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	counselorID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "пользователь не аутентифицирован")
		return
	}

	if role, _ := middleware.UserRole(r.Context()); role != domain.RoleCounselor {
		h.logger.Warn("PUT /availability/date-specific/{id} - Forbidden for role=%s, user_id=%d", role, counselorID)
		handlers.RespondForbidden(w, msgCounselorOnly)
		return
	}

	exceptionID, err := strconv.ParseInt(mux.Vars(r)["exceptionId"], 10, 64)
	if err != nil || exceptionID <= 0 {
		h.logger.Warn("PUT /availability/date-specific/{id} - Invalid exception ID: %s", mux.Vars(r)["exceptionId"])
		handlers.RespondBadRequest(w, msgInvalidExceptionID)
		return
	}

	var req availabilityModels.UpdateExceptionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /availability/date-specific/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateException(r.Context(), exceptionID, counselorID, &req)
	if err != nil {
		switch {
		case errors.Is(err, availabilityService.ErrExceptionNotFound):
			h.logger.Warn("PUT /availability/date-specific/{id} - Not found: exception_id=%d, counselor_id=%d", exceptionID, counselorID)
			handlers.RespondNotFound(w, msgExceptionNotFound)

		case errors.Is(err, availabilityService.ErrOverlapConflict):
			h.logger.Warn("PUT /availability/date-specific/{id} - Overlap conflict: exception_id=%d: %v", exceptionID, err)
			handlers.RespondConflict(w, msgOverlapConflict)

		case errors.Is(err, availabilityService.ErrInvalidDate):
			h.logger.Warn("PUT /availability/date-specific/{id} - Invalid date: exception_id=%d: %v", exceptionID, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, availabilityService.ErrHorizonExceeded):
			h.logger.Warn("PUT /availability/date-specific/{id} - Horizon exceeded: exception_id=%d: %v", exceptionID, err)
			handlers.RespondBadRequest(w, msgHorizonExceeded)

		case errors.Is(err, availabilityService.ErrInvalidInput):
			h.logger.Warn("PUT /availability/date-specific/{id} - Invalid input: exception_id=%d: %v", exceptionID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /availability/date-specific/{id} - Failed: exception_id=%d, error=%v", exceptionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /availability/date-specific/{id} - Exception updated: exception_id=%d, counselor_id=%d", exceptionID, counselorID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
