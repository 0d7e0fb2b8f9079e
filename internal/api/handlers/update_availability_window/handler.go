package update_availability_window

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
	msgInvalidWindowID    = "некорректный ID окна"
	msgCounselorOnly      = "операция доступна только консультантам"
	msgWindowNotFound     = "окно доступности не найдено"
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

// Handle PUT /api/v1/appointments/availability/{windowId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	counselorID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "пользователь не аутентифицирован")
		return
	}

	if role, _ := middleware.UserRole(r.Context()); role != domain.RoleCounselor {
		h.logger.Warn("PUT /availability/{id} - Forbidden for role=%s, user_id=%d", role, counselorID)
		handlers.RespondForbidden(w, msgCounselorOnly)
		return
	}

	windowID, err := strconv.ParseInt(mux.Vars(r)["windowId"], 10, 64)
	if err != nil || windowID <= 0 {
		h.logger.Warn("PUT /availability/{id} - Invalid window ID: %s", mux.Vars(r)["windowId"])
		handlers.RespondBadRequest(w, msgInvalidWindowID)
		return
	}

	var req availabilityModels.UpdateWindowRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /availability/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateWindow(r.Context(), windowID, counselorID, &req)
	if err != nil {
		switch {
		case errors.Is(err, availabilityService.ErrWindowNotFound):
			h.logger.Warn("PUT /availability/{id} - Not found: window_id=%d, counselor_id=%d", windowID, counselorID)
			handlers.RespondNotFound(w, msgWindowNotFound)

		case errors.Is(err, availabilityService.ErrOverlapConflict):
			h.logger.Warn("PUT /availability/{id} - Overlap conflict: window_id=%d: %v", windowID, err)
			handlers.RespondConflict(w, msgOverlapConflict)

		case errors.Is(err, availabilityService.ErrInvalidInput):
			h.logger.Warn("PUT /availability/{id} - Invalid input: window_id=%d: %v", windowID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /availability/{id} - Failed: window_id=%d, error=%v", windowID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /availability/{id} - Window updated: window_id=%d, counselor_id=%d", windowID, counselorID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
