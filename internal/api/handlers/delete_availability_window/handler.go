package delete_availability_window

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mindigo/appointment-service/internal/api/handlers"
	"github.com/mindigo/appointment-service/internal/api/middleware"
	"github.com/mindigo/appointment-service/internal/domain"
	availabilityService "github.com/mindigo/appointment-service/internal/service/availability"
)

const (
	msgInvalidWindowID = "некорректный ID окна"
	msgCounselorOnly   = "операция доступна только консультантам"
	msgWindowNotFound  = "окно доступности не найдено"
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

// Handle DELETE /api/v1/appointments/availability/{windowId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	counselorID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "пользователь не аутентифицирован")
		return
	}

	if role, _ := middleware.UserRole(r.Context()); role != domain.RoleCounselor {
		h.logger.Warn("DELETE /availability/{id} - Forbidden for role=%s, user_id=%d", role, counselorID)
		handlers.RespondForbidden(w, msgCounselorOnly)
		return
	}

	windowID, err := strconv.ParseInt(mux.Vars(r)["windowId"], 10, 64)
	if err != nil || windowID <= 0 {
		h.logger.Warn("DELETE /availability/{id} - Invalid window ID: %s", mux.Vars(r)["windowId"])
		handlers.RespondBadRequest(w, msgInvalidWindowID)
		return
	}

	if err := h.service.DeleteWindow(r.Context(), windowID, counselorID); err != nil {
		switch {
		case errors.Is(err, availabilityService.ErrWindowNotFound):
			h.logger.Warn("DELETE /availability/{id} - Not found: window_id=%d, counselor_id=%d", windowID, counselorID)
			handlers.RespondNotFound(w, msgWindowNotFound)

		default:
			h.logger.Error("DELETE /availability/{id} - Failed: window_id=%d, error=%v", windowID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /availability/{id} - Window deactivated: window_id=%d, counselor_id=%d", windowID, counselorID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
