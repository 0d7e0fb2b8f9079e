package delete_date_exception

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
	msgInvalidExceptionID = "некорректный ID исключения"
	msgCounselorOnly      = "операция доступна только консультантам"
	msgExceptionNotFound  = "исключение не найдено"
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

// Handle DELETE /api/v1/appointments/availability/date-specific/{exceptionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	counselorID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "пользователь не аутентифицирован")
		return
	}

	if role, _ := middleware.UserRole(r.Context()); role != domain.RoleCounselor {
		h.logger.Warn("DELETE /availability/date-specific/{id} - Forbidden for role=%s, user_id=%d", role, counselorID)
		handlers.RespondForbidden(w, msgCounselorOnly)
		return
	}

	exceptionID, err := strconv.ParseInt(mux.Vars(r)["exceptionId"], 10, 64)
	if err != nil || exceptionID <= 0 {
		h.logger.Warn("DELETE /availability/date-specific/{id} - Invalid exception ID: %s", mux.Vars(r)["exceptionId"])
		handlers.RespondBadRequest(w, msgInvalidExceptionID)
		return
	}

	if err := h.service.DeleteException(r.Context(), exceptionID, counselorID); err != nil {
		switch {
		case errors.Is(err, availabilityService.ErrExceptionNotFound):
			h.logger.Warn("DELETE /availability/date-specific/{id} - Not found: exception_id=%d, counselor_id=%d", exceptionID, counselorID)
			handlers.RespondNotFound(w, msgExceptionNotFound)

		default:
			h.logger.Error("DELETE /availability/date-specific/{id} - Failed: exception_id=%d, error=%v", exceptionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /availability/date-specific/{id} - Exception deactivated: exception_id=%d, counselor_id=%d", exceptionID, counselorID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
