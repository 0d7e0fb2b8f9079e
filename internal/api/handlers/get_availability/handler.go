package get_availability

import (
	"net/http"
	"strconv"

	"github.com/mindigo/appointment-service/internal/api/handlers"
	"github.com/mindigo/appointment-service/internal/api/middleware"
	"github.com/mindigo/appointment-service/internal/domain"
)

const msgInvalidCounselorID = "некорректный counselorId"

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

// Handle GET /api/v1/appointments/availability?counselorId={id}
// Консультант без параметра получает собственное расписание,
// клиент обязан указать counselorId.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "пользователь не аутентифицирован")
		return
	}

	counselorID := userID
	if raw := r.URL.Query().Get("counselorId"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			h.logger.Warn("GET /availability - Invalid counselorId: %s", raw)
			handlers.RespondBadRequest(w, msgInvalidCounselorID)
			return
		}
		counselorID = parsed
	} else if role, _ := middleware.UserRole(r.Context()); role != domain.RoleCounselor {
		handlers.RespondBadRequest(w, msgInvalidCounselorID)
		return
	}

	result, err := h.service.GetAvailability(r.Context(), counselorID)
	if err != nil {
		h.logger.Error("GET /availability - Failed: counselor_id=%d, error=%v", counselorID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /availability - Returned %d windows, %d exceptions: counselor_id=%d",
		len(result.Windows), len(result.Exceptions), counselorID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
