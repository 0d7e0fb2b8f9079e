package get_counselor_settings

import (
	"net/http"

	"github.com/mindigo/appointment-service/internal/api/handlers"
	"github.com/mindigo/appointment-service/internal/api/middleware"
	"github.com/mindigo/appointment-service/internal/domain"
)

const msgCounselorOnly = "операция доступна только консультантам"

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments/counselors/settings
// Консультант без сохраненных настроек получает значения по умолчанию.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	counselorID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "пользователь не аутентифицирован")
		return
	}

	if role, _ := middleware.UserRole(r.Context()); role != domain.RoleCounselor {
		h.logger.Warn("GET /counselors/settings - Forbidden for role=%s, user_id=%d", role, counselorID)
		handlers.RespondForbidden(w, msgCounselorOnly)
		return
	}

	result, err := h.service.GetSettings(r.Context(), counselorID)
	if err != nil {
		h.logger.Error("GET /counselors/settings - Failed: counselor_id=%d, error=%v", counselorID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /counselors/settings - Fetched settings: counselor_id=%d", counselorID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
