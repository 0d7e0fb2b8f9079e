package get_date_exceptions

import (
	"net/http"
	"strconv"
	"time"

	"github.com/mindigo/appointment-service/internal/api/handlers"
	"github.com/mindigo/appointment-service/internal/api/middleware"
	"github.com/mindigo/appointment-service/internal/domain"
)

const (
	msgInvalidCounselorID = "некорректный counselorId"
	msgInvalidDate        = "некорректная дата, ожидается формат YYYY-MM-DD"
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

// Handle GET /api/v1/appointments/availability/date-specific?counselorId={id}&date={YYYY-MM-DD}
// Консультант без counselorId получает собственные исключения,
// клиент обязан указать counselorId. Фильтр по дате опционален.
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
			h.logger.Warn("GET /availability/date-specific - Invalid counselorId: %s", raw)
			handlers.RespondBadRequest(w, msgInvalidCounselorID)
			return
		}
		counselorID = parsed
	} else if role, _ := middleware.UserRole(r.Context()); role != domain.RoleCounselor {
		handlers.RespondBadRequest(w, msgInvalidCounselorID)
		return
	}

	var date *time.Time
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.ParseInLocation(domain.DateFormat, raw, time.Local)
		if err != nil {
			h.logger.Warn("GET /availability/date-specific - Invalid date: %s", raw)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		date = &parsed
	}

	result, err := h.service.GetExceptions(r.Context(), counselorID, date)
	if err != nil {
		h.logger.Error("GET /availability/date-specific - Failed: counselor_id=%d, error=%v", counselorID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /availability/date-specific - Returned %d exceptions: counselor_id=%d",
		len(result.Exceptions), counselorID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
