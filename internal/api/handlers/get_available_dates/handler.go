package get_available_dates

import (
	"net/http"
	"strconv"

	"github.com/mindigo/appointment-service/internal/api/handlers"
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

// Handle GET /api/v1/appointments/available-dates?counselorId={id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	counselorID, err := strconv.ParseInt(r.URL.Query().Get("counselorId"), 10, 64)
	if err != nil || counselorID <= 0 {
		h.logger.Warn("GET /appointments/available-dates - Invalid counselorId: %s", r.URL.Query().Get("counselorId"))
		handlers.RespondBadRequest(w, msgInvalidCounselorID)
		return
	}

	result, err := h.service.GetAvailableDates(r.Context(), counselorID)
	if err != nil {
		h.logger.Error("GET /appointments/available-dates - Failed: counselor_id=%d, error=%v", counselorID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /appointments/available-dates - Returned %d dates: counselor_id=%d", len(result.Dates), counselorID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
