package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/mindigo/appointment-service/internal/api/handlers"
	"github.com/mindigo/appointment-service/internal/domain"
	getAvailableSlots "github.com/mindigo/appointment-service/internal/usecase/get_available_slots"
)

const (
	msgInvalidCounselorID = "некорректный counselorId"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments/available-slots?counselorId={id}&date={YYYY-MM-DD}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	counselorID, err := strconv.ParseInt(r.URL.Query().Get("counselorId"), 10, 64)
	if err != nil || counselorID <= 0 {
		h.logger.Warn("GET /appointments/available-slots - Invalid counselorId: %s", r.URL.Query().Get("counselorId"))
		handlers.RespondBadRequest(w, msgInvalidCounselorID)
		return
	}

	date, err := time.ParseInLocation(domain.DateFormat, r.URL.Query().Get("date"), time.Local)
	if err != nil {
		h.logger.Warn("GET /appointments/available-slots - Invalid date: %s", r.URL.Query().Get("date"))
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		CounselorID: counselorID,
		Date:        date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput), errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /appointments/available-slots - Invalid input: counselor_id=%d: %v", counselorID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /appointments/available-slots - Failed: counselor_id=%d, error=%v", counselorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments/available-slots - Returned %d slots: counselor_id=%d, date=%s",
		len(result.Slots), counselorID, result.Date.Format(domain.DateFormat))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
