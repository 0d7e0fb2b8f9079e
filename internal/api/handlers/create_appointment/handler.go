package create_appointment

import (
	"errors"
	"net/http"

	"github.com/mindigo/appointment-service/internal/api/handlers"
	"github.com/mindigo/appointment-service/internal/api/middleware"
	createAppointment "github.com/mindigo/appointment-service/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStartTime   = "некорректный формат времени начала, ожидается RFC3339"
	msgSlotUnavailable    = "выбранный временной слот недоступен"
	msgHorizonExceeded    = "дата записи выходит за горизонт бронирования"
	msgInvalidDate        = "некорректная дата записи"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "пользователь не аутентифицирован")
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(clientID, middleware.UserEmail(r.Context()))
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrSlotUnavailable):
			h.logger.Warn("POST /appointments - Slot unavailable: client_id=%d, counselor_id=%d", clientID, req.CounselorID)
			handlers.RespondConflict(w, msgSlotUnavailable)

		case errors.Is(err, createAppointment.ErrHorizonExceeded):
			h.logger.Warn("POST /appointments - Horizon exceeded: client_id=%d, counselor_id=%d", clientID, req.CounselorID)
			handlers.RespondBadRequest(w, msgHorizonExceeded)

		case errors.Is(err, createAppointment.ErrInvalidDate):
			h.logger.Warn("POST /appointments - Invalid date: client_id=%d, counselor_id=%d", clientID, req.CounselorID)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: client_id=%d, counselor_id=%d: %v", clientID, req.CounselorID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: client_id=%d, counselor_id=%d, error=%v",
				clientID, req.CounselorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%d, client_id=%d, counselor_id=%d",
		result.ID, clientID, req.CounselorID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
