package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mindigo/appointment-service/internal/domain"
	appointmentRepo "github.com/mindigo/appointment-service/internal/infra/storage/appointment"
	"github.com/mindigo/appointment-service/internal/integrations/mailservice"
	"github.com/mindigo/appointment-service/internal/service/appointments/models"
)

// Service сервис чтения записей и управления их жизненным циклом
type Service struct {
	appointmentRepo AppointmentRepository
	authClient      AuthServiceClient
	mailClient      MailServiceClient
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	authClient AuthServiceClient,
	mailClient MailServiceClient,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		authClient:      authClient,
		mailClient:      mailClient,
		logger:          logger,
	}
}

// GetByID получает запись по ID.
// Запись видна только её участникам - клиенту и консультанту.
func (s *Service) GetByID(ctx context.Context, id, userID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d", id, userID)

	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !appointment.IsParticipant(userID) {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	resp := models.FromDomainAppointment(appointment)
	resp.CounselorName = s.authClient.GetCounselorName(ctx, appointment.CounselorID)
	return resp, nil
}

// GetMyAppointments получает записи пользователя в его роли.
// Клиент видит свои записи, консультант - записи к себе.
// Опционально фильтрует по статусу.
func (s *Service) GetMyAppointments(ctx context.Context, req *models.GetMyAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetMyAppointments: user=%d, role=%s, status=%v", req.UserID, req.Role, req.Status)

	role := domain.Role(req.Role)
	if !role.IsValid() {
		s.logger.Warn("GetMyAppointments: invalid role=%s for user=%d", req.Role, req.UserID)
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, req.Role)
	}

	var statusFilter *domain.AppointmentStatus
	if req.Status != nil {
		status, err := models.ToDomainAppointmentStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetMyAppointments: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		statusFilter = &status
	}

	var appointments []*domain.Appointment
	var err error
	if role == domain.RoleCounselor {
		appointments, err = s.appointmentRepo.GetByCounselorID(ctx, req.UserID)
	} else {
		appointments, err = s.appointmentRepo.GetByClientID(ctx, req.UserID)
	}
	if err != nil {
		s.logger.Error("GetMyAppointments: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetMyAppointments - repository error: %v", ErrInternal, err)
	}

	if statusFilter != nil {
		filtered := appointments[:0]
		for _, a := range appointments {
			if a.Status == *statusFilter {
				filtered = append(filtered, a)
			}
		}
		appointments = filtered
	}

	s.logger.Info("GetMyAppointments: fetched %d appointments for user=%d", len(appointments), req.UserID)
	return models.FromDomainAppointmentList(appointments), nil
}

// UpdateStatus меняет статус записи по таблице переходов жизненного цикла.
// Допустимость перехода зависит от роли инициатора; для REJECTED
// обязательна причина. Уведомление участникам уходит best-effort.
func (s *Service) UpdateStatus(ctx context.Context, userID int64, role domain.Role, req *models.UpdateStatusRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("UpdateStatus: appointment=%d, user=%d, role=%s, target=%s", req.AppointmentID, userID, role, req.Status)

	if !role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}

	targetStatus, err := models.ToDomainAppointmentStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment=%d", req.Status, req.AppointmentID)
		return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, req.Status)
	}

	appointment, err := s.appointmentRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateStatus: appointment=%d not found", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	// Только стороны записи могут менять её статус,
	// причем клиент - только со стороны клиента, консультант - со своей
	if role == domain.RoleClient && appointment.ClientID != userID {
		s.logger.Warn("UpdateStatus: access denied for client=%d to appointment=%d", userID, req.AppointmentID)
		return nil, ErrAccessDenied
	}
	if role == domain.RoleCounselor && appointment.CounselorID != userID {
		s.logger.Warn("UpdateStatus: access denied for counselor=%d to appointment=%d", userID, req.AppointmentID)
		return nil, ErrAccessDenied
	}

	if !domain.CanTransition(appointment.Status, targetStatus, role) {
		s.logger.Warn("UpdateStatus: transition %s -> %s forbidden for role=%s, appointment=%d",
			appointment.Status, targetStatus, role, req.AppointmentID)
		return nil, fmt.Errorf("%w: %s -> %s is not allowed for %s",
			ErrInvalidTransition, appointment.Status, targetStatus, role)
	}

	if targetStatus == domain.StatusRejected && (req.RejectionReason == nil || *req.RejectionReason == "") {
		return nil, fmt.Errorf("%w: rejectionReason is required for REJECTED", ErrInvalidInput)
	}
	if req.RejectionReason != nil && len(*req.RejectionReason) > domain.MaxReasonLength {
		return nil, fmt.Errorf("%w: rejectionReason exceeds %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}
	if req.CounselorNotes != nil && len(*req.CounselorNotes) > domain.MaxNotesLength {
		return nil, fmt.Errorf("%w: counselorNotes exceeds %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, req.AppointmentID, targetStatus, req.CounselorNotes, req.RejectionReason); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	appointment.Status = targetStatus
	if req.CounselorNotes != nil {
		appointment.CounselorNotes = req.CounselorNotes
	}
	if req.RejectionReason != nil {
		appointment.RejectionReason = req.RejectionReason
	}

	s.notifyStatusChanged(ctx, appointment)

	s.logger.Info("UpdateStatus: appointment=%d transitioned to %s", req.AppointmentID, targetStatus)
	return models.FromDomainAppointment(appointment), nil
}

// notifyStatusChanged отправляет уведомление о смене статуса (fire-and-forget)
func (s *Service) notifyStatusChanged(ctx context.Context, appointment *domain.Appointment) {
	reason := ""
	if appointment.RejectionReason != nil {
		reason = *appointment.RejectionReason
	}

	s.mailClient.SendAsync(&mailservice.NotificationRequest{
		ClientEmail:     appointment.ClientEmail,
		CounselorEmail:  appointment.CounselorEmail,
		CounselorName:   s.authClient.GetCounselorName(ctx, appointment.CounselorID),
		Action:          mailservice.ActionStatusChanged,
		AppointmentID:   appointment.ID,
		StartTime:       appointment.StartTime.Format(time.RFC3339),
		EndTime:         appointment.EndTime.Format(time.RFC3339),
		DurationMinutes: int(appointment.EndTime.Sub(appointment.StartTime).Minutes()),
		Status:          string(appointment.Status),
		Reason:          reason,
	})
}
