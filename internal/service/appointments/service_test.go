package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindigo/appointment-service/internal/domain"
	appointmentStorage "github.com/mindigo/appointment-service/internal/infra/storage/appointment"
	"github.com/mindigo/appointment-service/internal/integrations/mailservice"
	"github.com/mindigo/appointment-service/internal/service/appointments/models"
	"github.com/mindigo/appointment-service/pkg/ptr"
)

// --- Стабы зависимостей ---

type stubAppointmentRepo struct {
	appointments map[int64]*domain.Appointment
}

func newStubAppointmentRepo(appointments ...*domain.Appointment) *stubAppointmentRepo {
	repo := &stubAppointmentRepo{appointments: make(map[int64]*domain.Appointment)}
	for _, a := range appointments {
		repo.appointments[a.ID] = a
	}
	return repo
}

func (s *stubAppointmentRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	a, ok := s.appointments[id]
	if !ok {
		return nil, appointmentStorage.ErrAppointmentNotFound
	}
	copied := *a
	return &copied, nil
}

func (s *stubAppointmentRepo) GetByClientID(_ context.Context, clientID int64) ([]*domain.Appointment, error) {
	result := make([]*domain.Appointment, 0)
	for _, a := range s.appointments {
		if a.ClientID == clientID {
			result = append(result, a)
		}
	}
	return result, nil
}

func (s *stubAppointmentRepo) GetByCounselorID(_ context.Context, counselorID int64) ([]*domain.Appointment, error) {
	result := make([]*domain.Appointment, 0)
	for _, a := range s.appointments {
		if a.CounselorID == counselorID {
			result = append(result, a)
		}
	}
	return result, nil
}

func (s *stubAppointmentRepo) UpdateStatus(_ context.Context, id int64, status domain.AppointmentStatus, counselorNotes, rejectionReason *string) error {
	a, ok := s.appointments[id]
	if !ok {
		return appointmentStorage.ErrAppointmentNotFound
	}
	a.Status = status
	if counselorNotes != nil {
		a.CounselorNotes = counselorNotes
	}
	if rejectionReason != nil {
		a.RejectionReason = rejectionReason
	}
	return nil
}

type stubAuthClient struct {
	name string
}

func (s *stubAuthClient) GetCounselorName(_ context.Context, _ int64) string {
	return s.name
}

type stubMailClient struct {
	sent []*mailservice.NotificationRequest
}

func (s *stubMailClient) SendAsync(n *mailservice.NotificationRequest) {
	s.sent = append(s.sent, n)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- Фикстуры ---

const (
	clientID    = int64(3)
	counselorID = int64(7)
	strangerID  = int64(99)
)

func pendingAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:             1,
		ClientID:       clientID,
		CounselorID:    counselorID,
		ClientEmail:    "client@example.com",
		CounselorEmail: "counselor@example.com",
		StartTime:      time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC),
		EndTime:        time.Date(2026, 9, 7, 11, 0, 0, 0, time.UTC),
		Status:         domain.StatusPending,
	}
}

func newTestService(appointments ...*domain.Appointment) (*Service, *stubMailClient) {
	mail := &stubMailClient{}
	svc := NewService(
		newStubAppointmentRepo(appointments...),
		&stubAuthClient{name: "Анна Иванова"},
		mail,
		nopLogger{},
	)
	return svc, mail
}

// --- Тесты чтения ---

func TestGetByID_ParticipantSeesAppointment(t *testing.T) {
	svc, _ := newTestService(pendingAppointment())

	for _, userID := range []int64{clientID, counselorID} {
		resp, err := svc.GetByID(context.Background(), 1, userID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.ID)
		assert.Equal(t, "Анна Иванова", resp.CounselorName)
		assert.Equal(t, 60, resp.DurationMinutes)
	}
}

func TestGetByID_StrangerDenied(t *testing.T) {
	svc, _ := newTestService(pendingAppointment())

	_, err := svc.GetByID(context.Background(), 1, strangerID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.GetByID(context.Background(), 404, clientID)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestGetMyAppointments_RoleSelectsSide(t *testing.T) {
	first := pendingAppointment()
	second := pendingAppointment()
	second.ID = 2
	second.ClientID = strangerID

	svc, _ := newTestService(first, second)

	// Клиент видит только свои записи
	resp, err := svc.GetMyAppointments(context.Background(), &models.GetMyAppointmentsRequest{
		UserID: clientID,
		Role:   string(domain.RoleClient),
	})
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 1)

	// Консультант видит все записи к себе
	resp, err = svc.GetMyAppointments(context.Background(), &models.GetMyAppointmentsRequest{
		UserID: counselorID,
		Role:   string(domain.RoleCounselor),
	})
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 2)
}

func TestGetMyAppointments_StatusFilter(t *testing.T) {
	first := pendingAppointment()
	second := pendingAppointment()
	second.ID = 2
	second.Status = domain.StatusConfirmed

	svc, _ := newTestService(first, second)

	resp, err := svc.GetMyAppointments(context.Background(), &models.GetMyAppointmentsRequest{
		UserID: clientID,
		Role:   string(domain.RoleClient),
		Status: ptr.Ptr("CONFIRMED"),
	})
	require.NoError(t, err)
	require.Len(t, resp.Appointments, 1)
	assert.Equal(t, "CONFIRMED", resp.Appointments[0].Status)
}

func TestGetMyAppointments_InvalidRole(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.GetMyAppointments(context.Background(), &models.GetMyAppointmentsRequest{
		UserID: clientID,
		Role:   "ADMIN",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetMyAppointments_InvalidStatus(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.GetMyAppointments(context.Background(), &models.GetMyAppointmentsRequest{
		UserID: clientID,
		Role:   string(domain.RoleClient),
		Status: ptr.Ptr("SOMEDAY"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// --- Тесты смены статуса ---

func TestUpdateStatus_CounselorConfirmsPending(t *testing.T) {
	svc, mail := newTestService(pendingAppointment())

	resp, err := svc.UpdateStatus(context.Background(), counselorID, domain.RoleCounselor, &models.UpdateStatusRequest{
		AppointmentID: 1,
		Status:        "CONFIRMED",
	})
	require.NoError(t, err)
	assert.Equal(t, "CONFIRMED", resp.Status)

	// Уведомление о смене статуса отправлено
	require.Len(t, mail.sent, 1)
	assert.Equal(t, mailservice.ActionStatusChanged, mail.sent[0].Action)
	assert.Equal(t, "CONFIRMED", mail.sent[0].Status)
}

func TestUpdateStatus_RejectionRequiresReason(t *testing.T) {
	svc, _ := newTestService(pendingAppointment())

	_, err := svc.UpdateStatus(context.Background(), counselorID, domain.RoleCounselor, &models.UpdateStatusRequest{
		AppointmentID: 1,
		Status:        "REJECTED",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateStatus_RejectionWithReason(t *testing.T) {
	svc, mail := newTestService(pendingAppointment())

	resp, err := svc.UpdateStatus(context.Background(), counselorID, domain.RoleCounselor, &models.UpdateStatusRequest{
		AppointmentID:   1,
		Status:          "REJECTED",
		RejectionReason: ptr.Ptr("время занято"),
	})
	require.NoError(t, err)
	assert.Equal(t, "REJECTED", resp.Status)
	require.NotNil(t, resp.RejectionReason)
	assert.Equal(t, "время занято", *resp.RejectionReason)

	require.Len(t, mail.sent, 1)
	assert.Equal(t, "время занято", mail.sent[0].Reason)
}

func TestUpdateStatus_ClientCancelsOwnAppointment(t *testing.T) {
	svc, _ := newTestService(pendingAppointment())

	resp, err := svc.UpdateStatus(context.Background(), clientID, domain.RoleClient, &models.UpdateStatusRequest{
		AppointmentID: 1,
		Status:        "CANCELLED",
	})
	require.NoError(t, err)
	assert.Equal(t, "CANCELLED", resp.Status)
}

func TestUpdateStatus_ClientCannotConfirm(t *testing.T) {
	svc, _ := newTestService(pendingAppointment())

	_, err := svc.UpdateStatus(context.Background(), clientID, domain.RoleClient, &models.UpdateStatusRequest{
		AppointmentID: 1,
		Status:        "CONFIRMED",
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatus_ForeignCounselorDenied(t *testing.T) {
	svc, _ := newTestService(pendingAppointment())

	_, err := svc.UpdateStatus(context.Background(), strangerID, domain.RoleCounselor, &models.UpdateStatusRequest{
		AppointmentID: 1,
		Status:        "CONFIRMED",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdateStatus_ForeignClientDenied(t *testing.T) {
	svc, _ := newTestService(pendingAppointment())

	_, err := svc.UpdateStatus(context.Background(), strangerID, domain.RoleClient, &models.UpdateStatusRequest{
		AppointmentID: 1,
		Status:        "CANCELLED",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdateStatus_TerminalStatusImmutable(t *testing.T) {
	cancelled := pendingAppointment()
	cancelled.Status = domain.StatusCancelled

	svc, _ := newTestService(cancelled)

	_, err := svc.UpdateStatus(context.Background(), counselorID, domain.RoleCounselor, &models.UpdateStatusRequest{
		AppointmentID: 1,
		Status:        "CONFIRMED",
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatus_CompletedOnlyFromConfirmed(t *testing.T) {
	svc, _ := newTestService(pendingAppointment())

	_, err := svc.UpdateStatus(context.Background(), counselorID, domain.RoleCounselor, &models.UpdateStatusRequest{
		AppointmentID: 1,
		Status:        "COMPLETED",
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	confirmed := pendingAppointment()
	confirmed.ID = 2
	confirmed.Status = domain.StatusConfirmed
	svc, _ = newTestService(confirmed)

	resp, err := svc.UpdateStatus(context.Background(), counselorID, domain.RoleCounselor, &models.UpdateStatusRequest{
		AppointmentID:  2,
		Status:         "COMPLETED",
		CounselorNotes: ptr.Ptr("сессия прошла по плану"),
	})
	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", resp.Status)
	require.NotNil(t, resp.CounselorNotes)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.UpdateStatus(context.Background(), counselorID, domain.RoleCounselor, &models.UpdateStatusRequest{
		AppointmentID: 404,
		Status:        "CONFIRMED",
	})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	svc, _ := newTestService(pendingAppointment())

	_, err := svc.UpdateStatus(context.Background(), counselorID, domain.RoleCounselor, &models.UpdateStatusRequest{
		AppointmentID: 1,
		Status:        "ARCHIVED",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
