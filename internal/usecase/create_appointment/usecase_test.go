package create_appointment

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindigo/appointment-service/internal/domain"
	"github.com/mindigo/appointment-service/internal/integrations/authservice"
	"github.com/mindigo/appointment-service/internal/integrations/mailservice"
	"github.com/mindigo/appointment-service/pkg/ptr"
	"github.com/mindigo/appointment-service/pkg/types"
)

// --- Стабы зависимостей ---

type stubAppointmentRepo struct {
	existing []*domain.Appointment
	created  *domain.Appointment
}

func (s *stubAppointmentRepo) Create(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	saved := *a
	saved.ID = 42
	saved.CreatedAt = time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	saved.UpdatedAt = saved.CreatedAt
	s.created = &saved
	return &saved, nil
}

func (s *stubAppointmentRepo) GetWithFilter(_ context.Context, _ domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	return s.existing, nil
}

type stubWindowRepo struct {
	windows []*domain.WeeklyWindow
}

func (s *stubWindowRepo) GetActiveByCounselorAndDay(_ context.Context, _ int64, day domain.DayOfWeek) ([]*domain.WeeklyWindow, error) {
	result := make([]*domain.WeeklyWindow, 0)
	for _, w := range s.windows {
		if w.DayOfWeek == day {
			result = append(result, w)
		}
	}
	return result, nil
}

type stubExceptionRepo struct {
	exceptions []*domain.DateException
}

func (s *stubExceptionRepo) GetActiveByCounselor(_ context.Context, _ int64, date *time.Time) ([]*domain.DateException, error) {
	if date == nil {
		return s.exceptions, nil
	}
	result := make([]*domain.DateException, 0)
	for _, e := range s.exceptions {
		if domain.IsSameDay(e.SpecificDate, *date) {
			result = append(result, e)
		}
	}
	return result, nil
}

type stubPolicies struct {
	policy domain.ResolvedPolicy
}

func (s *stubPolicies) Resolve(_ context.Context, counselorID int64) (domain.ResolvedPolicy, error) {
	if s.policy.CounselorID == 0 {
		return domain.DefaultPolicy(counselorID), nil
	}
	return s.policy, nil
}

type stubAuthClient struct {
	profile    *authservice.Profile
	profileErr error
}

func (s *stubAuthClient) GetProfile(_ context.Context, _ int64) (*authservice.Profile, error) {
	return s.profile, s.profileErr
}

func (s *stubAuthClient) GetCounselorName(_ context.Context, _ int64) string {
	if s.profile == nil {
		return authservice.UnknownCounselorName
	}
	return s.profile.FullName()
}

type stubMailClient struct {
	sent []*mailservice.NotificationRequest
}

func (s *stubMailClient) SendAsync(n *mailservice.NotificationRequest) {
	s.sent = append(s.sent, n)
}

// stubTxManager выполняет функцию без настоящей транзакции
type stubTxManager struct {
	err error
}

func (s *stubTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.err != nil {
		return s.err
	}
	return fn(ctx)
}

type fixedTime struct {
	t time.Time
}

func (f *fixedTime) Now() time.Time {
	return f.t
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- Фикстуры ---

// 2026-09-07 - понедельник
var (
	testNow   = time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	testStart = time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)
)

type fixture struct {
	uc           *UseCase
	appointments *stubAppointmentRepo
	windows      *stubWindowRepo
	exceptions   *stubExceptionRepo
	policies     *stubPolicies
	auth         *stubAuthClient
	mail         *stubMailClient
	tx           *stubTxManager
}

func newFixture() *fixture {
	f := &fixture{
		appointments: &stubAppointmentRepo{},
		windows: &stubWindowRepo{windows: []*domain.WeeklyWindow{
			{
				ID:                  1,
				CounselorID:         7,
				DayOfWeek:           domain.Monday,
				StartTime:           types.TimeString("09:00"),
				EndTime:             types.TimeString("17:00"),
				SlotDurationMinutes: 60,
				IsActive:            true,
			},
		}},
		exceptions: &stubExceptionRepo{},
		policies:   &stubPolicies{},
		auth: &stubAuthClient{profile: &authservice.Profile{
			ID:        7,
			Email:     "counselor@example.com",
			FirstName: "Анна",
			LastName:  "Иванова",
		}},
		mail: &stubMailClient{},
		tx:   &stubTxManager{},
	}

	f.uc = NewUseCase(f.appointments, f.windows, f.exceptions, f.policies, f.auth, f.mail, f.tx, nopLogger{})
	f.uc.timeProvider = &fixedTime{t: testNow}
	return f
}

func validRequest() *Request {
	return &Request{
		ClientID:    3,
		ClientEmail: "client@example.com",
		CounselorID: 7,
		StartTime:   testStart,
	}
}

// --- Тесты ---

func TestExecute_Success(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, int64(3), resp.ClientID)
	assert.Equal(t, int64(7), resp.CounselorID)
	assert.Equal(t, testStart, resp.StartTime)
	// Конец = начало + длительность из политики консультанта
	assert.Equal(t, testStart.Add(time.Hour), resp.EndTime)
	assert.Equal(t, domain.DefaultSlotDurationMinutes, resp.DurationMinutes)
	assert.Equal(t, string(domain.StatusPending), resp.Status)

	// Email консультанта денормализован из профиля
	assert.Equal(t, "counselor@example.com", f.appointments.created.CounselorEmail)

	// Уведомление участникам отправлено
	require.Len(t, f.mail.sent, 1)
	assert.Equal(t, mailservice.ActionCreated, f.mail.sent[0].Action)
	assert.Equal(t, int64(42), f.mail.sent[0].AppointmentID)
}

func TestExecute_AutoAcceptConfirmsImmediately(t *testing.T) {
	f := newFixture()
	f.policies.policy = domain.ResolvedPolicy{
		CounselorID:                7,
		MaxBookingDays:             10,
		DefaultSlotDurationMinutes: 60,
		AutoAcceptAppointments:     true,
	}

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
}

func TestExecute_PolicyDurationDefinesEnd(t *testing.T) {
	f := newFixture()
	f.policies.policy = domain.ResolvedPolicy{
		CounselorID:                7,
		MaxBookingDays:             10,
		DefaultSlotDurationMinutes: 90,
	}

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, testStart.Add(90*time.Minute), resp.EndTime)
	assert.Equal(t, 90, resp.DurationMinutes)
}

func TestExecute_PastStartRejected(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.StartTime = testNow.Add(-time.Hour)

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestExecute_BeyondHorizonRejected(t *testing.T) {
	f := newFixture()

	req := validRequest()
	// Горизонт по умолчанию 10 дней от сегодня
	req.StartTime = testNow.AddDate(0, 0, domain.DefaultMaxBookingDays+1)

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrHorizonExceeded)
}

func TestExecute_OutsideScheduleRejected(t *testing.T) {
	f := newFixture()

	req := validRequest()
	// Вторник - окон нет
	req.StartTime = testStart.AddDate(0, 0, 1)

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Nil(t, f.appointments.created)
}

func TestExecute_IntervalCrossingWindowEndRejected(t *testing.T) {
	f := newFixture()

	req := validRequest()
	// 16:30 + 60 минут выходит за границу окна 17:00
	req.StartTime = time.Date(2026, 9, 7, 16, 30, 0, 0, time.UTC)

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestExecute_ExtraOpeningAllowsBooking(t *testing.T) {
	f := newFixture()
	f.windows.windows = nil
	f.exceptions.exceptions = []*domain.DateException{
		{
			ID:           5,
			CounselorID:  7,
			SpecificDate: domain.DateOnly(testStart),
			StartTime:    types.TimeString("10:00"),
			EndTime:      types.TimeString("12:00"),
			Kind:         domain.KindExtraOpening,
			IsActive:     true,
		},
	}

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
}

func TestExecute_BlockedRangeRejected(t *testing.T) {
	f := newFixture()
	f.exceptions.exceptions = []*domain.DateException{
		{
			ID:           5,
			CounselorID:  7,
			SpecificDate: domain.DateOnly(testStart),
			StartTime:    types.TimeString("10:30"),
			EndTime:      types.TimeString("11:30"),
			Kind:         domain.KindBlocked,
			IsActive:     true,
		},
	}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestExecute_ActiveAppointmentConflictRejected(t *testing.T) {
	f := newFixture()
	f.appointments.existing = []*domain.Appointment{
		{
			ID:          9,
			CounselorID: 7,
			StartTime:   testStart.Add(30 * time.Minute),
			EndTime:     testStart.Add(90 * time.Minute),
			Status:      domain.StatusPending,
		},
	}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestExecute_CancelledAppointmentDoesNotConflict(t *testing.T) {
	f := newFixture()
	f.appointments.existing = []*domain.Appointment{
		{
			ID:          9,
			CounselorID: 7,
			StartTime:   testStart,
			EndTime:     testStart.Add(time.Hour),
			Status:      domain.StatusCancelled,
		},
	}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestExecute_AdjacentAppointmentDoesNotConflict(t *testing.T) {
	f := newFixture()
	f.appointments.existing = []*domain.Appointment{
		{
			ID:          9,
			CounselorID: 7,
			StartTime:   testStart.Add(-time.Hour),
			EndTime:     testStart,
			Status:      domain.StatusConfirmed,
		},
	}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestExecute_SerializationFailureMapsToSlotUnavailable(t *testing.T) {
	f := newFixture()
	f.tx.err = fmt.Errorf("transaction failed: %w", &pq.Error{Code: "40001"})

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestExecute_AuthServiceFailureDoesNotBlockBooking(t *testing.T) {
	f := newFixture()
	f.auth.profile = nil
	f.auth.profileErr = authservice.ErrInternal

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Empty(t, f.appointments.created.CounselorEmail)
	assert.Equal(t, authservice.UnknownCounselorName, resp.CounselorName)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{name: "zero clientID", mutate: func(r *Request) { r.ClientID = 0 }},
		{name: "zero counselorID", mutate: func(r *Request) { r.CounselorID = 0 }},
		{name: "self booking", mutate: func(r *Request) { r.CounselorID = r.ClientID }},
		{name: "zero start time", mutate: func(r *Request) { r.StartTime = time.Time{} }},
		{name: "notes too long", mutate: func(r *Request) {
			long := make([]byte, domain.MaxNotesLength+1)
			for i := range long {
				long[i] = 'a'
			}
			r.ClientNotes = ptr.Ptr(string(long))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := validRequest()
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
