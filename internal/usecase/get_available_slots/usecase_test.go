package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindigo/appointment-service/internal/domain"
	"github.com/mindigo/appointment-service/pkg/types"
)

// --- Стабы зависимостей ---

type stubAppointmentRepo struct {
	appointments []*domain.Appointment
	err          error
}

func (s *stubAppointmentRepo) GetWithFilter(_ context.Context, _ domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	return s.appointments, s.err
}

type stubWindowRepo struct {
	windows []*domain.WeeklyWindow
	err     error
}

func (s *stubWindowRepo) GetActiveByCounselorAndDay(_ context.Context, _ int64, day domain.DayOfWeek) ([]*domain.WeeklyWindow, error) {
	if s.err != nil {
		return nil, s.err
	}
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
	err        error
}

func (s *stubExceptionRepo) GetActiveByCounselor(_ context.Context, _ int64, date *time.Time) ([]*domain.DateException, error) {
	if s.err != nil {
		return nil, s.err
	}
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
	err    error
}

func (s *stubPolicies) Resolve(_ context.Context, counselorID int64) (domain.ResolvedPolicy, error) {
	if s.err != nil {
		return domain.ResolvedPolicy{}, s.err
	}
	if s.policy.CounselorID == 0 {
		return domain.DefaultPolicy(counselorID), nil
	}
	return s.policy, nil
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

// --- Хелперы ---

// 2026-09-07 - понедельник
var (
	testMonday = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	testNow    = time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
)

func newTestUseCase(
	appointments *stubAppointmentRepo,
	windows *stubWindowRepo,
	exceptions *stubExceptionRepo,
	now time.Time,
) *UseCase {
	uc := NewUseCase(appointments, windows, exceptions, &stubPolicies{}, nopLogger{})
	uc.timeProvider = &fixedTime{t: now}
	return uc
}

func mondayWindow(start, end string, duration int) *domain.WeeklyWindow {
	return &domain.WeeklyWindow{
		ID:                  1,
		CounselorID:         7,
		DayOfWeek:           domain.Monday,
		StartTime:           types.TimeString(start),
		EndTime:             types.TimeString(end),
		SlotDurationMinutes: duration,
		IsActive:            true,
	}
}

func slotStarts(slots []Slot) []string {
	starts := make([]string, 0, len(slots))
	for _, s := range slots {
		starts = append(starts, s.StartTime.Format("15:04"))
	}
	return starts
}

// --- Тесты ---

func TestExecute_GeneratesSlotsFromWeeklyWindow(t *testing.T) {
	uc := newTestUseCase(
		&stubAppointmentRepo{},
		&stubWindowRepo{windows: []*domain.WeeklyWindow{mondayWindow("09:00", "12:30", 60)}},
		&stubExceptionRepo{},
		testNow,
	)

	resp, err := uc.Execute(context.Background(), &Request{CounselorID: 7, Date: testMonday})
	require.NoError(t, err)

	// Неполный хвост 12:00-13:00 не влезает в окно и отбрасывается
	assert.Equal(t, []string{"09:00", "10:00", "11:00"}, slotStarts(resp.Slots))
	for _, s := range resp.Slots {
		assert.True(t, s.Available)
		assert.Equal(t, 60, s.DurationMinutes)
	}
}

func TestExecute_StartedWindowClippedToBufferAndRegridded(t *testing.T) {
	// Окно уже началось: начало обрезается вперед до now+30м,
	// сетка слотов перезапускается от обрезанного начала
	now := time.Date(2026, 9, 7, 9, 15, 0, 0, time.UTC)
	uc := newTestUseCase(
		&stubAppointmentRepo{},
		&stubWindowRepo{windows: []*domain.WeeklyWindow{mondayWindow("09:00", "12:00", 60)}},
		&stubExceptionRepo{},
		now,
	)

	resp, err := uc.Execute(context.Background(), &Request{CounselorID: 7, Date: testMonday})
	require.NoError(t, err)
	assert.Equal(t, []string{"09:45", "10:45"}, slotStarts(resp.Slots))
}

func TestExecute_NotYetStartedWindowTodayNotClipped(t *testing.T) {
	// Окно сегодняшнего дня, которое еще не началось, буфером не обрезается
	now := time.Date(2026, 9, 7, 7, 0, 0, 0, time.UTC)
	uc := newTestUseCase(
		&stubAppointmentRepo{},
		&stubWindowRepo{windows: []*domain.WeeklyWindow{mondayWindow("09:00", "12:00", 60)}},
		&stubExceptionRepo{},
		now,
	)

	resp, err := uc.Execute(context.Background(), &Request{CounselorID: 7, Date: testMonday})
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "10:00", "11:00"}, slotStarts(resp.Slots))
}

func TestExecute_FullyElapsedWindowYieldsNoSlots(t *testing.T) {
	// Обрезанное начало за границей окна - слотов нет
	now := time.Date(2026, 9, 7, 11, 45, 0, 0, time.UTC)
	uc := newTestUseCase(
		&stubAppointmentRepo{},
		&stubWindowRepo{windows: []*domain.WeeklyWindow{mondayWindow("09:00", "12:00", 60)}},
		&stubExceptionRepo{},
		now,
	)

	resp, err := uc.Execute(context.Background(), &Request{CounselorID: 7, Date: testMonday})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_BlockedExceptionRemovesSlots(t *testing.T) {
	// Блокировка 10:30-11:30 частично пересекает слоты 10:00 и 11:00 - оба исключаются
	blocked := &domain.DateException{
		ID:           5,
		CounselorID:  7,
		SpecificDate: testMonday,
		StartTime:    "10:30",
		EndTime:      "11:30",
		Kind:         domain.KindBlocked,
		IsActive:     true,
	}

	uc := newTestUseCase(
		&stubAppointmentRepo{},
		&stubWindowRepo{windows: []*domain.WeeklyWindow{mondayWindow("09:00", "13:00", 60)}},
		&stubExceptionRepo{exceptions: []*domain.DateException{blocked}},
		testNow,
	)

	resp, err := uc.Execute(context.Background(), &Request{CounselorID: 7, Date: testMonday})
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "12:00"}, slotStarts(resp.Slots))
}

func TestExecute_ExtraOpeningMergedAndSorted(t *testing.T) {
	extra := &domain.DateException{
		ID:                  6,
		CounselorID:         7,
		SpecificDate:        testMonday,
		StartTime:           "07:00",
		EndTime:             "08:00",
		Kind:                domain.KindExtraOpening,
		SlotDurationMinutes: 30,
		IsActive:            true,
	}

	uc := newTestUseCase(
		&stubAppointmentRepo{},
		&stubWindowRepo{windows: []*domain.WeeklyWindow{mondayWindow("09:00", "11:00", 60)}},
		&stubExceptionRepo{exceptions: []*domain.DateException{extra}},
		testNow,
	)

	resp, err := uc.Execute(context.Background(), &Request{CounselorID: 7, Date: testMonday})
	require.NoError(t, err)

	// Дополнительное открытие идет раньше еженедельного окна и в общем порядке
	assert.Equal(t, []string{"07:00", "07:30", "09:00", "10:00"}, slotStarts(resp.Slots))
	assert.Equal(t, 30, resp.Slots[0].DurationMinutes)
	assert.Equal(t, 60, resp.Slots[2].DurationMinutes)
}

func TestExecute_ActiveAppointmentsMarkSlotsBooked(t *testing.T) {
	appointments := []*domain.Appointment{
		{
			ID:          1,
			CounselorID: 7,
			StartTime:   time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC),
			EndTime:     time.Date(2026, 9, 7, 11, 0, 0, 0, time.UTC),
			Status:      domain.StatusConfirmed,
		},
		// Отмененная запись время не занимает
		{
			ID:          2,
			CounselorID: 7,
			StartTime:   time.Date(2026, 9, 7, 11, 0, 0, 0, time.UTC),
			EndTime:     time.Date(2026, 9, 7, 12, 0, 0, 0, time.UTC),
			Status:      domain.StatusCancelled,
		},
	}

	uc := newTestUseCase(
		&stubAppointmentRepo{appointments: appointments},
		&stubWindowRepo{windows: []*domain.WeeklyWindow{mondayWindow("09:00", "12:00", 60)}},
		&stubExceptionRepo{},
		testNow,
	)

	resp, err := uc.Execute(context.Background(), &Request{CounselorID: 7, Date: testMonday})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 3)

	assert.True(t, resp.Slots[0].Available)  // 09:00
	assert.False(t, resp.Slots[1].Available) // 10:00 занят
	assert.True(t, resp.Slots[2].Available)  // 11:00 - отмененная не считается
}

func TestExecute_PastDateReturnsEmpty(t *testing.T) {
	uc := newTestUseCase(
		&stubAppointmentRepo{},
		&stubWindowRepo{windows: []*domain.WeeklyWindow{mondayWindow("09:00", "12:00", 60)}},
		&stubExceptionRepo{},
		testNow,
	)

	resp, err := uc.Execute(context.Background(), &Request{
		CounselorID: 7,
		Date:        testNow.AddDate(0, 0, -1),
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_DateBeyondHorizonReturnsEmpty(t *testing.T) {
	uc := newTestUseCase(
		&stubAppointmentRepo{},
		&stubWindowRepo{windows: []*domain.WeeklyWindow{mondayWindow("09:00", "12:00", 60)}},
		&stubExceptionRepo{},
		testNow,
	)

	// Горизонт по умолчанию 10 дней
	resp, err := uc.Execute(context.Background(), &Request{
		CounselorID: 7,
		Date:        testNow.AddDate(0, 0, domain.DefaultMaxBookingDays+1),
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_NoWindowsReturnsEmpty(t *testing.T) {
	uc := newTestUseCase(
		&stubAppointmentRepo{},
		&stubWindowRepo{},
		&stubExceptionRepo{},
		testNow,
	)

	resp, err := uc.Execute(context.Background(), &Request{CounselorID: 7, Date: testMonday})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_InvalidCounselorID(t *testing.T) {
	uc := newTestUseCase(&stubAppointmentRepo{}, &stubWindowRepo{}, &stubExceptionRepo{}, testNow)

	_, err := uc.Execute(context.Background(), &Request{CounselorID: 0, Date: testMonday})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_ZeroDate(t *testing.T) {
	uc := newTestUseCase(&stubAppointmentRepo{}, &stubWindowRepo{}, &stubExceptionRepo{}, testNow)

	_, err := uc.Execute(context.Background(), &Request{CounselorID: 7})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestGenerateWindowSlots_ZeroDuration(t *testing.T) {
	start := time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 7, 12, 0, 0, 0, time.UTC)

	assert.Empty(t, generateWindowSlots(start, end, 0, testNow))
	assert.Empty(t, generateWindowSlots(end, start, 60, testNow))
}
