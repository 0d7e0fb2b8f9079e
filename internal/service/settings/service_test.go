package settings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindigo/appointment-service/internal/domain"
	settingsStorage "github.com/mindigo/appointment-service/internal/infra/storage/settings"
	"github.com/mindigo/appointment-service/internal/service/settings/models"
	"github.com/mindigo/appointment-service/pkg/ptr"
)

// --- Стаб репозитория ---

type stubSettingsRepo struct {
	stored map[int64]*domain.CounselorPolicy
	err    error
}

func newStubSettingsRepo() *stubSettingsRepo {
	return &stubSettingsRepo{stored: make(map[int64]*domain.CounselorPolicy)}
}

func (s *stubSettingsRepo) GetByCounselorID(_ context.Context, counselorID int64) (*domain.CounselorPolicy, error) {
	if s.err != nil {
		return nil, s.err
	}
	policy, ok := s.stored[counselorID]
	if !ok {
		return nil, settingsStorage.ErrSettingsNotFound
	}
	return policy, nil
}

func (s *stubSettingsRepo) Upsert(_ context.Context, policy *domain.CounselorPolicy) (*domain.CounselorPolicy, error) {
	if s.err != nil {
		return nil, s.err
	}
	saved := *policy
	if existing, ok := s.stored[policy.CounselorID]; ok {
		saved.ID = existing.ID
		saved.CreatedAt = existing.CreatedAt
	} else {
		saved.ID = int64(len(s.stored) + 1)
		saved.CreatedAt = time.Now()
	}
	saved.UpdatedAt = time.Now()
	s.stored[policy.CounselorID] = &saved
	return &saved, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- Тесты ---

func TestResolve_DefaultsWhenNoSettings(t *testing.T) {
	svc := NewService(newStubSettingsRepo(), nopLogger{})

	policy, err := svc.Resolve(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, int64(7), policy.CounselorID)
	assert.Equal(t, domain.DefaultMaxBookingDays, policy.MaxBookingDays)
	assert.Equal(t, domain.DefaultSlotDurationMinutes, policy.DefaultSlotDurationMinutes)
	assert.Equal(t, domain.DefaultAutoAcceptAppointments, policy.AutoAcceptAppointments)
}

func TestResolve_StoredSettings(t *testing.T) {
	repo := newStubSettingsRepo()
	repo.stored[7] = &domain.CounselorPolicy{
		ID:                         1,
		CounselorID:                7,
		MaxBookingDays:             21,
		DefaultSlotDurationMinutes: 30,
		AutoAcceptAppointments:     true,
	}
	svc := NewService(repo, nopLogger{})

	policy, err := svc.Resolve(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, 21, policy.MaxBookingDays)
	assert.Equal(t, 30, policy.DefaultSlotDurationMinutes)
	assert.True(t, policy.AutoAcceptAppointments)
}

func TestGetSettings_ReturnsDefaultsForNewCounselor(t *testing.T) {
	svc := NewService(newStubSettingsRepo(), nopLogger{})

	resp, err := svc.GetSettings(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, int64(7), resp.CounselorID)
	assert.Equal(t, domain.DefaultMaxBookingDays, resp.MaxBookingDays)
}

func TestUpdateSettings_PartialUpdateKeepsCurrentValues(t *testing.T) {
	repo := newStubSettingsRepo()
	svc := NewService(repo, nopLogger{})

	// Меняем только автоподтверждение - остальное остается дефолтным
	resp, err := svc.UpdateSettings(context.Background(), 7, "c@example.com", &models.UpdateSettingsRequest{
		AutoAcceptAppointments: ptr.Ptr(true),
	})
	require.NoError(t, err)

	assert.True(t, resp.AutoAcceptAppointments)
	assert.Equal(t, domain.DefaultMaxBookingDays, resp.MaxBookingDays)
	assert.Equal(t, domain.DefaultSlotDurationMinutes, resp.DefaultSlotDurationMinutes)

	// Второе обновление видит сохраненные значения
	resp, err = svc.UpdateSettings(context.Background(), 7, "c@example.com", &models.UpdateSettingsRequest{
		MaxBookingDays: ptr.Ptr(14),
	})
	require.NoError(t, err)
	assert.True(t, resp.AutoAcceptAppointments)
	assert.Equal(t, 14, resp.MaxBookingDays)
}

func TestUpdateSettings_StoresCounselorEmail(t *testing.T) {
	repo := newStubSettingsRepo()
	svc := NewService(repo, nopLogger{})

	_, err := svc.UpdateSettings(context.Background(), 7, "c@example.com", &models.UpdateSettingsRequest{
		MaxBookingDays: ptr.Ptr(14),
	})
	require.NoError(t, err)
	assert.Equal(t, "c@example.com", repo.stored[7].CounselorEmail)
}

func TestUpdateSettings_Bounds(t *testing.T) {
	tests := []struct {
		name string
		req  models.UpdateSettingsRequest
	}{
		{name: "maxBookingDays too small", req: models.UpdateSettingsRequest{MaxBookingDays: ptr.Ptr(0)}},
		{name: "maxBookingDays too large", req: models.UpdateSettingsRequest{MaxBookingDays: ptr.Ptr(domain.MaxMaxBookingDays + 1)}},
		{name: "slot duration too small", req: models.UpdateSettingsRequest{DefaultSlotDurationMinutes: ptr.Ptr(domain.MinSlotDurationMinutes - 1)}},
		{name: "slot duration too large", req: models.UpdateSettingsRequest{DefaultSlotDurationMinutes: ptr.Ptr(domain.MaxSlotDurationMinutes + 1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(newStubSettingsRepo(), nopLogger{})

			_, err := svc.UpdateSettings(context.Background(), 7, "c@example.com", &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUpdateSettings_BoundaryValuesAccepted(t *testing.T) {
	svc := NewService(newStubSettingsRepo(), nopLogger{})

	resp, err := svc.UpdateSettings(context.Background(), 7, "c@example.com", &models.UpdateSettingsRequest{
		MaxBookingDays:             ptr.Ptr(domain.MaxMaxBookingDays),
		DefaultSlotDurationMinutes: ptr.Ptr(domain.MinSlotDurationMinutes),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.MaxMaxBookingDays, resp.MaxBookingDays)
	assert.Equal(t, domain.MinSlotDurationMinutes, resp.DefaultSlotDurationMinutes)
}
