package settings

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/mindigo/appointment-service/internal/domain"
	"github.com/mindigo/appointment-service/pkg/dbmetrics"
	"github.com/mindigo/appointment-service/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

var settingsColumns = []string{
	"id",
	"counselor_id",
	"counselor_email",
	"max_booking_days",
	"default_slot_duration_minutes",
	"auto_accept_appointments",
	"created_at",
	"updated_at",
}

// Repository репозиторий настроек бронирования консультантов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByCounselorID получает настройки консультанта
func (r *Repository) GetByCounselorID(ctx context.Context, counselorID int64) (*domain.CounselorPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(settingsColumns...).
		From("counselor_settings").
		Where(squirrel.Eq{"counselor_id": counselorID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByCounselorID - build select query: %v", ErrBuildQuery, err)
	}

	var policy domain.CounselorPolicy
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&policy.ID,
		&policy.CounselorID,
		&policy.CounselorEmail,
		&policy.MaxBookingDays,
		&policy.DefaultSlotDurationMinutes,
		&policy.AutoAcceptAppointments,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCounselorID - scan settings: %v", ErrScanRow, err)
	}

	policy.CreatedAt = createdAt.Time
	policy.UpdatedAt = updatedAt.Time

	return &policy, nil
}

// Upsert создает или обновляет настройки консультанта одним запросом
func (r *Repository) Upsert(ctx context.Context, policy *domain.CounselorPolicy) (*domain.CounselorPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("counselor_settings").
		Columns(
			"counselor_id",
			"counselor_email",
			"max_booking_days",
			"default_slot_duration_minutes",
			"auto_accept_appointments",
		).
		Values(
			policy.CounselorID,
			policy.CounselorEmail,
			policy.MaxBookingDays,
			policy.DefaultSlotDurationMinutes,
			policy.AutoAcceptAppointments,
		).
		Suffix(`ON CONFLICT (counselor_id) DO UPDATE SET
			counselor_email = EXCLUDED.counselor_email,
			max_booking_days = EXCLUDED.max_booking_days,
			default_slot_duration_minutes = EXCLUDED.default_slot_duration_minutes,
			auto_accept_appointments = EXCLUDED.auto_accept_appointments,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&policy.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	policy.CreatedAt = createdAt.Time
	policy.UpdatedAt = updatedAt.Time

	return policy, nil
}
