package exception

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/mindigo/appointment-service/internal/domain"
	"github.com/mindigo/appointment-service/pkg/dbmetrics"
	"github.com/mindigo/appointment-service/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

var exceptionColumns = []string{
	"id",
	"counselor_id",
	"counselor_email",
	"specific_date",
	"start_time",
	"end_time",
	"kind",
	"slot_duration_minutes",
	"reason",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий исключений из расписания на конкретные даты
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория исключений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новое исключение
func (r *Repository) Create(ctx context.Context, exc *domain.DateException) (*domain.DateException, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("date_exceptions").
		Columns(
			"counselor_id",
			"counselor_email",
			"specific_date",
			"start_time",
			"end_time",
			"kind",
			"slot_duration_minutes",
			"reason",
			"is_active",
		).
		Values(
			exc.CounselorID,
			exc.CounselorEmail,
			exc.SpecificDate,
			exc.StartTime,
			exc.EndTime,
			exc.Kind,
			exc.SlotDurationMinutes,
			exc.Reason,
			true,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&exc.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	exc.IsActive = true
	exc.CreatedAt = createdAt.Time
	exc.UpdatedAt = updatedAt.Time

	return exc, nil
}

// GetByIDAndCounselor получает исключение по ID с проверкой владельца
func (r *Repository) GetByIDAndCounselor(ctx context.Context, id, counselorID int64) (*domain.DateException, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(exceptionColumns...).
		From("date_exceptions").
		Where(squirrel.Eq{"id": id, "counselor_id": counselorID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDAndCounselor - build select query: %v", ErrBuildQuery, err)
	}

	exc, err := scanException(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrExceptionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDAndCounselor - scan exception: %v", ErrScanRow, err)
	}

	return exc, nil
}

// GetActiveByCounselor получает активные исключения консультанта.
// Если date задана, выборка ограничивается одной календарной датой.
func (r *Repository) GetActiveByCounselor(ctx context.Context, counselorID int64, date *time.Time) ([]*domain.DateException, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(exceptionColumns...).
		From("date_exceptions").
		Where(squirrel.Eq{"counselor_id": counselorID, "is_active": true})

	if date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"specific_date": domain.DateOnly(*date)})
	}

	query, args, err := selectBuilder.
		OrderBy("specific_date ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByCounselor - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByCounselor - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	exceptions := make([]*domain.DateException, 0)
	for rows.Next() {
		exc, err := scanException(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetActiveByCounselor - scan row: %v", ErrScanRow, err)
		}
		exceptions = append(exceptions, exc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetActiveByCounselor - rows error: %v", ErrScanRow, err)
	}

	return exceptions, nil
}

// Update обновляет исключение
func (r *Repository) Update(ctx context.Context, id int64, exc *domain.DateException) (*domain.DateException, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("date_exceptions").
		Set("specific_date", exc.SpecificDate).
		Set("start_time", exc.StartTime).
		Set("end_time", exc.EndTime).
		Set("kind", exc.Kind).
		Set("slot_duration_minutes", exc.SlotDurationMinutes).
		Set("reason", exc.Reason).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrExceptionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	exc.ID = id
	exc.CreatedAt = createdAt.Time
	exc.UpdatedAt = updatedAt.Time

	return exc, nil
}

// Deactivate мягко удаляет исключение (is_active=false)
func (r *Repository) Deactivate(ctx context.Context, id, counselorID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("date_exceptions").
		Set("is_active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "counselor_id": counselorID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Deactivate - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Deactivate - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Deactivate - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrExceptionNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanException(row rowScanner) (*domain.DateException, error) {
	var exc domain.DateException
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&exc.ID,
		&exc.CounselorID,
		&exc.CounselorEmail,
		&exc.SpecificDate,
		&exc.StartTime,
		&exc.EndTime,
		&exc.Kind,
		&exc.SlotDurationMinutes,
		&exc.Reason,
		&exc.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	exc.CreatedAt = createdAt.Time
	exc.UpdatedAt = updatedAt.Time

	return &exc, nil
}
