package availability

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

var windowColumns = []string{
	"id",
	"counselor_id",
	"counselor_email",
	"day_of_week",
	"start_time",
	"end_time",
	"slot_duration_minutes",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий еженедельных окон доступности
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория окон доступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новое еженедельное окно
func (r *Repository) Create(ctx context.Context, window *domain.WeeklyWindow) (*domain.WeeklyWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("weekly_windows").
		Columns(
			"counselor_id",
			"counselor_email",
			"day_of_week",
			"start_time",
			"end_time",
			"slot_duration_minutes",
			"is_active",
		).
		Values(
			window.CounselorID,
			window.CounselorEmail,
			window.DayOfWeek,
			window.StartTime,
			window.EndTime,
			window.SlotDurationMinutes,
			true,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&window.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	window.IsActive = true
	window.CreatedAt = createdAt.Time
	window.UpdatedAt = updatedAt.Time

	return window, nil
}

// GetByIDAndCounselor получает окно по ID с проверкой владельца
func (r *Repository) GetByIDAndCounselor(ctx context.Context, id, counselorID int64) (*domain.WeeklyWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(windowColumns...).
		From("weekly_windows").
		Where(squirrel.Eq{"id": id, "counselor_id": counselorID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDAndCounselor - build select query: %v", ErrBuildQuery, err)
	}

	window, err := scanWindow(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrWindowNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDAndCounselor - scan window: %v", ErrScanRow, err)
	}

	return window, nil
}

// GetActiveByCounselor получает все активные окна консультанта
func (r *Repository) GetActiveByCounselor(ctx context.Context, counselorID int64) ([]*domain.WeeklyWindow, error) {
	return r.getActive(ctx, squirrel.Eq{"counselor_id": counselorID, "is_active": true})
}

// GetActiveByCounselorAndDay получает активные окна консультанта
// на конкретный день недели
func (r *Repository) GetActiveByCounselorAndDay(ctx context.Context, counselorID int64, day domain.DayOfWeek) ([]*domain.WeeklyWindow, error) {
	return r.getActive(ctx, squirrel.Eq{
		"counselor_id": counselorID,
		"day_of_week":  day,
		"is_active":    true,
	})
}

func (r *Repository) getActive(ctx context.Context, where squirrel.Eq) ([]*domain.WeeklyWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(windowColumns...).
		From("weekly_windows").
		Where(where).
		OrderBy("day_of_week ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	windows := make([]*domain.WeeklyWindow, 0)
	for rows.Next() {
		window, err := scanWindow(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: getActive - scan row: %v", ErrScanRow, err)
		}
		windows = append(windows, window)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getActive - rows error: %v", ErrScanRow, err)
	}

	return windows, nil
}

// Update обновляет окно доступности
func (r *Repository) Update(ctx context.Context, id int64, window *domain.WeeklyWindow) (*domain.WeeklyWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("weekly_windows").
		Set("day_of_week", window.DayOfWeek).
		Set("start_time", window.StartTime).
		Set("end_time", window.EndTime).
		Set("slot_duration_minutes", window.SlotDurationMinutes).
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
		return nil, ErrWindowNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	window.ID = id
	window.CreatedAt = createdAt.Time
	window.UpdatedAt = updatedAt.Time

	return window, nil
}

// Deactivate мягко удаляет окно (is_active=false), история сохраняется
func (r *Repository) Deactivate(ctx context.Context, id, counselorID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("weekly_windows").
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
		return ErrWindowNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanWindow(row rowScanner) (*domain.WeeklyWindow, error) {
	var window domain.WeeklyWindow
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&window.ID,
		&window.CounselorID,
		&window.CounselorEmail,
		&window.DayOfWeek,
		&window.StartTime,
		&window.EndTime,
		&window.SlotDurationMinutes,
		&window.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	window.CreatedAt = createdAt.Time
	window.UpdatedAt = updatedAt.Time

	return &window, nil
}
