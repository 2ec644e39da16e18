package excursion

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/wildroute/ExcursionBookingService/internal/domain"
	"github.com/wildroute/ExcursionBookingService/pkg/dbmetrics"
	"github.com/wildroute/ExcursionBookingService/pkg/psqlbuilder"
)

var excursionColumns = []string{
	"id",
	"title",
	"capacity",
	"is_active",
	"guide_id",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с экскурсиями
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория экскурсий
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую экскурсию
func (r *Repository) Create(ctx context.Context, excursion *domain.Excursion) (*domain.Excursion, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("excursions").
		Columns("title", "capacity", "is_active", "guide_id").
		Values(excursion.Title, excursion.Capacity, excursion.IsActive, excursion.GuideID).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&excursion.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	excursion.CreatedAt = createdAt.Time
	excursion.UpdatedAt = updatedAt.Time

	return excursion, nil
}

// GetByID получает экскурсию по ID. Внутри транзакции блокирует строку
// FOR UPDATE — это точка сериализации допуска и продвижения по одной
// экскурсии: емкость перечитывается под блокировкой при каждом решении.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Excursion, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(excursionColumns...).
		From("excursions").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	excursion, err := scanExcursion(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrExcursionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan excursion: %v", ErrScanRow, err)
	}

	return excursion, nil
}

// ListActive возвращает активные экскурсии, свежие первыми
func (r *Repository) ListActive(ctx context.Context) ([]*domain.Excursion, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(excursionColumns...).
		From("excursions").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	excursions := make([]*domain.Excursion, 0)
	for rows.Next() {
		excursion, err := scanExcursion(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActive - scan row: %v", ErrScanRow, err)
		}
		excursions = append(excursions, excursion)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows error: %v", ErrScanRow, err)
	}

	return excursions, nil
}

// Update сохраняет изменяемые поля экскурсии
func (r *Repository) Update(ctx context.Context, excursion *domain.Excursion) (*domain.Excursion, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("excursions").
		Set("title", excursion.Title).
		Set("capacity", excursion.Capacity).
		Set("is_active", excursion.IsActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": excursion.ID}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrExcursionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	excursion.UpdatedAt = updatedAt.Time

	return excursion, nil
}

// SoftDelete деактивирует экскурсию (is_active = false).
// Существующие бронирования не трогаются, новые заявки отклоняются.
func (r *Repository) SoftDelete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("excursions").
		Set("is_active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SoftDelete - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SoftDelete - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SoftDelete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrExcursionNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanExcursion(row rowScanner) (*domain.Excursion, error) {
	var excursion domain.Excursion
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&excursion.ID,
		&excursion.Title,
		&excursion.Capacity,
		&excursion.IsActive,
		&excursion.GuideID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	excursion.CreatedAt = createdAt.Time
	excursion.UpdatedAt = updatedAt.Time

	return &excursion, nil
}
