package addon

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/psqlbuilder"
)

const pqUniqueViolation = "23505"

var addonColumns = []string{
	"id",
	"name",
	"daily_price",
	"deleted",
}

// Repository репозиторий для работы с дополнительными услугами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория услуг
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую услугу
func (r *Repository) Create(ctx context.Context, addon *domain.Addon) (*domain.Addon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("addons").
		Columns("name", "daily_price", "deleted").
		Values(addon.Name, addon.DailyPrice, addon.Deleted).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&addon.ID); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return addon, nil
}

// GetByIDs получает услуги по списку ID
func (r *Repository) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Addon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if len(ids) == 0 {
		return []*domain.Addon{}, nil
	}

	query, args, err := psqlbuilder.Select(addonColumns...).
		From("addons").
		Where(squirrel.Eq{"id": ids}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAddons(rows)
}

// ListActive получает все не удаленные услуги
func (r *Repository) ListActive(ctx context.Context) ([]*domain.Addon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(addonColumns...).
		From("addons").
		Where(squirrel.Eq{"deleted": false}).
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAddons(rows)
}

// SoftDelete помечает услугу удаленной. Физическое удаление запрещено:
// исторические резервации ссылаются на цены услуг.
func (r *Repository) SoftDelete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("addons").
		Set("deleted", true).
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
		return ErrAddonNotFound
	}

	return nil
}

func scanAddons(rows *sql.Rows) ([]*domain.Addon, error) {
	addons := make([]*domain.Addon, 0)

	for rows.Next() {
		var addon domain.Addon
		if err := rows.Scan(&addon.ID, &addon.Name, &addon.DailyPrice, &addon.Deleted); err != nil {
			return nil, fmt.Errorf("%w: scanAddons - scan row: %v", ErrScanRow, err)
		}
		addons = append(addons, &addon)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAddons - rows error: %v", ErrScanRow, err)
	}

	return addons, nil
}
