package unit

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

var unitColumns = []string{
	"plate",
	"model_id",
	"branch_id",
	"year",
	"state",
}

// Repository репозиторий для работы с единицами автопарка
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория единиц
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую единицу
func (r *Repository) Create(ctx context.Context, unit *domain.VehicleUnit) (*domain.VehicleUnit, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("vehicle_units").
		Columns(unitColumns...).
		Values(unit.Plate, unit.ModelID, unit.BranchID, unit.Year, unit.State).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return nil, ErrDuplicatePlate
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return unit, nil
}

// GetByPlate получает единицу по госномеру.
// Внутри транзакции строка блокируется FOR UPDATE - назначение единицы
// резервации конкурирует с изменением её состояния.
func (r *Repository) GetByPlate(ctx context.Context, plate string) (*domain.VehicleUnit, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(unitColumns...).
		From("vehicle_units").
		Where(squirrel.Eq{"plate": plate})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPlate - build select query: %v", ErrBuildQuery, err)
	}

	var unit domain.VehicleUnit
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&unit.Plate,
		&unit.ModelID,
		&unit.BranchID,
		&unit.Year,
		&unit.State,
	)
	if err == sql.ErrNoRows {
		return nil, ErrUnitNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPlate - scan unit: %v", ErrScanRow, err)
	}

	return &unit, nil
}

// ListEnabledByBranch получает включенные единицы филиала.
// Только они участвуют в поиске доступности.
func (r *Repository) ListEnabledByBranch(ctx context.Context, branchID int64) ([]*domain.VehicleUnit, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(unitColumns...).
		From("vehicle_units").
		Where(squirrel.Eq{"branch_id": branchID}).
		Where(squirrel.Eq{"state": domain.UnitEnabled}).
		OrderBy("plate ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListEnabledByBranch - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListEnabledByBranch - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	units := make([]*domain.VehicleUnit, 0)
	for rows.Next() {
		var unit domain.VehicleUnit
		err := rows.Scan(&unit.Plate, &unit.ModelID, &unit.BranchID, &unit.Year, &unit.State)
		if err != nil {
			return nil, fmt.Errorf("%w: ListEnabledByBranch - scan row: %v", ErrScanRow, err)
		}
		units = append(units, &unit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListEnabledByBranch - rows error: %v", ErrScanRow, err)
	}

	return units, nil
}

// UpdateState обновляет состояние единицы
func (r *Repository) UpdateState(ctx context.Context, plate string, state domain.UnitState) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("vehicle_units").
		Set("state", state).
		Where(squirrel.Eq{"plate": plate}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateState - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateState - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateState - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrUnitNotFound
	}

	return nil
}
