package vehiclemodel

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/psqlbuilder"
)

const pqUniqueViolation = "23505"

var modelColumns = []string{
	"id",
	"brand",
	"model",
	"category_id",
	"daily_price",
	"policy_kind",
	"refund_percent",
	"passenger_capacity",
}

// Repository репозиторий для работы с моделями автомобилей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория моделей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую модель. Политика отмены хранится развернуто
// (policy_kind + nullable refund_percent), собирается обратно в tagged
// variant при чтении.
func (r *Repository) Create(ctx context.Context, model *domain.VehicleModel) (*domain.VehicleModel, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var refundPercent *decimal.Decimal
	if p, ok := model.Policy.RefundPercent(); ok {
		refundPercent = &p
	}

	query, args, err := psqlbuilder.Insert("vehicle_models").
		Columns(
			"brand",
			"model",
			"category_id",
			"daily_price",
			"policy_kind",
			"refund_percent",
			"passenger_capacity",
		).
		Values(
			model.Brand,
			model.Model,
			model.CategoryID,
			model.DailyPrice,
			model.Policy.Kind(),
			refundPercent,
			model.PassengerCapacity,
		).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&model.ID); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return nil, ErrDuplicateModel
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return model, nil
}

// GetByID получает модель по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.VehicleModel, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(modelColumns...).
		From("vehicle_models").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	model, err := scanModel(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrModelNotFound
	}
	if err != nil {
		return nil, err
	}

	return model, nil
}

// GetByIDs получает модели по списку ID
func (r *Repository) GetByIDs(ctx context.Context, ids []int64) (map[int64]*domain.VehicleModel, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if len(ids) == 0 {
		return map[int64]*domain.VehicleModel{}, nil
	}

	query, args, err := psqlbuilder.Select(modelColumns...).
		From("vehicle_models").
		Where(squirrel.Eq{"id": ids}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	models := make(map[int64]*domain.VehicleModel)
	for rows.Next() {
		model, err := scanModel(rows)
		if err != nil {
			return nil, err
		}
		models[model.ID] = model
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - rows error: %v", ErrScanRow, err)
	}

	return models, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanModel(row rowScanner) (*domain.VehicleModel, error) {
	var (
		model         domain.VehicleModel
		policyKind    string
		refundPercent *decimal.Decimal
	)

	err := row.Scan(
		&model.ID,
		&model.Brand,
		&model.Model,
		&model.CategoryID,
		&model.DailyPrice,
		&policyKind,
		&refundPercent,
		&model.PassengerCapacity,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanModel - scan model: %v", ErrScanRow, err)
	}

	// Ядро не работает с моделью без корректной политики отмены
	policy, err := domain.NewCancellationPolicy(domain.PolicyKind(policyKind), refundPercent)
	if err != nil {
		return nil, fmt.Errorf("%w: model id=%d: %v", ErrInvalidPolicyRow, model.ID, err)
	}
	model.Policy = policy

	return &model, nil
}
