package reservation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/psqlbuilder"
)

var reservationColumns = []string{
	"id",
	"customer_id",
	"model_id",
	"branch_id",
	"assigned_plate",
	"start_date",
	"end_date",
	"state",
	"base_total",
	"addons_total",
	"original_total",
	"created_at",
	"returned_at",
}

// Repository репозиторий для работы с резервациями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория резерваций
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую резервацию.
// Даты пишем строками YYYY-MM-DD, чтобы драйвер не сдвигал день
// при конвертации таймзон - граница дня считается в каноничной зоне UTC-3.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"customer_id",
			"model_id",
			"branch_id",
			"assigned_plate",
			"start_date",
			"end_date",
			"state",
			"base_total",
			"addons_total",
			"original_total",
		).
		Values(
			res.CustomerID,
			res.ModelID,
			res.BranchID,
			res.AssignedPlate,
			res.Period.Start.Format(domain.DateFormat),
			res.Period.End.Format(domain.DateFormat),
			res.State,
			res.BaseTotal,
			res.AddonsTotal,
			res.OriginalTotal,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&res.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	return res, nil
}

// GetByID получает резервацию по ID.
// Внутри транзакции строка блокируется FOR UPDATE - переходы состояний
// всегда читают и пишут под блокировкой строки.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	res, err := scanReservation(row)
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// GetByCustomerID получает список резерваций клиента, опционально по состоянию
func (r *Repository) GetByCustomerID(ctx context.Context, customerID int64, state *domain.ReservationState) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("start_date DESC, id DESC")

	if state != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"state": *state})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// GetByBranchWithFilter получает резервации филиала с гибкой фильтрацией
// по периоду, состоянию и включению неактивных резерваций
func (r *Repository) GetByBranchWithFilter(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"branch_id": filter.BranchID})

	// Фильтрация по периоду (включительное пересечение диапазонов)
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"end_date": filter.StartDate.Format(domain.DateFormat)})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"start_date": filter.EndDate.Format(domain.DateFormat)})
	}

	// Фильтрация по состоянию
	if filter.State != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"state": *filter.State})
	} else if !filter.IncludeInactive {
		blocking := make([]string, len(domain.BlockingStates))
		for i, s := range domain.BlockingStates {
			blocking[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"state": blocking})
	}

	selectBuilder = selectBuilder.OrderBy("start_date ASC, id ASC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBranchWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBranchWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// ListBlockingByBranch получает блокирующие резервации (pending/delivered),
// пересекающиеся с диапазоном дат, по всем моделям филиала.
// Внутри транзакции набор блокируется FOR UPDATE - это закрывает гонку
// между поиском доступности и подтверждением резервации.
func (r *Repository) ListBlockingByBranch(ctx context.Context, branchID int64, period domain.DateRange) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.blockingOverlapQuery(period).
		Where(squirrel.Eq{"branch_id": branchID})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockingByBranch - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockingByBranch - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// ListBlockingByPlate получает блокирующие резервации конкретной единицы,
// пересекающиеся с диапазоном дат. excludeID исключает саму резервацию,
// для которой выполняется назначение.
func (r *Repository) ListBlockingByPlate(ctx context.Context, plate string, period domain.DateRange, excludeID int64) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.blockingOverlapQuery(period).
		Where(squirrel.Eq{"assigned_plate": plate}).
		Where(squirrel.NotEq{"id": excludeID})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockingByPlate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockingByPlate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// CountByPlate считает резервации (в любом состоянии), у которых назначена
// указанная единица. Используется при выводе единицы из эксплуатации.
func (r *Repository) CountByPlate(ctx context.Context, plate string) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("reservations").
		Where(squirrel.Eq{"assigned_plate": plate}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountByPlate - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByPlate - scan count: %v", ErrScanRow, err)
	}
	return count, nil
}

// CountPendingByPlate считает pending резервации с назначенной единицей.
// Единица не может покинуть состояние enabled, пока такие есть.
func (r *Repository) CountPendingByPlate(ctx context.Context, plate string) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("reservations").
		Where(squirrel.Eq{"assigned_plate": plate}).
		Where(squirrel.Eq{"state": domain.StatePending}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountPendingByPlate - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountPendingByPlate - scan count: %v", ErrScanRow, err)
	}
	return count, nil
}

// UpdateDelivery условно переводит резервацию pending -> delivered,
// назначая единицу и новые суммы. Условие по прежнему состоянию защищает
// от двойной выдачи двумя операторами. Исходная сумма фиксируется здесь
// в последний раз: после выдачи original_total больше не меняется.
func (r *Repository) UpdateDelivery(ctx context.Context, id int64, plate string, baseTotal, addonsTotal decimal.Decimal) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("assigned_plate", plate).
		Set("base_total", baseTotal).
		Set("addons_total", addonsTotal).
		Set("original_total", baseTotal.Add(addonsTotal)).
		Set("state", domain.StateDelivered).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"state": domain.StatePending}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateDelivery - build update query: %v", ErrBuildQuery, err)
	}

	return r.execConditional(ctx, executor, "UpdateDelivery", query, args)
}

// UpdateCancellation условно переводит резервацию pending -> cancelled,
// перезаписывая текущие суммы пост-возвратными значениями
func (r *Repository) UpdateCancellation(ctx context.Context, id int64, baseTotal, addonsTotal decimal.Decimal) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("base_total", baseTotal).
		Set("addons_total", addonsTotal).
		Set("state", domain.StateCancelled).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"state": domain.StatePending}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateCancellation - build update query: %v", ErrBuildQuery, err)
	}

	return r.execConditional(ctx, executor, "UpdateCancellation", query, args)
}

// UpdateReturn условно переводит резервацию delivered -> returned
func (r *Repository) UpdateReturn(ctx context.Context, id int64, returnedAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("state", domain.StateReturned).
		Set("returned_at", returnedAt).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"state": domain.StateDelivered}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateReturn - build update query: %v", ErrBuildQuery, err)
	}

	return r.execConditional(ctx, executor, "UpdateReturn", query, args)
}

// ReplaceAddons заменяет набор дополнительных услуг резервации
func (r *Repository) ReplaceAddons(ctx context.Context, reservationID int64, addonIDs []int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	delQuery, delArgs, err := psqlbuilder.Delete("reservation_addons").
		Where(squirrel.Eq{"reservation_id": reservationID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceAddons - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, delQuery, delArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceAddons - execute delete: %v", ErrExecQuery, err)
	}

	if len(addonIDs) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("reservation_addons").
		Columns("reservation_id", "addon_id")
	for _, addonID := range addonIDs {
		insertBuilder = insertBuilder.Values(reservationID, addonID)
	}

	insQuery, insArgs, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceAddons - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insQuery, insArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceAddons - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetAddonIDs возвращает набор дополнительных услуг резервации
func (r *Repository) GetAddonIDs(ctx context.Context, reservationID int64) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("addon_id").
		From("reservation_addons").
		Where(squirrel.Eq{"reservation_id": reservationID}).
		OrderBy("addon_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAddonIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAddonIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: GetAddonIDs - scan addon_id: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAddonIDs - rows error: %v", ErrScanRow, err)
	}

	return ids, nil
}

// blockingOverlapQuery общее условие блокирующего пересечения:
// состояние pending/delivered и включительное пересечение [start, end]
func (r *Repository) blockingOverlapQuery(period domain.DateRange) squirrel.SelectBuilder {
	blocking := make([]string, len(domain.BlockingStates))
	for i, s := range domain.BlockingStates {
		blocking[i] = string(s)
	}

	return psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"state": blocking}).
		Where(squirrel.LtOrEq{"start_date": period.End.Format(domain.DateFormat)}).
		Where(squirrel.GtOrEq{"end_date": period.Start.Format(domain.DateFormat)})
}

func (r *Repository) execConditional(ctx context.Context, executor DBExecutor, method, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, method, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, method, err)
	}

	if rowsAffected == 0 {
		return ErrStateConflict
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var (
		res        domain.Reservation
		start, end time.Time
		createdAt  sql.NullTime
		returnedAt sql.NullTime
	)

	err := row.Scan(
		&res.ID,
		&res.CustomerID,
		&res.ModelID,
		&res.BranchID,
		&res.AssignedPlate,
		&start,
		&end,
		&res.State,
		&res.BaseTotal,
		&res.AddonsTotal,
		&res.OriginalTotal,
		&createdAt,
		&returnedAt,
	)
	if err != nil {
		return nil, err
	}

	// DATE колонки приходят полуночью в UTC; пересобираем день
	// в каноничной зоне, не конвертируя таймзону
	res.Period = domain.DateRange{
		Start: dateFromDB(start),
		End:   dateFromDB(end),
	}
	res.CreatedAt = createdAt.Time
	if returnedAt.Valid {
		t := returnedAt.Time
		res.ReturnedAt = &t
	}

	return &res, nil
}

func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}

func dateFromDB(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, domain.RentalLocation)
}
