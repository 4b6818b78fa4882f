package slot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/SMC-TurfService/internal/domain"
	"github.com/m04kA/SMC-TurfService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TurfService/pkg/psqlbuilder"
)

const slotColumns = `id, turf_id, date, start_time, end_time, status, price, label,
booking_id, created_at, updated_at`

// Repository репозиторий для работы со слотами
// Строка слота - это переопределение интервала каноничной сетки:
// интервалы без строки считаются AVAILABLE по расчётной цене
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByTurfAndDate получает все слоты площадки на дату, упорядоченные по времени начала
// Внутри транзакции добавляет FOR UPDATE для блокировки конкурирующих бронирований
func (r *Repository) GetByTurfAndDate(ctx context.Context, turfID int64, date time.Time) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns).
		From("slots").
		Where(squirrel.Eq{"turf_id": turfID}).
		Where(squirrel.Eq{"date": date}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTurfAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTurfAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// BulkCreate создает набор слотов одним запросом
// Вызывается только внутри транзакции вместе с проверками пересечений
func (r *Repository) BulkCreate(ctx context.Context, slots []*domain.Slot) error {
	if len(slots) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("slots").
		Columns(
			"turf_id",
			"date",
			"start_time",
			"end_time",
			"status",
			"price",
			"label",
			"booking_id",
		)

	for _, s := range slots {
		insertBuilder = insertBuilder.Values(
			s.TurfID,
			s.Date,
			s.StartTime,
			s.EndTime,
			s.Status,
			s.Price,
			s.Label,
			s.BookingID,
		)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: BulkCreate - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: BulkCreate - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// DeleteNonBookedByTurfAndDate удаляет все слоты площадки на дату, кроме BOOKED
// Используется при полной замене ручной разметки дня владельцем
func (r *Repository) DeleteNonBookedByTurfAndDate(ctx context.Context, turfID int64, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slots").
		Where(squirrel.Eq{"turf_id": turfID}).
		Where(squirrel.Eq{"date": date}).
		Where(squirrel.NotEq{"status": domain.SlotBooked}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteNonBookedByTurfAndDate - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteNonBookedByTurfAndDate - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// Update применяет частичное обновление слота
func (r *Repository) Update(ctx context.Context, id int64, patch domain.SlotPatch) error {
	if patch.IsEmpty() {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("slots").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if patch.Status != nil {
		updateBuilder = updateBuilder.Set("status", *patch.Status)
	}
	if patch.Price != nil {
		updateBuilder = updateBuilder.Set("price", *patch.Price)
	}
	if patch.Label != nil {
		updateBuilder = updateBuilder.Set("label", *patch.Label)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// MarkBooked переводит слот в BOOKED и привязывает его к бронированию
func (r *Repository) MarkBooked(ctx context.Context, id int64, bookingID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("status", domain.SlotBooked).
		Set("booking_id", bookingID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkBooked - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkBooked - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkBooked - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// ReleaseByBookingID удаляет BOOKED слоты отменённого бронирования
// Интервалы возвращаются к виду "нет строки" - AVAILABLE по расчётной цене
func (r *Repository) ReleaseByBookingID(ctx context.Context, bookingID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slots").
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ReleaseByBookingID - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReleaseByBookingID - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// scanSlots сканирует список слотов из результата запроса
func (r *Repository) scanSlots(rows *sql.Rows) ([]*domain.Slot, error) {
	slots := make([]*domain.Slot, 0)

	for rows.Next() {
		var slot domain.Slot
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&slot.ID,
			&slot.TurfID,
			&slot.Date,
			&slot.StartTime,
			&slot.EndTime,
			&slot.Status,
			&slot.Price,
			&slot.Label,
			&slot.BookingID,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan slot: %v", ErrScanRow, err)
		}

		slot.CreatedAt = createdAt.Time
		slot.UpdatedAt = updatedAt.Time

		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}
