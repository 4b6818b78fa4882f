package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/SMC-TurfService/internal/domain"
	"github.com/m04kA/SMC-TurfService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TurfService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-TurfService/pkg/types"
)

const bookingColumns = `id, turf_id, user_id, booking_type, booking_date, start_time, end_time,
duration_hours, base_amount, platform_fee, total_amount, status,
cancellation_reason, cancelled_at, created_at`

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция (через context.Value), использует её.
// Создание бронирования всегда должно идти внутри транзакции с проверкой
// доступности слотов, иначе возможен race condition.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"turf_id",
			"user_id",
			"booking_type",
			"booking_date",
			"start_time",
			"end_time",
			"duration_hours",
			"base_amount",
			"platform_fee",
			"total_amount",
			"status",
		).
		Values(
			booking.TurfID,
			booking.UserID,
			booking.BookingType,
			booking.BookingDate,
			booking.StartTime,
			booking.EndTime,
			booking.DurationHours,
			booking.BaseAmount,
			booking.PlatformFee,
			booking.TotalAmount,
			booking.Status,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)

	booking, err := scanBooking(row)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByUserID получает список бронирований пользователя
// Опционально фильтрует по статусу
func (r *Repository) GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns).
		From("bookings").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("booking_date DESC, start_time DESC NULLS LAST")

	// Фильтрация по статусу, если указан
	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetByTurfAndDate получает бронирования площадки на конкретную дату.
// confirmedOnly оставляет только CONFIRMED бронирования - именно они занимают слоты.
// Если вызов идёт внутри транзакции, добавляет FOR UPDATE: проверка конфликтов
// при создании бронирования должна блокировать конкурирующие транзакции.
func (r *Repository) GetByTurfAndDate(ctx context.Context, turfID int64, date time.Time, confirmedOnly bool) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns).
		From("bookings").
		Where(squirrel.Eq{"turf_id": turfID}).
		Where(squirrel.Eq{"booking_date": date}).
		OrderBy("start_time ASC NULLS FIRST")

	if confirmedOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": domain.StatusConfirmed})
	}

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

	return r.scanBookings(rows)
}

// GetByTurfWithFilter получает бронирования площадки с гибкой фильтрацией
// Поддерживает фильтрацию по периоду (StartDate, EndDate), статусу
// и включению неактивных бронирований (IncludeInactive)
func (r *Repository) GetByTurfWithFilter(ctx context.Context, filter domain.TurfBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns).
		From("bookings").
		Where(squirrel.Eq{"turf_id": filter.TurfID})

	// Фильтрация по периоду
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": *filter.EndDate})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		// Если не указан конкретный статус и не нужны неактивные - исключаем их
		inactiveStatusStrings := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactiveStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactiveStatusStrings})
	}

	// Для конкретной даты сортируем по времени начала, иначе сначала новые
	if filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate) {
		selectBuilder = selectBuilder.OrderBy("start_time ASC NULLS FIRST")
	} else {
		selectBuilder = selectBuilder.OrderBy("booking_date DESC, start_time DESC NULLS LAST")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTurfWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTurfWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// Cancel переводит бронирование в CANCELLED с указанием причины
// Сама запись сохраняется для истории (soft delete)
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanBooking сканирует одну строку бронирования
// start_time/end_time NULL для full-day бронирований, читаем через NullString
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var startTime, endTime sql.NullString
	var createdAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.TurfID,
		&booking.UserID,
		&booking.BookingType,
		&booking.BookingDate,
		&startTime,
		&endTime,
		&booking.DurationHours,
		&booking.BaseAmount,
		&booking.PlatformFee,
		&booking.TotalAmount,
		&booking.Status,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if startTime.Valid {
		ts := types.TruncateSeconds(startTime.String)
		booking.StartTime = &ts
	}
	if endTime.Valid {
		ts := types.TruncateSeconds(endTime.String)
		booking.EndTime = &ts
	}

	booking.CreatedAt = createdAt.Time

	return &booking, nil
}

// scanBookings сканирует список бронирований из результата запроса
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan booking: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
