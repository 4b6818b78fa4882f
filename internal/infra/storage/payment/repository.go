package payment

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/m04kA/SMC-TurfService/internal/domain"
	"github.com/m04kA/SMC-TurfService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TurfService/pkg/psqlbuilder"
)

// Код ошибки PostgreSQL: нарушение уникального ограничения
const pqUniqueViolation = "23505"

const paymentColumns = `id, booking_id, method, transaction_ref, amount_paid, currency, status, paid_at`

// Repository репозиторий для работы с платежами
// transaction_ref - глобально уникальный ключ идемпотентности:
// гонка двух запросов с одним ref разрешается уникальным индексом в БД
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория платежей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create записывает платеж
// Нарушение уникальности transaction_ref маппится в ErrDuplicateTransactionRef:
// вызывающая сторона перечитывает существующий платеж и возвращает его (replay)
func (r *Repository) Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("payments").
		Columns(
			"booking_id",
			"method",
			"transaction_ref",
			"amount_paid",
			"currency",
			"status",
		).
		Values(
			payment.BookingID,
			payment.Method,
			payment.TransactionRef,
			payment.AmountPaid,
			payment.Currency,
			payment.Status,
		).
		Suffix("RETURNING id, paid_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&payment.ID,
		&payment.PaidAt,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == pqUniqueViolation {
			return nil, fmt.Errorf("%w: transaction_ref=%s", ErrDuplicateTransactionRef, payment.TransactionRef)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return payment, nil
}

// GetByTransactionRef получает платеж по ключу идемпотентности
func (r *Repository) GetByTransactionRef(ctx context.Context, transactionRef string) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(paymentColumns).
		From("payments").
		Where(squirrel.Eq{"transaction_ref": transactionRef}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByTransactionRef - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanPayment(executor.QueryRowContext(ctx, query, args...), "GetByTransactionRef")
}

// GetByBookingID получает платеж бронирования (один к одному)
func (r *Repository) GetByBookingID(ctx context.Context, bookingID int64) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(paymentColumns).
		From("payments").
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanPayment(executor.QueryRowContext(ctx, query, args...), "GetByBookingID")
}

// scanPayment сканирует одну строку платежа
func (r *Repository) scanPayment(row *sql.Row, op string) (*domain.Payment, error) {
	var payment domain.Payment

	err := row.Scan(
		&payment.ID,
		&payment.BookingID,
		&payment.Method,
		&payment.TransactionRef,
		&payment.AmountPaid,
		&payment.Currency,
		&payment.Status,
		&payment.PaidAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan payment: %v", ErrScanRow, op, err)
	}

	return &payment, nil
}
