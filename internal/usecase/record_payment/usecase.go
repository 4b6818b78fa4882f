package record_payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TurfService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TurfService/internal/infra/storage/booking"
	paymentRepo "github.com/m04kA/SMC-TurfService/internal/infra/storage/payment"
)

// UseCase use case записи платежа по существующему бронированию
// Идемпотентен по transaction_ref: повторная отправка того же платежа
// возвращает исходную запись без изменений
type UseCase struct {
	bookingRepo BookingRepository
	paymentRepo PaymentRepository
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	paymentRepo PaymentRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		paymentRepo: paymentRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute выполняет use case записи платежа
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RecordPayment: booking=%d, user=%d, ref=%s", req.BookingID, req.UserID, req.TransactionRef)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RecordPayment: validation failed: %v", err)
		return nil, err
	}

	var result *Response

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		result = nil

		// Идемпотентность: ref уже обрабатывался - возвращаем исходный платеж
		existing, err := uc.paymentRepo.GetByTransactionRef(txCtx, req.TransactionRef)
		if err != nil && !errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			uc.logger.Error("RecordPayment: failed to check transaction_ref: %v", err)
			return fmt.Errorf("%w: failed to check transaction ref: %v", ErrInternal, err)
		}
		if existing != nil {
			booking, err := uc.bookingRepo.GetByID(txCtx, existing.BookingID)
			if err != nil {
				uc.logger.Error("RecordPayment: failed to load booking for replayed payment id=%d: %v", existing.ID, err)
				return fmt.Errorf("%w: failed to load booking: %v", ErrInternal, err)
			}
			uc.logger.Info("RecordPayment: replay of transaction_ref=%s, payment id=%d", req.TransactionRef, existing.ID)
			result = toResponse(existing, booking.Status, true)
			return nil
		}

		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("RecordPayment: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("RecordPayment: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// Платить может только владелец бронирования
		if booking.UserID != req.UserID {
			uc.logger.Warn("RecordPayment: user id=%d is not the owner of booking id=%d", req.UserID, booking.ID)
			return ErrAccessDenied
		}

		// Платеж принимает только CONFIRMED бронирование: только оно держит
		// свои слоты, подтверждение статусом оплаты обошло бы проверку конфликтов
		if !booking.IsConfirmed() {
			uc.logger.Warn("RecordPayment: booking id=%d has status %s", booking.ID, booking.Status)
			return ErrBookingNotPayable
		}

		// Второй платеж с другим ref по уже оплаченному бронированию
		if _, err := uc.paymentRepo.GetByBookingID(txCtx, booking.ID); err == nil {
			uc.logger.Warn("RecordPayment: booking id=%d already has a payment", booking.ID)
			return ErrAlreadyPaid
		} else if !errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			uc.logger.Error("RecordPayment: failed to check existing payment: %v", err)
			return fmt.Errorf("%w: failed to check existing payment: %v", ErrInternal, err)
		}

		if req.AmountPaid != booking.TotalAmount {
			uc.logger.Warn("RecordPayment: amount %.2f does not match total %.2f for booking id=%d",
				req.AmountPaid, booking.TotalAmount, booking.ID)
			return fmt.Errorf("%w: expected %.2f, got %.2f", ErrAmountMismatch, booking.TotalAmount, req.AmountPaid)
		}

		payment := &domain.Payment{
			BookingID:      booking.ID,
			Method:         req.Method,
			TransactionRef: req.TransactionRef,
			AmountPaid:     req.AmountPaid,
			Currency:       domain.DefaultCurrency,
			Status:         domain.PaymentSuccess,
		}

		created, err := uc.paymentRepo.Create(txCtx, payment)
		if err != nil {
			if errors.Is(err, paymentRepo.ErrDuplicateTransactionRef) {
				// Гонка двух запросов с одним ref: после нарушения уникальности
				// транзакция откатывается, победителя перечитываем снаружи
				return errDuplicateRefRace
			}
			uc.logger.Error("RecordPayment: failed to create payment: %v", err)
			return fmt.Errorf("%w: failed to create payment: %v", ErrInternal, err)
		}

		result = toResponse(created, booking.Status, false)
		return nil
	})

	if err != nil {
		if errors.Is(err, errDuplicateRefRace) {
			winner, lookupErr := uc.paymentRepo.GetByTransactionRef(ctx, req.TransactionRef)
			if lookupErr != nil {
				uc.logger.Error("RecordPayment: failed to reload payment after duplicate race: %v", lookupErr)
				return nil, fmt.Errorf("%w: failed to reload payment: %v", ErrInternal, lookupErr)
			}
			booking, lookupErr := uc.bookingRepo.GetByID(ctx, winner.BookingID)
			if lookupErr != nil {
				uc.logger.Error("RecordPayment: failed to reload booking id=%d: %v", winner.BookingID, lookupErr)
				return nil, fmt.Errorf("%w: failed to reload booking: %v", ErrInternal, lookupErr)
			}
			uc.logger.Info("RecordPayment: replay of transaction_ref=%s after duplicate race", req.TransactionRef)
			return toResponse(winner, booking.Status, true), nil
		}
		return nil, err
	}

	if !result.AlreadyProcessed {
		uc.logger.Info("RecordPayment: successfully recorded payment id=%d for booking id=%d", result.ID, result.BookingID)
	}

	return result, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if !req.Method.Valid() {
		return fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, req.Method)
	}
	if req.TransactionRef == "" {
		return fmt.Errorf("%w: transactionRef is required", ErrInvalidInput)
	}
	if req.AmountPaid <= 0 {
		return fmt.Errorf("%w: amountPaid must be positive", ErrInvalidInput)
	}
	return nil
}
