package record_payment

import (
	"time"

	"github.com/m04kA/SMC-TurfService/internal/domain"
)

// Request модель запроса на запись платежа по существующему бронированию
type Request struct {
	BookingID      int64
	UserID         int64                // Должен совпадать с владельцем бронирования
	Method         domain.PaymentMethod // Способ оплаты
	TransactionRef string               // Ключ идемпотентности
	AmountPaid     float64              // Должна совпадать с итогом бронирования
}

// Response модель ответа с записанным платежом
type Response struct {
	ID             int64
	BookingID      int64
	Method         string
	TransactionRef string
	AmountPaid     float64
	Currency       string
	Status         string
	PaidAt         time.Time

	BookingStatus string

	// true, если платеж с этим transaction_ref уже был записан ранее
	AlreadyProcessed bool
}

func toResponse(payment *domain.Payment, bookingStatus domain.BookingStatus, alreadyProcessed bool) *Response {
	return &Response{
		ID:               payment.ID,
		BookingID:        payment.BookingID,
		Method:           string(payment.Method),
		TransactionRef:   payment.TransactionRef,
		AmountPaid:       payment.AmountPaid,
		Currency:         payment.Currency,
		Status:           string(payment.Status),
		PaidAt:           payment.PaidAt,
		BookingStatus:    string(bookingStatus),
		AlreadyProcessed: alreadyProcessed,
	}
}
