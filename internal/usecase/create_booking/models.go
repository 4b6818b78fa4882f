package create_booking

import (
	"time"

	"github.com/m04kA/SMC-TurfService/internal/domain"
	"github.com/m04kA/SMC-TurfService/pkg/types"
)

// PaymentRequest данные платежа, присланные вместе с бронированием
type PaymentRequest struct {
	Method         domain.PaymentMethod // Способ оплаты (UPI, CARD, NET_BANKING, CASH)
	TransactionRef string               // Уникальный референс транзакции - ключ идемпотентности
	AmountPaid     float64              // Оплаченная сумма, должна совпадать с итогом
}

// Request модель запроса на создание бронирования
type Request struct {
	UserID      int64              // ID пользователя
	TurfID      int64              // ID площадки
	BookingType domain.BookingType // hourly или full_day
	Date        time.Time          // Дата бронирования (без времени)

	// Интервал для hourly бронирования, игнорируется для full_day
	StartTime *types.TimeString
	EndTime   *types.TimeString

	// Платеж (опционально): бронирование и платеж создаются атомарно
	Payment *PaymentRequest
}

// PaymentResponse записанный платеж
type PaymentResponse struct {
	ID             int64
	Method         string
	TransactionRef string
	AmountPaid     float64
	Currency       string
	Status         string
	PaidAt         time.Time
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID          int64
	TurfID      int64
	UserID      int64
	BookingType string
	BookingDate time.Time
	StartTime   *types.TimeString
	EndTime     *types.TimeString

	DurationHours int

	// Зафиксированная на момент создания раскладка стоимости
	BaseAmount  float64
	PlatformFee float64
	TotalAmount float64

	Status    string
	CreatedAt time.Time

	Payment *PaymentResponse

	// true, если запрос с этим transaction_ref уже был обработан ранее:
	// возвращается исходное бронирование, новых записей не создается
	AlreadyProcessed bool
}

func toResponse(booking *domain.Booking, payment *domain.Payment, alreadyProcessed bool) *Response {
	resp := &Response{
		ID:               booking.ID,
		TurfID:           booking.TurfID,
		UserID:           booking.UserID,
		BookingType:      string(booking.BookingType),
		BookingDate:      booking.BookingDate,
		StartTime:        booking.StartTime,
		EndTime:          booking.EndTime,
		DurationHours:    booking.DurationHours,
		BaseAmount:       booking.BaseAmount,
		PlatformFee:      booking.PlatformFee,
		TotalAmount:      booking.TotalAmount,
		Status:           string(booking.Status),
		CreatedAt:        booking.CreatedAt,
		AlreadyProcessed: alreadyProcessed,
	}

	if payment != nil {
		resp.Payment = &PaymentResponse{
			ID:             payment.ID,
			Method:         string(payment.Method),
			TransactionRef: payment.TransactionRef,
			AmountPaid:     payment.AmountPaid,
			Currency:       payment.Currency,
			Status:         string(payment.Status),
			PaidAt:         payment.PaidAt,
		}
	}

	return resp
}
