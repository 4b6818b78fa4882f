package record_payment

import (
	"time"

	"github.com/m04kA/SMC-TurfService/internal/domain"
	recordPayment "github.com/m04kA/SMC-TurfService/internal/usecase/record_payment"
)

// RecordPaymentRequest HTTP request model
type RecordPaymentRequest struct {
	Method         string  `json:"method"`         // UPI | CARD | NET_BANKING | CASH
	TransactionRef string  `json:"transactionRef"` // Ключ идемпотентности
	AmountPaid     float64 `json:"amountPaid"`
}

// PaymentResponse HTTP response model
type PaymentResponse struct {
	ID             int64   `json:"id"`
	BookingID      int64   `json:"bookingId"`
	Method         string  `json:"method"`
	TransactionRef string  `json:"transactionRef"`
	AmountPaid     float64 `json:"amountPaid"`
	Currency       string  `json:"currency"`
	Status         string  `json:"status"`
	PaidAt         string  `json:"paidAt"` // ISO 8601
	BookingStatus  string  `json:"bookingStatus"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RecordPaymentRequest) ToUseCaseRequest(bookingID, userID int64) *recordPayment.Request {
	return &recordPayment.Request{
		BookingID:      bookingID,
		UserID:         userID,
		Method:         domain.PaymentMethod(r.Method),
		TransactionRef: r.TransactionRef,
		AmountPaid:     r.AmountPaid,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *recordPayment.Response) *PaymentResponse {
	return &PaymentResponse{
		ID:             resp.ID,
		BookingID:      resp.BookingID,
		Method:         resp.Method,
		TransactionRef: resp.TransactionRef,
		AmountPaid:     resp.AmountPaid,
		Currency:       resp.Currency,
		Status:         resp.Status,
		PaidAt:         resp.PaidAt.Format(time.RFC3339),
		BookingStatus:  resp.BookingStatus,
	}
}
