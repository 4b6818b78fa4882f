package create_booking

import (
	"time"

	"github.com/m04kA/SMC-TurfService/internal/domain"
	createBooking "github.com/m04kA/SMC-TurfService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-TurfService/pkg/types"
)

// PaymentRequest платеж в теле запроса на бронирование
type PaymentRequest struct {
	Method         string  `json:"method"`         // UPI | CARD | NET_BANKING | CASH
	TransactionRef string  `json:"transactionRef"` // Ключ идемпотентности
	AmountPaid     float64 `json:"amountPaid"`
}

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	TurfID      int64           `json:"turfId"`
	BookingType string          `json:"bookingType"` // hourly | full_day
	BookingDate string          `json:"bookingDate"` // "2025-10-15"
	StartTime   *string         `json:"startTime,omitempty"` // "10:00", только для hourly
	EndTime     *string         `json:"endTime,omitempty"`
	Payment     *PaymentRequest `json:"payment,omitempty"`
}

// PaymentResponse платеж в HTTP ответе
type PaymentResponse struct {
	ID             int64   `json:"id"`
	Method         string  `json:"method"`
	TransactionRef string  `json:"transactionRef"`
	AmountPaid     float64 `json:"amountPaid"`
	Currency       string  `json:"currency"`
	Status         string  `json:"status"`
	PaidAt         string  `json:"paidAt"` // ISO 8601
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID          int64   `json:"id"`
	TurfID      int64   `json:"turfId"`
	UserID      int64   `json:"userId"`
	BookingType string  `json:"bookingType"`
	BookingDate string  `json:"bookingDate"`
	StartTime   *string `json:"startTime,omitempty"`
	EndTime     *string `json:"endTime,omitempty"`

	DurationHours int `json:"durationHours"`

	BaseAmount  float64 `json:"baseAmount"`
	PlatformFee float64 `json:"platformFee"`
	TotalAmount float64 `json:"totalAmount"`

	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`

	Payment *PaymentResponse `json:"payment,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	req := &createBooking.Request{
		UserID:      userID,
		TurfID:      r.TurfID,
		BookingType: domain.BookingType(r.BookingType),
		Date:        bookingDate,
	}

	if r.StartTime != nil {
		startTime, err := types.NewTimeStringFromString(*r.StartTime)
		if err != nil {
			return nil, err
		}
		req.StartTime = &startTime
	}
	if r.EndTime != nil {
		endTime, err := types.NewTimeStringFromString(*r.EndTime)
		if err != nil {
			return nil, err
		}
		req.EndTime = &endTime
	}

	if r.Payment != nil {
		req.Payment = &createBooking.PaymentRequest{
			Method:         domain.PaymentMethod(r.Payment.Method),
			TransactionRef: r.Payment.TransactionRef,
			AmountPaid:     r.Payment.AmountPaid,
		}
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	httpResp := &BookingResponse{
		ID:            resp.ID,
		TurfID:        resp.TurfID,
		UserID:        resp.UserID,
		BookingType:   resp.BookingType,
		BookingDate:   resp.BookingDate.Format(domain.DateFormat),
		DurationHours: resp.DurationHours,
		BaseAmount:    resp.BaseAmount,
		PlatformFee:   resp.PlatformFee,
		TotalAmount:   resp.TotalAmount,
		Status:        resp.Status,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
	}

	if resp.StartTime != nil {
		s := resp.StartTime.String()
		httpResp.StartTime = &s
	}
	if resp.EndTime != nil {
		s := resp.EndTime.String()
		httpResp.EndTime = &s
	}

	if resp.Payment != nil {
		httpResp.Payment = &PaymentResponse{
			ID:             resp.Payment.ID,
			Method:         resp.Payment.Method,
			TransactionRef: resp.Payment.TransactionRef,
			AmountPaid:     resp.Payment.AmountPaid,
			Currency:       resp.Payment.Currency,
			Status:         resp.Payment.Status,
			PaidAt:         resp.Payment.PaidAt.Format(time.RFC3339),
		}
	}

	return httpResp
}
