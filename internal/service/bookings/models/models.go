package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-TurfService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID             int64  `json:"userId"`
	CancellationReason string `json:"cancellationReason"`
}

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// GetTurfBookingsRequest запрос на получение бронирований площадки
type GetTurfBookingsRequest struct {
	UserID          int64      `json:"userId"`
	TurfID          int64      `json:"turfId"`
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отмененные бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetTurfBookingsRequest) ToDomainFilter() (domain.TurfBookingsFilter, error) {
	filter := domain.TurfBookingsFilter{
		TurfID:          r.TurfID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// PaymentResponse платеж бронирования
type PaymentResponse struct {
	ID             int64     `json:"id"`
	Method         string    `json:"method"`
	TransactionRef string    `json:"transactionRef"`
	AmountPaid     float64   `json:"amountPaid"`
	Currency       string    `json:"currency"`
	Status         string    `json:"status"`
	PaidAt         time.Time `json:"paidAt"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID          int64   `json:"id"`
	TurfID      int64   `json:"turfId"`
	UserID      int64   `json:"userId"`
	BookingType string  `json:"bookingType"`
	BookingDate string  `json:"bookingDate"` // "2025-10-15"
	StartTime   *string `json:"startTime,omitempty"` // "10:00", отсутствует для full_day
	EndTime     *string `json:"endTime,omitempty"`

	DurationHours int `json:"durationHours"`

	BaseAmount  float64 `json:"baseAmount"`
	PlatformFee float64 `json:"platformFee"`
	TotalAmount float64 `json:"totalAmount"`

	Status string `json:"status"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	Payment *PaymentResponse `json:"payment,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:            b.ID,
		TurfID:        b.TurfID,
		UserID:        b.UserID,
		BookingType:   string(b.BookingType),
		BookingDate:   b.BookingDate.Format(domain.DateFormat),
		DurationHours: b.DurationHours,
		BaseAmount:    b.BaseAmount,
		PlatformFee:   b.PlatformFee,
		TotalAmount:   b.TotalAmount,
		Status:        string(b.Status),
		CreatedAt:     b.CreatedAt,
	}

	if b.StartTime != nil {
		s := b.StartTime.String()
		resp.StartTime = &s
	}
	if b.EndTime != nil {
		s := b.EndTime.String()
		resp.EndTime = &s
	}

	resp.CancellationReason = b.CancellationReason
	if b.CancelledAt != nil {
		s := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &s
	}

	return resp
}

// FromDomainPayment конвертирует платеж в DTO
func FromDomainPayment(p *domain.Payment) *PaymentResponse {
	if p == nil {
		return nil
	}

	return &PaymentResponse{
		ID:             p.ID,
		Method:         string(p.Method),
		TransactionRef: p.TransactionRef,
		AmountPaid:     p.AmountPaid,
		Currency:       p.Currency,
		Status:         string(p.Status),
		PaidAt:         p.PaidAt,
	}
}

// FromDomainBookingList конвертирует список бронирований в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain статус
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	switch domain.BookingStatus(s) {
	case domain.StatusPending, domain.StatusConfirmed, domain.StatusCancelled, domain.StatusCompleted:
		return domain.BookingStatus(s), nil
	default:
		return "", ErrInvalidStatus
	}
}
