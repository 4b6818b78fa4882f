package domain

import "time"

// PaymentStatus represents the outcome of a payment
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentSuccess PaymentStatus = "SUCCESS"
	PaymentFailed  PaymentStatus = "FAILED"
)

// PaymentMethod represents a supported payment method
type PaymentMethod string

const (
	MethodUPI        PaymentMethod = "UPI"
	MethodCard       PaymentMethod = "CARD"
	MethodNetBanking PaymentMethod = "NET_BANKING"
	MethodCash       PaymentMethod = "CASH"
)

// Valid returns true for a known payment method
func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodUPI, MethodCard, MethodNetBanking, MethodCash:
		return true
	}
	return false
}

// Payment represents a recorded payment transaction.
// One-to-one with Booking; TransactionRef is globally unique and is the
// sole idempotency key for retried submissions.
type Payment struct {
	ID             int64
	BookingID      int64
	Method         PaymentMethod
	TransactionRef string
	AmountPaid     float64
	Currency       string
	Status         PaymentStatus
	PaidAt         time.Time
}
