package bookings

import (
	"context"

	"github.com/m04kA/SMC-TurfService/internal/domain"
	"github.com/m04kA/SMC-TurfService/internal/integrations/turfservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetByTurfWithFilter(ctx context.Context, filter domain.TurfBookingsFilter) ([]*domain.Booking, error)
	Cancel(ctx context.Context, id int64, reason string) error
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	ReleaseByBookingID(ctx context.Context, bookingID int64) error
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	GetByBookingID(ctx context.Context, bookingID int64) (*domain.Payment, error)
}

// TurfServiceClient интерфейс клиента реестра площадок
type TurfServiceClient interface {
	GetTurf(ctx context.Context, turfID int64) (*turfservice.Turf, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
