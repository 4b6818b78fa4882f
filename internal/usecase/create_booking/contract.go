package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TurfService/internal/domain"
	"github.com/m04kA/SMC-TurfService/internal/integrations/turfservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByTurfAndDate(ctx context.Context, turfID int64, date time.Time, confirmedOnly bool) ([]*domain.Booking, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByTurfAndDate(ctx context.Context, turfID int64, date time.Time) ([]*domain.Slot, error)
	BulkCreate(ctx context.Context, slots []*domain.Slot) error
	MarkBooked(ctx context.Context, id int64, bookingID int64) error
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error)
	GetByTransactionRef(ctx context.Context, transactionRef string) (*domain.Payment, error)
}

// MaintenanceRepository интерфейс репозитория окон обслуживания
type MaintenanceRepository interface {
	GetByTurfAndDate(ctx context.Context, turfID int64, date time.Time) ([]*domain.MaintenanceBlock, error)
}

// TurfServiceClient интерфейс клиента реестра площадок
type TurfServiceClient interface {
	GetTurf(ctx context.Context, turfID int64) (*turfservice.Turf, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
