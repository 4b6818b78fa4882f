package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TurfService/internal/domain"
	"github.com/m04kA/SMC-TurfService/internal/integrations/turfservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByTurfAndDate(ctx context.Context, turfID int64, date time.Time, confirmedOnly bool) ([]*domain.Booking, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByTurfAndDate(ctx context.Context, turfID int64, date time.Time) ([]*domain.Slot, error)
}

// MaintenanceRepository интерфейс репозитория окон обслуживания
type MaintenanceRepository interface {
	GetByTurfAndDate(ctx context.Context, turfID int64, date time.Time) ([]*domain.MaintenanceBlock, error)
}

// TurfServiceClient интерфейс клиента реестра площадок
type TurfServiceClient interface {
	GetTurf(ctx context.Context, turfID int64) (*turfservice.Turf, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
