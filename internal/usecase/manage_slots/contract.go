package manage_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TurfService/internal/domain"
	"github.com/m04kA/SMC-TurfService/internal/integrations/turfservice"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByTurfAndDate(ctx context.Context, turfID int64, date time.Time) ([]*domain.Slot, error)
	BulkCreate(ctx context.Context, slots []*domain.Slot) error
	DeleteNonBookedByTurfAndDate(ctx context.Context, turfID int64, date time.Time) error
	Update(ctx context.Context, id int64, patch domain.SlotPatch) error
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
