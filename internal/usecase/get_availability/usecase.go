package get_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TurfService/internal/domain"
	turfClient "github.com/m04kA/SMC-TurfService/internal/integrations/turfservice"
	"github.com/m04kA/SMC-TurfService/internal/pricing"
	"github.com/m04kA/SMC-TurfService/internal/slotgrid"
	"github.com/m04kA/SMC-TurfService/pkg/types"
)

// UseCase use case чтения доступности площадки на дату
// Чисто читающий путь: без транзакций и блокировок, ответ может
// устареть к моменту создания бронирования - это разрешается
// сериализуемой транзакцией на пути записи
type UseCase struct {
	bookingRepo     BookingRepository
	slotRepo        SlotRepository
	maintenanceRepo MaintenanceRepository
	turfClient      TurfServiceClient
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	maintenanceRepo MaintenanceRepository,
	turfClient TurfServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:     bookingRepo,
		slotRepo:        slotRepo,
		maintenanceRepo: maintenanceRepo,
		turfClient:      turfClient,
		logger:          logger,
	}
}

// Execute строит сетку дня площадки и накладывает на неё бронирования,
// ручную разметку слотов и окна обслуживания
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.TurfID <= 0 {
		return nil, fmt.Errorf("%w: turfID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	turf, err := uc.turfClient.GetTurf(ctx, req.TurfID)
	if err != nil {
		if errors.Is(err, turfClient.ErrTurfNotFound) {
			uc.logger.Warn("GetAvailability: turf id=%d not found", req.TurfID)
			return nil, ErrTurfNotFound
		}
		uc.logger.Error("GetAvailability: failed to get turf id=%d: %v", req.TurfID, err)
		return nil, fmt.Errorf("%w: failed to get turf: %v", ErrInternal, err)
	}

	opening := types.TimeString(turf.OpeningTime)
	closing := types.TimeString(turf.ClosingTime)

	grid, err := slotgrid.Generate(opening, closing, req.Date, slotgrid.Template(turf.SlotTemplate))
	if err != nil {
		uc.logger.Error("GetAvailability: failed to generate grid for turf id=%d: %v", req.TurfID, err)
		return nil, fmt.Errorf("%w: failed to generate slot grid: %v", ErrInternal, err)
	}

	bookings, err := uc.bookingRepo.GetByTurfAndDate(ctx, req.TurfID, req.Date, true)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	slots, err := uc.slotRepo.GetByTurfAndDate(ctx, req.TurfID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get slots: %v", ErrInternal, err)
	}

	maintenance, err := uc.maintenanceRepo.GetByTurfAndDate(ctx, req.TurfID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get maintenance blocks: %v", err)
		return nil, fmt.Errorf("%w: failed to get maintenance blocks: %v", ErrInternal, err)
	}

	rules := rulesForTurf(turf)

	views := make([]SlotView, 0, len(grid))
	for _, iv := range grid {
		view, err := uc.resolveInterval(iv, req.Date, bookings, slots, maintenance, rules)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}

	return &Response{
		TurfID:   req.TurfID,
		Date:     req.Date,
		Currency: domain.DefaultCurrency,
		OperatingHours: OperatingHours{
			Opening: opening,
			Closing: closing,
		},
		Slots: views,
	}, nil
}

// resolveInterval определяет состояние и цену одного интервала сетки.
// Приоритет: бронирования, затем окна обслуживания, затем ручная разметка,
// затем AVAILABLE по расчетной цене.
func (uc *UseCase) resolveInterval(
	iv slotgrid.Interval,
	date time.Time,
	bookings []*domain.Booking,
	slots []*domain.Slot,
	maintenance []*domain.MaintenanceBlock,
	rules pricing.Rules,
) (SlotView, error) {
	view := SlotView{
		StartTime: iv.Start,
		EndTime:   iv.End,
	}

	// Цена заполняется для любого статуса: занятый интервал показывает
	// ставку своей строки разметки либо расчетную
	var exact *domain.Slot
	for _, s := range slots {
		if s.StartTime == iv.Start && s.EndTime == iv.End {
			exact = s
			break
		}
	}

	if exact != nil {
		view.Price = exact.Price
	} else {
		price, err := pricing.QuoteHourly(date, iv.Start, iv.End, rules)
		if err != nil {
			uc.logger.Error("GetAvailability: failed to price interval %s-%s: %v", iv.Start, iv.End, err)
			return view, fmt.Errorf("%w: failed to price interval: %v", ErrInternal, err)
		}
		view.Price = price
	}

	for _, b := range bookings {
		if b.OverlapsInterval(iv.Start, iv.End) {
			view.Status = string(domain.SlotBooked)
			return view, nil
		}
	}

	for _, m := range maintenance {
		if m.OverlapsInterval(iv.Start, iv.End) {
			view.Status = string(domain.SlotMaintenance)
			view.Label = m.Reason
			return view, nil
		}
	}

	// Точное совпадение с ручной разметкой: статус и подпись слота
	if exact != nil {
		view.Status = string(exact.Status)
		view.Label = exact.Label
		return view, nil
	}

	// Пересечение с блокирующей разметкой без точного совпадения границ
	for _, s := range slots {
		if s.BlocksBooking() && s.OverlapsInterval(iv.Start, iv.End) {
			view.Status = string(s.Status)
			view.Label = s.Label
			return view, nil
		}
	}

	view.Status = string(domain.SlotAvailable)
	return view, nil
}

// rulesForTurf строит правила ценообразования площадки поверх ставок по умолчанию
func rulesForTurf(turf *turfClient.Turf) pricing.Rules {
	if turf.Pricing == nil {
		return pricing.DefaultRules()
	}

	o := pricing.Overrides{
		WeekdayHourPrice:    turf.Pricing.WeekdayHourPrice,
		WeekendHourPrice:    turf.Pricing.WeekendHourPrice,
		WeekdayFullDayPrice: turf.Pricing.WeekdayFullDayPrice,
		WeekendFullDayPrice: turf.Pricing.WeekendFullDayPrice,
		PeakMultiplier:      turf.Pricing.PeakMultiplier,
	}
	if turf.Pricing.PeakStart != nil {
		ts := types.TimeString(*turf.Pricing.PeakStart)
		o.PeakStart = &ts
	}
	if turf.Pricing.PeakEnd != nil {
		ts := types.TimeString(*turf.Pricing.PeakEnd)
		o.PeakEnd = &ts
	}

	return pricing.DefaultRules().Apply(&o)
}
