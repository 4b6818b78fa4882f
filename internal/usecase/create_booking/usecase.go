package create_booking

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/m04kA/SMC-TurfService/internal/domain"
	paymentRepo "github.com/m04kA/SMC-TurfService/internal/infra/storage/payment"
	turfClient "github.com/m04kA/SMC-TurfService/internal/integrations/turfservice"
	"github.com/m04kA/SMC-TurfService/internal/pricing"
	"github.com/m04kA/SMC-TurfService/pkg/ptr"
	"github.com/m04kA/SMC-TurfService/pkg/txmanager"
	"github.com/m04kA/SMC-TurfService/pkg/types"
)

// UseCase use case для создания бронирования
// Вся проверка конфликтов и запись идут в одной сериализуемой транзакции
// с блокировкой строк дня площадки: параллельные запросы на один интервал
// сериализуются, побеждает ровно один
type UseCase struct {
	bookingRepo     BookingRepository
	slotRepo        SlotRepository
	paymentRepo     PaymentRepository
	maintenanceRepo MaintenanceRepository
	turfClient      TurfServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	paymentRepo PaymentRepository,
	maintenanceRepo MaintenanceRepository,
	turfClient TurfServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:     bookingRepo,
		slotRepo:        slotRepo,
		paymentRepo:     paymentRepo,
		maintenanceRepo: maintenanceRepo,
		turfClient:      turfClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, turf=%d, type=%s, date=%s",
		req.UserID, req.TurfID, req.BookingType, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Получаем площадку из реестра
	turf, err := uc.turfClient.GetTurf(ctx, req.TurfID)
	if err != nil {
		if errors.Is(err, turfClient.ErrTurfNotFound) {
			uc.logger.Warn("CreateBooking: turf id=%d not found", req.TurfID)
			return nil, ErrTurfNotFound
		}
		uc.logger.Error("CreateBooking: failed to get turf id=%d: %v", req.TurfID, err)
		return nil, fmt.Errorf("%w: failed to get turf: %v", ErrInternal, err)
	}

	if !turf.IsActive {
		uc.logger.Warn("CreateBooking: turf id=%d is not active", req.TurfID)
		return nil, ErrTurfInactive
	}

	// 3. Валидация даты: горизонт зависит от типа бронирования
	if err := validateDate(req.Date, now, req.BookingType); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	opening := types.TimeString(turf.OpeningTime)
	closing := types.TimeString(turf.ClosingTime)

	// 4. Валидация интервала против рабочих часов
	durationHours := domain.FullDayDurationHours
	if req.BookingType == domain.BookingTypeHourly {
		durationHours, err = validateInterval(*req.StartTime, *req.EndTime, opening, closing)
		if err != nil {
			uc.logger.Warn("CreateBooking: interval validation failed: %v", err)
			return nil, err
		}
	}

	rules := rulesForTurf(turf)

	var (
		resultBooking *domain.Booking
		resultPayment *domain.Payment
		replayed      bool
	)

	// 5. Сериализуемая транзакция: replay-проверка, конфликты, запись
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		resultBooking, resultPayment, replayed = nil, nil, false

		// 5.1. Идемпотентность: если transaction_ref уже обрабатывался,
		// возвращаем исходное бронирование до любых проверок конфликтов
		if req.Payment != nil {
			existing, err := uc.paymentRepo.GetByTransactionRef(txCtx, req.Payment.TransactionRef)
			if err != nil && !errors.Is(err, paymentRepo.ErrPaymentNotFound) {
				uc.logger.Error("CreateBooking: failed to check transaction_ref: %v", err)
				return fmt.Errorf("%w: failed to check transaction ref: %v", ErrInternal, err)
			}
			if existing != nil {
				booking, err := uc.bookingRepo.GetByID(txCtx, existing.BookingID)
				if err != nil {
					uc.logger.Error("CreateBooking: failed to load booking for replayed payment id=%d: %v", existing.ID, err)
					return fmt.Errorf("%w: failed to load booking: %v", ErrInternal, err)
				}
				uc.logger.Info("CreateBooking: replay of transaction_ref=%s, booking id=%d",
					req.Payment.TransactionRef, booking.ID)
				resultBooking, resultPayment, replayed = booking, existing, true
				return nil
			}
		}

		// 5.2. Конфликтующие бронирования (FOR UPDATE)
		// Только CONFIRMED бронирования занимают слоты
		bookings, err := uc.bookingRepo.GetByTurfAndDate(txCtx, req.TurfID, req.Date, true)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 5.3. Слоты дня (FOR UPDATE)
		slots, err := uc.slotRepo.GetByTurfAndDate(txCtx, req.TurfID, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get slots: %v", err)
			return fmt.Errorf("%w: failed to get slots: %v", ErrInternal, err)
		}

		// 5.4. Окна обслуживания
		maintenance, err := uc.maintenanceRepo.GetByTurfAndDate(txCtx, req.TurfID, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get maintenance blocks: %v", err)
			return fmt.Errorf("%w: failed to get maintenance blocks: %v", ErrInternal, err)
		}

		// 5.5. Проверка конфликтов
		if err := checkConflicts(req, bookings, slots, maintenance); err != nil {
			uc.logger.Warn("CreateBooking: conflict for turf=%d date=%s: %v",
				req.TurfID, req.Date.Format(domain.DateFormat), err)
			return err
		}

		// 5.6. Расчет стоимости
		base, err := uc.quoteBase(req, slots, rules)
		if err != nil {
			return err
		}

		baseAmount, platformFee, totalAmount := pricing.Split(base, turf.PlatformFeePercent)

		// Сумма присланного платежа обязана совпадать с итогом
		if req.Payment != nil && req.Payment.AmountPaid != totalAmount {
			uc.logger.Warn("CreateBooking: payment amount %.2f does not match total %.2f",
				req.Payment.AmountPaid, totalAmount)
			return fmt.Errorf("%w: expected %.2f, got %.2f", ErrPaymentAmountMismatch, totalAmount, req.Payment.AmountPaid)
		}

		// 5.7. Создаем бронирование
		booking := &domain.Booking{
			TurfID:        req.TurfID,
			UserID:        req.UserID,
			BookingType:   req.BookingType,
			BookingDate:   req.Date,
			StartTime:     req.StartTime,
			EndTime:       req.EndTime,
			DurationHours: durationHours,
			BaseAmount:    baseAmount,
			PlatformFee:   platformFee,
			TotalAmount:   totalAmount,
			Status:        domain.StatusConfirmed,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		// 5.8. Занимаем слоты бронирования
		if err := uc.occupySlots(txCtx, req, created, slots, turf, rules); err != nil {
			return err
		}

		// 5.9. Записываем платеж
		if req.Payment != nil {
			payment := &domain.Payment{
				BookingID:      created.ID,
				Method:         req.Payment.Method,
				TransactionRef: req.Payment.TransactionRef,
				AmountPaid:     req.Payment.AmountPaid,
				Currency:       domain.DefaultCurrency,
				Status:         domain.PaymentSuccess,
			}

			createdPayment, err := uc.paymentRepo.Create(txCtx, payment)
			if err != nil {
				if errors.Is(err, paymentRepo.ErrDuplicateTransactionRef) {
					// Конкурент успел записать платеж с этим ref между нашей
					// проверкой и вставкой: откатываемся и отвечаем его данными
					return errDuplicateRefRace
				}
				uc.logger.Error("CreateBooking: failed to create payment: %v", err)
				return fmt.Errorf("%w: failed to create payment: %v", ErrInternal, err)
			}
			resultPayment = createdPayment
		}

		resultBooking = created
		return nil
	})

	if err != nil {
		if errors.Is(err, errDuplicateRefRace) {
			return uc.respondWithExistingPayment(ctx, req.Payment.TransactionRef)
		}
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			// Конкурирующая транзакция заняла интервал первой
			uc.logger.Warn("CreateBooking: serialization failure for turf=%d date=%s",
				req.TurfID, req.Date.Format(domain.DateFormat))
			return nil, ErrSlotNotAvailable
		}
		return nil, err
	}

	if !replayed {
		uc.logger.Info("CreateBooking: successfully created booking id=%d, total=%.2f",
			resultBooking.ID, resultBooking.TotalAmount)
	}

	return toResponse(resultBooking, resultPayment, replayed), nil
}

// checkConflicts проверяет интервал запроса против бронирований, слотов
// и окон обслуживания. Full-day конфликтует с любой активностью дня.
func checkConflicts(
	req *Request,
	bookings []*domain.Booking,
	slots []*domain.Slot,
	maintenance []*domain.MaintenanceBlock,
) error {
	if req.BookingType == domain.BookingTypeFullDay {
		if len(bookings) > 0 {
			return fmt.Errorf("%w: day already has bookings", ErrSlotNotAvailable)
		}
		if len(maintenance) > 0 {
			return fmt.Errorf("%w: day has maintenance windows", ErrSlotNotAvailable)
		}
		for _, s := range slots {
			if s.BlocksBooking() {
				return fmt.Errorf("%w: day has blocked slots", ErrSlotNotAvailable)
			}
		}
		return nil
	}

	start, end := *req.StartTime, *req.EndTime

	for _, b := range bookings {
		if b.OverlapsInterval(start, end) {
			return fmt.Errorf("%w: interval overlaps booking id=%d", ErrSlotNotAvailable, b.ID)
		}
	}

	for _, m := range maintenance {
		if m.OverlapsInterval(start, end) {
			return fmt.Errorf("%w: interval overlaps maintenance window", ErrSlotNotAvailable)
		}
	}

	for _, s := range slots {
		if s.BlocksBooking() && s.OverlapsInterval(start, end) {
			return fmt.Errorf("%w: interval overlaps %s slot", ErrSlotNotAvailable, s.Status)
		}
	}

	return nil
}

// quoteBase считает базовую стоимость запроса.
// Точное совпадение интервала с AVAILABLE слотом использует цену слота:
// владелец переопределил расчетную ставку для этого интервала.
func (uc *UseCase) quoteBase(req *Request, slots []*domain.Slot, rules pricing.Rules) (float64, error) {
	if req.BookingType == domain.BookingTypeHourly {
		for _, s := range slots {
			if s.Status == domain.SlotAvailable && s.StartTime == *req.StartTime && s.EndTime == *req.EndTime {
				return s.Price, nil
			}
		}
	}

	var start, end types.TimeString
	if req.BookingType == domain.BookingTypeHourly {
		start, end = *req.StartTime, *req.EndTime
	}

	base, err := pricing.Quote(req.BookingType, req.Date, start, end, rules)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to quote price: %v", err)
		return 0, fmt.Errorf("%w: failed to quote price: %v", ErrInternal, err)
	}

	return base, nil
}

// occupySlots помечает занимаемый интервал бронирования как BOOKED.
// Интервал замощается существующими AVAILABLE строками целиком, промежутки
// нарезаются часовыми строками. Строка разметки, пересекающая границу
// занимаемого интервала, делает его недоступным: разметка владельца задает
// бронируемые единицы и не разрезается. Для full-day занимается все рабочее
// окно площадки.
func (uc *UseCase) occupySlots(
	ctx context.Context,
	req *Request,
	booking *domain.Booking,
	slots []*domain.Slot,
	turf *turfClient.Turf,
	rules pricing.Rules,
) error {
	spanStart := types.TimeString(turf.OpeningTime)
	spanEnd := types.TimeString(turf.ClosingTime)
	if req.BookingType == domain.BookingTypeHourly {
		spanStart, spanEnd = *req.StartTime, *req.EndTime
	}

	base, err := spanStart.MinutesFromMidnight()
	if err != nil {
		return fmt.Errorf("%w: invalid booking interval: %v", ErrInternal, err)
	}

	_, spanLen, err := relativeInterval(spanStart, spanEnd, base)
	if err != nil {
		return fmt.Errorf("%w: invalid booking interval: %v", ErrInternal, err)
	}

	// AVAILABLE строки внутри интервала потребляются как единое целое;
	// строка, пересекающая его границу, означает разметку другой ширины
	type consumed struct {
		slot     *domain.Slot
		from, to int // минуты от начала занимаемого интервала
	}

	rows := make([]consumed, 0, len(slots))
	for _, s := range slots {
		if s.Status != domain.SlotAvailable {
			continue
		}
		from, length, err := relativeInterval(s.StartTime, s.EndTime, base)
		if err != nil {
			return fmt.Errorf("%w: invalid slot interval: %v", ErrInternal, err)
		}
		if from >= spanLen {
			if from+length > types.MinutesPerDay {
				// Строка входит в интервал через границу суток
				return fmt.Errorf("%w: interval crosses slot markup %s-%s", ErrSlotNotAvailable, s.StartTime, s.EndTime)
			}
			continue
		}
		if from+length > spanLen {
			return fmt.Errorf("%w: interval crosses slot markup %s-%s", ErrSlotNotAvailable, s.StartTime, s.EndTime)
		}
		rows = append(rows, consumed{slot: s, from: from, to: from + length})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].from < rows[j].from })

	toCreate := make([]*domain.Slot, 0, spanLen/domain.SlotDurationMinutes)

	fill := func(from, to int) error {
		for cur := from; cur < to; cur += domain.SlotDurationMinutes {
			sliceEnd := cur + domain.SlotDurationMinutes
			if sliceEnd > to {
				sliceEnd = to
			}

			start := types.FromMinutes(base + cur)
			end := types.FromMinutes(base + sliceEnd)

			price, err := pricing.QuoteHourly(req.Date, start, end, rules)
			if err != nil {
				return fmt.Errorf("%w: failed to price slot interval: %v", ErrInternal, err)
			}

			toCreate = append(toCreate, &domain.Slot{
				TurfID:    req.TurfID,
				Date:      req.Date,
				StartTime: start,
				EndTime:   end,
				Status:    domain.SlotBooked,
				Price:     price,
				BookingID: ptr.Ptr(booking.ID),
			})
		}
		return nil
	}

	cur := 0
	for _, row := range rows {
		if row.from < cur {
			return fmt.Errorf("%w: slot markup %s-%s overlaps another row", ErrSlotNotAvailable, row.slot.StartTime, row.slot.EndTime)
		}
		if err := fill(cur, row.from); err != nil {
			return err
		}
		if err := uc.slotRepo.MarkBooked(ctx, row.slot.ID, booking.ID); err != nil {
			uc.logger.Error("CreateBooking: failed to mark slot id=%d booked: %v", row.slot.ID, err)
			return fmt.Errorf("%w: failed to mark slot booked: %v", ErrInternal, err)
		}
		cur = row.to
	}
	if err := fill(cur, spanLen); err != nil {
		return err
	}

	if err := uc.slotRepo.BulkCreate(ctx, toCreate); err != nil {
		uc.logger.Error("CreateBooking: failed to create booked slots: %v", err)
		return fmt.Errorf("%w: failed to create booked slots: %v", ErrInternal, err)
	}

	return nil
}

// relativeInterval переводит интервал в минуты от базовой точки дня.
// Конец раньше начала означает переход через полночь.
func relativeInterval(start, end types.TimeString, base int) (from, length int, err error) {
	s, err := start.MinutesFromMidnight()
	if err != nil {
		return 0, 0, err
	}
	e, err := end.MinutesFromMidnight()
	if err != nil {
		return 0, 0, err
	}

	length = e - s
	if length <= 0 {
		length += types.MinutesPerDay
	}
	from = ((s - base) + types.MinutesPerDay) % types.MinutesPerDay

	return from, length, nil
}

// respondWithExistingPayment перечитывает платеж конкурента после отката
// нашей транзакции и возвращает его бронирование как replay
func (uc *UseCase) respondWithExistingPayment(ctx context.Context, transactionRef string) (*Response, error) {
	payment, err := uc.paymentRepo.GetByTransactionRef(ctx, transactionRef)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to reload payment for transaction_ref=%s: %v", transactionRef, err)
		return nil, fmt.Errorf("%w: failed to reload payment: %v", ErrInternal, err)
	}

	booking, err := uc.bookingRepo.GetByID(ctx, payment.BookingID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to reload booking id=%d: %v", payment.BookingID, err)
		return nil, fmt.Errorf("%w: failed to reload booking: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: replay of transaction_ref=%s after duplicate race, booking id=%d",
		transactionRef, booking.ID)

	return toResponse(booking, payment, true), nil
}
