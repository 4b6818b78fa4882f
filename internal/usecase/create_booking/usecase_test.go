package create_booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TurfService/internal/domain"
	paymentRepo "github.com/m04kA/SMC-TurfService/internal/infra/storage/payment"
	"github.com/m04kA/SMC-TurfService/internal/integrations/turfservice"
	"github.com/m04kA/SMC-TurfService/pkg/ptr"
	"github.com/m04kA/SMC-TurfService/pkg/txmanager"
	"github.com/m04kA/SMC-TurfService/pkg/types"
)

// Фиксированное "сегодня": среда 2025-10-01
var testNow = time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)

// 2025-10-03 - пятница (будний день)
var testDate = time.Date(2025, 10, 3, 0, 0, 0, 0, time.UTC)

type fixedTimeProvider struct{ now time.Time }

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- Фейки хранилищ (in-memory, с мьютексом для конкурентных тестов) ---

type fakeBookingRepo struct {
	mu       sync.Mutex
	nextID   int64
	bookings map[int64]*domain.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{nextID: 1, bookings: make(map[int64]*domain.Booking)}
}

func (r *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := *b
	created.ID = r.nextID
	created.CreatedAt = testNow
	r.nextID++
	r.bookings[created.ID] = &created
	return &created, nil
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, assert.AnError
	}
	copied := *b
	return &copied, nil
}

func (r *fakeBookingRepo) GetByTurfAndDate(_ context.Context, turfID int64, date time.Time, confirmedOnly bool) ([]*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if b.TurfID != turfID || !b.BookingDate.Equal(date) {
			continue
		}
		if confirmedOnly && !b.IsConfirmed() {
			continue
		}
		copied := *b
		result = append(result, &copied)
	}
	return result, nil
}

type fakeSlotRepo struct {
	mu     sync.Mutex
	nextID int64
	slots  []*domain.Slot
}

func newFakeSlotRepo() *fakeSlotRepo {
	return &fakeSlotRepo{nextID: 1}
}

func (r *fakeSlotRepo) seed(s *domain.Slot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.ID = r.nextID
	r.nextID++
	r.slots = append(r.slots, s)
}

func (r *fakeSlotRepo) GetByTurfAndDate(_ context.Context, turfID int64, date time.Time) ([]*domain.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*domain.Slot, 0)
	for _, s := range r.slots {
		if s.TurfID == turfID && s.Date.Equal(date) {
			copied := *s
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *fakeSlotRepo) BulkCreate(_ context.Context, slots []*domain.Slot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range slots {
		copied := *s
		copied.ID = r.nextID
		r.nextID++
		r.slots = append(r.slots, &copied)
	}
	return nil
}

func (r *fakeSlotRepo) MarkBooked(_ context.Context, id int64, bookingID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.slots {
		if s.ID == id {
			s.Status = domain.SlotBooked
			s.BookingID = ptr.Ptr(bookingID)
			return nil
		}
	}
	return assert.AnError
}

func (r *fakeSlotRepo) bookedCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, s := range r.slots {
		if s.Status == domain.SlotBooked {
			n++
		}
	}
	return n
}

type fakePaymentRepo struct {
	mu       sync.Mutex
	nextID   int64
	payments map[string]*domain.Payment // по transaction_ref
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{nextID: 1, payments: make(map[string]*domain.Payment)}
}

func (r *fakePaymentRepo) Create(_ context.Context, p *domain.Payment) (*domain.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.payments[p.TransactionRef]; exists {
		return nil, paymentRepo.ErrDuplicateTransactionRef
	}

	created := *p
	created.ID = r.nextID
	created.PaidAt = testNow
	r.nextID++
	r.payments[created.TransactionRef] = &created
	return &created, nil
}

func (r *fakePaymentRepo) GetByTransactionRef(_ context.Context, ref string) (*domain.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.payments[ref]
	if !ok {
		return nil, paymentRepo.ErrPaymentNotFound
	}
	copied := *p
	return &copied, nil
}

type fakeMaintenanceRepo struct {
	blocks []*domain.MaintenanceBlock
}

func (r *fakeMaintenanceRepo) GetByTurfAndDate(_ context.Context, turfID int64, date time.Time) ([]*domain.MaintenanceBlock, error) {
	result := make([]*domain.MaintenanceBlock, 0)
	for _, m := range r.blocks {
		if m.TurfID == turfID && m.Date.Equal(date) {
			result = append(result, m)
		}
	}
	return result, nil
}

type fakeTurfClient struct {
	turf *turfservice.Turf
	err  error
}

func (c *fakeTurfClient) GetTurf(_ context.Context, _ int64) (*turfservice.Turf, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.turf, nil
}

// fakeTxManager сериализует транзакции мьютексом: конкурирующие Execute
// выполняются строго по одному, как при SERIALIZABLE с блокировкой строк дня
type fakeTxManager struct {
	mu  sync.Mutex
	err error // если задана, транзакция завершается этой ошибкой
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

// --- Хелперы ---

type env struct {
	uc          *UseCase
	bookings    *fakeBookingRepo
	slots       *fakeSlotRepo
	payments    *fakePaymentRepo
	maintenance *fakeMaintenanceRepo
	turfs       *fakeTurfClient
	tx          *fakeTxManager
}

func newEnv() *env {
	e := &env{
		bookings:    newFakeBookingRepo(),
		slots:       newFakeSlotRepo(),
		payments:    newFakePaymentRepo(),
		maintenance: &fakeMaintenanceRepo{},
		turfs:       &fakeTurfClient{turf: defaultTurf()},
		tx:          &fakeTxManager{},
	}
	e.uc = NewUseCase(e.bookings, e.slots, e.payments, e.maintenance, e.turfs, e.tx, nopLogger{})
	e.uc.timeProvider = &fixedTimeProvider{now: testNow}
	return e
}

func defaultTurf() *turfservice.Turf {
	return &turfservice.Turf{
		ID:                 1,
		OwnerID:            100,
		Name:               "Главное поле",
		OpeningTime:        "06:00",
		ClosingTime:        "23:00",
		PlatformFeePercent: 10,
		SlotTemplate:       "hourly",
		IsActive:           true,
	}
}

func hourlyRequest(start, end types.TimeString) *Request {
	return &Request{
		UserID:      42,
		TurfID:      1,
		BookingType: domain.BookingTypeHourly,
		Date:        testDate,
		StartTime:   &start,
		EndTime:     &end,
	}
}

// --- Тесты ---

func TestExecute_HourlySuccess(t *testing.T) {
	e := newEnv()

	resp, err := e.uc.Execute(context.Background(), hourlyRequest("10:00", "12:00"))
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, 2, resp.DurationHours)
	assert.False(t, resp.AlreadyProcessed)

	// Будний день вне пика: 2 часа по 800, комиссия 10%
	assert.Equal(t, 1600.0, resp.BaseAmount)
	assert.Equal(t, 160.0, resp.PlatformFee)
	assert.Equal(t, 1760.0, resp.TotalAmount)

	// Интервал занят двумя часовыми BOOKED строками
	assert.Equal(t, 2, e.slots.bookedCount())
}

func TestExecute_FullDaySuccess(t *testing.T) {
	e := newEnv()

	resp, err := e.uc.Execute(context.Background(), &Request{
		UserID:      42,
		TurfID:      1,
		BookingType: domain.BookingTypeFullDay,
		Date:        testDate,
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.BookingTypeFullDay), resp.BookingType)
	assert.Equal(t, domain.FullDayDurationHours, resp.DurationHours)
	assert.Equal(t, 10000.0, resp.BaseAmount)
	assert.Equal(t, 11000.0, resp.TotalAmount)

	// Занята вся сетка дня 06:00-23:00
	assert.Equal(t, 17, e.slots.bookedCount())
}

func TestExecute_TurfChecks(t *testing.T) {
	t.Run("turf not found", func(t *testing.T) {
		e := newEnv()
		e.turfs.err = turfservice.ErrTurfNotFound

		_, err := e.uc.Execute(context.Background(), hourlyRequest("10:00", "11:00"))
		assert.ErrorIs(t, err, ErrTurfNotFound)
	})

	t.Run("turf inactive", func(t *testing.T) {
		e := newEnv()
		e.turfs.turf.IsActive = false

		_, err := e.uc.Execute(context.Background(), hourlyRequest("10:00", "11:00"))
		assert.ErrorIs(t, err, ErrTurfInactive)
	})
}

func TestExecute_DateBoundaries(t *testing.T) {
	cases := []struct {
		name        string
		bookingType domain.BookingType
		date        time.Time
		wantErr     error
	}{
		{"today is allowed", domain.BookingTypeHourly, testNow, nil},
		{"yesterday rejected", domain.BookingTypeHourly, testNow.AddDate(0, 0, -1), ErrInvalidDate},
		{"hourly at 7 days allowed", domain.BookingTypeHourly, testNow.AddDate(0, 0, 7), nil},
		{"hourly at 8 days rejected", domain.BookingTypeHourly, testNow.AddDate(0, 0, 8), ErrDateTooFarInFuture},
		{"full day at 60 days allowed", domain.BookingTypeFullDay, testNow.AddDate(0, 0, 60), nil},
		{"full day at 61 days rejected", domain.BookingTypeFullDay, testNow.AddDate(0, 0, 61), ErrDateTooFarInFuture},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newEnv()

			req := &Request{
				UserID:      42,
				TurfID:      1,
				BookingType: tc.bookingType,
				Date:        tc.date,
			}
			if tc.bookingType == domain.BookingTypeHourly {
				start, end := types.TimeString("10:00"), types.TimeString("11:00")
				req.StartTime, req.EndTime = &start, &end
			}

			_, err := e.uc.Execute(context.Background(), req)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExecute_IntervalValidation(t *testing.T) {
	cases := []struct {
		name       string
		start, end types.TimeString
	}{
		{"outside operating hours", "05:00", "06:00"},
		{"end beyond closing", "22:00", "23:30"},
		{"not whole hours", "10:00", "10:30"},
		{"misaligned start", "10:30", "11:30"},
		{"start after end", "12:00", "10:00"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newEnv()

			_, err := e.uc.Execute(context.Background(), hourlyRequest(tc.start, tc.end))
			assert.ErrorIs(t, err, ErrInvalidTimeSlot)
		})
	}
}

func TestExecute_Conflicts(t *testing.T) {
	seedConfirmed := func(e *env, start, end types.TimeString) {
		_, err := e.bookings.Create(context.Background(), &domain.Booking{
			TurfID:      1,
			UserID:      7,
			BookingType: domain.BookingTypeHourly,
			BookingDate: testDate,
			StartTime:   &start,
			EndTime:     &end,
			Status:      domain.StatusConfirmed,
		})
		require.NoError(t, err)
	}

	t.Run("overlapping booking rejected", func(t *testing.T) {
		e := newEnv()
		seedConfirmed(e, "10:00", "12:00")

		_, err := e.uc.Execute(context.Background(), hourlyRequest("11:00", "13:00"))
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
	})

	t.Run("adjacent booking allowed", func(t *testing.T) {
		e := newEnv()
		seedConfirmed(e, "10:00", "12:00")

		_, err := e.uc.Execute(context.Background(), hourlyRequest("12:00", "13:00"))
		assert.NoError(t, err)
	})

	t.Run("cancelled booking does not block", func(t *testing.T) {
		e := newEnv()
		start, end := types.TimeString("10:00"), types.TimeString("12:00")
		_, err := e.bookings.Create(context.Background(), &domain.Booking{
			TurfID:      1,
			BookingType: domain.BookingTypeHourly,
			BookingDate: testDate,
			StartTime:   &start,
			EndTime:     &end,
			Status:      domain.StatusCancelled,
		})
		require.NoError(t, err)

		_, err = e.uc.Execute(context.Background(), hourlyRequest("10:00", "12:00"))
		assert.NoError(t, err)
	})

	t.Run("full day conflicts with any booking", func(t *testing.T) {
		e := newEnv()
		seedConfirmed(e, "10:00", "11:00")

		_, err := e.uc.Execute(context.Background(), &Request{
			UserID:      42,
			TurfID:      1,
			BookingType: domain.BookingTypeFullDay,
			Date:        testDate,
		})
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
	})

	t.Run("hourly conflicts with full day booking", func(t *testing.T) {
		e := newEnv()
		_, err := e.bookings.Create(context.Background(), &domain.Booking{
			TurfID:      1,
			BookingType: domain.BookingTypeFullDay,
			BookingDate: testDate,
			Status:      domain.StatusConfirmed,
		})
		require.NoError(t, err)

		_, err = e.uc.Execute(context.Background(), hourlyRequest("10:00", "11:00"))
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
	})

	t.Run("maintenance window rejected", func(t *testing.T) {
		e := newEnv()
		e.maintenance.blocks = append(e.maintenance.blocks, &domain.MaintenanceBlock{
			TurfID:    1,
			Date:      testDate,
			StartTime: "11:00",
			EndTime:   "13:00",
			Reason:    "замена покрытия",
		})

		_, err := e.uc.Execute(context.Background(), hourlyRequest("12:00", "14:00"))
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
	})

	t.Run("blocked slot rejected", func(t *testing.T) {
		e := newEnv()
		e.slots.seed(&domain.Slot{
			TurfID:    1,
			Date:      testDate,
			StartTime: "10:00",
			EndTime:   "11:00",
			Status:    domain.SlotBlocked,
		})

		_, err := e.uc.Execute(context.Background(), hourlyRequest("10:00", "12:00"))
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
	})
}

// Площадка, работающая за полночь: интервалы дня переходят границу суток
func TestExecute_OvernightVenue(t *testing.T) {
	newOvernightEnv := func() *env {
		e := newEnv()
		e.turfs.turf.OpeningTime = "20:00"
		e.turfs.turf.ClosingTime = "02:00"
		return e
	}

	t.Run("booking across midnight occupies both sides", func(t *testing.T) {
		e := newOvernightEnv()

		resp, err := e.uc.Execute(context.Background(), hourlyRequest("23:00", "01:00"))
		require.NoError(t, err)

		assert.Equal(t, 2, resp.DurationHours)
		assert.Equal(t, 2, e.slots.bookedCount())
	})

	t.Run("interval inside a wrap-around booking rejected", func(t *testing.T) {
		e := newOvernightEnv()

		_, err := e.uc.Execute(context.Background(), hourlyRequest("23:00", "01:00"))
		require.NoError(t, err)

		_, err = e.uc.Execute(context.Background(), hourlyRequest("23:00", "00:00"))
		assert.ErrorIs(t, err, ErrSlotNotAvailable)

		_, err = e.uc.Execute(context.Background(), hourlyRequest("00:00", "01:00"))
		assert.ErrorIs(t, err, ErrSlotNotAvailable)

		assert.Len(t, e.bookings.bookings, 1)
	})

	t.Run("evening hour before the wrap stays bookable", func(t *testing.T) {
		e := newOvernightEnv()

		_, err := e.uc.Execute(context.Background(), hourlyRequest("23:00", "01:00"))
		require.NoError(t, err)

		_, err = e.uc.Execute(context.Background(), hourlyRequest("20:00", "21:00"))
		assert.NoError(t, err)
	})
}

// Разметка владельца задает бронируемые единицы: сессия занимается целиком
// или не занимается вовсе
func TestExecute_SessionMarkup(t *testing.T) {
	seedSession := func(e *env) {
		e.slots.seed(&domain.Slot{
			TurfID:    1,
			Date:      testDate,
			StartTime: "06:00",
			EndTime:   "10:00",
			Status:    domain.SlotAvailable,
			Price:     4000,
		})
	}

	t.Run("whole session consumes the row", func(t *testing.T) {
		e := newEnv()
		seedSession(e)

		resp, err := e.uc.Execute(context.Background(), hourlyRequest("06:00", "10:00"))
		require.NoError(t, err)

		assert.Equal(t, 4000.0, resp.BaseAmount)
		assert.Equal(t, 1, e.slots.bookedCount())
		assert.Len(t, e.slots.slots, 1)
	})

	t.Run("sub-interval of a session rejected", func(t *testing.T) {
		e := newEnv()
		seedSession(e)

		_, err := e.uc.Execute(context.Background(), hourlyRequest("06:00", "08:00"))
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
		assert.Equal(t, 0, e.slots.bookedCount())
	})

	t.Run("interval crossing the session boundary rejected", func(t *testing.T) {
		e := newEnv()
		seedSession(e)

		_, err := e.uc.Execute(context.Background(), hourlyRequest("08:00", "12:00"))
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
		assert.Equal(t, 0, e.slots.bookedCount())
	})

	t.Run("session plus free hours tiled together", func(t *testing.T) {
		e := newEnv()
		seedSession(e)

		_, err := e.uc.Execute(context.Background(), hourlyRequest("06:00", "12:00"))
		require.NoError(t, err)

		// Сессия занята целиком, хвост нарезан часами
		assert.Equal(t, 3, e.slots.bookedCount())
		assert.Len(t, e.slots.slots, 3)
	})
}

func TestExecute_SlotPriceOverride(t *testing.T) {
	e := newEnv()

	// Владелец переопределил цену интервала 10:00-11:00
	e.slots.seed(&domain.Slot{
		TurfID:    1,
		Date:      testDate,
		StartTime: "10:00",
		EndTime:   "11:00",
		Status:    domain.SlotAvailable,
		Price:     500,
	})

	resp, err := e.uc.Execute(context.Background(), hourlyRequest("10:00", "11:00"))
	require.NoError(t, err)

	assert.Equal(t, 500.0, resp.BaseAmount)
	assert.Equal(t, 550.0, resp.TotalAmount)

	// Существующая строка переведена в BOOKED, новых не создано
	assert.Equal(t, 1, e.slots.bookedCount())
	assert.Len(t, e.slots.slots, 1)
}

func TestExecute_TurfPricingOverrides(t *testing.T) {
	e := newEnv()
	e.turfs.turf.Pricing = &turfservice.PricingRules{
		WeekdayHourPrice: ptr.Ptr(600.0),
	}

	resp, err := e.uc.Execute(context.Background(), hourlyRequest("10:00", "11:00"))
	require.NoError(t, err)

	assert.Equal(t, 600.0, resp.BaseAmount)
}

func TestExecute_WithPayment(t *testing.T) {
	t.Run("payment recorded atomically", func(t *testing.T) {
		e := newEnv()

		req := hourlyRequest("10:00", "12:00")
		req.Payment = &PaymentRequest{
			Method:         domain.MethodUPI,
			TransactionRef: "txn-001",
			AmountPaid:     1760,
		}

		resp, err := e.uc.Execute(context.Background(), req)
		require.NoError(t, err)

		require.NotNil(t, resp.Payment)
		assert.Equal(t, "txn-001", resp.Payment.TransactionRef)
		assert.Equal(t, domain.DefaultCurrency, resp.Payment.Currency)
		assert.Equal(t, string(domain.PaymentSuccess), resp.Payment.Status)
	})

	t.Run("amount mismatch rejected", func(t *testing.T) {
		e := newEnv()

		req := hourlyRequest("10:00", "12:00")
		req.Payment = &PaymentRequest{
			Method:         domain.MethodUPI,
			TransactionRef: "txn-002",
			AmountPaid:     1000,
		}

		_, err := e.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrPaymentAmountMismatch)
	})

	t.Run("replayed transaction_ref returns original booking", func(t *testing.T) {
		e := newEnv()

		req := hourlyRequest("10:00", "12:00")
		req.Payment = &PaymentRequest{
			Method:         domain.MethodUPI,
			TransactionRef: "txn-003",
			AmountPaid:     1760,
		}

		first, err := e.uc.Execute(context.Background(), req)
		require.NoError(t, err)
		require.False(t, first.AlreadyProcessed)

		// Повтор с тем же ref: тот же интервал уже занят, но replay-проверка
		// срабатывает раньше проверки конфликтов
		second, err := e.uc.Execute(context.Background(), req)
		require.NoError(t, err)

		assert.True(t, second.AlreadyProcessed)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, first.Payment.ID, second.Payment.ID)

		// Новых бронирований не создано
		assert.Len(t, e.bookings.bookings, 1)
	})
}

func TestExecute_SerializationFailureMapsToConflict(t *testing.T) {
	e := newEnv()
	e.tx.err = txmanager.ErrSerializationFailure

	_, err := e.uc.Execute(context.Background(), hourlyRequest("10:00", "11:00"))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_ValidationErrors(t *testing.T) {
	e := newEnv()

	t.Run("missing interval for hourly", func(t *testing.T) {
		_, err := e.uc.Execute(context.Background(), &Request{
			UserID:      42,
			TurfID:      1,
			BookingType: domain.BookingTypeHourly,
			Date:        testDate,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("interval on full day", func(t *testing.T) {
		start := types.TimeString("10:00")
		_, err := e.uc.Execute(context.Background(), &Request{
			UserID:      42,
			TurfID:      1,
			BookingType: domain.BookingTypeFullDay,
			Date:        testDate,
			StartTime:   &start,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown booking type", func(t *testing.T) {
		_, err := e.uc.Execute(context.Background(), &Request{
			UserID:      42,
			TurfID:      1,
			BookingType: "weekly",
			Date:        testDate,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("payment without ref", func(t *testing.T) {
		req := hourlyRequest("10:00", "11:00")
		req.Payment = &PaymentRequest{Method: domain.MethodUPI, AmountPaid: 880}

		_, err := e.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

// Параллельные запросы на один интервал: побеждает ровно один,
// остальные получают конфликт
func TestExecute_ConcurrentRequestsSingleWinner(t *testing.T) {
	e := newEnv()

	const workers = 8

	var wg sync.WaitGroup
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := hourlyRequest("18:00", "20:00")
			req.UserID = int64(i + 1)
			_, errs[i] = e.uc.Execute(context.Background(), req)
		}(i)
	}
	wg.Wait()

	succeeded, conflicted := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case assert.ErrorIs(t, err, ErrSlotNotAvailable):
			conflicted++
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, conflicted)
	assert.Len(t, e.bookings.bookings, 1)
}
