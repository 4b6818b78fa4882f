package record_payment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TurfService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TurfService/internal/infra/storage/booking"
	paymentRepo "github.com/m04kA/SMC-TurfService/internal/infra/storage/payment"
)

var testNow = time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[int64]*domain.Booking)}
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

type fakePaymentRepo struct {
	nextID   int64
	payments map[string]*domain.Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{nextID: 1, payments: make(map[string]*domain.Payment)}
}

func (r *fakePaymentRepo) Create(_ context.Context, p *domain.Payment) (*domain.Payment, error) {
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
	p, ok := r.payments[ref]
	if !ok {
		return nil, paymentRepo.ErrPaymentNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *fakePaymentRepo) GetByBookingID(_ context.Context, bookingID int64) (*domain.Payment, error) {
	for _, p := range r.payments {
		if p.BookingID == bookingID {
			copied := *p
			return &copied, nil
		}
	}
	return nil, paymentRepo.ErrPaymentNotFound
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type env struct {
	uc       *UseCase
	bookings *fakeBookingRepo
	payments *fakePaymentRepo
}

func newEnv() *env {
	e := &env{
		bookings: newFakeBookingRepo(),
		payments: newFakePaymentRepo(),
	}
	e.uc = NewUseCase(e.bookings, e.payments, fakeTxManager{}, nopLogger{})
	return e
}

func (e *env) seedBooking(status domain.BookingStatus) *domain.Booking {
	b := &domain.Booking{
		ID:          1,
		TurfID:      1,
		UserID:      42,
		BookingType: domain.BookingTypeHourly,
		TotalAmount: 1760,
		Status:      status,
	}
	e.bookings.bookings[b.ID] = b
	return b
}

func validRequest() *Request {
	return &Request{
		BookingID:      1,
		UserID:         42,
		Method:         domain.MethodUPI,
		TransactionRef: "txn-100",
		AmountPaid:     1760,
	}
}

func TestExecute_Success(t *testing.T) {
	e := newEnv()
	e.seedBooking(domain.StatusConfirmed)

	resp, err := e.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.BookingID)
	assert.Equal(t, "txn-100", resp.TransactionRef)
	assert.Equal(t, string(domain.PaymentSuccess), resp.Status)
	assert.Equal(t, domain.DefaultCurrency, resp.Currency)
	assert.Equal(t, string(domain.StatusConfirmed), resp.BookingStatus)
	assert.False(t, resp.AlreadyProcessed)
}

func TestExecute_ReplayReturnsOriginalPayment(t *testing.T) {
	e := newEnv()
	e.seedBooking(domain.StatusConfirmed)

	first, err := e.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	second, err := e.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.True(t, second.AlreadyProcessed)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, e.payments.payments, 1)
}

func TestExecute_Failures(t *testing.T) {
	t.Run("booking not found", func(t *testing.T) {
		e := newEnv()

		_, err := e.uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("stranger cannot pay", func(t *testing.T) {
		e := newEnv()
		e.seedBooking(domain.StatusConfirmed)

		req := validRequest()
		req.UserID = 99

		_, err := e.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("pending booking not payable", func(t *testing.T) {
		// PENDING не держит слоты, оплата не подменяет проверку конфликтов
		e := newEnv()
		e.seedBooking(domain.StatusPending)

		_, err := e.uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrBookingNotPayable)
		assert.Equal(t, domain.StatusPending, e.bookings.bookings[1].Status)
	})

	t.Run("cancelled booking not payable", func(t *testing.T) {
		e := newEnv()
		e.seedBooking(domain.StatusCancelled)

		_, err := e.uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrBookingNotPayable)
	})

	t.Run("completed booking not payable", func(t *testing.T) {
		e := newEnv()
		e.seedBooking(domain.StatusCompleted)

		_, err := e.uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrBookingNotPayable)
	})

	t.Run("second payment with different ref rejected", func(t *testing.T) {
		e := newEnv()
		e.seedBooking(domain.StatusConfirmed)

		_, err := e.uc.Execute(context.Background(), validRequest())
		require.NoError(t, err)

		req := validRequest()
		req.TransactionRef = "txn-101"

		_, err = e.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrAlreadyPaid)
	})

	t.Run("amount mismatch", func(t *testing.T) {
		e := newEnv()
		e.seedBooking(domain.StatusConfirmed)

		req := validRequest()
		req.AmountPaid = 1000

		_, err := e.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrAmountMismatch)
	})

	t.Run("validation", func(t *testing.T) {
		e := newEnv()
		e.seedBooking(domain.StatusConfirmed)

		cases := []struct {
			name   string
			mutate func(*Request)
		}{
			{"zero booking id", func(r *Request) { r.BookingID = 0 }},
			{"zero user id", func(r *Request) { r.UserID = 0 }},
			{"unknown method", func(r *Request) { r.Method = "CRYPTO" }},
			{"empty ref", func(r *Request) { r.TransactionRef = "" }},
			{"non-positive amount", func(r *Request) { r.AmountPaid = 0 }},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				req := validRequest()
				tc.mutate(req)

				_, err := e.uc.Execute(context.Background(), req)
				assert.ErrorIs(t, err, ErrInvalidInput)
			})
		}
	})
}
