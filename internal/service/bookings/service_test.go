package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TurfService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TurfService/internal/infra/storage/booking"
	paymentRepo "github.com/m04kA/SMC-TurfService/internal/infra/storage/payment"
	"github.com/m04kA/SMC-TurfService/internal/integrations/turfservice"
	"github.com/m04kA/SMC-TurfService/internal/service/bookings/models"
	"github.com/m04kA/SMC-TurfService/pkg/ptr"
	"github.com/m04kA/SMC-TurfService/pkg/types"
)

var testDate = time.Date(2025, 10, 3, 0, 0, 0, 0, time.UTC)

const (
	customerID = int64(42)
	ownerID    = int64(100)
	strangerID = int64(200)
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeBookingRepo struct {
	bookings  map[int64]*domain.Booking
	cancelled map[int64]string
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		bookings:  make(map[int64]*domain.Booking),
		cancelled: make(map[int64]string),
	}
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeBookingRepo) GetByUserID(_ context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if b.UserID != userID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		copied := *b
		result = append(result, &copied)
	}
	return result, nil
}

func (r *fakeBookingRepo) GetByTurfWithFilter(_ context.Context, filter domain.TurfBookingsFilter) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if b.TurfID != filter.TurfID {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		if !filter.IncludeInactive && filter.Status == nil && b.IsCancelled() {
			continue
		}
		copied := *b
		result = append(result, &copied)
	}
	return result, nil
}

func (r *fakeBookingRepo) Cancel(_ context.Context, id int64, reason string) error {
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = domain.StatusCancelled
	b.CancellationReason = &reason
	r.cancelled[id] = reason
	return nil
}

type fakeSlotRepo struct {
	released []int64
}

func (r *fakeSlotRepo) ReleaseByBookingID(_ context.Context, bookingID int64) error {
	r.released = append(r.released, bookingID)
	return nil
}

type fakePaymentRepo struct {
	payments map[int64]*domain.Payment
}

func (r *fakePaymentRepo) GetByBookingID(_ context.Context, bookingID int64) (*domain.Payment, error) {
	p, ok := r.payments[bookingID]
	if !ok {
		return nil, paymentRepo.ErrPaymentNotFound
	}
	return p, nil
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

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type env struct {
	svc      *Service
	bookings *fakeBookingRepo
	slots    *fakeSlotRepo
	payments *fakePaymentRepo
	turfs    *fakeTurfClient
}

func newEnv() *env {
	e := &env{
		bookings: newFakeBookingRepo(),
		slots:    &fakeSlotRepo{},
		payments: &fakePaymentRepo{payments: make(map[int64]*domain.Payment)},
		turfs:    &fakeTurfClient{turf: &turfservice.Turf{ID: 1, OwnerID: ownerID, IsActive: true}},
	}
	e.svc = NewService(e.bookings, e.slots, e.payments, e.turfs, fakeTxManager{}, nopLogger{})
	return e
}

func (e *env) seedBooking(id int64, status domain.BookingStatus) *domain.Booking {
	start, end := types.TimeString("10:00"), types.TimeString("12:00")
	b := &domain.Booking{
		ID:          id,
		TurfID:      1,
		UserID:      customerID,
		BookingType: domain.BookingTypeHourly,
		BookingDate: testDate,
		StartTime:   &start,
		EndTime:     &end,
		TotalAmount: 1760,
		Status:      status,
	}
	e.bookings.bookings[id] = b
	return b
}

func TestGetByID(t *testing.T) {
	t.Run("booking owner sees the booking with payment", func(t *testing.T) {
		e := newEnv()
		e.seedBooking(1, domain.StatusConfirmed)
		e.payments.payments[1] = &domain.Payment{
			ID:             7,
			BookingID:      1,
			Method:         domain.MethodUPI,
			TransactionRef: "txn-001",
			AmountPaid:     1760,
			Currency:       domain.DefaultCurrency,
			Status:         domain.PaymentSuccess,
		}

		resp, err := e.svc.GetByID(context.Background(), 1, customerID)
		require.NoError(t, err)

		assert.Equal(t, int64(1), resp.ID)
		require.NotNil(t, resp.Payment)
		assert.Equal(t, "txn-001", resp.Payment.TransactionRef)
	})

	t.Run("turf owner sees the booking", func(t *testing.T) {
		e := newEnv()
		e.seedBooking(1, domain.StatusConfirmed)

		resp, err := e.svc.GetByID(context.Background(), 1, ownerID)
		require.NoError(t, err)
		assert.Nil(t, resp.Payment)
	})

	t.Run("stranger denied", func(t *testing.T) {
		e := newEnv()
		e.seedBooking(1, domain.StatusConfirmed)

		_, err := e.svc.GetByID(context.Background(), 1, strangerID)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("not found", func(t *testing.T) {
		e := newEnv()

		_, err := e.svc.GetByID(context.Background(), 99, customerID)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestGetUserBookings(t *testing.T) {
	e := newEnv()
	e.seedBooking(1, domain.StatusConfirmed)
	e.seedBooking(2, domain.StatusCancelled)

	t.Run("all bookings", func(t *testing.T) {
		resp, err := e.svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
			UserID: customerID,
		})
		require.NoError(t, err)
		assert.Len(t, resp.Bookings, 2)
	})

	t.Run("filtered by status", func(t *testing.T) {
		resp, err := e.svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
			UserID: customerID,
			Status: ptr.Ptr(string(domain.StatusCancelled)),
		})
		require.NoError(t, err)
		require.Len(t, resp.Bookings, 1)
		assert.Equal(t, string(domain.StatusCancelled), resp.Bookings[0].Status)
	})

	t.Run("invalid status", func(t *testing.T) {
		_, err := e.svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
			UserID: customerID,
			Status: ptr.Ptr("UNKNOWN"),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestGetTurfBookings(t *testing.T) {
	t.Run("owner gets active bookings by default", func(t *testing.T) {
		e := newEnv()
		e.seedBooking(1, domain.StatusConfirmed)
		e.seedBooking(2, domain.StatusCancelled)

		resp, err := e.svc.GetTurfBookings(context.Background(), &models.GetTurfBookingsRequest{
			UserID: ownerID,
			TurfID: 1,
		})
		require.NoError(t, err)
		require.Len(t, resp.Bookings, 1)
		assert.Equal(t, string(domain.StatusConfirmed), resp.Bookings[0].Status)
	})

	t.Run("non-owner denied", func(t *testing.T) {
		e := newEnv()

		_, err := e.svc.GetTurfBookings(context.Background(), &models.GetTurfBookingsRequest{
			UserID: customerID,
			TurfID: 1,
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("unknown turf", func(t *testing.T) {
		e := newEnv()
		e.turfs.err = turfservice.ErrTurfNotFound

		_, err := e.svc.GetTurfBookings(context.Background(), &models.GetTurfBookingsRequest{
			UserID: ownerID,
			TurfID: 99,
		})
		assert.ErrorIs(t, err, ErrTurfNotFound)
	})
}

func TestCancel(t *testing.T) {
	t.Run("owner cancels and slots are released", func(t *testing.T) {
		e := newEnv()
		e.seedBooking(1, domain.StatusConfirmed)

		err := e.svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
			UserID:             customerID,
			CancellationReason: "планы изменились",
		})
		require.NoError(t, err)

		assert.Equal(t, "планы изменились", e.bookings.cancelled[1])
		assert.Equal(t, []int64{1}, e.slots.released)
	})

	t.Run("turf owner can cancel any booking of the turf", func(t *testing.T) {
		e := newEnv()
		e.seedBooking(1, domain.StatusConfirmed)

		err := e.svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
			UserID:             ownerID,
			CancellationReason: "площадка закрыта",
		})
		require.NoError(t, err)
	})

	t.Run("stranger denied", func(t *testing.T) {
		e := newEnv()
		e.seedBooking(1, domain.StatusConfirmed)

		err := e.svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
			UserID: strangerID,
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.Empty(t, e.slots.released)
	})

	t.Run("already cancelled", func(t *testing.T) {
		e := newEnv()
		e.seedBooking(1, domain.StatusCancelled)

		err := e.svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
			UserID: customerID,
		})
		assert.ErrorIs(t, err, ErrCannotCancel)
	})

	t.Run("completed cannot be cancelled", func(t *testing.T) {
		e := newEnv()
		e.seedBooking(1, domain.StatusCompleted)

		err := e.svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
			UserID: customerID,
		})
		assert.ErrorIs(t, err, ErrCannotCancel)
	})

	t.Run("not found", func(t *testing.T) {
		e := newEnv()

		err := e.svc.Cancel(context.Background(), 99, &models.CancelBookingRequest{
			UserID: customerID,
		})
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}
