package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TurfService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TurfService/internal/infra/storage/booking"
	paymentRepo "github.com/m04kA/SMC-TurfService/internal/infra/storage/payment"
	turfClient "github.com/m04kA/SMC-TurfService/internal/integrations/turfservice"
	"github.com/m04kA/SMC-TurfService/internal/service/bookings/models"
)

// Service сервис для чтения и отмены бронирований
type Service struct {
	bookingRepo BookingRepository
	slotRepo    SlotRepository
	paymentRepo PaymentRepository
	turfClient  TurfServiceClient
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	paymentRepo PaymentRepository,
	turfClient TurfServiceClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		slotRepo:    slotRepo,
		paymentRepo: paymentRepo,
		turfClient:  turfClient,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Доступно владельцу бронирования и владельцу площадки
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.checkUserAccess(ctx, booking, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, err
	}

	resp := models.FromDomainBooking(booking)

	payment, err := s.paymentRepo.GetByBookingID(ctx, booking.ID)
	if err != nil && !errors.Is(err, paymentRepo.ErrPaymentNotFound) {
		s.logger.Error("GetByID: failed to get payment for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - payment lookup error: %v", ErrInternal, err)
	}
	resp.Payment = models.FromDomainPayment(payment)

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return resp, nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetTurfBookings получает бронирования площадки с гибкой фильтрацией
// Доступно только владельцу площадки
func (s *Service) GetTurfBookings(ctx context.Context, req *models.GetTurfBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetTurfBookings: fetching bookings for turf=%d, user=%d", req.TurfID, req.UserID)

	if err := s.checkOwnerAccess(ctx, req.TurfID, req.UserID); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetTurfBookings: invalid filter for turf=%d: %v", req.TurfID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByTurfWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetTurfBookings: repository error for turf=%d: %v", req.TurfID, err)
		return nil, fmt.Errorf("%w: GetTurfBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetTurfBookings: successfully fetched %d bookings for turf=%d", len(bookings), req.TurfID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование
// Пользователь может отменить своё бронирование, владелец площадки - любое
// бронирование своей площадки. Запись бронирования сохраняется (soft delete),
// его BOOKED слоты освобождаются в той же транзакции.
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	if booking.UserID != req.UserID {
		if err := s.checkOwnerAccess(ctx, booking.TurfID, req.UserID); err != nil {
			s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%d", req.UserID, bookingID)
			return ErrAccessDenied
		}
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.bookingRepo.Cancel(txCtx, bookingID, req.CancellationReason); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		// Освобождаем слоты: строки удаляются, интервалы снова доступны
		if err := s.slotRepo.ReleaseByBookingID(txCtx, bookingID); err != nil {
			return fmt.Errorf("%w: Cancel - failed to release slots: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		s.logger.Error("Cancel: failed to cancel booking id=%d: %v", bookingID, err)
		return err
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return nil
}

// Вспомогательные методы

// checkUserAccess проверяет доступ к бронированию
// Бронирование видит его владелец или владелец площадки
func (s *Service) checkUserAccess(ctx context.Context, booking *domain.Booking, userID int64) error {
	if booking.UserID == userID {
		return nil
	}

	if err := s.checkOwnerAccess(ctx, booking.TurfID, userID); err != nil {
		return ErrAccessDenied
	}

	return nil
}

// checkOwnerAccess проверяет, что пользователь владеет площадкой
func (s *Service) checkOwnerAccess(ctx context.Context, turfID int64, userID int64) error {
	turf, err := s.turfClient.GetTurf(ctx, turfID)
	if err != nil {
		if errors.Is(err, turfClient.ErrTurfNotFound) {
			s.logger.Warn("checkOwnerAccess: turf id=%d not found", turfID)
			return ErrTurfNotFound
		}
		s.logger.Error("checkOwnerAccess: failed to get turf id=%d: %v", turfID, err)
		return fmt.Errorf("%w: failed to get turf: %v", ErrInternal, err)
	}

	if turf.OwnerID != userID {
		return ErrAccessDenied
	}

	return nil
}
