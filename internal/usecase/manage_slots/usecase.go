package manage_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TurfService/internal/domain"
	turfClient "github.com/m04kA/SMC-TurfService/internal/integrations/turfservice"
)

// UseCase use case управления ручной разметкой слотов владельцем площадки
type UseCase struct {
	slotRepo   SlotRepository
	turfClient TurfServiceClient
	txManager  TransactionManager
	logger     Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	turfClient TurfServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:   slotRepo,
		turfClient: turfClient,
		txManager:  txManager,
		logger:     logger,
	}
}

// SaveDay полностью заменяет ручную разметку дня площадки.
// BOOKED слоты неприкосновенны: они остаются, а новая разметка
// не может пересекаться с ними.
func (uc *UseCase) SaveDay(ctx context.Context, req *SaveRequest) (*Response, error) {
	uc.logger.Info("SaveSlots: turf=%d, user=%d, date=%s, slots=%d",
		req.TurfID, req.UserID, req.Date.Format(domain.DateFormat), len(req.Slots))

	if err := validateSaveRequest(req); err != nil {
		uc.logger.Warn("SaveSlots: validation failed: %v", err)
		return nil, err
	}

	if err := uc.authorizeOwner(ctx, req.TurfID, req.UserID); err != nil {
		return nil, err
	}

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// FOR UPDATE: пока меняем разметку, бронирования этого дня подождут
		existing, err := uc.slotRepo.GetByTurfAndDate(txCtx, req.TurfID, req.Date)
		if err != nil {
			uc.logger.Error("SaveSlots: failed to get slots: %v", err)
			return fmt.Errorf("%w: failed to get slots: %v", ErrInternal, err)
		}

		// Новая разметка не должна пересекаться с занятыми слотами
		for _, s := range existing {
			if !s.IsBooked() {
				continue
			}
			for _, in := range req.Slots {
				if s.OverlapsInterval(in.StartTime, in.EndTime) {
					uc.logger.Warn("SaveSlots: input %s-%s overlaps booked slot id=%d", in.StartTime, in.EndTime, s.ID)
					return fmt.Errorf("%w: interval %s-%s overlaps a booked slot", ErrSlotBooked, in.StartTime, in.EndTime)
				}
			}
		}

		if err := uc.slotRepo.DeleteNonBookedByTurfAndDate(txCtx, req.TurfID, req.Date); err != nil {
			uc.logger.Error("SaveSlots: failed to delete old slots: %v", err)
			return fmt.Errorf("%w: failed to delete old slots: %v", ErrInternal, err)
		}

		toCreate := make([]*domain.Slot, 0, len(req.Slots))
		for _, in := range req.Slots {
			toCreate = append(toCreate, &domain.Slot{
				TurfID:    req.TurfID,
				Date:      req.Date,
				StartTime: in.StartTime,
				EndTime:   in.EndTime,
				Status:    in.Status,
				Price:     in.Price,
				Label:     in.Label,
			})
		}

		if err := uc.slotRepo.BulkCreate(txCtx, toCreate); err != nil {
			uc.logger.Error("SaveSlots: failed to create slots: %v", err)
			return fmt.Errorf("%w: failed to create slots: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return uc.respondWithDay(ctx, req.TurfID, req.Date)
}

// PatchSlots применяет точечные изменения к существующим слотам дня.
// Слот адресуется точным интервалом; BOOKED слоты не изменяются,
// перевод слота в BOOKED вручную запрещен.
func (uc *UseCase) PatchSlots(ctx context.Context, req *PatchRequest) (*Response, error) {
	uc.logger.Info("PatchSlots: turf=%d, user=%d, date=%s, patches=%d",
		req.TurfID, req.UserID, req.Date.Format(domain.DateFormat), len(req.Patches))

	if err := validatePatchRequest(req); err != nil {
		uc.logger.Warn("PatchSlots: validation failed: %v", err)
		return nil, err
	}

	if err := uc.authorizeOwner(ctx, req.TurfID, req.UserID); err != nil {
		return nil, err
	}

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		existing, err := uc.slotRepo.GetByTurfAndDate(txCtx, req.TurfID, req.Date)
		if err != nil {
			uc.logger.Error("PatchSlots: failed to get slots: %v", err)
			return fmt.Errorf("%w: failed to get slots: %v", ErrInternal, err)
		}

		byInterval := make(map[intervalKey]*domain.Slot, len(existing))
		for _, s := range existing {
			byInterval[intervalKey{s.StartTime.String(), s.EndTime.String()}] = s
		}

		for _, p := range req.Patches {
			slot, ok := byInterval[intervalKey{p.StartTime.String(), p.EndTime.String()}]
			if !ok {
				uc.logger.Warn("PatchSlots: slot %s-%s not found", p.StartTime, p.EndTime)
				return fmt.Errorf("%w: slot %s-%s", ErrSlotNotFound, p.StartTime, p.EndTime)
			}

			if slot.IsBooked() {
				uc.logger.Warn("PatchSlots: slot id=%d is booked", slot.ID)
				return fmt.Errorf("%w: slot %s-%s", ErrSlotBooked, p.StartTime, p.EndTime)
			}

			if err := uc.slotRepo.Update(txCtx, slot.ID, p.Patch); err != nil {
				uc.logger.Error("PatchSlots: failed to update slot id=%d: %v", slot.ID, err)
				return fmt.Errorf("%w: failed to update slot: %v", ErrInternal, err)
			}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return uc.respondWithDay(ctx, req.TurfID, req.Date)
}

type intervalKey struct {
	start string
	end   string
}

// authorizeOwner проверяет, что пользователь владеет площадкой
func (uc *UseCase) authorizeOwner(ctx context.Context, turfID, userID int64) error {
	turf, err := uc.turfClient.GetTurf(ctx, turfID)
	if err != nil {
		if errors.Is(err, turfClient.ErrTurfNotFound) {
			uc.logger.Warn("ManageSlots: turf id=%d not found", turfID)
			return ErrTurfNotFound
		}
		uc.logger.Error("ManageSlots: failed to get turf id=%d: %v", turfID, err)
		return fmt.Errorf("%w: failed to get turf: %v", ErrInternal, err)
	}

	if turf.OwnerID != userID {
		uc.logger.Warn("ManageSlots: user id=%d is not the owner of turf id=%d", userID, turfID)
		return ErrAccessDenied
	}

	return nil
}

// respondWithDay возвращает итоговую разметку дня после изменений
func (uc *UseCase) respondWithDay(ctx context.Context, turfID int64, date time.Time) (*Response, error) {
	slots, err := uc.slotRepo.GetByTurfAndDate(ctx, turfID, date)
	if err != nil {
		uc.logger.Error("ManageSlots: failed to reload slots: %v", err)
		return nil, fmt.Errorf("%w: failed to reload slots: %v", ErrInternal, err)
	}

	return toResponse(turfID, date, slots), nil
}
