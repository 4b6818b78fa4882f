package manage_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-TurfService/internal/domain"
	"github.com/m04kA/SMC-TurfService/pkg/types"
)

// validateSaveRequest валидирует запрос полной замены разметки
func validateSaveRequest(req *SaveRequest) error {
	if err := validateTarget(req.TurfID, req.UserID, req.Date); err != nil {
		return err
	}

	for i, in := range req.Slots {
		if err := validateInterval(in.StartTime, in.EndTime); err != nil {
			return fmt.Errorf("%w: slot #%d: %v", ErrInvalidInput, i, err)
		}
		if !in.Status.Valid() {
			return fmt.Errorf("%w: slot #%d: unknown status %q", ErrInvalidInput, i, in.Status)
		}
		if in.Status == domain.SlotBooked {
			return fmt.Errorf("%w: slot #%d: BOOKED is set only by the booking flow", ErrInvalidInput, i)
		}
		if in.Price < 0 {
			return fmt.Errorf("%w: slot #%d: price must not be negative", ErrInvalidInput, i)
		}
		if len(in.Label) > domain.MaxLabelLength {
			return fmt.Errorf("%w: slot #%d: label is too long", ErrInvalidInput, i)
		}
	}

	// Интервалы внутри запроса не должны пересекаться между собой
	for i := range req.Slots {
		for j := i + 1; j < len(req.Slots); j++ {
			if domain.Overlaps(req.Slots[i].StartTime, req.Slots[i].EndTime, req.Slots[j].StartTime, req.Slots[j].EndTime) {
				return fmt.Errorf("%w: slots #%d and #%d overlap", ErrInvalidInput, i, j)
			}
		}
	}

	return nil
}

// validatePatchRequest валидирует запрос точечных изменений
func validatePatchRequest(req *PatchRequest) error {
	if err := validateTarget(req.TurfID, req.UserID, req.Date); err != nil {
		return err
	}

	if len(req.Patches) == 0 {
		return fmt.Errorf("%w: patches are required", ErrInvalidInput)
	}

	for i, p := range req.Patches {
		if err := validateInterval(p.StartTime, p.EndTime); err != nil {
			return fmt.Errorf("%w: patch #%d: %v", ErrInvalidInput, i, err)
		}
		if p.Patch.IsEmpty() {
			return fmt.Errorf("%w: patch #%d changes nothing", ErrInvalidInput, i)
		}
		if p.Patch.Status != nil {
			if !p.Patch.Status.Valid() {
				return fmt.Errorf("%w: patch #%d: unknown status %q", ErrInvalidInput, i, *p.Patch.Status)
			}
			if *p.Patch.Status == domain.SlotBooked {
				return fmt.Errorf("%w: patch #%d: BOOKED is set only by the booking flow", ErrInvalidInput, i)
			}
		}
		if p.Patch.Price != nil && *p.Patch.Price < 0 {
			return fmt.Errorf("%w: patch #%d: price must not be negative", ErrInvalidInput, i)
		}
		if p.Patch.Label != nil && len(*p.Patch.Label) > domain.MaxLabelLength {
			return fmt.Errorf("%w: patch #%d: label is too long", ErrInvalidInput, i)
		}
	}

	return nil
}

func validateTarget(turfID, userID int64, date time.Time) error {
	if turfID <= 0 {
		return fmt.Errorf("%w: turfID must be positive", ErrInvalidInput)
	}
	if userID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}

func validateInterval(start, end types.TimeString) error {
	if err := start.Validate(); err != nil {
		return fmt.Errorf("invalid startTime: %v", err)
	}
	if err := end.Validate(); err != nil {
		return fmt.Errorf("invalid endTime: %v", err)
	}
	if !start.IsBefore(end) {
		return fmt.Errorf("startTime %s must be before endTime %s", start, end)
	}
	return nil
}
