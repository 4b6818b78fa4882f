package manage_slots

import "errors"

var (
	// ErrTurfNotFound возвращается, когда площадка не найдена
	ErrTurfNotFound = errors.New("manage_slots: turf not found")

	// ErrAccessDenied возвращается, когда разметку меняет не владелец площадки
	ErrAccessDenied = errors.New("manage_slots: access denied")

	// ErrSlotNotFound возвращается, когда изменяемый слот не найден
	ErrSlotNotFound = errors.New("manage_slots: slot not found")

	// ErrSlotBooked возвращается при попытке изменить BOOKED слот
	// Занятые слоты меняются только через отмену бронирования
	ErrSlotBooked = errors.New("manage_slots: slot is booked")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("manage_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("manage_slots: internal error")
)
