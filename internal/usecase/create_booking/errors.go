package create_booking

import "errors"

var (
	// ErrTurfNotFound возвращается, когда площадка не найдена
	ErrTurfNotFound = errors.New("create_booking: turf not found")

	// ErrTurfInactive возвращается, когда площадка выключена из бронирования
	ErrTurfInactive = errors.New("create_booking: turf is not active")

	// ErrInvalidDate возвращается при попытке бронирования на прошедшую дату
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает горизонт бронирования
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrInvalidTimeSlot возвращается, когда интервал вне рабочих часов площадки
	// или не выровнен по часовой границе
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrSlotNotAvailable возвращается, когда интервал занят другим бронированием,
	// слотом в нерабочем состоянии или окном обслуживания
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrPaymentAmountMismatch возвращается, когда сумма платежа не совпадает
	// с итоговой стоимостью бронирования
	ErrPaymentAmountMismatch = errors.New("create_booking: payment amount does not match total")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// errDuplicateRefRace внутренняя ошибка: два конкурирующих запроса с одним
// transaction_ref, наш проиграл гонку за уникальный индекс.
// После отката транзакции платеж перечитывается и возвращается как replay.
var errDuplicateRefRace = errors.New("create_booking: lost duplicate transaction_ref race")
