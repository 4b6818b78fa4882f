package record_payment

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("record_payment: booking not found")

	// ErrAccessDenied возвращается, когда платеж пытается записать не владелец бронирования
	ErrAccessDenied = errors.New("record_payment: access denied")

	// ErrBookingNotPayable возвращается для отмененных и завершенных бронирований
	ErrBookingNotPayable = errors.New("record_payment: booking cannot accept payment")

	// ErrAlreadyPaid возвращается, когда у бронирования уже есть платеж
	// с другим transaction_ref
	ErrAlreadyPaid = errors.New("record_payment: booking is already paid")

	// ErrAmountMismatch возвращается, когда сумма платежа не совпадает
	// с итоговой стоимостью бронирования
	ErrAmountMismatch = errors.New("record_payment: payment amount does not match total")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("record_payment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("record_payment: internal error")
)

// errDuplicateRefRace внутренняя ошибка: конкурент записал платеж с этим
// transaction_ref первым, его запись перечитывается после отката транзакции
var errDuplicateRefRace = errors.New("record_payment: lost duplicate transaction_ref race")
