package payment

import "errors"

var (
	// ErrPaymentNotFound возвращается, когда платеж не найден
	ErrPaymentNotFound = errors.New("payment.repository: payment not found")

	// ErrDuplicateTransactionRef возвращается при попытке записать платеж
	// с уже существующим transaction_ref (нарушение уникального индекса)
	ErrDuplicateTransactionRef = errors.New("payment.repository: duplicate transaction ref")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("payment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("payment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("payment.repository: failed to scan row")
)
