package turfservice

import "errors"

var (
	// ErrTurfNotFound возвращается, когда площадка не найдена в реестре
	ErrTurfNotFound = errors.New("turf not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("turfservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("turfservice client: invalid response")
)
