package create_reservation

import "errors"

var (
	// ErrModelNotFound возвращается, когда модель автомобиля не найдена
	ErrModelNotFound = errors.New("create_reservation: vehicle model not found")

	// ErrBranchNotFound возвращается, когда филиал не найден
	ErrBranchNotFound = errors.New("create_reservation: branch not found")

	// ErrInsufficientAvailability возвращается, когда у модели нет
	// свободного автомобиля на запрошенный период
	ErrInsufficientAvailability = errors.New("create_reservation: no available unit for the requested period")

	// ErrDateInPast возвращается, когда начало аренды уже прошло
	ErrDateInPast = errors.New("create_reservation: start date is in the past")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
