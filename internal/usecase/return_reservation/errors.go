package return_reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда резервация не найдена
	ErrReservationNotFound = errors.New("return_reservation: reservation not found")

	// ErrInvalidTransition возвращается при попытке вернуть автомобиль
	// по резервации не в состоянии delivered
	ErrInvalidTransition = errors.New("return_reservation: reservation is not delivered")

	// ErrAccessDenied возвращается, когда пользователь не является сотрудником
	ErrAccessDenied = errors.New("return_reservation: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("return_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("return_reservation: internal error")
)
