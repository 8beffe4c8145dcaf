package cancel_reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда резервация не найдена
	ErrReservationNotFound = errors.New("cancel_reservation: reservation not found")

	// ErrInvalidTransition возвращается при попытке отменить резервацию
	// не в состоянии pending. Выданный автомобиль отменить нельзя.
	ErrInvalidTransition = errors.New("cancel_reservation: reservation cannot be cancelled")

	// ErrAccessDenied возвращается, когда пользователь не владелец
	// резервации и не сотрудник
	ErrAccessDenied = errors.New("cancel_reservation: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_reservation: internal error")
)
