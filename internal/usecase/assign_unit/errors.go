package assign_unit

import "errors"

var (
	// ErrReservationNotFound возвращается, когда резервация не найдена
	ErrReservationNotFound = errors.New("assign_unit: reservation not found")

	// ErrUnitNotFound возвращается, когда автомобиль не найден
	ErrUnitNotFound = errors.New("assign_unit: vehicle unit not found")

	// ErrInvalidTransition возвращается, когда резервация не в состоянии pending
	ErrInvalidTransition = errors.New("assign_unit: reservation is not pending")

	// ErrUnitUnavailable возвращается, когда автомобиль не проходит проверку:
	// неактивен, чужой модели или филиала, либо занят пересекающейся резервацией
	ErrUnitUnavailable = errors.New("assign_unit: unit is unavailable for this reservation")

	// ErrAddonNotFound возвращается, когда запрошенная услуга не существует
	// или была удалена
	ErrAddonNotFound = errors.New("assign_unit: addon not found")

	// ErrAccessDenied возвращается, когда пользователь не является сотрудником
	ErrAccessDenied = errors.New("assign_unit: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("assign_unit: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("assign_unit: internal error")
)
