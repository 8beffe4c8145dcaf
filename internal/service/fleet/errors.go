package fleet

import "errors"

var (
	// ErrModelNotFound возвращается, когда модель автомобиля не найдена
	ErrModelNotFound = errors.New("vehicle model not found")

	// ErrUnitNotFound возвращается, когда автомобиль не найден
	ErrUnitNotFound = errors.New("vehicle unit not found")

	// ErrBranchNotFound возвращается, когда филиал не найден
	ErrBranchNotFound = errors.New("branch not found")

	// ErrAddonNotFound возвращается, когда дополнительная услуга не найдена
	ErrAddonNotFound = errors.New("addon not found")

	// ErrDuplicatePlate возвращается при попытке создать автомобиль
	// с уже существующим номерным знаком
	ErrDuplicatePlate = errors.New("duplicate license plate")

	// ErrDuplicateModel возвращается при попытке создать уже существующую
	// пару марка+модель
	ErrDuplicateModel = errors.New("duplicate vehicle model")

	// ErrDuplicateAddonName возвращается при попытке создать услугу
	// с уже существующим именем
	ErrDuplicateAddonName = errors.New("duplicate addon name")

	// ErrUnitHasReservations возвращается при попытке списать автомобиль,
	// на который ссылаются резервации
	ErrUnitHasReservations = errors.New("unit is referenced by reservations")

	// ErrUnitHasPendingReservations возвращается при попытке вывести
	// автомобиль из эксплуатации при наличии ожидающих резерваций
	ErrUnitHasPendingReservations = errors.New("unit has pending reservations assigned")

	// ErrUnitDecommissioned возвращается при попытке изменить состояние
	// списанного автомобиля
	ErrUnitDecommissioned = errors.New("unit is decommissioned")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
