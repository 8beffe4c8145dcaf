package unit

import "errors"

var (
	// ErrUnitNotFound возвращается, когда единица не найдена
	ErrUnitNotFound = errors.New("unit.repository: unit not found")

	// ErrDuplicatePlate возвращается при попытке создать единицу
	// с уже существующим госномером
	ErrDuplicatePlate = errors.New("unit.repository: duplicate license plate")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("unit.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("unit.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("unit.repository: failed to scan row")
)
