package vehiclemodel

import "errors"

var (
	// ErrModelNotFound возвращается, когда модель не найдена
	ErrModelNotFound = errors.New("vehiclemodel.repository: model not found")

	// ErrDuplicateModel возвращается при попытке создать модель
	// с уже существующей парой марка+модель
	ErrDuplicateModel = errors.New("vehiclemodel.repository: duplicate brand and model")

	// ErrInvalidPolicyRow возвращается, когда строка модели содержит
	// некорректную политику отмены (неизвестный вид или недопустимый процент)
	ErrInvalidPolicyRow = errors.New("vehiclemodel.repository: invalid cancellation policy row")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("vehiclemodel.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("vehiclemodel.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("vehiclemodel.repository: failed to scan row")
)
