package addon

import "errors"

var (
	// ErrAddonNotFound возвращается, когда дополнительная услуга не найдена
	ErrAddonNotFound = errors.New("addon.repository: addon not found")

	// ErrDuplicateName возвращается при попытке создать услугу
	// с уже существующим именем (без учета регистра)
	ErrDuplicateName = errors.New("addon.repository: duplicate addon name")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("addon.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("addon.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("addon.repository: failed to scan row")
)
