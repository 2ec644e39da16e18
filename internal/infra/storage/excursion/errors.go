package excursion

import "errors"

var (
	// ErrExcursionNotFound возвращается, когда экскурсия не найдена
	ErrExcursionNotFound = errors.New("excursion.repository: excursion not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("excursion.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("excursion.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("excursion.repository: failed to scan row")
)
