package slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot.repository: slot not found")

	// ErrSlotNotAvailable возвращается, когда слот не в статусе available (занят, заблокирован, выходной)
	ErrSlotNotAvailable = errors.New("slot.repository: slot not available")

	// ErrSlotNotBlocked возвращается при попытке разблокировать слот, который не заблокирован администратором
	ErrSlotNotBlocked = errors.New("slot.repository: slot is not blocked")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slot.repository: failed to scan row")
)
