package slots

import "github.com/m04kA/HomeCare-BookingService/internal/domain"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = domain.NewError(domain.KindNotFound, "slots: slot not found")

	// ErrSlotNotAvailable возвращается при попытке заблокировать занятый или уже заблокированный слот
	ErrSlotNotAvailable = domain.NewError(domain.KindConflict, "slots: slot is not available")

	// ErrSlotNotBlocked возвращается при попытке разблокировать слот, который не заблокирован
	ErrSlotNotBlocked = domain.NewError(domain.KindUnprocessable, "slots: slot is not blocked by admin")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.NewError(domain.KindValidationFailed, "slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = domain.NewError(domain.KindInternal, "slots: internal error")
)
