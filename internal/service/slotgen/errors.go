package slotgen

import "github.com/m04kA/HomeCare-BookingService/internal/domain"

var (
	// ErrInvalidRange возвращается, когда конец периода раньше начала
	ErrInvalidRange = domain.NewError(domain.KindValidationFailed, "slotgen: end date is before start date")

	// ErrRangeTooLong возвращается, когда период генерации слишком длинный
	ErrRangeTooLong = domain.NewError(domain.KindValidationFailed, "slotgen: date range is too long")

	// ErrInternal возвращается при внутренних ошибках генератора
	ErrInternal = domain.NewError(domain.KindInternal, "slotgen: internal error")
)
