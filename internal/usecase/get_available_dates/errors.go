package get_available_dates

import "github.com/m04kA/HomeCare-BookingService/internal/domain"

var (
	// ErrInvalidRange возвращается, если конец периода раньше начала
	ErrInvalidRange = domain.NewError(domain.KindValidationFailed, "get_available_dates: end date is before start date")

	// ErrRangeTooLong возвращается, если период длиннее допустимого
	ErrRangeTooLong = domain.NewError(domain.KindValidationFailed, "get_available_dates: date range is too long")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = domain.NewError(domain.KindInternal, "get_available_dates: internal error")
)
