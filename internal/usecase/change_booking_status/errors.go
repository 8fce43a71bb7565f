package change_booking_status

import "github.com/m04kA/HomeCare-BookingService/internal/domain"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = domain.NewError(domain.KindNotFound, "change_booking_status: booking not found")

	// ErrAccessDenied возвращается, когда пользователь не может менять статус бронирования
	ErrAccessDenied = domain.NewError(domain.KindForbidden, "change_booking_status: access denied")

	// ErrUnknownStatus возвращается для неизвестного целевого статуса
	ErrUnknownStatus = domain.NewError(domain.KindValidationFailed, "change_booking_status: unknown booking status")

	// ErrConcurrentUpdate возвращается, когда статус изменили параллельно
	ErrConcurrentUpdate = domain.NewError(domain.KindConflict, "change_booking_status: booking was modified concurrently")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.NewError(domain.KindValidationFailed, "change_booking_status: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = domain.NewError(domain.KindInternal, "change_booking_status: internal error")
)
