package cancel_booking

import "github.com/m04kA/HomeCare-BookingService/internal/domain"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = domain.NewError(domain.KindNotFound, "cancel_booking: booking not found")

	// ErrAccessDenied возвращается, когда пользователь пытается отменить чужое бронирование
	ErrAccessDenied = domain.NewError(domain.KindForbidden, "cancel_booking: access denied")

	// ErrNotCancellable возвращается, когда статус бронирования не допускает отмену пациентом
	ErrNotCancellable = domain.NewError(domain.KindUnprocessable, "cancel_booking: booking cannot be cancelled in current status")

	// ErrTooLateToCancel возвращается, когда до визита осталось меньше допустимого
	ErrTooLateToCancel = domain.NewError(domain.KindUnprocessable, "cancel_booking: too late to cancel")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.NewError(domain.KindValidationFailed, "cancel_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = domain.NewError(domain.KindInternal, "cancel_booking: internal error")
)
