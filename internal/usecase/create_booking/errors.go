package create_booking

import "github.com/m04kA/HomeCare-BookingService/internal/domain"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = domain.NewError(domain.KindValidationFailed, "create_booking: service not found")

	// ErrServiceInactive возвращается, когда услуга отключена
	ErrServiceInactive = domain.NewError(domain.KindValidationFailed, "create_booking: service is not active")

	// ErrTooSoon возвращается, когда до визита осталось меньше минимального времени
	ErrTooSoon = domain.NewError(domain.KindValidationFailed, "create_booking: booking is too soon")

	// ErrTooFarAhead возвращается, когда визит дальше окна предварительной записи
	ErrTooFarAhead = domain.NewError(domain.KindValidationFailed, "create_booking: booking is too far ahead")

	// ErrDateFull возвращается, когда дневной лимит бронирований исчерпан
	ErrDateFull = domain.NewError(domain.KindConflict, "create_booking: date is fully booked")

	// ErrSlotNotAvailable возвращается, когда слот не существует или уже занят
	ErrSlotNotAvailable = domain.NewError(domain.KindConflict, "create_booking: slot is not available")

	// ErrConcurrentBooking возвращается, когда параллельный запрос изменил данные
	ErrConcurrentBooking = domain.NewError(domain.KindConflict, "create_booking: concurrent booking, please retry")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.NewError(domain.KindValidationFailed, "create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = domain.NewError(domain.KindInternal, "create_booking: internal error")
)
