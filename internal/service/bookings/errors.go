package bookings

import "github.com/m04kA/HomeCare-BookingService/internal/domain"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = domain.NewError(domain.KindNotFound, "bookings: booking not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = domain.NewError(domain.KindForbidden, "bookings: access denied")

	// ErrInvalidRating возвращается для оценки вне диапазона 1..5
	ErrInvalidRating = domain.NewError(domain.KindValidationFailed, "bookings: rating must be between 1 and 5")

	// ErrNotCompleted возвращается при попытке оценить незавершенный визит
	ErrNotCompleted = domain.NewError(domain.KindUnprocessable, "bookings: only completed bookings can be rated")

	// ErrAlreadyRated возвращается при повторной оценке
	ErrAlreadyRated = domain.NewError(domain.KindConflict, "bookings: booking already rated")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.NewError(domain.KindValidationFailed, "bookings: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = domain.NewError(domain.KindInternal, "bookings: internal error")
)
