package payments

import "github.com/m04kA/HomeCare-BookingService/internal/domain"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = domain.NewError(domain.KindNotFound, "payments: booking not found")

	// ErrPaymentNotFound возвращается, когда у бронирования нет записи об оплате
	ErrPaymentNotFound = domain.NewError(domain.KindNotFound, "payments: payment not found")

	// ErrAccessDenied возвращается, когда бронирование принадлежит другому пациенту
	ErrAccessDenied = domain.NewError(domain.KindForbidden, "payments: access denied")

	// ErrCannotChangeMethod возвращается, когда способ оплаты уже нельзя изменить
	ErrCannotChangeMethod = domain.NewError(domain.KindUnprocessable, "payments: payment method can only be changed while booking is pending confirmation")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.NewError(domain.KindValidationFailed, "payments: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = domain.NewError(domain.KindInternal, "payments: internal error")
)
