package notifications

import "github.com/m04kA/HomeCare-BookingService/internal/domain"

var (
	// ErrNotificationNotFound возвращается, когда уведомление не найдено у пользователя
	ErrNotificationNotFound = domain.NewError(domain.KindNotFound, "notifications: notification not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.NewError(domain.KindValidationFailed, "notifications: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = domain.NewError(domain.KindInternal, "notifications: internal error")
)
