package schedule

import "github.com/m04kA/HomeCare-BookingService/internal/domain"

var (
	// ErrEntryNotFound возвращается, когда для дня недели нет записи шаблона
	ErrEntryNotFound = domain.NewError(domain.KindNotFound, "schedule: weekly schedule entry not found")

	// ErrInvalidWeekday возвращается для неизвестного дня недели
	ErrInvalidWeekday = domain.NewError(domain.KindValidationFailed, "schedule: invalid weekday")

	// ErrInvalidTimeRange возвращается, когда начало рабочего окна не раньше конца
	ErrInvalidTimeRange = domain.NewError(domain.KindValidationFailed, "schedule: start time must be before end time")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.NewError(domain.KindValidationFailed, "schedule: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = domain.NewError(domain.KindInternal, "schedule: internal error")
)
