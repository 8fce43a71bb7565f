package get_available_dates

import (
	"github.com/m04kA/HomeCare-BookingService/internal/domain"
	getAvailableDates "github.com/m04kA/HomeCare-BookingService/internal/usecase/get_available_dates"
)

// AvailableDatesResponse HTTP response model
type AvailableDatesResponse struct {
	StartDate string          `json:"startDate"`
	EndDate   string          `json:"endDate"`
	Dates     []AvailableDate `json:"dates"`
}

// AvailableDate дата с количеством свободных слотов
type AvailableDate struct {
	Date           string `json:"date"`
	AvailableSlots int    `json:"availableSlots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableDates.Response) *AvailableDatesResponse {
	dates := make([]AvailableDate, len(resp.Dates))
	for i, d := range resp.Dates {
		dates[i] = AvailableDate{
			Date:           d.Date.Format(domain.DateFormat),
			AvailableSlots: d.AvailableSlots,
		}
	}

	return &AvailableDatesResponse{
		StartDate: resp.StartDate.Format(domain.DateFormat),
		EndDate:   resp.EndDate.Format(domain.DateFormat),
		Dates:     dates,
	}
}
