package generate_slots

import (
	"github.com/m04kA/HomeCare-BookingService/internal/domain"
)

// GenerateSlotsRequest HTTP request model
type GenerateSlotsRequest struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// GeneratedDate результат генерации на одну дату
type GeneratedDate struct {
	Date       string `json:"date"`
	SlotsCount int    `json:"slotsCount"`
}

// FromDomain конвертирует результат генерации в HTTP response
func FromDomain(items []domain.SlotGeneration) []GeneratedDate {
	result := make([]GeneratedDate, len(items))
	for i, item := range items {
		result[i] = GeneratedDate{
			Date:       item.Date.Format(domain.DateFormat),
			SlotsCount: item.SlotsCount,
		}
	}
	return result
}
