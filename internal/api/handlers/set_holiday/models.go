package set_holiday

// SetHolidayRequest HTTP request model, тело необязательно
type SetHolidayRequest struct {
	Note *string `json:"note,omitempty"`
}
