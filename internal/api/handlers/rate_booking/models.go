package rate_booking

// RateBookingRequest HTTP request model
type RateBookingRequest struct {
	Rating int     `json:"rating"`
	Review *string `json:"review,omitempty"`
}
