package update_payment_status

// UpdatePaymentStatusRequest HTTP request model
type UpdatePaymentStatusRequest struct {
	Status string  `json:"status"` // awaiting | paid | failed
	Notes  *string `json:"notes,omitempty"`
}
