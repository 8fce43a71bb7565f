package change_payment_method

// ChangePaymentMethodRequest HTTP request model
type ChangePaymentMethodRequest struct {
	PaymentMethod string `json:"paymentMethod"` // cash_on_visit | transfer_on_visit
}
