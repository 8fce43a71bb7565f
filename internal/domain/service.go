package domain

import "github.com/shopspring/decimal"

// Service is a catalog entry a patient can book
type Service struct {
	ID              int64
	Name            string
	Price           decimal.Decimal
	DurationMinutes int
	IsActive        bool
}
